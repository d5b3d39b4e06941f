package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/kustosweep/internal/model"
)

// classifyFixture writes a file with the given name and content into a
// temp directory and classifies it.
func classifyFixture(t *testing.T, name string, content string) model.AnalysisResult {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return Classify(path)
}

// TestClassify_ImportantMarkersDominate verifies priority rule 1: an
// explicit keep marker forces needs-review even when the file name would
// otherwise match a safe-removal pattern.
func TestClassify_ImportantMarkersDominate(t *testing.T) {
	for _, marker := range []string{"IMPORTANT", "DO NOT DELETE", "KEEP"} {
		t.Run(marker, func(t *testing.T) {
			// The name matches the test pattern, the content matches a
			// Job, and yet the marker must win.
			result := classifyFixture(t, "config-test-job.yaml",
				"# "+marker+": seed data for the staging cluster\nkind: Job\n")

			assert.Equal(t, model.StatusNeedsReview, result.Status)
			assert.Equal(t, "Contains important markers", result.Reason)
		})
	}
}

// TestClassify_OldJob verifies priority rule 2: a Job resource with a
// job-style file name is safe to remove.
func TestClassify_OldJob(t *testing.T) {
	t.Run("suffix style", func(t *testing.T) {
		result := classifyFixture(t, "migrate-db-job.yaml", "apiVersion: batch/v1\nkind: Job\n")

		assert.Equal(t, model.StatusSafeToRemove, result.Status)
		assert.Equal(t, "Old Job file (likely replaced by workflow)", result.Reason)
	})

	t.Run("prefix style", func(t *testing.T) {
		result := classifyFixture(t, "job-seed-users.yaml", "kind: Job\n")

		assert.Equal(t, model.StatusSafeToRemove, result.Status)
		assert.Equal(t, "Old Job file (likely replaced by workflow)", result.Reason)
	})
}

// TestClassify_JobContentWithoutJobName verifies that a Job manifest
// whose name does not follow the job naming convention falls through
// rule 2 and, matching nothing else, needs manual review.
func TestClassify_JobContentWithoutJobName(t *testing.T) {
	result := classifyFixture(t, "migration.yaml", "kind: Job\n")

	assert.Equal(t, model.StatusNeedsReview, result.Status)
	assert.Equal(t, "Unknown file - manual review needed", result.Reason)
}

// TestClassify_LegacyPathPattern verifies priority rule 3: paths matching
// a known obsolete pattern are safe to remove regardless of content kind.
func TestClassify_LegacyPathPattern(t *testing.T) {
	for _, name := range []string{
		"postgres-setup.yaml",
		"vault-secrets-init.yaml",
		"authelia-db-init.yaml",
		"fix-pool-size.yaml",
	} {
		t.Run(name, func(t *testing.T) {
			result := classifyFixture(t, name, "kind: ConfigMap\n")

			assert.Equal(t, model.StatusSafeToRemove, result.Status)
			assert.Equal(t, "Matches old job pattern", result.Reason)
		})
	}
}

// TestClassify_TestExampleBackup verifies priority rule 4: test, example,
// sample, and backup names are safe to remove. Matching is
// case-insensitive on the file name.
func TestClassify_TestExampleBackup(t *testing.T) {
	for _, name := range []string{
		"config-test.yaml",
		"example-ingress.yaml",
		"SAMPLE-values.yaml",
		"deployment.bak.yaml",
		"service.old.yaml",
	} {
		t.Run(name, func(t *testing.T) {
			result := classifyFixture(t, name, "kind: ConfigMap\n")

			assert.Equal(t, model.StatusSafeToRemove, result.Status)
			assert.Equal(t, "Test/example/backup file", result.Reason)
		})
	}
}

// TestClassify_UnknownFile verifies the default outcome: a file matching
// no rule needs manual review.
func TestClassify_UnknownFile(t *testing.T) {
	result := classifyFixture(t, "ingress.yaml", "apiVersion: networking.k8s.io/v1\nkind: Ingress\n")

	assert.Equal(t, model.StatusNeedsReview, result.Status)
	assert.Equal(t, "Unknown file - manual review needed", result.Reason)
}

// TestClassify_UnreadableFile verifies that a read failure never aborts
// the scan: the file is classified needs-review with the error text
// embedded in the reason.
func TestClassify_UnreadableFile(t *testing.T) {
	result := Classify(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	assert.Equal(t, model.StatusNeedsReview, result.Status)
	assert.Contains(t, result.Reason, "Error reading file:")
}
