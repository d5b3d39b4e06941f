package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/kustosweep/internal/model"
)

// importantMarkers are content substrings that force needs-review no
// matter what the file name or path looks like. A file an operator has
// explicitly marked is never suggested for removal.
var importantMarkers = []string{"IMPORTANT", "DO NOT DELETE", "KEEP"}

// safePatterns are path substrings of files known to be obsolete one-off
// Jobs or setup manifests that were superseded by workflows.
var safePatterns = []string{
	"job-", "-job.yaml", "postgres-setup.yaml", "vault-secrets-init.yaml",
	"authelia-db-", "fix-pool-size.yaml", "job.yaml",
}

// testPatterns are lowercase file-name substrings of test fixtures,
// examples, and editor backups.
var testPatterns = []string{"test", "example", "sample", ".bak", ".old"}

// Classify inspects one unreferenced file and decides whether it is safe
// to remove. Rules are evaluated in fixed priority order — first match
// wins:
//
//  1. content carries an important marker            → needs-review
//  2. Job resource with a job-style file name        → safe-to-remove
//  3. path matches a known obsolete pattern          → safe-to-remove
//  4. name matches a test/example/backup pattern     → safe-to-remove
//  5. nothing matched                                → needs-review
//
// Classify never fails: an unreadable file is classified needs-review with
// the read error embedded in the reason.
func Classify(path string) model.AnalysisResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.AnalysisResult{
			Path:   path,
			Status: model.StatusNeedsReview,
			Reason: fmt.Sprintf("Error reading file: %v", err),
		}
	}

	content := string(data)
	name := filepath.Base(path)

	if containsAny(content, importantMarkers) {
		return model.AnalysisResult{
			Path:   path,
			Status: model.StatusNeedsReview,
			Reason: "Contains important markers",
		}
	}

	// One-off Jobs that were replaced by workflows keep their job-style
	// names; the content check guards against unrelated files that merely
	// sound like jobs.
	if strings.Contains(content, "kind: Job") &&
		(strings.Contains(name, "job-") || strings.Contains(name, "-job")) {
		return model.AnalysisResult{
			Path:   path,
			Status: model.StatusSafeToRemove,
			Reason: "Old Job file (likely replaced by workflow)",
		}
	}

	if containsAny(path, safePatterns) {
		return model.AnalysisResult{
			Path:   path,
			Status: model.StatusSafeToRemove,
			Reason: "Matches old job pattern",
		}
	}

	if containsAny(strings.ToLower(name), testPatterns) {
		return model.AnalysisResult{
			Path:   path,
			Status: model.StatusSafeToRemove,
			Reason: "Test/example/backup file",
		}
	}

	return model.AnalysisResult{
		Path:   path,
		Status: model.StatusNeedsReview,
		Reason: "Unknown file - manual review needed",
	}
}

// containsAny reports whether s contains at least one of the substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
