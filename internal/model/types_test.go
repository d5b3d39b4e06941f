package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileStatus_IsValid verifies that only the two terminal outcomes
// are accepted as valid statuses.
func TestFileStatus_IsValid(t *testing.T) {
	assert.True(t, StatusSafeToRemove.IsValid())
	assert.True(t, StatusNeedsReview.IsValid())

	assert.False(t, FileStatus("").IsValid())
	assert.False(t, FileStatus("deleted").IsValid())
	assert.False(t, FileStatus("safe").IsValid())
}

// TestParseFileStatus verifies string-to-status conversion, including
// case normalization and rejection of unknown values.
func TestParseFileStatus(t *testing.T) {
	status, err := ParseFileStatus("safe-to-remove")
	require.NoError(t, err)
	assert.Equal(t, StatusSafeToRemove, status)

	// Parsing is case-insensitive.
	status, err = ParseFileStatus("NEEDS-REVIEW")
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsReview, status)

	_, err = ParseFileStatus("maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file status")
}

// TestFileStatus_String verifies the fmt.Stringer implementation.
func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "safe-to-remove", StatusSafeToRemove.String())
	assert.Equal(t, "needs-review", StatusNeedsReview.String())
}

// TestCLIError verifies the error message formatting and the exit code
// carried by CLIError, with and without an underlying error.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := NewCLIError(ExitManifestsNotFound, "manifests directory not found at /tmp/x/manifests")

		assert.Equal(t, ExitManifestsNotFound, err.Code)
		assert.Equal(t, "manifests directory not found at /tmp/x/manifests", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with underlying error", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := WrapCLIError(ExitSchematicFailed, "schematic upload failed", inner)

		assert.Equal(t, ExitSchematicFailed, err.Code)
		assert.Equal(t, "schematic upload failed: connection refused", err.Error())

		// Unwrap must expose the inner error for errors.Is checks.
		assert.True(t, errors.Is(err, inner))
	})
}
