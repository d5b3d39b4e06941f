package model

import (
	"fmt"
	"strings"
)

// FileStatus represents the classification outcome for an unreferenced
// YAML file. There are exactly two terminal outcomes:
//
//	safe-to-remove — the file matches a known obsolete/test/backup pattern
//	needs-review   — the file must be inspected by a human before removal
type FileStatus string

const (
	// StatusSafeToRemove indicates the file matches a pattern of files
	// that are known to be obsolete (superseded Jobs, test fixtures,
	// backups) and can be deleted without manual inspection.
	StatusSafeToRemove FileStatus = "safe-to-remove"

	// StatusNeedsReview indicates the file could not be matched against
	// any safe-removal pattern, or carries an explicit keep marker, and
	// requires a human decision.
	StatusNeedsReview FileStatus = "needs-review"
)

// String returns the string representation of FileStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands.
func (s FileStatus) String() string {
	return string(s)
}

// IsValid checks whether the FileStatus value is one of the
// predefined valid outcomes.
func (s FileStatus) IsValid() bool {
	switch s {
	case StatusSafeToRemove, StatusNeedsReview:
		return true
	default:
		return false
	}
}

// ParseFileStatus converts a string to a FileStatus.
// Returns an error if the string does not match any valid outcome.
func ParseFileStatus(s string) (FileStatus, error) {
	status := FileStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid file status: %q (valid: safe-to-remove, needs-review)", s)
	}
	return status, nil
}

// AnalysisResult is the classification outcome for a single unreferenced
// file: the path that was inspected, the terminal status, and a
// human-readable reason. Results are immutable once produced — the
// analyzer never revisits a classified file.
type AnalysisResult struct {
	// Path is the file system path of the unreferenced file.
	Path string `json:"path"`

	// Status is the terminal classification outcome.
	Status FileStatus `json:"status"`

	// Reason explains which rule produced the status. For unreadable
	// files, the read error text is embedded here rather than aborting
	// the scan.
	Reason string `json:"reason"`
}

// ExitCode defines standard CLI exit codes. These codes allow scripts
// and CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitManifestsNotFound indicates the expected manifests directory
	// does not exist under the scan root. This is the only fatal error
	// in the scan path — everything else is recovered per file.
	ExitManifestsNotFound ExitCode = 2

	// ExitSchematicFailed indicates the schematic upload request failed
	// or the endpoint returned an unusable response.
	ExitSchematicFailed ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
