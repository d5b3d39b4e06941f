// Package model defines the domain types and value objects for the
// kustosweep CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (AnalysisResult, FileStatus) are ephemeral — they are
// reconstructed from the file system on every run and never persisted.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
