// Package cli — scan.go implements the "kustosweep scan" command.
//
// The scan command walks <root>/manifests for kustomization.yaml files,
// computes the YAML files each one leaves unreferenced, classifies every
// hit, and prints a report: per-file status lines, a summary with counts,
// the two result lists, and a suggested removal command for the files that
// are safe to delete.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/kustosweep/internal/analyzer"
	"github.com/mmr-tortoise/kustosweep/internal/model"
)

// Status markers for the text report. fatih/color degrades to plain text
// automatically when stdout is not a terminal, so piped output stays clean.
var (
	safeMarker   = color.New(color.FgGreen).SprintFunc()
	reviewMarker = color.New(color.FgYellow).SprintFunc()
)

// scanFlags holds the flag values for the scan command.
// These are bound to cobra flags in NewScanCommand.
type scanFlags struct {
	// root is the project root directory; the scan covers <root>/manifests.
	root string
}

// NewScanCommand creates the "scan" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find unreferenced YAML files in the manifests tree",
		Long: `Find YAML files in <root>/manifests that are not referenced by the
kustomization.yaml in their directory, and classify each one.

Classification rules, first match wins:
  - content carries IMPORTANT / DO NOT DELETE / KEEP  → needs review
  - superseded Job manifests, obsolete setup jobs      → safe to remove
  - test / example / sample / backup files             → safe to remove
  - everything else                                    → needs review

Examples:
  kustosweep scan
  kustosweep scan --root ~/homelab
  kustosweep scan --json`,

		// No positional arguments are required for the scan command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(flags)
		},
	}

	cmd.Flags().StringVar(&flags.root, "root", ".",
		"Project root containing the manifests directory (default: current directory)")

	return cmd
}

// runScan is the main logic function for the scan command.
// It discovers unreferenced files, classifies each one, and outputs the
// report in the appropriate format.
func runScan(flags *scanFlags) error {
	// Step 1: Resolve the root so the report can show stable relative paths.
	root, err := filepath.Abs(flags.root)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to resolve root directory", err)
	}

	if !IsJSONOutput() {
		fmt.Println("Scanning for unreferenced YAML files...")
	}
	VerboseLog("Scanning %s", filepath.Join(root, "manifests"))

	// Step 2: Find every unreferenced YAML file under <root>/manifests.
	// A missing manifests directory is the only fatal case and surfaces
	// here as a CLIError with ExitManifestsNotFound.
	unreferenced, err := analyzer.FindUnreferenced(root)
	if err != nil {
		return err
	}
	VerboseLog("Found %d unreferenced files", len(unreferenced))

	// Step 3: Classify each file. Classification never fails — unreadable
	// files come back as needs-review with the error in the reason.
	results := make([]model.AnalysisResult, 0, len(unreferenced))
	for _, path := range unreferenced {
		results = append(results, analyzer.Classify(path))
	}

	// Step 4: Output the report.
	if IsJSONOutput() {
		printScanResultJSON(os.Stdout, root, results)
		return nil
	}
	printScanResultText(os.Stdout, root, results)
	return nil
}

// printScanResultText writes the human-readable report. Layout:
//
//	=== Unreferenced YAML Files Analysis ===
//
//	✓ SAFE TO REMOVE: manifests/app/old-job.yaml
//	  Reason: Old Job file (likely replaced by workflow)
//
//	Summary:
//	- Safe to remove: 1 files
//	- Needs review: 0 files
//	...
//
// When nothing is unreferenced, the report is exactly the one-line
// "No unreferenced files found!" message.
func printScanResultText(w io.Writer, root string, results []model.AnalysisResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No unreferenced files found!")
		return
	}

	fmt.Fprintln(w, "\n=== Unreferenced YAML Files Analysis ===")
	fmt.Fprintln(w)

	var safeToRemove, needsReview []model.AnalysisResult
	for _, result := range results {
		relPath := relativeTo(root, result.Path)

		if result.Status == model.StatusSafeToRemove {
			safeToRemove = append(safeToRemove, result)
			fmt.Fprintf(w, "%s %s\n", safeMarker("✓ SAFE TO REMOVE:"), relPath)
		} else {
			needsReview = append(needsReview, result)
			fmt.Fprintf(w, "%s %s\n", reviewMarker("⚠ NEEDS REVIEW:"), relPath)
		}
		fmt.Fprintf(w, "  Reason: %s\n", result.Reason)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "- Safe to remove: %d files\n", len(safeToRemove))
	fmt.Fprintf(w, "- Needs review: %d files\n", len(needsReview))

	if len(safeToRemove) > 0 {
		fmt.Fprintln(w, "\nFiles safe to remove:")
		for _, result := range safeToRemove {
			fmt.Fprintf(w, "  %s\n", relativeTo(root, result.Path))
		}
	}

	if len(needsReview) > 0 {
		fmt.Fprintln(w, "\nFiles needing review:")
		for _, result := range needsReview {
			fmt.Fprintf(w, "  %s\n", relativeTo(root, result.Path))
		}
	}

	if len(safeToRemove) > 0 {
		fmt.Fprintln(w, "\nTo remove safe files, run:")
		fmt.Fprintf(w, "  %s\n", FormatRemovalCommand(root, safeToRemove))
	}
}

// scanFileJSON is the JSON output structure for a single classified file.
type scanFileJSON struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// printScanResultJSON writes the report as structured JSON with the two
// result lists as top-level keys.
func printScanResultJSON(w io.Writer, root string, results []model.AnalysisResult) {
	type resultJSON struct {
		SafeToRemove []scanFileJSON `json:"safeToRemove"`
		NeedsReview  []scanFileJSON `json:"needsReview"`
	}

	// Use empty slices instead of nil so JSON output shows [] instead of
	// null when a list is empty.
	out := resultJSON{
		SafeToRemove: make([]scanFileJSON, 0, len(results)),
		NeedsReview:  make([]scanFileJSON, 0, len(results)),
	}

	for _, result := range results {
		entry := scanFileJSON{
			Path:   relativeTo(root, result.Path),
			Reason: result.Reason,
		}
		if result.Status == model.StatusSafeToRemove {
			out.SafeToRemove = append(out.SafeToRemove, entry)
		} else {
			out.NeedsReview = append(out.NeedsReview, entry)
		}
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(w, string(data))
}

// FormatRemovalCommand builds the suggested rm invocation for the
// safe-to-remove files, with each relative path quoted and space-joined.
//
// This function is exported for testing purposes (tested in scan_test.go).
func FormatRemovalCommand(root string, safeToRemove []model.AnalysisResult) string {
	quoted := make([]string, 0, len(safeToRemove))
	for _, result := range safeToRemove {
		quoted = append(quoted, fmt.Sprintf("%q", relativeTo(root, result.Path)))
	}
	return "rm " + strings.Join(quoted, " ")
}

// relativeTo returns path relative to root, falling back to the original
// path when no relative form exists (e.g. different volumes on Windows).
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
