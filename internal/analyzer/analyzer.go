package analyzer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mmr-tortoise/kustosweep/internal/kustomize"
	"github.com/mmr-tortoise/kustosweep/internal/model"
)

const (
	// manifestsDirName is the fixed subdirectory of the scan root that
	// holds the Kustomize manifest tree.
	manifestsDirName = "manifests"

	// kustomizationFile is the fixed name of the configuration-management
	// file that declares which siblings belong to the bundle.
	kustomizationFile = "kustomization.yaml"
)

// FindUnreferenced walks <root>/manifests recursively for kustomization.yaml
// files and returns the paths of all YAML files that sit next to one but are
// not referenced by it. The combined list is sorted lexicographically, so
// repeated runs over an unmodified tree yield identical output.
//
// The only fatal condition is a missing manifests directory, reported as a
// CLIError with ExitManifestsNotFound. Per-directory read failures are
// reported to stderr and skipped — a broken directory never aborts the scan.
func FindUnreferenced(root string) ([]string, error) {
	manifestsDir := filepath.Join(root, manifestsDirName)
	info, err := os.Stat(manifestsDir)
	if err != nil || !info.IsDir() {
		return nil, model.WrapCLIError(model.ExitManifestsNotFound,
			fmt.Sprintf("manifests directory not found at %s", manifestsDir), err)
	}

	var unreferenced []string
	walkErr := filepath.WalkDir(manifestsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subtree is reported and skipped, consistent
			// with the continue-the-scan policy.
			fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", path, err)
			return fs.SkipDir
		}
		if d.IsDir() || d.Name() != kustomizationFile {
			return nil
		}
		unreferenced = append(unreferenced, unreferencedInDirectory(filepath.Dir(path))...)
		return nil
	})
	if walkErr != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to walk %s", manifestsDir), walkErr)
	}

	sort.Strings(unreferenced)
	return unreferenced, nil
}

// unreferencedInDirectory computes the unreferenced set for one directory
// containing a kustomization.yaml: the YAML files directly inside it
// (no recursion, kustomization.yaml itself excluded) minus the reference
// set extracted from the kustomization file.
//
// Comparison is by exact basename match, mirroring the basename
// normalization applied on the reference side.
func unreferencedInDirectory(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading directory %s: %v\n", dir, err)
		return nil
	}

	referenced := kustomize.ReferencedFiles(filepath.Join(dir, kustomizationFile))

	var unreferenced []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == kustomizationFile {
			continue
		}
		if ext := filepath.Ext(name); ext != ".yaml" && ext != ".yml" {
			continue
		}
		if _, ok := referenced[name]; !ok {
			unreferenced = append(unreferenced, filepath.Join(dir, name))
		}
	}
	return unreferenced
}
