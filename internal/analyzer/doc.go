// Package analyzer finds unreferenced YAML files in a Kustomize manifest
// tree and classifies whether each one is safe to remove.
//
// The finder walks <root>/manifests for kustomization.yaml files and, for
// each one, compares the YAML files physically present in that directory
// against the reference set extracted by internal/kustomize. The difference
// is the unreferenced set.
//
// Classification is a pure function of file content and path, evaluated in
// a fixed priority order: explicit keep markers dominate, then superseded
// Job heuristics, then legacy path patterns, then test/example/backup name
// patterns. Anything unmatched needs human review.
//
// Directories are processed independently and strictly sequentially; two
// runs over an unmodified tree produce identical sorted output.
package analyzer
