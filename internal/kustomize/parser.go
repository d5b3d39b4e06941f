package kustomize

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// referenceFields enumerates the kustomization.yaml fields whose values
// can name other files. The list is fixed — unknown fields are ignored
// rather than guessed at.
var referenceFields = []string{
	"resources", "patches", "patchesStrategicMerge", "patchesJson6902",
	"configurations", "crds", "openapi", "generators", "transformers",
	"components", "configMapGenerator", "secretGenerator",
}

// listItemPattern is the fallback matcher for malformed documents.
// It recognizes list entries like "  - deployment.yaml" or
// "  - service.yml  # comment", but not path-qualified entries
// ("- base/deployment.yaml") which never land in the reference set anyway.
var listItemPattern = regexp.MustCompile(`(?m)^\s*-\s*([^/\s#]+\.(?:yaml|yml))[ \t]*(?:#.*)?$`)

// ReferencedFiles extracts the set of local file basenames referenced by
// the kustomization file at path. The returned set contains basenames only
// (directory qualifiers stripped); remote http(s) references are excluded
// by construction.
//
// Failure handling follows a continue-the-scan policy:
//   - unreadable file: a diagnostic goes to stderr and an empty set is
//     returned, so the caller treats every sibling as unreferenced
//   - malformed YAML: the line-oriented fallback produces partial results
//     and the parse error is never surfaced
func ReferencedFiles(path string) map[string]struct{} {
	referenced := make(map[string]struct{})

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		return referenced
	}

	// Strict parse first. The target is interface{} rather than a typed
	// struct because kustomization fields hold heterogeneous shapes
	// (strings, mappings with "files", mappings with "path").
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		collectLineReferences(data, referenced)
		return referenced
	}

	// Only mapping-structured documents carry references. A document that
	// parses to something else (a bare list, a scalar) yields no references
	// — it is valid YAML, so the fallback does not apply either.
	if mapping, ok := doc.(map[string]interface{}); ok {
		collectDocReferences(mapping, referenced)
	}

	return referenced
}

// collectDocReferences walks the recognized reference fields of a parsed
// kustomization mapping and records every local file reference found.
func collectDocReferences(doc map[string]interface{}, referenced map[string]struct{}) {
	for _, field := range referenceFields {
		items, ok := doc[field].([]interface{})
		if !ok {
			continue
		}
		for _, item := range items {
			collectItemReference(item, referenced)
		}
	}

	// Patch-with-target shape: patches entries that are mappings with a
	// "path" key (and typically a "target" selector). Recognized here in
	// addition to the generic per-item handling above.
	patches, ok := doc["patches"].([]interface{})
	if !ok {
		return
	}
	for _, patch := range patches {
		if m, ok := patch.(map[string]interface{}); ok {
			if p, ok := m["path"].(string); ok {
				addLocalReference(p, referenced)
			}
		}
	}
}

// collectItemReference records the file reference(s) carried by a single
// list item. Items come in three shapes:
//
//	"deployment.yaml"                    — plain string reference
//	{files: [app.env, tls.crt], ...}     — configMapGenerator/secretGenerator
//	{path: patch.yaml, target: {...}}    — patch with target
func collectItemReference(item interface{}, referenced map[string]struct{}) {
	switch v := item.(type) {
	case string:
		// Remote resources ("https://..." bases) are not local files.
		if !strings.HasPrefix(v, "http") {
			addLocalReference(v, referenced)
		}
	case map[string]interface{}:
		if files, ok := v["files"].([]interface{}); ok {
			for _, file := range files {
				if s, ok := file.(string); ok {
					addLocalReference(s, referenced)
				}
			}
			return
		}
		if p, ok := v["path"].(string); ok {
			addLocalReference(p, referenced)
		}
	}
}

// addLocalReference records the basename of a local file reference.
// Only bare names and ./-qualified paths are recorded; references that
// descend into subdirectories (e.g. "base/deployment.yaml") point outside
// the kustomization's own directory and are left out of the set.
//
// Known limitation, preserved for compatibility: stripping to the basename
// collapses path-qualified and bare references that happen to share a
// basename.
func addLocalReference(path string, referenced map[string]struct{}) {
	if path == "" || strings.HasPrefix(path, "http") {
		return
	}
	if !strings.Contains(path, "/") || strings.HasPrefix(path, "./") {
		referenced[filepath.Base(path)] = struct{}{}
	}
}

// collectLineReferences is the fallback for documents the YAML parser
// rejects. It scans the raw text for list entries naming a YAML file and
// records each match, ignoring trailing comments.
func collectLineReferences(content []byte, referenced map[string]struct{}) {
	for _, match := range listItemPattern.FindAllSubmatch(content, -1) {
		referenced[string(match[1])] = struct{}{}
	}
}
