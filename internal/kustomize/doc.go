// Package kustomize extracts file references from kustomization.yaml files.
//
// A kustomization.yaml declares which sibling files are part of a composed
// configuration bundle through a fixed set of reference-bearing fields
// (resources, patches, generators, and so on). This package parses one
// kustomization file and returns the set of local file basenames it names.
//
// Parsing is two-tiered: a strict gopkg.in/yaml.v3 parse of the document
// into a generic mapping, and — when the document is malformed — a
// best-effort line-oriented fallback that recognizes list entries naming
// a .yaml/.yml file. The fallback guarantees partial results for broken
// documents instead of failing the whole scan.
package kustomize
