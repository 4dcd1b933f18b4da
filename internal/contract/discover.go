package contract

import (
	"os"
	"path/filepath"
	"strings"
)

// specDirs are the standard directories spec's glossary "Specification
// file locations" names; a spec file is discovered when it sits in one of
// these, anywhere under the project root.
var specDirs = map[string]bool{
	"api": true, "specs": true, "proto": true, "schemas": true,
	"openapi": true, "graphql": true, "grpc": true,
	"api-specs": true, "api-schema": true, "definitions": true,
}

var specExtensions = map[string]bool{
	".graphql": true, ".gql": true, ".graphqls": true, ".proto": true,
}

// DiscoveredSpec is one specification file DiscoverSpecFiles found, named
// and typed per the glossary's heuristic, not yet parsed.
type DiscoveredSpec struct {
	Path     string
	SpecType string // "openapi", "asyncapi", "graphql", "proto"
}

// DiscoverSpecFiles walks root looking for specification files matched by
// name (a basename starting with "openapi"/"swagger" is REST, "asyncapi"
// is an event spec) or by extension (.graphql/.gql/.proto), restricted to
// files that live under one of the glossary's standard directories
// anywhere in the tree — so api/openapi.yaml and src/schemas/asyncapi.yml
// both match, but a stray openapi.yaml dropped at the repo root does not,
// keeping discovery from misfiring on an unrelated YAML file someone
// happens to name "openapi-notes.yaml" outside a spec directory.
func DiscoverSpecFiles(root string) ([]DiscoveredSpec, error) {
	var found []DiscoveredSpec
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // isolate per-entry walk errors, spec §7's per-file isolation
		}
		if info.IsDir() {
			base := strings.ToLower(info.Name())
			if base == "node_modules" || base == "vendor" || base == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !underSpecDir(root, path) {
			return nil
		}
		if specType, ok := classifySpecFile(info.Name()); ok {
			found = append(found, DiscoveredSpec{Path: path, SpecType: specType})
		}
		return nil
	})
	return found, err
}

func underSpecDir(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, seg := range strings.Split(filepath.Dir(rel), string(filepath.Separator)) {
		if specDirs[strings.ToLower(seg)] {
			return true
		}
	}
	return false
}

func classifySpecFile(name string) (string, bool) {
	lower := strings.ToLower(name)
	ext := filepath.Ext(lower)
	switch {
	case strings.HasPrefix(lower, "openapi") || strings.HasPrefix(lower, "swagger"):
		return "openapi", true
	case strings.HasPrefix(lower, "asyncapi"):
		return "asyncapi", true
	case specExtensions[ext]:
		if ext == ".proto" {
			return "proto", true
		}
		return "graphql", true
	default:
		return "", false
	}
}
