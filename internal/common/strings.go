package common

import (
	"path/filepath"
	"strings"
)

// UnknownStr is the String() value of out-of-range enum values.
const UnknownStr = "unknown"

// SpecStem returns the base name of a spec file path with its YAML and
// ".slices" extensions removed: "dir/ascii.slices.yaml" -> "ascii".
func SpecStem(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".yaml", ".yml", ".slices"} {
		base = strings.TrimSuffix(base, ext)
	}

	return base
}

// GoStem returns the base name of a Go file path without ".go".
func GoStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".go")
}
