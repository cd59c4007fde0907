package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches spec files anywhere below a directory.
const DefaultPattern = "**/*.slices.yaml"

// Discover expands args into a sorted, de-duplicated list of spec files.
// Each arg is a file, a directory (searched with pattern) or a doublestar
// glob. No args means the current directory.
func Discover(pattern string, args ...string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	var res []string

	for _, arg := range args {
		found, err := discoverOne(pattern, arg)
		if err != nil {
			return nil, err
		}

		res = append(res, found...)
	}

	slices.Sort(res)

	return slices.Compact(res), nil
}

func discoverOne(pattern, arg string) ([]string, error) {
	info, err := os.Stat(arg)

	switch {
	case err == nil && info.IsDir():
		matches, err := doublestar.FilepathGlob(filepath.Join(arg, pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", arg, err)
		}

		return matches, nil

	case err == nil:
		return []string{filepath.Clean(arg)}, nil

	case doublestar.ValidatePathPattern(arg) && hasMeta(arg):
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", arg, err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("no spec files match %s", arg)
		}

		return matches, nil

	default:
		return nil, fmt.Errorf("failed to stat spec %s: %w", arg, err)
	}
}

// IsSpecFile reports whether path matches the discovery pattern.
func IsSpecFile(pattern, path string) bool {
	if pattern == "" {
		pattern = DefaultPattern
	}

	if ok, _ := doublestar.Match(pattern, filepath.ToSlash(filepath.Clean(path))); ok {
		return true
	}

	ok, _ := doublestar.Match(pattern, filepath.Base(path))

	return ok
}

func hasMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}

	return false
}
