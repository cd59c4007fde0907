package spec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"slicegen/internal/common"
	"slicegen/internal/diagnostic"
)

// ErrInvalidSpec marks errors caused by a spec file that failed validation.
var ErrInvalidSpec = errors.New("invalid spec")

// DefaultSuffix is appended to the spec stem to name the output file.
const DefaultSuffix = "_slicegen.go"

// LoadFile loads and parses a spec file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse parses YAML data into a File. path is recorded for diagnostics and
// output naming; it may be empty.
func Parse(data []byte, path string) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse spec YAML %s: %w", ErrInvalidSpec, path, err)
	}

	f.Path = path
	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	for i := range f.Specs {
		s := &f.Specs[i]
		if s.Name == "" {
			s.Name = s.Custom
		}

		if s.Owned == nil {
			continue
		}

		if s.Owned.Inner == "" {
			s.Owned.Inner = "[]byte"
		}

		if s.Owned.Error == "" {
			s.Owned.Error = s.Error
		}
	}
}

// OutputPath returns where the generated file for f goes. suffix replaces
// DefaultSuffix when non-empty.
func (f *File) OutputPath(suffix string) string {
	dir := filepath.Dir(f.Path)
	if f.Output != "" {
		return filepath.Join(dir, f.Output)
	}

	if suffix == "" {
		suffix = DefaultSuffix
	}

	return filepath.Join(dir, common.SpecStem(f.Path)+suffix)
}

// TestOutputPath returns the generated test file path next to output.
func TestOutputPath(output string) string {
	return filepath.Join(filepath.Dir(output), common.GoStem(output)+"_test.go")
}

// Loc returns the diagnostic location of a top-level key.
func (f *File) Loc(key string) diagnostic.Location {
	return diagnostic.Location{File: f.Path, Line: f.Lines.At(key), Field: key}
}

// SpecLoc returns the diagnostic location of a key inside specs[i].
// Keys prefixed with "owned." resolve inside the owned block.
func (f *File) SpecLoc(i int, key string) diagnostic.Location {
	s := &f.Specs[i]
	loc := diagnostic.Location{
		File:  f.Path,
		Spec:  s.Name,
		Field: fmt.Sprintf("specs[%d]", i),
		Line:  s.Lines.At(key),
	}

	if key == "" {
		return loc
	}

	loc.Field += "." + key

	if s.Owned != nil {
		if sub, ok := strings.CutPrefix(key, "owned."); ok {
			loc.Line = s.Owned.Lines.At(sub)
		}
	}

	return loc
}

// Invalid wraps diagnostics of f into an ErrInvalidSpec error, or returns nil.
func (f *File) Invalid(d *diagnostic.Diagnostics) error {
	if d == nil || d.IsValid() {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrInvalidSpec, f.Path, d.Error())
}
