package spec

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only spec file version understood.
const CurrentVersion = "1"

// File represents a complete spec file.
type File struct {
	// Version is the schema version (default "1").
	Version string `yaml:"version,omitempty"`
	// Package overrides the generated package clause.
	Package string `yaml:"package,omitempty"`
	// Profile is the environment profile name (core, alloc, std).
	Profile string `yaml:"profile,omitempty"`
	// Output is the generated file name, relative to the spec file.
	Output string `yaml:"output,omitempty"`
	// Tests requests a generated _test.go exercising the samples.
	Tests bool `yaml:"tests,omitempty"`
	// Specs lists the validated slice types.
	Specs []Spec `yaml:"specs"`

	// Path is where the file was loaded from.
	Path string `yaml:"-"`
	// Lines maps each top-level key to its line.
	Lines Lines `yaml:"-"`
}

// Spec declares one custom borrowed type and its optional owned variant.
type Spec struct {
	// Name labels the spec in diagnostics (default: Custom).
	Name string `yaml:"name,omitempty"`
	// Custom is the borrowed custom type identifier.
	Custom string `yaml:"custom"`
	// Inner is the inner borrowed type: string or []byte.
	Inner string `yaml:"inner"`
	// Error is the type expression the predicate returns.
	Error string `yaml:"error"`
	// Validate is the predicate function identifier.
	Validate string `yaml:"validate"`
	// Check is an optional expression mirroring Validate at generation time.
	Check string `yaml:"check,omitempty"`
	// Default is the optional default inner value.
	Default *string `yaml:"default,omitempty"`
	// Owned declares the owned variant, if any.
	Owned *Owned `yaml:"owned,omitempty"`
	// Families restricts generation to an explicit subset.
	Families NameList `yaml:"families,omitempty"`
	// Samples are values the predicate must accept or reject.
	Samples Samples `yaml:"samples,omitempty"`

	// Lines maps each key of this entry to its line.
	Lines Lines `yaml:"-"`
}

// Owned declares the owned custom type over []byte.
type Owned struct {
	Custom   string `yaml:"custom"`
	Inner    string `yaml:"inner,omitempty"`
	Error    string `yaml:"error,omitempty"`
	Validate string `yaml:"validate,omitempty"`

	Lines Lines `yaml:"-"`
}

// Samples lists inner values with known predicate outcomes.
type Samples struct {
	Accept []string `yaml:"accept,omitempty"`
	Reject []string `yaml:"reject,omitempty"`
}

// IsEmpty reports whether no samples are declared.
func (s Samples) IsEmpty() bool {
	return len(s.Accept) == 0 && len(s.Reject) == 0
}

// HasDefault reports whether a default inner value is declared.
func (s *Spec) HasDefault() bool {
	return s.Default != nil
}

// Lines maps YAML keys to 1-based line numbers. The empty key holds the line
// of the mapping itself.
type Lines map[string]int

// At returns the line of key, falling back to the mapping line.
func (l Lines) At(key string) int {
	if n, ok := l[key]; ok {
		return n
	}

	return l[""]
}

// Keys returns the recorded keys in sorted order.
func (l Lines) Keys() []string {
	res := make([]string, 0, len(l))
	for k := range l {
		if k != "" {
			res = append(res, k)
		}
	}

	slices.Sort(res)

	return res
}

func keyLines(node *yaml.Node) Lines {
	lines := Lines{"": node.Line}
	if node.Kind != yaml.MappingNode {
		return lines
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		lines[node.Content[i].Value] = node.Content[i].Line
	}

	return lines
}

// UnmarshalYAML decodes the file and records key lines.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	type plain File

	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}

	f.Lines = keyLines(node)

	return nil
}

// UnmarshalYAML decodes the entry and records key lines.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	type plain Spec

	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}

	s.Lines = keyLines(node)

	return nil
}

// UnmarshalYAML decodes the owned block and records key lines.
func (o *Owned) UnmarshalYAML(node *yaml.Node) error {
	type plain Owned

	if err := node.Decode((*plain)(o)); err != nil {
		return err
	}

	o.Lines = keyLines(node)

	return nil
}

// NameList is unmarshaled from either a single name or a list of names.
type NameList []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (n *NameList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*n = NameList{str}
		} else {
			*n = NameList{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*n = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected name or list of names", node.Line)
	}
}

var (
	fileKeys  = []string{"version", "package", "profile", "output", "tests", "specs"}
	specKeys  = []string{"name", "custom", "inner", "error", "validate", "check", "default", "owned", "families", "samples"}
	ownedKeys = []string{"custom", "inner", "error", "validate"}
)
