package plan

import (
	"fmt"
	"slices"
	"strings"

	"slicegen/internal/catalog"
	"slicegen/internal/common"
	"slicegen/internal/diagnostic"
)

// Model is the final output of planning. It contains everything needed for
// code generation of one spec file.
type Model struct {
	// SpecFile is the spec file path.
	SpecFile string
	// Package is the package clause of the generated files.
	Package string
	// Profile is the resolved environment profile.
	Profile catalog.Profile
	// Output is the generated file path.
	Output string
	// TestOutput is the generated test file path, empty when not requested.
	TestOutput string
	// Types lists the planned custom types in spec order.
	Types []TypePlan
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
}

// TypePlan is one custom borrowed type with its optional owned variant.
type TypePlan struct {
	// Name labels the spec in diagnostics.
	Name string
	// Custom is the borrowed custom type.
	Custom string
	// Inner is the inner borrowed kind.
	Inner catalog.Inner
	// Error is the declared error type expression.
	Error string
	// Validate is the predicate function.
	Validate string
	// Default is the declared default inner value, if any.
	Default *string
	// Owned is the owned variant, if any.
	Owned *OwnedPlan
	// Families lists the families to emit in canonical order.
	Families []FamilyPlan
	// Accept and Reject are sample inner values.
	Accept []string
	Reject []string
	// Loc points at the spec entry.
	Loc diagnostic.Location
}

// OwnedPlan is the owned custom type over []byte.
type OwnedPlan struct {
	Custom string
	Error  string
	// Validate is the owned predicate; empty means the borrowed predicate
	// runs on the buffer converted to the borrowed inner kind.
	Validate string
}

// FamilyPlan is one family resolved against the profile.
type FamilyPlan struct {
	Family  catalog.Family
	Support catalog.Support
	// Imports are the import paths the family's fragment references.
	Imports []string
	// Implied is true when the family was added because another required it.
	Implied bool
}

// String returns the family name, marking degraded and implied families.
func (f FamilyPlan) String() string {
	s := f.Family.String()
	if f.Support == catalog.Degraded {
		s += "(degraded)"
	}

	if f.Implied {
		s += "*"
	}

	return s
}

// Has reports whether family f is planned for t.
func (t *TypePlan) Has(f catalog.Family) bool {
	return t.Family(f) != nil
}

// Family returns the plan for f, or nil.
func (t *TypePlan) Family(f catalog.Family) *FamilyPlan {
	for i := range t.Families {
		if t.Families[i].Family == f {
			return &t.Families[i]
		}
	}

	return nil
}

// Support returns how f is rendered for t; Omitted when not planned.
func (t *TypePlan) Support(f catalog.Family) catalog.Support {
	if fp := t.Family(f); fp != nil {
		return fp.Support
	}

	return catalog.Omitted
}

// Shape returns the catalogue shape of t.
func (t *TypePlan) Shape() catalog.Shape {
	return catalog.Shape{
		Inner:      t.Inner,
		HasOwned:   t.Owned != nil,
		HasDefault: t.Default != nil,
	}
}

// HasSamples reports whether t declares any sample.
func (t *TypePlan) HasSamples() bool {
	return len(t.Accept) > 0 || len(t.Reject) > 0
}

// Imports returns the union of all family imports, sorted.
func (m *Model) Imports() []string {
	var res []string

	for i := range m.Types {
		for _, f := range m.Types[i].Families {
			res = append(res, f.Imports...)
		}
	}

	slices.Sort(res)

	return common.Dedup(res)
}

// TypeFor returns the plan that declares the borrowed or owned type name.
func (m *Model) TypeFor(name string) *TypePlan {
	for i := range m.Types {
		t := &m.Types[i]
		if t.Custom == name || (t.Owned != nil && t.Owned.Custom == name) {
			return t
		}
	}

	return nil
}

// Summary renders the model for humans, one line per type.
func (m *Model) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s -> %s (package %s, profile %s)\n", m.SpecFile, m.Output, m.Package, m.Profile)

	if m.TestOutput != "" {
		fmt.Fprintf(&b, "  tests -> %s\n", m.TestOutput)
	}

	for i := range m.Types {
		t := &m.Types[i]

		names := make([]string, 0, len(t.Families))
		for _, f := range t.Families {
			names = append(names, f.String())
		}

		owned := ""
		if t.Owned != nil {
			owned = " / " + t.Owned.Custom
		}

		fmt.Fprintf(&b, "  %s%s (%s): %s\n", t.Custom, owned, t.Inner, strings.Join(names, " "))
	}

	return b.String()
}
