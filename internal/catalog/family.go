package catalog

import (
	"fmt"
	"strings"

	"slicegen/internal/common"
)

// Family is a named group of generated behaviour.
//
// The numeric order is the canonical emission order.
type Family int

const (
	FamilyValidate Family = iota
	FamilyTryFrom
	FamilyConvert
	FamilyUnchecked
	FamilyBorrow
	FamilyInto
	FamilyView
	FamilyEq
	FamilyOrd
	FamilyHash
	FamilyDefault
	FamilyDisplay
	FamilyDebug
	FamilySlice
	FamilyIndex
	FamilyConcat
	FamilyText
	FamilySQL

	familyCount
)

// Rule describes when a family applies and what it needs.
type Rule struct {
	Family  Family
	Name    string
	Summary string

	// Min is the lowest profile under which the family is emitted at all.
	Min Profile
	// BytesMin raises Min for []byte inner types, whose conversions to and
	// from string literals allocate.
	BytesMin Profile
	// DegradedBelow, when set, is the profile under which an emitted family
	// falls back to a reduced form.
	DegradedBelow Profile

	// NeedsOwned families only exist for specs with an owned type.
	NeedsOwned bool
	// NeedsDefault families only exist for specs declaring a default.
	NeedsDefault bool
	// StringOnly families only exist for string inner types.
	StringOnly bool

	// Requires lists families that must be emitted alongside this one.
	Requires []Family
}

var rules = [familyCount]Rule{
	FamilyValidate: {Name: "validate", Summary: "Validate() re-runs the predicate", Min: ProfileCore},
	FamilyTryFrom:  {Name: "tryfrom", Summary: "fallible construction from the inner type", Min: ProfileCore},
	FamilyConvert: {
		Name: "convert", Summary: "generic construction from and conversion to outer string/byte kinds",
		Min: ProfileCore, Requires: []Family{FamilyTryFrom},
	},
	FamilyUnchecked: {Name: "unchecked", Summary: "construction without validation", Min: ProfileCore},
	FamilyBorrow:    {Name: "borrow", Summary: "Inner() and owned Borrow() exposure chain", Min: ProfileCore},
	FamilyInto: {
		Name: "into", Summary: "ToOwned, IntoInner and Clone",
		Min: ProfileAlloc, NeedsOwned: true,
	},
	FamilyView: {
		Name: "view", Summary: "zero-copy borrowed view of an owned buffer",
		Min: ProfileAlloc, NeedsOwned: true, StringOnly: true,
	},
	FamilyEq:  {Name: "eq", Summary: "Equal across custom, inner and owned shapes", Min: ProfileCore},
	FamilyOrd: {Name: "ord", Summary: "Compare and Less across custom, inner and owned shapes", Min: ProfileCore},
	FamilyHash: {
		Name: "hash", Summary: "hash/maphash hashing consistent with Equal",
		Min: ProfileStd,
	},
	FamilyDefault: {
		Name: "default", Summary: "constructor for the declared default value",
		Min: ProfileCore, BytesMin: ProfileAlloc, NeedsDefault: true,
	},
	FamilyDisplay: {Name: "display", Summary: "String()", Min: ProfileCore, BytesMin: ProfileAlloc},
	FamilyDebug: {
		Name: "debug", Summary: "fmt.Formatter passing verbs and flags through",
		Min: ProfileAlloc, DegradedBelow: ProfileStd,
	},
	FamilySlice: {Name: "slice", Summary: "re-validated sub-slicing", Min: ProfileCore},
	FamilyIndex: {Name: "index", Summary: "Len, IsEmpty and At", Min: ProfileCore},
	FamilyConcat: {
		Name: "concat", Summary: "re-validated concatenation and Append",
		Min: ProfileAlloc,
	},
	FamilyText: {
		Name: "text", Summary: "encoding.TextMarshaler and TextUnmarshaler",
		Min: ProfileStd,
	},
	FamilySQL: {
		Name: "sql", Summary: "driver.Valuer and sql.Scanner",
		Min: ProfileStd, Requires: []Family{FamilyText},
	},
}

func init() {
	for i := range rules {
		rules[i].Family = Family(i)
	}
}

// MinFor returns the lowest profile under which the family is emitted for
// inner.
func (r Rule) MinFor(inner Inner) Profile {
	if inner.IsBytes() && r.BytesMin > r.Min {
		return r.BytesMin
	}

	return r.Min
}

// Families returns every family in canonical order.
func Families() []Family {
	res := make([]Family, 0, familyCount)
	for f := range familyCount {
		res = append(res, f)
	}

	return res
}

// FamilyNames returns every family name in canonical order.
func FamilyNames() []string {
	res := make([]string, 0, familyCount)
	for _, f := range Families() {
		res = append(res, f.String())
	}

	return res
}

// RuleOf returns the rule for f.
func RuleOf(f Family) Rule {
	if !f.Valid() {
		return Rule{Family: f, Name: common.UnknownStr}
	}

	return rules[f]
}

// Valid reports whether f is a catalogue family.
func (f Family) Valid() bool {
	return f >= 0 && f < familyCount
}

// String returns the family name used in spec files.
func (f Family) String() string {
	if !f.Valid() {
		return common.UnknownStr
	}

	return rules[f].Name
}

// ParseFamily parses a family name. Matching ignores case.
func ParseFamily(s string) (Family, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f := range familyCount {
		if rules[f].Name == name {
			return f, nil
		}
	}

	return -1, fmt.Errorf("unknown family %q", s)
}
