package catalog

import (
	"slices"

	"slicegen/internal/common"
)

// Support is how a family is rendered under a profile.
type Support int

const (
	// Omitted families produce no declarations.
	Omitted Support = iota
	// Degraded families produce a reduced form that avoids missing facilities.
	Degraded
	// Implemented families produce their full form.
	Implemented
)

func (s Support) String() string {
	switch s {
	case Omitted:
		return "omitted"
	case Degraded:
		return "degraded"
	case Implemented:
		return "implemented"
	default:
		return common.UnknownStr
	}
}

// SupportOf returns how f is rendered under p for a string inner type.
func SupportOf(f Family, p Profile) Support {
	return SupportFor(f, p, InnerString)
}

// SupportFor returns how f is rendered under p for inner.
func SupportFor(f Family, p Profile, inner Inner) Support {
	if !f.Valid() {
		return Omitted
	}

	r := rules[f]
	p = p.OrDefault()

	if p < r.MinFor(inner) {
		return Omitted
	}

	if r.DegradedBelow != ProfileUnset && p < r.DegradedBelow {
		return Degraded
	}

	return Implemented
}

// Shape is the part of a spec that decides which families apply.
type Shape struct {
	Inner      Inner
	HasOwned   bool
	HasDefault bool
}

// Reason explains why a family does not apply to a shape.
type Reason int

const (
	Applies Reason = iota
	MissingOwned
	MissingDefault
	NotStringInner
)

// Applicability reports whether f applies to shape, ignoring the profile.
func Applicability(f Family, shape Shape) Reason {
	r := RuleOf(f)

	switch {
	case r.NeedsOwned && !shape.HasOwned:
		return MissingOwned
	case r.NeedsDefault && !shape.HasDefault:
		return MissingDefault
	case r.StringOnly && shape.Inner != InnerString:
		return NotStringInner
	default:
		return Applies
	}
}

// Applicable returns every family that applies to shape and is not omitted
// under p, in canonical order.
func Applicable(shape Shape, p Profile) []Family {
	var res []Family

	for _, f := range Families() {
		if Applicability(f, shape) != Applies {
			continue
		}

		if SupportFor(f, p, shape.Inner) == Omitted {
			continue
		}

		res = append(res, f)
	}

	return res
}

// Facilities returns the import paths the fragment for f references under p
// for the given shape. The result is sorted.
func Facilities(f Family, p Profile, shape Shape) []string {
	std := p.OrDefault() >= ProfileStd

	var res []string

	switch f {
	case FamilyEq:
		if std && shape.Inner.IsBytes() {
			res = append(res, "bytes")
		}
	case FamilyOrd:
		if std {
			if shape.Inner.IsBytes() {
				res = append(res, "bytes")
			} else {
				res = append(res, "cmp")
			}
		}
	case FamilyHash:
		res = append(res, "hash/maphash")
	case FamilyView:
		res = append(res, "unsafe")
	case FamilyDebug:
		if std {
			res = append(res, "fmt")
		}
	case FamilySQL:
		res = append(res, "database/sql/driver", "fmt")
	}

	slices.Sort(res)

	return res
}
