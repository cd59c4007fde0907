package gen

import (
	"strconv"

	"slicegen/internal/catalog"
	"slicegen/internal/plan"
)

// fileData holds everything the file template needs.
type fileData struct {
	PackageName string
	SpecFile    string
	Profile     string
	Imports     []string
	Types       []typeData
	// Body is the rendered family fragments in emission order.
	Body string
	// Quote names the quoting helper; empty when no degraded GoString needs it.
	Quote string
}

// typeData is one planned type as seen by the fragments.
type typeData struct {
	// C is the borrowed custom type, I its inner type expression.
	C string
	I string
	// Zero is the inner zero literal.
	Zero string
	// Gate is the unexported validation gate for C.
	Gate     string
	Validate string
	Error    string
	// Default is the quoted default literal, empty when none is declared.
	Default string
	Bytes   bool
	// Std enables standard-library facilities in fragments.
	Std   bool
	Owned *ownedData
	// Has reports the families planned for the type, by name.
	Has map[string]bool
	// Quote names the file's literal-quoting helper used by degraded GoString.
	Quote string
	// Degraded is set while rendering a degraded family.
	Degraded bool

	Accept []string
	Reject []string
}

// ownedData describes the owned variant.
type ownedData struct {
	O        string
	Gate     string
	Validate string
	Error    string
}

// buildTypeData constructs the template data for a planned type.
func buildTypeData(m *plan.Model, t *plan.TypePlan) typeData {
	has := make(map[string]bool, len(t.Families))
	for _, f := range t.Families {
		has[f.Family.String()] = true
	}

	td := typeData{
		C:        t.Custom,
		I:        t.Inner.String(),
		Zero:     t.Inner.Zero(),
		Gate:     gateName(t.Custom),
		Validate: t.Validate,
		Error:    t.Error,
		Bytes:    t.Inner.IsBytes(),
		Std:      m.Profile.AtLeast(catalog.ProfileStd),
		Has:      has,
		Quote:    quoteName(m),
		Accept:   t.Accept,
		Reject:   t.Reject,
	}

	if t.Default != nil {
		td.Default = strconv.Quote(*t.Default)
	}

	if t.Owned != nil {
		td.Owned = &ownedData{
			O:        t.Owned.Custom,
			Gate:     gateName(t.Owned.Custom),
			Validate: t.Owned.Validate,
			Error:    t.Owned.Error,
		}
	}

	return td
}

// forFamily returns td as seen by the fragment of fp.
func (td typeData) forFamily(fp plan.FamilyPlan) typeData {
	td.Degraded = fp.Support == catalog.Degraded

	return td
}

// gateName returns the unexported gate function for a custom type.
func gateName(custom string) string {
	return "check" + custom
}

// quoteName returns the quoting helper name for m. It is derived from the
// first type so that several generated files can share a package.
func quoteName(m *plan.Model) string {
	if len(m.Types) == 0 {
		return ""
	}

	return "quote" + m.Types[0].Custom
}
