package spec

import (
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"
	"slices"
	"strings"

	"slicegen/internal/catalog"
	"slicegen/internal/diagnostic"
	"slicegen/internal/match"
)

// Validate performs structural validation of a spec file. It checks required
// bindings, identifiers, inner kinds and catalogue names; it does not decide
// whether the requested families fit the profile (see package plan).
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeParse, "spec file is nil", diagnostic.Location{})
		return res
	}

	unknownKeys(res, f.Lines, fileKeys, func(key string) diagnostic.Location { return f.Loc(key) })

	if f.Version != CurrentVersion {
		res.AddError(diagnostic.CodeVersion,
			fmt.Sprintf("unsupported version %q (want %q)", f.Version, CurrentVersion), f.Loc("version"))
	}

	if f.Package != "" && !token.IsIdentifier(f.Package) {
		res.AddError(diagnostic.CodeInvalidPackage,
			fmt.Sprintf("package %q is not a valid Go identifier", f.Package), f.Loc("package"))
	}

	if _, err := catalog.ParseProfile(f.Profile); err != nil {
		res.AddError(diagnostic.CodeUnknownProfile, err.Error(), f.Loc("profile"),
			match.Suggest(f.Profile, catalog.ProfileNames())...)
	}

	validateOutput(res, f)

	if len(f.Specs) == 0 {
		res.AddError(diagnostic.CodeRequired, "at least one entry is required", f.Loc("specs"))
		return res
	}

	// custom type names across borrowed and owned declarations
	seen := map[string]string{}

	for i := range f.Specs {
		validateSpec(res, f, i, seen)
	}

	return res
}

func validateOutput(res *diagnostic.Diagnostics, f *File) {
	if f.Output == "" {
		return
	}

	switch {
	case filepath.Ext(f.Output) != ".go":
		res.AddError(diagnostic.CodeInvalidOutput,
			fmt.Sprintf("output %q must be a .go file", f.Output), f.Loc("output"))
	case strings.HasSuffix(f.Output, "_test.go"):
		res.AddError(diagnostic.CodeInvalidOutput,
			fmt.Sprintf("output %q must not be a test file", f.Output), f.Loc("output"))
	case filepath.IsAbs(f.Output) || strings.HasPrefix(filepath.Clean(f.Output), ".."):
		res.AddError(diagnostic.CodeInvalidOutput,
			fmt.Sprintf("output %q must stay inside the spec directory", f.Output), f.Loc("output"))
	}
}

func validateSpec(res *diagnostic.Diagnostics, f *File, i int, seen map[string]string) {
	s := &f.Specs[i]
	loc := func(key string) diagnostic.Location { return f.SpecLoc(i, key) }

	unknownKeys(res, s.Lines, specKeys, loc)

	requireIdent(res, "custom", s.Custom, loc)
	requireIdent(res, "validate", s.Validate, loc)
	requireTypeExpr(res, "error", s.Error, loc)

	if s.Name != "" && s.Name != s.Custom && !token.IsIdentifier(s.Name) {
		res.AddError(diagnostic.CodeInvalidIdent,
			fmt.Sprintf("name %q is not a valid Go identifier", s.Name), loc("name"))
	}

	switch {
	case s.Inner == "":
		res.AddError(diagnostic.CodeRequired, "inner is required", loc("inner"))
	default:
		if _, err := catalog.ParseInner(s.Inner); err != nil {
			res.AddError(diagnostic.CodeInvalidInner, err.Error(), loc("inner"),
				match.Suggest(s.Inner, catalog.InnerNames())...)
		}
	}

	claim(res, seen, s.Custom, fmt.Sprintf("specs[%d].custom", i), loc("custom"))

	if s.Owned != nil {
		validateOwned(res, f, i, seen)
	}

	validateFamilies(res, s, loc)
}

func validateOwned(res *diagnostic.Diagnostics, f *File, i int, seen map[string]string) {
	s := &f.Specs[i]
	o := s.Owned
	loc := func(key string) diagnostic.Location { return f.SpecLoc(i, "owned."+key) }

	unknownKeys(res, o.Lines, ownedKeys, loc)
	requireIdent(res, "custom", o.Custom, loc)

	if o.Validate != "" && !token.IsIdentifier(o.Validate) {
		res.AddError(diagnostic.CodeInvalidIdent,
			fmt.Sprintf("validate %q is not a valid Go identifier", o.Validate), loc("validate"))
	}

	if o.Error != "" {
		requireTypeExpr(res, "error", o.Error, loc)
	}

	if inner, err := catalog.ParseInner(o.Inner); err != nil || inner != catalog.InnerBytes {
		res.AddError(diagnostic.CodeInvalidInner,
			fmt.Sprintf("owned inner must be []byte, got %q", o.Inner), loc("inner"))
	}

	if o.Custom != "" && o.Custom == s.Custom {
		res.AddError(diagnostic.CodeDuplicate,
			fmt.Sprintf("owned type %q must differ from the borrowed type", o.Custom), loc("custom"))

		return
	}

	claim(res, seen, o.Custom, fmt.Sprintf("specs[%d].owned.custom", i), loc("custom"))
}

func validateFamilies(res *diagnostic.Diagnostics, s *Spec, loc func(string) diagnostic.Location) {
	dup := map[catalog.Family]bool{}

	for _, name := range s.Families {
		fam, err := catalog.ParseFamily(name)
		if err != nil {
			res.AddError(diagnostic.CodeUnknownFamily, err.Error(), loc("families"),
				match.Suggest(name, catalog.FamilyNames())...)

			continue
		}

		if dup[fam] {
			res.AddWarning(diagnostic.CodeDuplicateFamily,
				fmt.Sprintf("family %q listed more than once", name), loc("families"))
		}

		dup[fam] = true
	}
}

func requireIdent(res *diagnostic.Diagnostics, key, value string, loc func(string) diagnostic.Location) {
	switch {
	case value == "":
		res.AddError(diagnostic.CodeRequired, key+" is required", loc(key))
	case !token.IsIdentifier(value):
		res.AddError(diagnostic.CodeInvalidIdent,
			fmt.Sprintf("%s %q is not a valid Go identifier", key, value), loc(key))
	}
}

func requireTypeExpr(res *diagnostic.Diagnostics, key, value string, loc func(string) diagnostic.Location) {
	if value == "" {
		res.AddError(diagnostic.CodeRequired, key+" is required", loc(key))
		return
	}

	if _, err := parser.ParseExpr(value); err != nil {
		res.AddError(diagnostic.CodeInvalidType,
			fmt.Sprintf("%s %q is not a Go type expression: %v", key, value, err), loc(key))
	}
}

// claim records a custom type name, reporting duplicates.
func claim(res *diagnostic.Diagnostics, seen map[string]string, name, field string, at diagnostic.Location) {
	if name == "" {
		return
	}

	if prev, ok := seen[name]; ok {
		res.AddError(diagnostic.CodeDuplicate,
			fmt.Sprintf("type %q is already declared by %s", name, prev), at)

		return
	}

	seen[name] = field
}

func unknownKeys(res *diagnostic.Diagnostics, lines Lines, known []string, loc func(string) diagnostic.Location) {
	for _, key := range lines.Keys() {
		if slices.Contains(known, key) {
			continue
		}

		res.AddError(diagnostic.CodeUnknownField, fmt.Sprintf("unknown key %q", key), loc(key),
			match.Suggest(key, known)...)
	}
}
