package plan

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"slicegen/internal/analyze"
	"slicegen/internal/catalog"
	"slicegen/internal/diagnostic"
	"slicegen/internal/spec"
)

// Config holds configuration for planning.
type Config struct {
	// Profile, when set, overrides the profile declared in the spec file.
	Profile catalog.Profile
	// FallbackProfile is used when neither Profile nor the file names one.
	FallbackProfile catalog.Profile
	// Suffix names the output file when the spec file has no output key.
	Suffix string
	// Package is the analysed target package; nil skips contract checks.
	Package *analyze.PackageInfo
}

// Build validates f and produces its Model. On specification-time errors the
// returned Model still carries every diagnostic and the error wraps
// spec.ErrInvalidSpec.
func Build(f *spec.File, cfg Config) (*Model, error) {
	m := &Model{SpecFile: f.Path}

	m.Diagnostics.Merge(*spec.Validate(f))
	if m.Diagnostics.HasErrors() {
		return m, f.Invalid(&m.Diagnostics)
	}

	m.Profile = resolveProfile(f, cfg)
	m.Output = f.OutputPath(cfg.Suffix)
	m.Package = resolvePackage(f, cfg.Package)

	b := &builder{file: f, model: m, pkg: cfg.Package}

	for i := range f.Specs {
		if tp, ok := b.buildType(i); ok {
			m.Types = append(m.Types, tp)
		}
	}

	if f.Tests {
		b.planTests()
	}

	if m.Diagnostics.HasErrors() {
		return m, f.Invalid(&m.Diagnostics)
	}

	return m, nil
}

// resolveProfile applies: explicit override, then file, then fallback.
func resolveProfile(f *spec.File, cfg Config) catalog.Profile {
	if cfg.Profile != catalog.ProfileUnset {
		return cfg.Profile
	}

	// already validated
	if p, _ := catalog.ParseProfile(f.Profile); p != catalog.ProfileUnset {
		return p
	}

	return cfg.FallbackProfile.OrDefault()
}

// resolvePackage applies: file, analysed package, sibling Go files, directory name.
func resolvePackage(f *spec.File, pkg *analyze.PackageInfo) string {
	if f.Package != "" {
		return f.Package
	}

	if pkg != nil && pkg.Name != "" {
		return pkg.Name
	}

	dir := filepath.Dir(f.Path)
	if name := packageFromDir(dir); name != "" {
		return name
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	return strings.NewReplacer("-", "_", ".", "_").Replace(filepath.Base(abs))
}

// packageFromDir reads the package clause of the first non-test Go file in dir.
func packageFromDir(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return ""
	}

	for _, path := range matches {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}

		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
		if err != nil {
			continue
		}

		return f.Name.Name
	}

	return ""
}

type builder struct {
	file  *spec.File
	model *Model
	pkg   *analyze.PackageInfo
}

func (b *builder) diags() *diagnostic.Diagnostics {
	return &b.model.Diagnostics
}

func (b *builder) loc(i int, key string) diagnostic.Location {
	return b.file.SpecLoc(i, key)
}

// buildType plans specs[i]. ok is false when the entry produced errors.
func (b *builder) buildType(i int) (TypePlan, bool) {
	s := &b.file.Specs[i]
	errsBefore := len(b.diags().Errors)

	inner, _ := catalog.ParseInner(s.Inner)

	tp := TypePlan{
		Name:     s.Name,
		Custom:   s.Custom,
		Inner:    inner,
		Error:    s.Error,
		Validate: s.Validate,
		Default:  s.Default,
		Accept:   s.Samples.Accept,
		Reject:   s.Samples.Reject,
		Loc:      b.loc(i, ""),
	}

	if s.Owned != nil {
		tp.Owned = &OwnedPlan{
			Custom:   s.Owned.Custom,
			Error:    s.Owned.Error,
			Validate: s.Owned.Validate,
		}

		if !b.model.Profile.AtLeast(catalog.ProfileAlloc) {
			b.diags().AddError(diagnostic.CodeOwnedNeedsAlloc,
				fmt.Sprintf("owned type %s needs an allocating profile (alloc or std), have %s",
					s.Owned.Custom, b.model.Profile),
				b.loc(i, "owned"))
		}
	}

	tp.Families = b.resolveFamilies(i, tp.Shape())

	b.checkPredicate(i, &tp)

	if b.pkg != nil {
		b.checkContract(i, &tp)
	}

	return tp, len(b.diags().Errors) == errsBefore
}
