package plan

import (
	"slicegen/internal/analyze"
	"slicegen/internal/catalog"
	"slicegen/internal/spec"
)

// checkContract verifies specs[i] against the analysed package.
func (b *builder) checkContract(i int, tp *TypePlan) {
	b.report(i, "custom", b.pkg.CheckCustom(tp.Custom, tp.Inner))
	b.report(i, "validate", b.pkg.CheckValidate(tp.Validate, tp.Inner, tp.Error))

	if tp.Owned == nil {
		return
	}

	b.report(i, "owned.custom", b.pkg.CheckCustom(tp.Owned.Custom, catalog.InnerBytes))

	if tp.Owned.Validate != "" {
		b.report(i, "owned.validate", b.pkg.CheckValidate(tp.Owned.Validate, catalog.InnerBytes, tp.Owned.Error))
	}
}

func (b *builder) report(i int, key string, issue *analyze.Issue) {
	if issue == nil {
		return
	}

	b.diags().AddError(issue.Code, issue.Message, b.loc(i, key), issue.Suggestions...)
}

// Conflicts reports generated declarations that collide with declarations
// the user wrote in pkg. Issues are attributed to the spec entry owning the
// receiver type, or to the file when no entry matches.
func (m *Model) Conflicts(f *spec.File, pkg *analyze.PackageInfo, src []byte) error {
	issues, err := pkg.Conflicts(m.Output, src)
	if err != nil {
		return err
	}

	for _, issue := range issues {
		at := f.Loc("specs")

		if t := m.TypeFor(issue.Type); t != nil {
			at = t.Loc
		}

		m.Diagnostics.AddError(issue.Code, issue.Message, at)
	}

	if len(issues) > 0 {
		return f.Invalid(&m.Diagnostics)
	}

	return nil
}
