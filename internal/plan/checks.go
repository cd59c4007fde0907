package plan

import (
	"fmt"

	"slicegen/internal/diagnostic"
	"slicegen/internal/predicate"
	"slicegen/internal/spec"
)

// checkPredicate evaluates the check expression of specs[i] against the
// declared default and samples.
func (b *builder) checkPredicate(i int, tp *TypePlan) {
	s := &b.file.Specs[i]

	if s.Check == "" {
		if s.HasDefault() {
			b.diags().AddError(diagnostic.CodeDefaultUnverify,
				fmt.Sprintf("default %q cannot be verified at generation time; add a check expression mirroring %s",
					*s.Default, s.Validate),
				b.loc(i, "default"))
		}

		if !s.Samples.IsEmpty() && !b.file.Tests {
			b.diags().AddWarning(diagnostic.CodeSamplesUnchecked,
				"samples are neither checked nor tested; add a check expression or set tests: true",
				b.loc(i, "samples"))
		}

		return
	}

	checker, err := predicate.Compile(s.Check)
	if err != nil {
		b.diags().AddError(diagnostic.CodeCheckCompile, err.Error(), b.loc(i, "check"))
		return
	}

	if s.HasDefault() {
		ok, err := checker.Check(*s.Default)

		switch {
		case err != nil:
			b.diags().AddError(diagnostic.CodeCheckCompile, err.Error(), b.loc(i, "default"))
		case !ok:
			b.diags().AddError(diagnostic.CodeDefaultInvalid,
				fmt.Sprintf("default %q does not satisfy %s", *s.Default, s.Check), b.loc(i, "default"))
		}
	}

	b.checkSamples(i, checker, tp.Accept, true)
	b.checkSamples(i, checker, tp.Reject, false)
}

func (b *builder) checkSamples(i int, checker *predicate.Checker, values []string, want bool) {
	verb := "accepted"
	if !want {
		verb = "rejected"
	}

	for _, v := range values {
		ok, err := checker.Check(v)
		if err != nil {
			b.diags().AddError(diagnostic.CodeCheckCompile, err.Error(), b.loc(i, "samples"))
			continue
		}

		if ok != want {
			b.diags().AddError(diagnostic.CodeSampleMismatch,
				fmt.Sprintf("sample %q should be %s but %s says otherwise", v, verb, checker.Source()),
				b.loc(i, "samples"))
		}
	}
}

// planTests decides whether a test file is emitted.
func (b *builder) planTests() {
	for i := range b.model.Types {
		t := &b.model.Types[i]
		if t.HasSamples() || t.Default != nil {
			b.model.TestOutput = spec.TestOutputPath(b.model.Output)
			return
		}
	}

	b.diags().AddWarning(diagnostic.CodeTestsOmitted,
		"tests requested but no spec declares samples or a default; no test file is generated",
		b.file.Loc("tests"))
}
