package plan

import (
	"fmt"

	"slicegen/internal/catalog"
	"slicegen/internal/diagnostic"
)

// resolveFamilies picks the families for specs[i]: the explicit subset when
// one is listed, otherwise every family applicable to the shape under the
// profile. Requirements are added transitively.
func (b *builder) resolveFamilies(i int, shape catalog.Shape) []FamilyPlan {
	s := &b.file.Specs[i]
	profile := b.model.Profile
	loc := b.loc(i, "families")

	explicit := len(s.Families) > 0

	var requested []catalog.Family

	if explicit {
		for _, name := range s.Families {
			f, err := catalog.ParseFamily(name)
			if err != nil {
				// reported by spec.Validate
				continue
			}

			if b.checkExplicit(i, f, shape) {
				requested = append(requested, f)
			}
		}
	} else {
		requested = catalog.Applicable(shape, profile)
	}

	chosen := map[catalog.Family]bool{}
	for _, f := range requested {
		chosen[f] = true
	}

	implied := map[catalog.Family]catalog.Family{}

	for queue := requested; len(queue) > 0; {
		f := queue[0]
		queue = queue[1:]

		for _, r := range catalog.RuleOf(f).Requires {
			if chosen[r] {
				continue
			}

			chosen[r] = true
			implied[r] = f
			queue = append(queue, r)

			if explicit {
				b.diags().AddInfo(diagnostic.CodeFamilyImplied,
					fmt.Sprintf("family %s added because %s requires it", r, f), loc)
			}
		}
	}

	set := make([]catalog.Family, 0, len(chosen))
	for f := range chosen {
		set = append(set, f)
	}

	ordered, err := orderFamilies(set)
	if err != nil {
		b.diags().AddError(diagnostic.CodeFamilyProfile,
			fmt.Sprintf("cannot order families: %v", err), loc)

		return nil
	}

	res := make([]FamilyPlan, 0, len(ordered))

	for _, f := range ordered {
		support := catalog.SupportFor(f, profile, shape.Inner)

		if support == catalog.Omitted {
			// only reachable through an implied requirement
			b.diags().AddError(diagnostic.CodeFamilyProfile,
				fmt.Sprintf("family %s (required by %s) needs profile %s, have %s",
					f, implied[f], catalog.RuleOf(f).MinFor(shape.Inner), profile), loc)

			continue
		}

		if support == catalog.Degraded {
			msg := fmt.Sprintf("family %s is degraded under profile %s", f, profile)
			if explicit {
				b.diags().AddWarning(diagnostic.CodeFamilyDegraded, msg, loc)
			} else {
				b.diags().AddInfo(diagnostic.CodeFamilyDegraded, msg, loc)
			}
		}

		_, isImplied := implied[f]

		res = append(res, FamilyPlan{
			Family:  f,
			Support: support,
			Imports: catalog.Facilities(f, profile, shape),
			Implied: isImplied,
		})
	}

	return res
}

// checkExplicit reports an explicitly requested family that cannot be
// emitted for shape under the profile. It returns true when f is usable.
func (b *builder) checkExplicit(i int, f catalog.Family, shape catalog.Shape) bool {
	s := &b.file.Specs[i]
	profile := b.model.Profile
	loc := b.loc(i, "families")

	switch catalog.Applicability(f, shape) {
	case catalog.MissingOwned:
		b.diags().AddError(diagnostic.CodeFamilyOwned,
			fmt.Sprintf("family %s needs an owned type; add an owned block to %s", f, s.Custom), loc)

		return false

	case catalog.MissingDefault:
		b.diags().AddError(diagnostic.CodeDefaultMissing,
			fmt.Sprintf("family %s needs a declared default value", f), loc)

		return false

	case catalog.NotStringInner:
		b.diags().AddError(diagnostic.CodeFamilyInner,
			fmt.Sprintf("family %s needs inner type string, have %s", f, shape.Inner), loc)

		return false

	case catalog.Applies:
	}

	if catalog.SupportFor(f, profile, shape.Inner) == catalog.Omitted {
		need := catalog.RuleOf(f).MinFor(shape.Inner)
		b.diags().AddError(diagnostic.CodeFamilyProfile,
			fmt.Sprintf("family %s needs profile %s or higher for inner %s, have %s", f, need, shape.Inner, profile), loc)

		return false
	}

	return true
}
