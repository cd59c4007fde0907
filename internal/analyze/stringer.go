package analyze

import (
	"go/types"
	"maps"
	"slices"
	"strings"
)

// TypeString renders t relative to the analysed package: local names stay
// unqualified, imported ones use the package name.
func (p *PackageInfo) TypeString(t types.Type) string {
	return types.TypeString(t, func(other *types.Package) string {
		if p.pkg != nil && other.Path() == p.pkg.Path() {
			return ""
		}

		return other.Name()
	})
}

// SignatureString renders sig as "func(string) *AsciiError".
func (p *PackageInfo) SignatureString(sig *types.Signature) string {
	var b strings.Builder

	b.WriteString("func(")

	for i := range sig.Params().Len() {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(p.TypeString(sig.Params().At(i).Type()))
	}

	b.WriteString(")")

	switch sig.Results().Len() {
	case 0:
	case 1:
		b.WriteString(" " + p.TypeString(sig.Results().At(0).Type()))
	default:
		parts := make([]string, 0, sig.Results().Len())
		for i := range sig.Results().Len() {
			parts = append(parts, p.TypeString(sig.Results().At(i).Type()))
		}

		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}

	return b.String()
}

// normalizeTypeExpr drops spaces so "[] byte" and "[]byte" compare equal.
func normalizeTypeExpr(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
