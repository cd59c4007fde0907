package analyze

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"

	"slicegen/internal/catalog"
	"slicegen/internal/diagnostic"
	"slicegen/internal/match"
)

// Issue is a collaborator contract violation.
type Issue struct {
	Code string
	// Type is the custom type the issue is about, if any.
	Type        string
	Message     string
	Suggestions []string
}

func (i *Issue) Error() string {
	return i.Message
}

var errorIface = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

func innerType(in catalog.Inner) types.Type {
	if in.IsBytes() {
		return bytesType
	}

	return stringType
}

// CheckCustom verifies that name is a defined, non-generic type whose
// underlying type is the inner kind want.
func (p *PackageInfo) CheckCustom(name string, want catalog.Inner) *Issue {
	t, ok := p.Types[name]
	if !ok {
		return &Issue{
			Code:        diagnostic.CodeTypeNotFound,
			Type:        name,
			Message:     fmt.Sprintf("type %s is not declared in package %s", name, p.Name),
			Suggestions: match.Suggest(name, p.TypeNames()),
		}
	}

	switch {
	case t.Kind == TypeKindAlias:
		return &Issue{
			Code:    diagnostic.CodeNotTransparent,
			Type:    name,
			Message: fmt.Sprintf("%s is a type alias; declare it as a defined type: type %s %s", name, name, want),
		}
	case t.Generic:
		return &Issue{
			Code:    diagnostic.CodeNotTransparent,
			Type:    name,
			Message: fmt.Sprintf("%s has type parameters", name),
		}
	case !types.Identical(t.GoType.Underlying(), innerType(want)):
		return &Issue{
			Code:    diagnostic.CodeNotTransparent,
			Type:    name,
			Message: fmt.Sprintf("underlying type of %s is %s, want %s (declared at %s)", name, t.Underlying, want, t.Pos),
		}
	}

	return nil
}

// CheckValidate verifies that fn is a function of signature func(in) E where
// E implements error and matches the declared error type expression.
func (p *PackageInfo) CheckValidate(fn string, in catalog.Inner, errExpr string) *Issue {
	f, ok := p.Funcs[fn]
	if !ok {
		return &Issue{
			Code:        diagnostic.CodeFuncNotFound,
			Message:     fmt.Sprintf("function %s is not declared in package %s", fn, p.Name),
			Suggestions: match.Suggest(fn, p.FuncNames()),
		}
	}

	want := fmt.Sprintf("func(%s) %s", in, errExpr)
	sig := f.Signature

	if sig == nil || sig.TypeParams().Len() > 0 || sig.Variadic() ||
		sig.Params().Len() != 1 || sig.Results().Len() != 1 ||
		!types.Identical(sig.Params().At(0).Type(), innerType(in)) {
		return &Issue{
			Code:    diagnostic.CodeFuncSignature,
			Message: fmt.Sprintf("%s at %s has signature %s, want %s", fn, f.Pos, p.signature(sig), want),
		}
	}

	res := sig.Results().At(0).Type()
	if !types.Implements(res, errorIface) {
		return &Issue{
			Code:    diagnostic.CodeFuncSignature,
			Message: fmt.Sprintf("%s returns %s, which does not implement error", fn, p.TypeString(res)),
		}
	}

	if got := p.TypeString(res); errExpr != "" && normalizeTypeExpr(got) != normalizeTypeExpr(errExpr) {
		return &Issue{
			Code:    diagnostic.CodeFuncSignature,
			Message: fmt.Sprintf("%s returns %s, but the declared error type is %s", fn, got, errExpr),
		}
	}

	return nil
}

func (p *PackageInfo) signature(sig *types.Signature) string {
	if sig == nil {
		return "<none>"
	}

	return p.SignatureString(sig)
}

// Conflicts parses generated source and reports every declaration that
// collides with one the user already wrote: methods on the same receiver
// type, or package-level names.
func (p *PackageInfo) Conflicts(filename string, src []byte) ([]Issue, error) {
	f, err := parser.ParseFile(token.NewFileSet(), filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated %s: %w", filename, err)
	}

	var issues []Issue

	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		name := fd.Name.Name

		if fd.Recv == nil {
			if at, taken := p.declared(name); taken {
				issues = append(issues, Issue{
					Code:    diagnostic.CodeMethodConflict,
					Message: fmt.Sprintf("generated function %s collides with the declaration at %s", name, at),
				})
			}

			continue
		}

		recv := receiverName(fd.Recv)

		t, ok := p.Types[recv]
		if !ok {
			continue
		}

		if m := t.Method(name); m != nil {
			issues = append(issues, Issue{
				Code:    diagnostic.CodeMethodConflict,
				Type:    recv,
				Message: fmt.Sprintf("generated method %s.%s collides with the method declared at %s", recv, name, m.Pos),
			})
		}
	}

	return issues, nil
}

func (p *PackageInfo) declared(name string) (string, bool) {
	if f, ok := p.Funcs[name]; ok {
		return f.Pos, true
	}

	if t, ok := p.Types[name]; ok {
		return t.Pos, true
	}

	if at, ok := p.objects[name]; ok {
		return at, true
	}

	return "", false
}

func receiverName(fl *ast.FieldList) string {
	if fl == nil || len(fl.List) == 0 {
		return ""
	}

	expr := fl.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}

	return ""
}
