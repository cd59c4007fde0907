package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
	}
}

// LoadDir loads the package in dir. Files listed in hide are replaced by a
// build-ignored stub while loading, so previously generated output neither
// satisfies nor collides with the contract checks.
//
// Type errors do not fail the load; they are recorded in PackageInfo.Errors,
// since user code often references methods that have not been generated yet.
func (a *Analyzer) LoadDir(ctx context.Context, dir string, hide ...string) (*PackageInfo, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	if cached, ok := a.graph.Packages[absDir]; ok {
		return cached, nil
	}

	overlay, err := hiddenOverlay(absDir, hide)
	if err != nil {
		return nil, err
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     absDir,
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", dir, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package found in %s", dir)
	}

	pkg := pkgs[0]
	if pkg.Types == nil || pkg.Name == "" {
		return nil, fmt.Errorf("failed to load package in %s: %w", dir, packageErrors(pkg))
	}

	info := a.processPackage(pkg, absDir)
	a.graph.Packages[absDir] = info

	return info, nil
}

// processPackage extracts types and functions from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package, dir string) *PackageInfo {
	info := &PackageInfo{
		Path:    pkg.PkgPath,
		Name:    pkg.Name,
		Dir:     dir,
		Types:   map[string]*TypeInfo{},
		Funcs:   map[string]*FuncInfo{},
		objects: map[string]string{},
		pkg:     pkg.Types,
	}

	for _, e := range pkg.Errors {
		info.Errors = append(info.Errors, e.Error())
	}

	pos := func(p token.Pos) string {
		if !p.IsValid() {
			return ""
		}

		position := pkg.Fset.Position(p)

		return fmt.Sprintf("%s:%d", filepath.Base(position.Filename), position.Line)
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			info.Types[name] = analyzeTypeName(pkg.PkgPath, obj, pos)
		case *types.Func:
			sig, _ := obj.Type().(*types.Signature)
			info.Funcs[name] = &FuncInfo{Name: name, Signature: sig, Pos: pos(obj.Pos())}
		default:
			info.objects[name] = pos(obj.Pos())
		}
	}

	return info
}

// analyzeTypeName classifies a named type and collects its declared methods.
func analyzeTypeName(pkgPath string, obj *types.TypeName, pos func(token.Pos) string) *TypeInfo {
	info := &TypeInfo{
		ID:     TypeID{PkgPath: pkgPath, Name: obj.Name()},
		GoType: obj.Type(),
		Pos:    pos(obj.Pos()),
	}

	if obj.IsAlias() {
		info.Kind = TypeKindAlias
		info.Underlying = obj.Type().String()

		return info
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		info.Kind = TypeKindOther
		return info
	}

	info.Generic = named.TypeParams().Len() > 0
	info.Underlying = named.Underlying().String()
	info.Kind = classify(named.Underlying())

	for i := range named.NumMethods() {
		m := named.Method(i)

		recvPtr := false
		if sig, ok := m.Type().(*types.Signature); ok && sig.Recv() != nil {
			_, recvPtr = sig.Recv().Type().(*types.Pointer)
		}

		info.Methods = append(info.Methods, MethodInfo{
			Name:    m.Name(),
			Pointer: recvPtr,
			Pos:     pos(m.Pos()),
		})
	}

	return info
}

var (
	stringType = types.Typ[types.String]
	bytesType  = types.NewSlice(types.Typ[types.Byte])
)

func classify(t types.Type) TypeKind {
	switch {
	case types.Identical(t, stringType):
		return TypeKindString
	case types.Identical(t, bytesType):
		return TypeKindBytes
	default:
		return TypeKindOther
	}
}

// hiddenOverlay maps each existing hidden file to a build-ignored stub.
func hiddenOverlay(dir string, hide []string) (map[string][]byte, error) {
	overlay := map[string][]byte{}

	for _, h := range hide {
		path := h
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		overlay[path] = []byte(hiddenStub)
	}

	return overlay, nil
}

// hiddenStub is excluded by build constraints whatever its package name.
const hiddenStub = "//go:build ignore\n\npackage ignored\n"

func packageErrors(pkg *packages.Package) error {
	errs := make([]error, 0, len(pkg.Errors))
	for _, e := range pkg.Errors {
		errs = append(errs, e)
	}

	if len(errs) == 0 {
		return errors.New("package has no type information")
	}

	return errors.Join(errs...)
}
