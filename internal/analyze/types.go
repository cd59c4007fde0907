package analyze

import (
	"go/types"

	"slicegen/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "slicegen/examples/ascii"
	Name    string // e.g., "AsciiStr"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind classifies the underlying type of a named type.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindString           // underlying string
	TypeKindBytes            // underlying []byte
	TypeKindAlias            // type alias, cannot carry methods of its own
	TypeKindOther            // any other underlying type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindString:
		return "string"
	case TypeKindBytes:
		return "[]byte"
	case TypeKindAlias:
		return "alias"
	case TypeKindOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// MethodInfo describes a user-declared method.
type MethodInfo struct {
	Name    string
	Pointer bool   // declared on the pointer receiver
	Pos     string // file:line of the declaration
}

// TypeInfo describes a named type declared in the analysed package.
type TypeInfo struct {
	ID         TypeID
	Kind       TypeKind
	Underlying string // types.TypeString of the underlying type
	Generic    bool   // has type parameters
	Methods    []MethodInfo
	GoType     types.Type
	Pos        string
}

// Method returns the declared method called name, or nil.
func (t *TypeInfo) Method(name string) *MethodInfo {
	for i := range t.Methods {
		if t.Methods[i].Name == name {
			return &t.Methods[i]
		}
	}

	return nil
}

// FuncInfo describes a package-level function.
type FuncInfo struct {
	Name      string
	Signature *types.Signature
	Pos       string
}

// PackageInfo holds what slicegen needs from one loaded package.
type PackageInfo struct {
	Path   string // Import path
	Name   string // Package name
	Dir    string
	Types  map[string]*TypeInfo
	Funcs  map[string]*FuncInfo
	Errors []string // load or type errors, outside hidden files

	// other package-level names (vars, consts) for collision checks
	objects map[string]string
	pkg     *types.Package
}

// TypeNames returns the names of the package's named types.
func (p *PackageInfo) TypeNames() []string {
	return sortedKeys(p.Types)
}

// FuncNames returns the names of the package's functions.
func (p *PackageInfo) FuncNames() []string {
	return sortedKeys(p.Funcs)
}

// TypeGraph holds the packages analysed during one run.
type TypeGraph struct {
	// Packages maps package directories to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Packages: make(map[string]*PackageInfo),
	}
}
