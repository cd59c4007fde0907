package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slicegen/internal/catalog"
	"slicegen/internal/diagnostic"
)

func loadContract(t *testing.T) *PackageInfo {
	t.Helper()

	pkg, err := NewAnalyzer().LoadDir(context.Background(), "testdata/contract", "hidden_slicegen.go")
	require.NoError(t, err)

	return pkg
}

func TestLoadDir_HidesGeneratedOutput(t *testing.T) {
	pkg := loadContract(t)

	assert.Equal(t, "contract", pkg.Name)
	assert.Empty(t, pkg.Errors, "stale output must not produce type errors")

	name := pkg.Types["Name"]
	require.NotNil(t, name)
	assert.Equal(t, TypeKindString, name.Kind)
	assert.Nil(t, name.Method("Equal"), "methods from hidden files are invisible")
	require.Len(t, name.Methods, 2)
	assert.ElementsMatch(t, []string{"String", "Reset"}, []string{name.Methods[0].Name, name.Methods[1].Name})

	reset := name.Method("Reset")
	require.NotNil(t, reset)
	assert.True(t, reset.Pointer)
	assert.Contains(t, reset.Pos, "types.go:")

	assert.Equal(t, TypeKindBytes, pkg.Types["Token"].Kind)
	assert.Equal(t, TypeKindAlias, pkg.Types["Alias"].Kind)
	assert.Equal(t, TypeKindOther, pkg.Types["Count"].Kind)
	assert.True(t, pkg.Types["Box"].Generic)
}

func TestLoadDir_Caches(t *testing.T) {
	a := NewAnalyzer()

	first, err := a.LoadDir(context.Background(), "testdata/contract", "hidden_slicegen.go")
	require.NoError(t, err)

	second, err := a.LoadDir(context.Background(), "testdata/contract")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, a.graph.Packages, 1)
}

func TestCheckCustom(t *testing.T) {
	pkg := loadContract(t)

	assert.Nil(t, pkg.CheckCustom("Name", catalog.InnerString))
	assert.Nil(t, pkg.CheckCustom("Token", catalog.InnerBytes))

	tests := []struct {
		name     string
		inner    catalog.Inner
		wantCode string
	}{
		{"Nmae", catalog.InnerString, diagnostic.CodeTypeNotFound},
		{"Alias", catalog.InnerString, diagnostic.CodeNotTransparent},
		{"Box", catalog.InnerString, diagnostic.CodeNotTransparent},
		{"Count", catalog.InnerString, diagnostic.CodeNotTransparent},
		{"Name", catalog.InnerBytes, diagnostic.CodeNotTransparent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := pkg.CheckCustom(tt.name, tt.inner)
			require.NotNil(t, issue)
			assert.Equal(t, tt.wantCode, issue.Code)
		})
	}

	issue := pkg.CheckCustom("Nmae", catalog.InnerString)
	assert.Contains(t, issue.Suggestions, "Name")
}

func TestCheckValidate(t *testing.T) {
	pkg := loadContract(t)

	assert.Nil(t, pkg.CheckValidate("validateName", catalog.InnerString, "*NameError"))
	assert.Nil(t, pkg.CheckValidate("validateName", catalog.InnerString, "* NameError"))
	assert.Nil(t, pkg.CheckValidate("validateToken", catalog.InnerBytes, "error"))

	tests := []struct {
		fn       string
		inner    catalog.Inner
		errExpr  string
		wantCode string
		wantMsg  string
	}{
		{"validateNmae", catalog.InnerString, "*NameError", diagnostic.CodeFuncNotFound, "not declared"},
		{"wrongArgs", catalog.InnerString, "error", diagnostic.CodeFuncSignature, "func(int) error"},
		{"notError", catalog.InnerString, "bool", diagnostic.CodeFuncSignature, "does not implement error"},
		{"validateName", catalog.InnerBytes, "*NameError", diagnostic.CodeFuncSignature, "want func([]byte) *NameError"},
		{"validateName", catalog.InnerString, "error", diagnostic.CodeFuncSignature, "declared error type is error"},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			issue := pkg.CheckValidate(tt.fn, tt.inner, tt.errExpr)
			require.NotNil(t, issue)
			assert.Equal(t, tt.wantCode, issue.Code)
			assert.Contains(t, issue.Error(), tt.wantMsg)
		})
	}
}

func TestConflicts(t *testing.T) {
	pkg := loadContract(t)

	src := []byte(`package contract

func (s Name) String() string { return string(s) }
func (s Name) Len() int { return len(s) }
func (s *Token) Reset() {}
func NewName(s string) (Name, error) { return Name(s), nil }
func DefaultName() Name { return "" }
`)

	issues, err := pkg.Conflicts("contract_slicegen.go", src)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, "Name", issues[0].Type)
	assert.Contains(t, issues[0].Message, "Name.String")
	assert.Contains(t, issues[1].Message, "DefaultName")

	_, err = pkg.Conflicts("broken.go", []byte("package"))
	require.Error(t, err)
}
