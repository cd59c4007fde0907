package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slicegen/internal/analyze"
	"slicegen/internal/diagnostic"
	"slicegen/internal/spec"
)

func contractPackage(t *testing.T) *analyze.PackageInfo {
	t.Helper()

	pkg, err := analyze.NewAnalyzer().LoadDir(context.Background(), "../analyze/testdata/contract", "hidden_slicegen.go")
	require.NoError(t, err)

	return pkg
}

func TestBuild_ContractChecks(t *testing.T) {
	pkg := contractPackage(t)

	m, err := build(t, `
package: contract
specs:
  - custom: Name
    inner: string
    error: "*NameError"
    validate: validateName
    owned:
      custom: Token
      error: error
      validate: validateToken
`, Config{Package: pkg})
	require.NoError(t, err)
	assert.Len(t, m.Types, 1)

	m, err = build(t, `
package: contract
specs:
  - custom: Nmae
    inner: string
    error: error
    validate: validateName
`, Config{Package: pkg})
	require.ErrorIs(t, err, spec.ErrInvalidSpec)
	assert.Equal(t, []string{diagnostic.CodeTypeNotFound, diagnostic.CodeFuncSignature}, m.Diagnostics.Codes())
	assert.Contains(t, m.Diagnostics.Errors[0].Suggestions, "Name")
	assert.Equal(t, "specs[0].validate", m.Diagnostics.Errors[1].Field)
}

func TestModel_Conflicts(t *testing.T) {
	pkg := contractPackage(t)

	f, err := spec.Parse([]byte(`
package: contract
specs:
  - custom: Name
    inner: string
    error: "*NameError"
    validate: validateName
`), "contract.slices.yaml")
	require.NoError(t, err)

	m, err := Build(f, Config{Package: pkg})
	require.NoError(t, err)

	err = m.Conflicts(f, pkg, []byte("package contract\n\nfunc (s Name) Len() int { return len(s) }\n"))
	require.NoError(t, err)

	err = m.Conflicts(f, pkg, []byte("package contract\n\nfunc (s Name) String() string { return string(s) }\n"))
	require.ErrorIs(t, err, spec.ErrInvalidSpec)
	require.Len(t, m.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeMethodConflict, m.Diagnostics.Errors[0].Code)
	assert.Equal(t, "Name", m.Diagnostics.Errors[0].Spec)
}
