package gen

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slicegen/internal/diagnostic"
	"slicegen/internal/plan"
	"slicegen/internal/spec"
)

const userTypes = `package ascii

type AsciiStr string

type AsciiBuf []byte

type AsciiBytes []byte

type AsciiError struct {
	At int
}

func (e *AsciiError) Error() string {
	return "non-ascii byte"
}

func validateASCII(s string) *AsciiError {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return &AsciiError{At: i}
		}
	}

	return nil
}

func validateASCIIBytes(b []byte) error {
	for i, c := range b {
		if c >= 0x80 {
			return &AsciiError{At: i}
		}
	}

	return nil
}
`

const stringSpec = `
package: ascii
profile: %s
tests: true
specs:
  - custom: AsciiStr
    inner: string
    error: "*AsciiError"
    validate: validateASCII
    check: isASCII(s)
    default: "hello"
%s
    samples:
      accept: ["hello", ""]
      reject: ["h\xe9llo"]
`

const bytesSpec = `
package: ascii
profile: %s
tests: true
specs:
  - custom: AsciiBytes
    inner: "[]byte"
    error: error
    validate: validateASCIIBytes
    check: isASCII(s)
%s
    samples:
      accept: ["hello"]
      reject: ["h\xe9llo"]
`

const ownedBlock = `    owned:
      custom: AsciiBuf`

func model(t *testing.T, yaml string) *plan.Model {
	t.Helper()

	f, err := spec.Parse([]byte(yaml), filepath.Join(t.TempDir(), "ascii.slices.yaml"))
	require.NoError(t, err)

	m, err := plan.Build(f, plan.Config{})
	require.NoError(t, err, "%v", m.Diagnostics.Error())

	return m
}

func generate(t *testing.T, yaml string) (*plan.Model, []GeneratedFile) {
	t.Helper()

	m := model(t, yaml)

	files, err := NewGenerator(GeneratorConfig{}).Generate(m)
	require.NoError(t, err)

	return m, files
}

// typeCheck type-checks the user declarations together with files.
func typeCheck(t *testing.T, files ...GeneratedFile) *types.Package {
	t.Helper()

	fset := token.NewFileSet()

	user, err := parser.ParseFile(fset, "types.go", userTypes, 0)
	require.NoError(t, err)

	parsed := []*ast.File{user}

	for _, f := range files {
		pf, err := parser.ParseFile(fset, f.Path, f.Content, 0)
		require.NoError(t, err, string(f.Content))

		parsed = append(parsed, pf)
	}

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}

	pkg, err := conf.Check("ascii", fset, parsed, nil)
	require.NoError(t, err, "%s", files[0].Content)

	return pkg
}

func methodSet(pkg *types.Package, name string) []string {
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil
	}

	mset := types.NewMethodSet(types.NewPointer(obj.Type()))

	var res []string
	for i := range mset.Len() {
		res = append(res, mset.At(i).Obj().Name())
	}

	sort.Strings(res)

	return res
}

func TestGenerate_TypeChecksUnderEveryProfile(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"string core", fmt.Sprintf(stringSpec, "core", "")},
		{"string alloc", fmt.Sprintf(stringSpec, "alloc", ownedBlock)},
		{"string std", fmt.Sprintf(stringSpec, "std", ownedBlock)},
		{"bytes core", fmt.Sprintf(bytesSpec, "core", "")},
		{"bytes alloc", fmt.Sprintf(bytesSpec, "alloc", ownedBlock+"\n      validate: validateASCIIBytes")},
		{"bytes std", fmt.Sprintf(bytesSpec, "std", ownedBlock)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, files := generate(t, tt.yaml)
			require.Len(t, files, 2)

			typeCheck(t, files...)
		})
	}
}

func TestGenerate_StdMethodSets(t *testing.T) {
	_, files := generate(t, fmt.Sprintf(stringSpec, "std", ownedBlock))
	pkg := typeCheck(t, files[0])

	assert.Equal(t, []string{
		"At", "Compare", "CompareInner", "CompareOwned", "Concat", "Equal", "EqualInner", "EqualOwned",
		"Format", "Hash", "Inner", "IsEmpty", "Len", "Less", "MarshalText", "Scan", "Slice", "SliceFrom",
		"SliceTo", "String", "Sum64", "ToOwned", "UnmarshalText", "Validate", "Value",
	}, methodSet(pkg, "AsciiStr"))

	assert.Equal(t, []string{
		"Append", "AppendInner", "At", "Borrow", "Clone", "Compare", "CompareCustom", "CompareInner",
		"Equal", "EqualCustom", "EqualInner", "Format", "Hash", "Inner", "IntoInner", "IsEmpty", "Len",
		"Less", "MarshalText", "Scan", "Slice", "String", "Sum64", "UnmarshalText", "Validate", "Value", "View",
	}, methodSet(pkg, "AsciiBuf"))

	for _, fn := range []string{
		"NewAsciiStr", "NewAsciiStrFrom", "AsciiStrTo", "AsciiStrUnchecked", "DefaultAsciiStr", "ConcatAsciiStr",
		"NewAsciiBuf", "NewAsciiBufFromInner", "NewAsciiBufFrom", "AsciiBufUnchecked", "DefaultAsciiBuf",
		"checkAsciiStr", "checkAsciiBuf",
	} {
		assert.NotNil(t, pkg.Scope().Lookup(fn), fn)
	}
}

func TestGenerate_CoreOmitsAllocatingAndStdFamilies(t *testing.T) {
	m, files := generate(t, fmt.Sprintf(stringSpec, "core", ""))
	pkg := typeCheck(t, files[0])

	content := string(files[0].Content)

	assert.Empty(t, m.Imports())
	assert.NotContains(t, content, "import")
	assert.NotContains(t, content, "Concat")
	assert.NotContains(t, content, "Hash")
	assert.NotContains(t, content, "GoString")
	assert.NotContains(t, content, "Format(")
	assert.Contains(t, content, "case string(s) < string(t):")

	assert.NotContains(t, methodSet(pkg, "AsciiStr"), "MarshalText")
	assert.Contains(t, methodSet(pkg, "AsciiStr"), "Compare")
}

func TestGenerate_AllocDegradesDebug(t *testing.T) {
	_, files := generate(t, fmt.Sprintf(stringSpec, "alloc", ownedBlock))
	pkg := typeCheck(t, files[0])

	content := string(files[0].Content)

	assert.Contains(t, content, `"unsafe"`)
	assert.Contains(t, content, "unsafe.String(unsafe.SliceData([]byte(o)), len(o))")
	assert.Contains(t, content, "func quoteAsciiStr(s string) string")
	assert.Contains(t, methodSet(pkg, "AsciiStr"), "GoString")
	assert.NotContains(t, methodSet(pkg, "AsciiStr"), "Format")
	assert.Contains(t, methodSet(pkg, "AsciiBuf"), "Append")
}

func TestGenerate_StdBytesUsesBytesPackage(t *testing.T) {
	_, files := generate(t, fmt.Sprintf(bytesSpec, "std", ""))
	typeCheck(t, files[0])

	content := string(files[0].Content)

	assert.Contains(t, content, "bytes.Equal([]byte(s), []byte(t))")
	assert.Contains(t, content, "bytes.Compare([]byte(s), []byte(t))")
	assert.Contains(t, content, "maphash.Bytes(seed, []byte(s))")
	assert.Contains(t, content, "case 'v', 's', 'q':\n\t\tfmt.Fprintf(f, fmt.FormatString(f, verb), string(s))")
}

func TestGenerate_StdBytesOwnedFormatsAsText(t *testing.T) {
	_, files := generate(t, fmt.Sprintf(bytesSpec, "std", ownedBlock))
	pkg := typeCheck(t, files...)

	content := string(files[0].Content)

	assert.Contains(t, content, "AsciiBytes(o).Format(f, verb)")
	assert.Contains(t, methodSet(pkg, "AsciiBuf"), "Format")
	assert.Contains(t, methodSet(pkg, "AsciiBytes"), "String")
}

func TestGenerate_Deterministic(t *testing.T) {
	yaml := fmt.Sprintf(stringSpec, "std", ownedBlock)

	_, first := generate(t, yaml)
	_, second := generate(t, yaml)

	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, string(first[i].Content), string(second[i].Content))
	}
}

func TestGenerate_FamilyOrderIndependent(t *testing.T) {
	const tmpl = `
package: ascii
specs:
  - custom: AsciiStr
    inner: string
    error: "*AsciiError"
    validate: validateASCII
    families: [%s]
`

	_, a := generate(t, fmt.Sprintf(tmpl, "sql, ord, eq, display"))
	_, b := generate(t, fmt.Sprintf(tmpl, "display, eq, ord, sql"))

	assert.Equal(t, string(a[0].Content), string(b[0].Content))

	pkg := typeCheck(t, a[0])
	assert.Equal(t, []string{
		"Compare", "CompareInner", "Equal", "EqualInner", "Less", "MarshalText", "Scan", "String",
		"UnmarshalText", "Value",
	}, methodSet(pkg, "AsciiStr"))
}

func TestGenerate_HeaderAndPaths(t *testing.T) {
	m, files := generate(t, fmt.Sprintf(stringSpec, "std", ""))

	assert.Equal(t, m.Output, files[0].Path)
	assert.Equal(t, "ascii_slicegen.go", filepath.Base(files[0].Path))
	assert.Equal(t, "ascii_slicegen_test.go", filepath.Base(files[1].Path))

	for _, f := range files {
		pf, err := parser.ParseFile(token.NewFileSet(), f.Path, f.Content, parser.ParseComments)
		require.NoError(t, err)
		assert.True(t, ast.IsGenerated(pf), f.Path)
		assert.Equal(t, "ascii", pf.Name.Name)
	}

	tests := string(files[1].Content)
	assert.Contains(t, tests, "func TestSlicegenAsciiStrAccept(t *testing.T)")
	assert.Contains(t, tests, "func TestSlicegenAsciiStrReject(t *testing.T)")
	assert.Contains(t, tests, "func TestSlicegenAsciiStrConcat(t *testing.T)")
	assert.Contains(t, tests, "func TestSlicegenAsciiStrDefault(t *testing.T)")
	assert.Contains(t, tests, `"héllo"`)
}

func TestGenerate_SkipsEmptyTestFile(t *testing.T) {
	m, files := generate(t, `
package: ascii
tests: true
specs:
  - custom: AsciiStr
    inner: string
    error: "*AsciiError"
    validate: validateASCII
    check: isASCII(s)
    families: [eq]
`)
	assert.NotEmpty(t, m.TestOutput)
	require.Len(t, files, 1, "no samples and no default, so nothing is tested")
}

func TestGenerate_DeclaredDefaultIsAlwaysTested(t *testing.T) {
	_, files := generate(t, `
package: ascii
tests: true
specs:
  - custom: AsciiStr
    inner: string
    error: "*AsciiError"
    validate: validateASCII
    check: isASCII(s)
    default: "x"
    families: [eq]
`)
	require.Len(t, files, 2)
	typeCheck(t, files...)

	tests := string(files[1].Content)
	assert.Contains(t, tests, "func TestSlicegenAsciiStrDefault(t *testing.T)")
	assert.Contains(t, tests, `checkAsciiStr(string("x"))`)
	assert.NotContains(t, tests, "DefaultAsciiStr()", "the default family is not planned")

	_, files = generate(t, fmt.Sprintf(stringSpec, "std", ownedBlock))
	tests = string(files[1].Content)
	assert.Contains(t, tests, `checkAsciiBuf([]byte("hello"))`)
	assert.Contains(t, tests, `string(DefaultAsciiStr()); got != "hello"`)
}

func TestGenerate_RejectsModelWithErrors(t *testing.T) {
	m := &plan.Model{SpecFile: "broken.slices.yaml"}
	m.Diagnostics.AddError("x", "broken", diagnostic.Location{File: m.SpecFile})

	_, err := NewGenerator(GeneratorConfig{}).Generate(m)
	require.ErrorIs(t, err, ErrInvalidModel)
}
