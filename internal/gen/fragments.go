package gen

import (
	"strconv"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"quote":   strconv.Quote,
	"equal":   equalExpr,
	"compare": compareBody,
}

// equalExpr renders a byte-wise equality test of a and b.
func equalExpr(std, bytes bool, a, b string) string {
	if std && bytes {
		return "bytes.Equal([]byte(" + a + "), []byte(" + b + "))"
	}

	return "string(" + a + ") == string(" + b + ")"
}

// compareBody renders a function body returning the three-way comparison of
// a and b. Below std the builtin operators are used directly.
func compareBody(std, bytes bool, a, b string) string {
	switch {
	case std && bytes:
		return "return bytes.Compare([]byte(" + a + "), []byte(" + b + "))"
	case std:
		return "return cmp.Compare(string(" + a + "), string(" + b + "))"
	}

	lt := "string(" + a + ") < string(" + b + ")"
	gt := "string(" + a + ") > string(" + b + ")"

	return strings.Join([]string{
		"switch {",
		"case " + lt + ":",
		"return -1",
		"case " + gt + ":",
		"return 1",
		"}",
		"",
		"return 0",
	}, "\n")
}

// fragments holds one named template per family plus the gate, the file
// wrapper and the test file. Family templates are named after the family.
var fragments = template.Must(template.New("fragments").Funcs(funcs).Parse(fileTemplate +
	gateTemplate + constructTemplate + accessTemplate + compareTemplate +
	formatTemplate + sequenceTemplate + codecTemplate + testTemplate))

const fileTemplate = `
{{define "file"}}// Code generated by slicegen from {{.SpecFile}}. DO NOT EDIT.

// Profile: {{.Profile}}.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{.Body}}
{{- if .Quote}}
// {{.Quote}} returns s as a double-quoted Go string literal.
func {{.Quote}}(s string) string {
	const hex = "0123456789abcdef"

	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '"' || c == '\\':
			buf = append(buf, '\\', c)
		case c == '\n':
			buf = append(buf, '\\', 'n')
		case c == '\t':
			buf = append(buf, '\\', 't')
		case c < 0x20 || c >= 0x7f:
			buf = append(buf, '\\', 'x', hex[c>>4], hex[c&0xf])
		default:
			buf = append(buf, c)
		}
	}

	return string(append(buf, '"'))
}
{{end}}
{{- end}}
`

const gateTemplate = `
{{define "gate"}}
// {{.Gate}} runs {{.Validate}} on v. Every construction path of {{.C}} goes through it.
func {{.Gate}}(v {{.I}}) error {
	if err := {{.Validate}}(v); err != nil {
		return err
	}

	return nil
}
{{with .Owned}}
// {{.Gate}} validates the contents of an owned {{.O}} buffer.
func {{.Gate}}(b []byte) error {
{{- if .Validate}}
	if err := {{.Validate}}(b); err != nil {
		return err
	}

	return nil
{{- else}}
	return {{$.Gate}}({{if $.Bytes}}b{{else}}string(b){{end}})
{{- end}}
}
{{end}}
{{- end}}
`

const constructTemplate = `
{{define "validate"}}
// Validate re-runs {{.Validate}} on s. Values built by conversion or through
// the unchecked constructor may fail it.
func (s {{.C}}) Validate() error {
	return {{.Gate}}({{.I}}(s))
}
{{with .Owned}}
// Validate re-runs the owned gate on o.
func (o {{.O}}) Validate() error {
	return {{.Gate}}([]byte(o))
}
{{end}}
{{- end}}

{{define "tryfrom"}}
// New{{.C}} validates v and returns it as a {{.C}} without copying.
// On failure it returns the zero {{.C}} and the error from {{.Validate}} unchanged.
func New{{.C}}(v {{.I}}) ({{.C}}, error) {
	if err := {{.Gate}}(v); err != nil {
		return {{.Zero}}, err
	}

	return {{.C}}(v), nil
}
{{with .Owned}}
// New{{.O}} validates b and takes ownership of it. The caller must not use b
// afterwards.
func New{{.O}}(b []byte) ({{.O}}, error) {
	if err := {{.Gate}}(b); err != nil {
		return nil, err
	}

	return {{.O}}(b), nil
}

// New{{.O}}FromInner validates v and copies it into a fresh {{.O}}.
func New{{.O}}FromInner(v {{$.I}}) ({{.O}}, error) {
	b := make([]byte, len(v))
	copy(b, v)

	return New{{.O}}(b)
}
{{end}}
{{- end}}

{{define "convert"}}
// New{{.C}}From validates any value whose underlying type is {{.I}}.
func New{{.C}}From[S ~{{.I}}](v S) ({{.C}}, error) {
	return New{{.C}}({{.I}}(v))
}

// {{.C}}To converts s to any type whose underlying type is {{.I}}.
func {{.C}}To[T ~{{.I}}](s {{.C}}) T {
	return T(s)
}
{{with .Owned}}
// New{{.O}}From validates any byte slice type and takes ownership of it.
func New{{.O}}From[B ~[]byte](b B) ({{.O}}, error) {
	return New{{.O}}([]byte(b))
}
{{end}}
{{- end}}

{{define "unchecked"}}
// {{.C}}Unchecked converts v to {{.C}} without running {{.Validate}}.
// The caller guarantees that v is valid.
func {{.C}}Unchecked(v {{.I}}) {{.C}} {
	return {{.C}}(v)
}
{{with .Owned}}
// {{.O}}Unchecked wraps b without validation. The caller guarantees that b is
// valid and hands over ownership.
func {{.O}}Unchecked(b []byte) {{.O}} {
	return {{.O}}(b)
}
{{end}}
{{- end}}
`

const accessTemplate = `
{{define "borrow"}}
// Inner returns the {{.I}} held by s without copying.
func (s {{.C}}) Inner() {{.I}} {
	return {{.I}}(s)
}
{{with .Owned}}
// Borrow returns the contents of o as a {{$.C}}.
{{- if $.Bytes}} The result shares o's buffer.
{{- else}} The result is a copy{{if $.Has.view}}; View avoids it{{end}}.{{end}}
func (o {{.O}}) Borrow() {{$.C}} {
	return {{$.C}}(o)
}

// Inner returns the buffer held by o without copying.
func (o {{.O}}) Inner() []byte {
	return []byte(o)
}
{{end}}
{{- end}}

{{define "into"}}{{with .Owned}}
// ToOwned copies s into a freshly allocated {{.O}}.
func (s {{$.C}}) ToOwned() {{.O}} {
	o := make({{.O}}, len(s))
	copy(o, s)

	return o
}

// IntoInner returns the buffer held by o, transferring ownership to the caller.
func (o {{.O}}) IntoInner() []byte {
	return []byte(o)
}

// Clone returns a deep copy of o.
func (o {{.O}}) Clone() {{.O}} {
	if o == nil {
		return nil
	}

	c := make({{.O}}, len(o))
	copy(c, o)

	return c
}
{{end}}
{{- end}}

{{define "view"}}{{with .Owned}}
// View returns the contents of o as a {{$.C}} without copying.
// o must not be modified while the view is in use.
func (o {{.O}}) View() {{$.C}} {
	if len(o) == 0 {
		return ""
	}

	return {{$.C}}(unsafe.String(unsafe.SliceData([]byte(o)), len(o)))
}
{{end}}
{{- end}}

{{define "default"}}
// Default{{.C}} returns the declared default value {{.Default}}. It does not
// run {{.Validate}}: the default is checked against the check expression when
// generating and, with tests enabled, against {{.Validate}} by the generated
// tests.
func Default{{.C}}() {{.C}} {
	return {{.C}}({{.Default}})
}
{{with .Owned}}
// Default{{.O}} returns the declared default value in a fresh buffer.
func Default{{.O}}() {{.O}} {
	return {{.O}}({{$.Default}})
}
{{end}}
{{- end}}
`

const compareTemplate = `
{{define "eq"}}
// Equal reports whether s and t hold the same bytes.
func (s {{.C}}) Equal(t {{.C}}) bool {
	return {{equal .Std .Bytes "s" "t"}}
}

// EqualInner reports whether s holds the same bytes as v.
func (s {{.C}}) EqualInner(v {{.I}}) bool {
	return {{equal .Std .Bytes "s" "v"}}
}
{{with .Owned}}
// EqualOwned reports whether s holds the same bytes as o.
func (s {{$.C}}) EqualOwned(o {{.O}}) bool {
	return {{equal $.Std $.Bytes "s" "o"}}
}

// Equal reports whether o and p hold the same bytes.
func (o {{.O}}) Equal(p {{.O}}) bool {
	return {{equal $.Std $.Bytes "o" "p"}}
}

// EqualCustom reports whether o holds the same bytes as s.
func (o {{.O}}) EqualCustom(s {{$.C}}) bool {
	return {{equal $.Std $.Bytes "o" "s"}}
}

// EqualInner reports whether o holds the same bytes as v.
func (o {{.O}}) EqualInner(v {{$.I}}) bool {
	return {{equal $.Std $.Bytes "o" "v"}}
}
{{end}}
{{- end}}

{{define "ord"}}
// Compare compares s and t byte-wise and returns -1, 0 or +1.
func (s {{.C}}) Compare(t {{.C}}) int {
	{{compare .Std .Bytes "s" "t"}}
}

// CompareInner compares s with v byte-wise.
func (s {{.C}}) CompareInner(v {{.I}}) int {
	{{compare .Std .Bytes "s" "v"}}
}

// Less reports whether s sorts before t.
func (s {{.C}}) Less(t {{.C}}) bool {
	return s.Compare(t) < 0
}
{{with .Owned}}
// CompareOwned compares s with o byte-wise.
func (s {{$.C}}) CompareOwned(o {{.O}}) int {
	{{compare $.Std $.Bytes "s" "o"}}
}

// Compare compares o and p byte-wise and returns -1, 0 or +1.
func (o {{.O}}) Compare(p {{.O}}) int {
	{{compare $.Std $.Bytes "o" "p"}}
}

// CompareCustom compares o with s byte-wise.
func (o {{.O}}) CompareCustom(s {{$.C}}) int {
	{{compare $.Std $.Bytes "o" "s"}}
}

// CompareInner compares o with v byte-wise.
func (o {{.O}}) CompareInner(v {{$.I}}) int {
	{{compare $.Std $.Bytes "o" "v"}}
}

// Less reports whether o sorts before p.
func (o {{.O}}) Less(p {{.O}}) bool {
	return o.Compare(p) < 0
}
{{end}}
{{- end}}

{{define "hash"}}
// Hash writes the bytes of s to h. Values that are Equal write the same
// bytes, whichever form they take.
func (s {{.C}}) Hash(h *maphash.Hash) {
{{- if .Bytes}}
	_, _ = h.Write([]byte(s))
{{- else}}
	_, _ = h.WriteString(string(s))
{{- end}}
}

// Sum64 returns the hash of s under seed.
func (s {{.C}}) Sum64(seed maphash.Seed) uint64 {
{{- if .Bytes}}
	return maphash.Bytes(seed, []byte(s))
{{- else}}
	return maphash.String(seed, string(s))
{{- end}}
}
{{with .Owned}}
// Hash writes the bytes of o to h.
func (o {{.O}}) Hash(h *maphash.Hash) {
	_, _ = h.Write([]byte(o))
}

// Sum64 returns the hash of o under seed.
func (o {{.O}}) Sum64(seed maphash.Seed) uint64 {
	return maphash.Bytes(seed, []byte(o))
}
{{end}}
{{- end}}
`

const formatTemplate = `
{{define "display"}}
// String returns the contents of s.
func (s {{.C}}) String() string {
	return string(s)
}
{{with .Owned}}
// String returns the contents of o.
func (o {{.O}}) String() string {
	return string(o)
}
{{end}}
{{- end}}

{{define "debug"}}
{{- if .Degraded}}
// GoString returns s as a Go conversion expression.
func (s {{.C}}) GoString() string {
	return "{{.C}}(" + {{.Quote}}(string(s)) + ")"
}
{{with .Owned}}
// GoString returns o as a Go conversion expression.
func (o {{.O}}) GoString() string {
	return "{{.O}}(" + {{$.Quote}}(string(o)) + ")"
}
{{end}}
{{- else}}
{{- if .Bytes}}
// Format formats s as text for the v, s and q verbs and as a []byte
// otherwise, passing verbs and flags through.
func (s {{.C}}) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's', 'q':
		fmt.Fprintf(f, fmt.FormatString(f, verb), string(s))
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), []byte(s))
	}
}
{{with .Owned}}
// Format formats o like {{$.C}}.Format.
func (o {{.O}}) Format(f fmt.State, verb rune) {
	{{$.C}}(o).Format(f, verb)
}
{{end}}
{{- else}}
// Format formats s as a {{.I}}, passing verbs and flags through.
func (s {{.C}}) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), {{.I}}(s))
}
{{with .Owned}}
// Format formats o as a {{$.I}}, passing verbs and flags through.
func (o {{.O}}) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), {{$.I}}(o))
}
{{end}}
{{- end}}
{{- end}}
{{- end}}
`

const sequenceTemplate = `
{{define "slice"}}
// Slice returns s[i:j] after revalidating it. It panics if the indices are
// out of range, exactly like s[i:j].
func (s {{.C}}) Slice(i, j int) ({{.C}}, error) {
	v := s[i:j]
	if err := {{.Gate}}({{.I}}(v)); err != nil {
		return {{.Zero}}, err
	}

	return v, nil
}

// SliceFrom returns s[i:] after revalidating it.
func (s {{.C}}) SliceFrom(i int) ({{.C}}, error) {
	return s.Slice(i, len(s))
}

// SliceTo returns s[:j] after revalidating it.
func (s {{.C}}) SliceTo(j int) ({{.C}}, error) {
	return s.Slice(0, j)
}
{{with .Owned}}
// Slice returns o[i:j] as a {{$.C}} after revalidating it. It panics if the
// indices are out of range.
func (o {{.O}}) Slice(i, j int) ({{$.C}}, error) {
	v := {{$.C}}(o[i:j])
	if err := {{$.Gate}}({{$.I}}(v)); err != nil {
		return {{$.Zero}}, err
	}

	return v, nil
}
{{end}}
{{- end}}

{{define "index"}}
// Len returns the length of s in bytes.
func (s {{.C}}) Len() int {
	return len(s)
}

// IsEmpty reports whether s has no bytes.
func (s {{.C}}) IsEmpty() bool {
	return len(s) == 0
}

// At returns the byte at index i. It panics if i is out of range.
func (s {{.C}}) At(i int) byte {
	return s[i]
}
{{with .Owned}}
// Len returns the length of o in bytes.
func (o {{.O}}) Len() int {
	return len(o)
}

// IsEmpty reports whether o has no bytes.
func (o {{.O}}) IsEmpty() bool {
	return len(o) == 0
}

// At returns the byte at index i. It panics if i is out of range.
func (o {{.O}}) At(i int) byte {
	return o[i]
}
{{end}}
{{- end}}

{{define "concat"}}
// Concat returns s followed by t after revalidating the result.
func (s {{.C}}) Concat(t {{.C}}) ({{.C}}, error) {
	return Concat{{.C}}(s, t)
}

// Concat{{.C}} joins parts into a fresh value and revalidates it.
func Concat{{.C}}(parts ...{{.C}}) ({{.C}}, error) {
	n := 0
	for _, p := range parts {
		n += len(p)
	}

	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p...)
	}

	v := {{.I}}(buf)
	if err := {{.Gate}}(v); err != nil {
		return {{.Zero}}, err
	}

	return {{.C}}(v), nil
}
{{with .Owned}}
// Append appends s to o and revalidates the result. On failure o is unchanged.
func (o *{{.O}}) Append(s {{$.C}}) error {
	return o.AppendInner({{$.I}}(s))
}

// AppendInner appends v to o and revalidates the result. On failure o is
// unchanged.
func (o *{{.O}}) AppendInner(v {{$.I}}) error {
	next := append(*o, v...)
	if err := {{.Gate}}([]byte(next)); err != nil {
		return err
	}

	*o = next

	return nil
}
{{end}}
{{- end}}
`

const codecTemplate = `
{{define "text"}}
// MarshalText implements encoding.TextMarshaler.
func (s {{.C}}) MarshalText() ([]byte, error) {
{{- if .Bytes}}
	return append([]byte(nil), s...), nil
{{- else}}
	return []byte(s), nil
{{- end}}
}

// UnmarshalText implements encoding.TextUnmarshaler. text is copied and
// validated; on failure s is unchanged.
func (s *{{.C}}) UnmarshalText(text []byte) error {
{{- if .Bytes}}
	v := make([]byte, len(text))
	copy(v, text)
{{- else}}
	v := string(text)
{{- end}}

	if err := {{.Gate}}(v); err != nil {
		return err
	}

	*s = {{.C}}(v)

	return nil
}
{{with .Owned}}
// MarshalText implements encoding.TextMarshaler.
func (o {{.O}}) MarshalText() ([]byte, error) {
	return append([]byte(nil), o...), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. text is copied and
// validated; on failure o is unchanged.
func (o *{{.O}}) UnmarshalText(text []byte) error {
	b := make([]byte, len(text))
	copy(b, text)

	if err := {{.Gate}}(b); err != nil {
		return err
	}

	*o = b

	return nil
}
{{end}}
{{- end}}

{{define "sql"}}
// Value implements driver.Valuer.
func (s {{.C}}) Value() (driver.Value, error) {
	return {{.I}}(s), nil
}

// Scan implements sql.Scanner for string and []byte columns.
func (s *{{.C}}) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("{{.C}}: cannot scan %T", src)
	}
}
{{with .Owned}}
// Value implements driver.Valuer.
func (o {{.O}}) Value() (driver.Value, error) {
	return {{$.I}}(o), nil
}

// Scan implements sql.Scanner for string and []byte columns.
func (o *{{.O}}) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return o.UnmarshalText([]byte(v))
	case []byte:
		return o.UnmarshalText(v)
	default:
		return fmt.Errorf("{{.O}}: cannot scan %T", src)
	}
}
{{end}}
{{- end}}
`

const testTemplate = `
{{define "testfile"}}// Code generated by slicegen from {{.SpecFile}}. DO NOT EDIT.

package {{.PackageName}}

import "testing"
{{.Body}}
{{- end}}

{{define "tests"}}
{{- if .Accept}}
func TestSlicegen{{.C}}Accept(t *testing.T) {
	for _, raw := range []string{ {{- range .Accept}}{{quote .}}, {{end -}} } {
		v := {{.I}}(raw)
		if err := {{.Gate}}(v); err != nil {
			t.Errorf("%q: unexpected error: %v", raw, err)
			continue
		}
{{- if .Has.tryfrom}}

		s, err := New{{.C}}(v)
		if err != nil {
			t.Errorf("New{{.C}}(%q): %v", raw, err)
			continue
		}


		if string(s) != raw {
			t.Errorf("New{{.C}}(%q) = %q", raw, s)
		}
{{- if .Has.borrow}}

		if string(s.Inner()) != raw {
			t.Errorf("New{{.C}}(%q).Inner() = %q", raw, s.Inner())
		}
{{- end}}
{{- if .Has.validate}}

		if err := s.Validate(); err != nil {
			t.Errorf("%q: Validate after construction: %v", raw, err)
		}
{{- end}}
{{- if .Has.slice}}

		if _, err := s.Slice(0, len(s)); err != nil {
			t.Errorf("%q: full slice rejected: %v", raw, err)
		}
{{- end}}
{{- with .Owned}}

		if _, err := New{{.O}}FromInner(v); err != nil {
			t.Errorf("New{{.O}}FromInner(%q): %v", raw, err)
		}
{{- end}}
{{- end}}
	}
}
{{end}}
{{- if .Reject}}
func TestSlicegen{{.C}}Reject(t *testing.T) {
	for _, raw := range []string{ {{- range .Reject}}{{quote .}}, {{end -}} } {
		if err := {{.Gate}}({{.I}}(raw)); err == nil {
			t.Errorf("%q: accepted", raw)
		}
{{- if .Has.tryfrom}}

		s, err := New{{.C}}({{.I}}(raw))
		if err == nil {
			t.Errorf("New{{.C}}(%q): expected an error", raw)
		}

		if len(s) != 0 {
			t.Errorf("New{{.C}}(%q) returned non-zero value %q", raw, s)
		}
{{- end}}
	}
}
{{end}}
{{- if and .Accept .Has.concat}}
func TestSlicegen{{.C}}Concat(t *testing.T) {
	parts := []{{.C}}{ {{- range .Accept}}{{$.C}}({{quote .}}), {{end -}} }

	var joined []byte
	for _, p := range parts {
		joined = append(joined, p...)
	}

	_, err := Concat{{.C}}(parts...)
	if want := {{.Gate}}({{.I}}(joined)); (err == nil) != (want == nil) {
		t.Errorf("Concat{{.C}} returned %v, gate returned %v", err, want)
	}
}
{{end}}
{{- if .Default}}
func TestSlicegen{{.C}}Default(t *testing.T) {
	if err := {{.Gate}}({{.I}}({{.Default}})); err != nil {
		t.Errorf("default rejected: %v", err)
	}
{{- with .Owned}}

	if err := {{.Gate}}([]byte({{$.Default}})); err != nil {
		t.Errorf("default rejected by the owned gate: %v", err)
	}
{{- end}}
{{- if .Has.default}}

	if got := string(Default{{.C}}()); got != {{.Default}} {
		t.Errorf("Default{{.C}}() = %q", got)
	}
{{- end}}
}
{{end}}
{{- end}}
`
