package main

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// usage tests are copied next to the generated code of each example.
var usage = map[string]string{
	"ascii": `package ascii

import (
	"errors"
	"fmt"
	"hash/maphash"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	s, err := NewAsciiStr("hello")
	if err != nil || s.String() != "hello" {
		t.Fatalf("NewAsciiStr(hello) = %q, %v", s, err)
	}

	_, err = NewAsciiStr("h\xe9llo")
	var ae *AsciiError
	if !errors.As(err, &ae) || ae.ValidUpTo != 1 {
		t.Fatalf("NewAsciiStr(h\\xe9llo) error = %v", err)
	}

	joined, err := AsciiStr("he").Concat(AsciiStr("llo"))
	if err != nil || !joined.Equal(s) {
		t.Fatalf("Concat = %q, %v", joined, err)
	}

	buf := s.ToOwned()
	if err := buf.Append(AsciiStr("!")); err != nil {
		t.Fatal(err)
	}
	if err := buf.AppendInner("\xe9"); err == nil {
		t.Fatal("AppendInner accepted a non-ascii byte")
	}
	if buf.String() != "hello!" {
		t.Fatalf("failed AppendInner changed the buffer to %q", buf)
	}
	if got := fmt.Sprintf("%v|%q|%#v|%5.3s", buf, buf, buf.View(), s); got != "hello!|\"hello!\"|\"hello!\"|  hel" {
		t.Fatalf("formatting = %s", got)
	}
	if s.Compare(buf.Borrow()) >= 0 || !s.Less(buf.Borrow()) {
		t.Fatal("hello must sort before hello!")
	}
}

func TestUsageHash(t *testing.T) {
	seed := maphash.MakeSeed()
	s := AsciiStr("hello")
	buf := s.ToOwned()

	if s.Sum64(seed) != buf.Sum64(seed) {
		t.Fatal("Sum64 differs between borrowed and owned forms")
	}

	var hs, hb maphash.Hash
	hs.SetSeed(seed)
	hb.SetSeed(seed)
	s.Hash(&hs)
	buf.Hash(&hb)
	if hs.Sum64() != hb.Sum64() {
		t.Fatal("Hash differs between borrowed and owned forms")
	}

	if s.Sum64(seed) == AsciiStr("hellp").Sum64(seed) {
		t.Fatal("different values hash alike")
	}
}

func TestUsageText(t *testing.T) {
	s := AsciiStr("keep")
	if err := s.UnmarshalText([]byte("h\xe9llo")); err == nil || s != "keep" {
		t.Fatalf("UnmarshalText = %q, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("next")); err != nil || s != "next" {
		t.Fatalf("UnmarshalText = %q, %v", s, err)
	}

	buf := AsciiBuf("keep")
	if err := buf.UnmarshalText([]byte("\xff")); err == nil || string(buf) != "keep" {
		t.Fatalf("owned UnmarshalText = %q, %v", buf, err)
	}

	text, err := s.MarshalText()
	if err != nil || string(text) != "next" {
		t.Fatalf("MarshalText = %q, %v", text, err)
	}
}

func TestUsageSQL(t *testing.T) {
	var s AsciiStr
	if err := s.Scan([]byte("row")); err != nil || s != "row" {
		t.Fatalf("Scan([]byte) = %q, %v", s, err)
	}
	if err := s.Scan("col"); err != nil || s != "col" {
		t.Fatalf("Scan(string) = %q, %v", s, err)
	}

	var ae *AsciiError
	if err := s.Scan("h\xe9llo"); !errors.As(err, &ae) || s != "col" {
		t.Fatalf("Scan(invalid) = %q, %v", s, err)
	}
	if err := s.Scan(42); err == nil || !strings.Contains(err.Error(), "cannot scan int") || s != "col" {
		t.Fatalf("Scan(42) = %q, %v", s, err)
	}

	var buf AsciiBuf
	if err := buf.Scan(nil); err == nil {
		t.Fatal("owned Scan accepted nil")
	}

	v, err := s.Value()
	if err != nil || v != "col" {
		t.Fatalf("Value = %v, %v", v, err)
	}
}
`,
	"digest": `package digest

import (
	"errors"
	"fmt"
	"hash/maphash"
	"testing"
)

func TestUsage(t *testing.T) {
	d, err := NewDigest([]byte("deadbeef"))
	if err != nil {
		t.Fatal(err)
	}

	if got := fmt.Sprint(d); got != d.String() {
		t.Fatalf("Sprint = %q, String = %q", got, d.String())
	}

	buf := d.ToOwned()
	if got := fmt.Sprint(buf); got != buf.String() || got != "deadbeef" {
		t.Fatalf("owned Sprint = %q", got)
	}

	z := DefaultDigest()
	if got := fmt.Sprintf("%v|%s|%q|%x|%d", z, z, z, z, z); got != "00|00|\"00\"|3030|[48 48]" {
		t.Fatalf("formatting = %s", got)
	}

	seed := maphash.MakeSeed()
	if d.Sum64(seed) != buf.Sum64(seed) {
		t.Fatal("Sum64 differs between borrowed and owned forms")
	}

	if _, err := d.SliceFrom(1); !errors.Is(err, ErrDigest) {
		t.Fatalf("odd-length cut error = %v", err)
	}

	if err := buf.AppendInner([]byte("0")); !errors.Is(err, ErrDigest) || buf.String() != "deadbeef" {
		t.Fatalf("AppendInner = %q, %v", buf, err)
	}
}
`,
	"label": `package label

import (
	"errors"
	"fmt"
	"testing"
)

func TestUsage(t *testing.T) {
	l, err := NewLabel("a-b")
	if err != nil {
		t.Fatal(err)
	}

	if got := l.GoString(); got != ` + "`" + `Label("a-b")` + "`" + ` {
		t.Fatalf("GoString = %s", got)
	}
	if got := fmt.Sprintf("%#v", LabelUnchecked("a\"\n\xff")); got != ` + "`" + `Label("a\"\n\xff")` + "`" + ` {
		t.Fatalf("GoString of an unchecked value = %s", got)
	}

	cuts := map[string]func() (Label, error){
		"Slice":     func() (Label, error) { return l.Slice(0, 2) },
		"SliceFrom": func() (Label, error) { return l.SliceFrom(1) },
		"SliceTo":   func() (Label, error) { return l.SliceTo(0) },
	}
	for name, cut := range cuts {
		if got, err := cut(); !errors.Is(err, ErrLabel) || got != "" {
			t.Errorf("%s = %q, %v", name, got, err)
		}
	}

	if got, err := l.SliceTo(1); err != nil || got != "a" {
		t.Fatalf("SliceTo(1) = %q, %v", got, err)
	}

	if DefaultLabel() != "main" || string(DefaultLabelBuf()) != "main" {
		t.Fatal("unexpected default")
	}
}

func TestUsageOwnedGate(t *testing.T) {
	_, err := NewLabel("-x")
	var be *LabelBufError
	if errors.As(err, &be) || !errors.Is(err, ErrLabel) {
		t.Fatalf("NewLabel error = %v", err)
	}

	_, err = NewLabelBuf([]byte("-x"))
	if !errors.As(err, &be) || !errors.Is(err, ErrLabel) {
		t.Fatalf("NewLabelBuf error = %v", err)
	}

	buf := Label("a-b").ToOwned()
	if err := buf.Append(Label("c")); err != nil {
		t.Fatal(err)
	}
	if err := buf.AppendInner("-"); !errors.As(err, &be) || string(buf) != "a-bc" {
		t.Fatalf("AppendInner = %q, %v", buf, err)
	}

	if got := buf.GoString(); got != ` + "`" + `LabelBuf("a-bc")` + "`" + ` {
		t.Fatalf("owned GoString = %s", got)
	}
	if buf.View() != "a-bc" || !buf.EqualCustom("a-bc") {
		t.Fatalf("View = %q", buf.View())
	}
}
`,
	"token": `package token

import "testing"

func TestUsage(t *testing.T) {
	tok, err := NewToken([]byte("a-1"))
	if err != nil || tok.Len() != 3 || tok.At(1) != '-' {
		t.Fatalf("NewToken = %q, %v", tok, err)
	}

	if _, err := tok.Slice(1, 2); err != nil {
		t.Fatalf("Slice(1, 2): %v", err)
	}

	if _, err := tok.Slice(0, 0); err != ErrToken {
		t.Fatalf("empty slice error = %v", err)
	}

	if !tok.EqualInner([]byte("a-1")) || tok.Compare(Token("b")) >= 0 {
		t.Fatal("unexpected comparison")
	}
}
`,
}

// TestExamples builds the CLI, generates every example in a scratch module
// and runs the example tests against the generated code.
func TestExamples(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the CLI and runs go test")
	}

	bin := filepath.Join(t.TempDir(), "slicegen")
	run(t, ".", "go", "build", "-o", bin, ".")

	entries, err := os.ReadDir("../../examples")
	require.NoError(t, err)

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		t.Run(e.Name(), func(t *testing.T) {
			dir := t.TempDir()
			copyExample(t, filepath.Join("../../examples", e.Name()), dir)

			if src, ok := usage[e.Name()]; ok {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "usage_test.go"), []byte(src), 0o644))
			}

			run(t, dir, bin, "gen")
			run(t, dir, bin, "check")
			run(t, dir, "go", "vet", "./...")
			run(t, dir, "go", "test", "./...")
		})
	}
}

func copyExample(t *testing.T, from, to string) {
	t.Helper()

	err := filepath.WalkDir(from, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		return os.WriteFile(filepath.Join(to, d.Name()), data, 0o644)
	})
	require.NoError(t, err)

	mod := "module example.com/" + filepath.Base(from) + "\n\ngo 1.24\n"
	require.NoError(t, os.WriteFile(filepath.Join(to, "go.mod"), []byte(mod), 0o644))
}

func run(t *testing.T, dir, name string, args ...string) {
	t.Helper()

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "SLICEGEN_NO_COLOR=1")

	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "%s %s:\n%s", name, strings.Join(args, " "), out)
}
