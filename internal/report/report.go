// Package report prints diagnostics, plans and drift for humans.
//
// Colour is used only when the destination is a terminal and not disabled.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"slicegen/internal/catalog"
	"slicegen/internal/diagnostic"
)

// Printer writes reports to w.
type Printer struct {
	w io.Writer

	errC, warnC, infoC, codeC, addC, delC, dimC *color.Color
}

// NewPrinter creates a Printer. Colour is enabled when w is a terminal and
// noColor is false.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:     w,
		errC:  color.New(color.FgRed, color.Bold),
		warnC: color.New(color.FgYellow, color.Bold),
		infoC: color.New(color.FgCyan),
		codeC: color.New(color.Faint),
		addC:  color.New(color.FgGreen),
		delC:  color.New(color.FgRed),
		dimC:  color.New(color.Faint),
	}

	enabled := !noColor && IsTerminal(w)

	for _, c := range []*color.Color{p.errC, p.warnC, p.infoC, p.codeC, p.addC, p.delC, p.dimC} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Diagnostics prints every diagnostic in d, infos only when verbose.
func (p *Printer) Diagnostics(d *diagnostic.Diagnostics, verbose bool) {
	for _, diag := range d.All() {
		if diag.Severity == diagnostic.DiagnosticInfo && !verbose {
			continue
		}

		p.diagnostic(diag)
	}
}

func (p *Printer) diagnostic(d diagnostic.Diagnostic) {
	var b strings.Builder

	if pos := d.Position(); pos != "" {
		b.WriteString(pos)
		b.WriteString(": ")
	}

	switch d.Severity {
	case diagnostic.DiagnosticError:
		b.WriteString(p.errC.Sprint("error"))
	case diagnostic.DiagnosticWarning:
		b.WriteString(p.warnC.Sprint("warning"))
	default:
		b.WriteString(p.infoC.Sprint("info"))
	}

	b.WriteString(": ")

	if d.Spec != "" {
		b.WriteString("[" + d.Spec + "] ")
	}

	if d.Field != "" {
		b.WriteString(d.Field + ": ")
	}

	b.WriteString(d.Message)

	if d.Code != "" {
		b.WriteString(" " + p.codeC.Sprintf("[%s]", d.Code))
	}

	if hint := d.Hint(); hint != "" {
		b.WriteString("\n\t" + hint)
	}

	fmt.Fprintln(p.w, b.String())
}

// Families prints the family catalogue as a support matrix over profiles.
func (p *Printer) Families() error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)

	header := []string{"FAMILY"}
	for _, name := range catalog.ProfileNames() {
		header = append(header, strings.ToUpper(name))
	}

	header = append(header, "NEEDS", "SUMMARY")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, f := range catalog.Families() {
		r := catalog.RuleOf(f)
		row := []string{f.String()}

		for _, name := range catalog.ProfileNames() {
			prof, _ := catalog.ParseProfile(name)
			row = append(row, catalog.SupportOf(f, prof).String())
		}

		row = append(row, needs(r), r.Summary)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

func needs(r catalog.Rule) string {
	var res []string

	if r.NeedsOwned {
		res = append(res, "owned")
	}

	if r.NeedsDefault {
		res = append(res, "default")
	}

	if r.StringOnly {
		res = append(res, "string")
	}

	if r.BytesMin > r.Min {
		res = append(res, "bytes:"+r.BytesMin.String())
	}

	for _, f := range r.Requires {
		res = append(res, f.String())
	}

	if len(res) == 0 {
		return "-"
	}

	return strings.Join(res, ",")
}

// Drift prints a line diff between the file on disk and the regenerated
// content. It returns false when both are identical.
func (p *Printer) Drift(path string, onDisk, regenerated []byte) bool {
	if string(onDisk) == string(regenerated) {
		return false
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(onDisk), string(regenerated))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	fmt.Fprintln(p.w, p.delC.Sprint("--- "+path+" (on disk)"))
	fmt.Fprintln(p.w, p.addC.Sprint("+++ "+path+" (generated)"))

	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintln(p.w, p.delC.Sprint("-"+line))
			case diffmatchpatch.DiffInsert:
				fmt.Fprintln(p.w, p.addC.Sprint("+"+line))
			case diffmatchpatch.DiffEqual:
				fmt.Fprintln(p.w, p.dimC.Sprint(" "+line))
			}
		}
	}

	return true
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}
