package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"slicegen/internal/common"
)

// Diagnostics holds all diagnostic information from one run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Location pins a diagnostic to a spec entry.
type Location struct {
	// File is the spec file path.
	File string
	// Line is the 1-based YAML line, 0 when unknown.
	Line int
	// Spec is the spec name (custom type) this relates to, if any.
	Spec string
	// Field is the field path, e.g. "specs[0].owned.custom".
	Field string
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Location

	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, at Location, suggestions ...string) {
	d.Errors = append(d.Errors, Diagnostic{
		Location:    at,
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, at Location, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Location:    at,
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, at Location) {
	d.Infos = append(d.Infos, Diagnostic{
		Location: at,
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Codes returns the codes of all error diagnostics in insertion order.
func (d *Diagnostics) Codes() []string {
	res := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		res = append(res, e.Code)
	}

	return res
}

// All returns every diagnostic ordered by file, line and severity (errors first).
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.File, b.File),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(b.Severity, a.Severity),
		)
	})

	return all
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Position returns "file:line", "file" or "" depending on what is known.
func (l Location) Position() string {
	switch {
	case l.File == "":
		return ""
	case l.Line > 0:
		return l.File + ":" + strconv.Itoa(l.Line)
	default:
		return l.File
	}
}

// String returns a formatted diagnostic string:
// "file:line: [spec] field: [code] message (did you mean ...?)".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Spec != "" {
		prefix = append(prefix, "["+d.Spec+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if hint := d.Hint(); hint != "" {
		msg += " (" + hint + ")"
	}

	if len(prefix) > 0 {
		msg = strings.Join(prefix, " ") + ": " + msg
	}

	if pos := d.Position(); pos != "" {
		msg = pos + ": " + msg
	}

	return msg
}

// Hint renders the suggestions as a "did you mean" phrase.
func (d Diagnostic) Hint() string {
	switch len(d.Suggestions) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("did you mean %q?", d.Suggestions[0])
	default:
		quoted := make([]string, 0, len(d.Suggestions))
		for _, s := range d.Suggestions {
			quoted = append(quoted, strconv.Quote(s))
		}

		return "did you mean one of " + strings.Join(quoted, ", ") + "?"
	}
}
