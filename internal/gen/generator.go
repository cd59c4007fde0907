package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"slicegen/internal/catalog"
	"slicegen/internal/plan"
)

// ErrInvalidModel is returned when asked to generate from a model that
// still carries error diagnostics.
var ErrInvalidModel = errors.New("model has errors")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Debug writes unformatted output next to the target when formatting
	// fails.
	Debug bool
}

// Generator renders planned models into Go source.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Path is where the file belongs, next to its spec file.
	Path string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders m. The first file is the main output; a test file
// follows when the model requests one and at least one test applies.
// Rendering the same model twice yields byte-identical files.
func (g *Generator) Generate(m *plan.Model) ([]GeneratedFile, error) {
	if m.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModel, m.SpecFile)
	}

	src, err := g.generateSource(m)
	if err != nil {
		return nil, err
	}

	files := []GeneratedFile{src}

	if m.TestOutput != "" {
		tests, ok, err := g.generateTests(m)
		if err != nil {
			return nil, err
		}

		if ok {
			files = append(files, tests)
		}
	}

	return files, nil
}

func (g *Generator) generateSource(m *plan.Model) (GeneratedFile, error) {
	var body bytes.Buffer

	quote := ""

	for i := range m.Types {
		t := &m.Types[i]
		td := buildTypeData(m, t)

		if err := fragments.ExecuteTemplate(&body, "gate", td); err != nil {
			return GeneratedFile{}, fmt.Errorf("executing gate template for %s: %w", t.Custom, err)
		}

		for _, fp := range t.Families {
			if fp.Support == catalog.Omitted {
				continue
			}

			if fp.Family == catalog.FamilyDebug && fp.Support == catalog.Degraded {
				quote = td.Quote
			}

			err := fragments.ExecuteTemplate(&body, fp.Family.String(), td.forFamily(fp))
			if err != nil {
				return GeneratedFile{}, fmt.Errorf("executing %s template for %s: %w", fp.Family, t.Custom, err)
			}
		}
	}

	data := fileData{
		PackageName: m.Package,
		SpecFile:    filepath.Base(m.SpecFile),
		Profile:     m.Profile.String(),
		Imports:     m.Imports(),
		Body:        body.String(),
		Quote:       quote,
	}

	return g.render(m.Output, "file", data)
}

// generateTests renders the sample test file. ok is false when no type has
// anything to test.
func (g *Generator) generateTests(m *plan.Model) (GeneratedFile, bool, error) {
	var body bytes.Buffer

	for i := range m.Types {
		t := &m.Types[i]

		if err := fragments.ExecuteTemplate(&body, "tests", buildTypeData(m, t)); err != nil {
			return GeneratedFile{}, false, fmt.Errorf("executing tests template for %s: %w", t.Custom, err)
		}
	}

	if strings.TrimSpace(body.String()) == "" {
		return GeneratedFile{}, false, nil
	}

	data := fileData{
		PackageName: m.Package,
		SpecFile:    filepath.Base(m.SpecFile),
		Body:        body.String(),
	}

	file, err := g.render(m.TestOutput, "testfile", data)

	return file, err == nil, err
}

// render executes the named template and formats the result.
func (g *Generator) render(path, name string, data fileData) (GeneratedFile, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.Debug {
			_ = writeDebugUnformatted(path, buf.Bytes())
		}

		return GeneratedFile{Path: path, Content: buf.Bytes()},
			fmt.Errorf("formatting %s: %w", filepath.Base(path), err)
	}

	return GeneratedFile{Path: path, Content: formatted}, nil
}
