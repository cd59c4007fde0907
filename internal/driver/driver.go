// Package driver runs the slicegen pipeline over a set of spec files:
// load, analyse the target package, plan, render and write or compare.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"slicegen/internal/analyze"
	"slicegen/internal/catalog"
	"slicegen/internal/gen"
	"slicegen/internal/plan"
	"slicegen/internal/spec"
)

// Options configures one driver.
type Options struct {
	// Profile overrides every spec file's profile when set.
	Profile catalog.Profile
	// FallbackProfile applies to spec files that declare no profile.
	FallbackProfile catalog.Profile
	// Suffix names outputs of spec files without an output key.
	Suffix string
	// Pattern is the discovery glob for directory arguments.
	Pattern string
	// SkipTypes disables loading the target packages.
	SkipTypes bool
	// Debug writes unformatted sidecars when formatting fails.
	Debug bool
}

// Result is the outcome for one spec file.
type Result struct {
	// Spec is the spec file path.
	Spec string
	// Model is nil only when the file could not be read or parsed.
	Model *plan.Model
	// Files are the rendered outputs, empty when planning failed.
	Files []gen.GeneratedFile
	// Written lists the files whose content changed on disk.
	Written []string
	// PackageErrors are type errors in the analysed package, outside the
	// generated files.
	PackageErrors []string
}

// Drift is a generated file whose content differs from the file on disk.
type Drift struct {
	Path      string
	OnDisk    []byte
	Generated []byte
}

// Driver runs the pipeline.
type Driver struct {
	opts Options
	gen  *gen.Generator
}

// New creates a Driver.
func New(opts Options) *Driver {
	return &Driver{
		opts: opts,
		gen:  gen.NewGenerator(gen.GeneratorConfig{Debug: opts.Debug}),
	}
}

// Discover expands args into spec file paths.
func (d *Driver) Discover(args ...string) ([]string, error) {
	return spec.Discover(d.opts.Pattern, args...)
}

// Plan loads and plans each spec file without rendering.
func (d *Driver) Plan(ctx context.Context, paths []string) ([]Result, error) {
	return d.run(ctx, paths, false)
}

// Render plans and renders each spec file in memory.
func (d *Driver) Render(ctx context.Context, paths []string) ([]Result, error) {
	return d.run(ctx, paths, true)
}

// Generate renders each spec file and writes the outputs that changed.
// Spec files that fail do not stop the others; the returned error joins
// every failure.
func (d *Driver) Generate(ctx context.Context, paths []string) ([]Result, error) {
	results, err := d.Render(ctx, paths)

	var errs []error
	if err != nil {
		errs = append(errs, err)
	}

	for i := range results {
		r := &results[i]
		if len(r.Files) == 0 {
			continue
		}

		written, werr := gen.WriteFiles(r.Files)
		r.Written = written

		if werr != nil {
			errs = append(errs, werr)
		}
	}

	return results, errors.Join(errs...)
}

// Check renders each spec file in memory and compares the outputs with the
// files on disk. A missing file counts as drift.
func (d *Driver) Check(ctx context.Context, paths []string) ([]Result, []Drift, error) {
	results, err := d.Render(ctx, paths)

	var drifts []Drift

	for _, r := range results {
		for _, f := range r.Files {
			onDisk, rerr := os.ReadFile(f.Path)
			if rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
				err = errors.Join(err, fmt.Errorf("failed to read %s: %w", f.Path, rerr))
				continue
			}

			if rerr != nil || !bytes.Equal(onDisk, f.Content) {
				drifts = append(drifts, Drift{Path: f.Path, OnDisk: onDisk, Generated: f.Content})
			}
		}
	}

	return results, drifts, err
}

func (d *Driver) run(ctx context.Context, paths []string, render bool) ([]Result, error) {
	files := make([]*spec.File, len(paths))
	results := make([]Result, 0, len(paths))

	var errs []error

	for i, path := range paths {
		f, err := spec.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		files[i] = f
	}

	// one analyzer per run, so watch sees fresh sources
	analyzer := analyze.NewAnalyzer()
	hidden := d.hiddenByDir(files)

	for i, f := range files {
		if f == nil {
			results = append(results, Result{Spec: paths[i]})
			continue
		}

		if err := ctx.Err(); err != nil {
			return results, errors.Join(append(errs, err)...)
		}

		r, err := d.one(ctx, analyzer, hidden, f, render)
		results = append(results, r)

		if err != nil {
			errs = append(errs, err)
		}
	}

	return results, errors.Join(errs...)
}

func (d *Driver) one(ctx context.Context, a *analyze.Analyzer, hidden map[string][]string, f *spec.File, render bool) (Result, error) {
	r := Result{Spec: f.Path}

	cfg := plan.Config{
		Profile:         d.opts.Profile,
		FallbackProfile: d.opts.FallbackProfile,
		Suffix:          d.opts.Suffix,
	}

	if !d.opts.SkipTypes {
		dir := filepath.Dir(f.Path)

		pkg, err := a.LoadDir(ctx, dir, hidden[dir]...)
		if err != nil {
			return r, fmt.Errorf("failed to analyse package for %s: %w", f.Path, err)
		}

		cfg.Package = pkg
		r.PackageErrors = pkg.Errors
	}

	m, err := plan.Build(f, cfg)
	r.Model = m

	if err != nil || !render {
		return r, err
	}

	files, err := d.gen.Generate(m)
	if err != nil {
		return r, err
	}

	if cfg.Package != nil {
		if err := m.Conflicts(f, cfg.Package, files[0].Content); err != nil {
			return r, err
		}
	}

	r.Files = files

	return r, nil
}

// hiddenByDir lists, per directory, every output the run may produce, so
// that no spec file's previous output takes part in analysis.
func (d *Driver) hiddenByDir(files []*spec.File) map[string][]string {
	res := map[string][]string{}

	for _, f := range files {
		if f == nil {
			continue
		}

		dir := filepath.Dir(f.Path)
		out := f.OutputPath(d.opts.Suffix)

		if abs, err := filepath.Abs(out); err == nil {
			out = abs
		}

		res[dir] = append(res[dir], out, spec.TestOutputPath(out))
	}

	return res
}
