package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"slicegen/internal/driver"
	"slicegen/internal/report"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ctx, stop := signalContext()
	defer stop()

	d := driver.New(cfg.driverOptions())
	paths, err := d.Discover(args...)
	if err != nil {
		return err
	}
	results, drifts, err := d.Check(ctx, paths)
	reportResults(cfg.MainConfig, results)
	return reportDrift(report.NewPrinter(cc.Out, cfg.NoColor), drifts, err)
}

// reportDrift prints every drift, including those found next to failing
// spec files, then maps the outcome to an exit status.
func reportDrift(p *report.Printer, drifts []driver.Drift, err error) error {
	for _, drift := range drifts {
		p.Drift(drift.Path, drift.OnDisk, drift.Generated)
	}
	if len(drifts) > 0 {
		fmt.Fprintf(os.Stderr, "%d generated file(s) out of date; run slicegen gen\n", len(drifts))
	}
	if err != nil {
		return exitErr(err)
	}
	if len(drifts) > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
