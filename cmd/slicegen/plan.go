package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"slicegen/internal/driver"
)

func planSpecs(cfg *PlanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Plan.Parse(cc, args)
	if err != nil {
		cfg.Plan.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ctx, stop := signalContext()
	defer stop()

	d := driver.New(cfg.driverOptions())
	paths, err := d.Discover(args...)
	if err != nil {
		return err
	}
	results, err := d.Plan(ctx, paths)
	reportResults(cfg.MainConfig, results)
	for _, r := range results {
		if r.Model == nil || r.Model.Diagnostics.HasErrors() {
			continue
		}
		if cfg.Dump {
			driver.Dump(cc.Out, r.Model)
			continue
		}
		fmt.Fprint(cc.Out, r.Model.Summary())
	}
	return exitErr(err)
}
