package main

import (
	"github.com/scott-cotton/cli"

	"slicegen/internal/driver"
)

func gen(cfg *GenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Gen.Parse(cc, args)
	if err != nil {
		cfg.Gen.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ctx, stop := signalContext()
	defer stop()

	d := driver.New(cfg.driverOptions())
	paths, err := d.Discover(args...)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		theLog.Warn("no spec files found", "pattern", cfg.Pattern)
		return nil
	}
	results, err := d.Generate(ctx, paths)
	reportResults(cfg.MainConfig, results)
	for _, r := range results {
		for _, path := range r.Written {
			theLog.Info("wrote", "path", path)
		}
	}
	return exitErr(err)
}
