package main

import (
	"context"

	"github.com/scott-cotton/cli"

	"slicegen/internal/driver"
	"slicegen/internal/watch"
)

func watchDirs(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		cfg.Watch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = cfg.Env.Debounce
	}
	ctx, stop := signalContext()
	defer stop()

	d := driver.New(cfg.driverOptions())
	run := func(ctx context.Context, specs []string) error {
		results, err := d.Generate(ctx, specs)
		reportResults(cfg.MainConfig, results)
		for _, r := range results {
			for _, path := range r.Written {
				theLog.Info("wrote", "path", path)
			}
		}
		return err
	}

	w, err := watch.New(watch.Config{
		Roots:    args,
		Pattern:  cfg.Pattern,
		Suffix:   cfg.Suffix,
		Debounce: cfg.Debounce,
	}, run, theLog)
	if err != nil {
		return err
	}
	theLog.Info("watching", "roots", args, "debounce", cfg.Debounce)
	return w.Run(ctx)
}
