package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"slicegen/internal/report"
)

func families(cfg *FamiliesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Families.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: families takes no arguments, got %v", cli.ErrUsage, args)
	}
	return report.NewPrinter(cc.Out, cfg.NoColor).Families()
}
