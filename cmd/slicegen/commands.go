package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"slicegen/internal/config"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "profile",
		Description: "profile for every spec file: core, alloc or std",
		Type:        cli.NamedFuncOpt(cfg.profileOpt, "(profile)"),
	})

	return cli.NewCommandAt(&cfg.Main, "slicegen").
		WithSynopsis("slicegen [opts] command [opts] [specs]").
		WithDescription("slicegen generates validated slice types from *.slices.yaml spec files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return slicegenMain(cfg, cc, args)
		}).
		WithSubs(
			GenCommand(cfg),
			CheckCommand(cfg),
			PlanCommand(cfg),
			FamiliesCommand(cfg),
			WatchCommand(cfg))
}

func slicegenMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	env, err := config.Load()
	if err != nil {
		return err
	}
	cfg.merge(env)
	setDebug(cfg.Debug)

	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func GenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GenConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Gen, "gen").
		WithAliases("g", "generate").
		WithSynopsis("gen [specs, directories or globs]").
		WithDescription("generate code for spec files").
		WithRun(func(cc *cli.Context, args []string) error {
			return gen(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [specs, directories or globs]").
		WithDescription("report generated files that are out of date, exit 1 on drift").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func PlanCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PlanConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Plan, "plan").
		WithAliases("p").
		WithSynopsis("plan [-dump] [specs, directories or globs]").
		WithDescription("print the resolved profile and families of spec files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return planSpecs(cfg, cc, args)
		})
}

func FamiliesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FamiliesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Families, "families").
		WithAliases("f").
		WithSynopsis("families").
		WithDescription("print the family catalogue and its support under each profile").
		WithRun(func(cc *cli.Context, args []string) error {
			return families(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg}
	debounceOpt := &cli.Opt{
		Name:        "debounce",
		Description: "how long changes must settle before regenerating",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.mkDebounce()), "(duration)"),
	}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [-debounce d] [directories]").
		WithDescription("regenerate when spec files or Go sources change").
		WithOpts(debounceOpt).
		WithRun(func(cc *cli.Context, args []string) error {
			return watchDirs(cfg, cc, args)
		})
}
