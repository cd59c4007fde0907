package main

import (
	"fmt"
	"os"
	"time"

	"github.com/scott-cotton/cli"

	"slicegen/internal/catalog"
	"slicegen/internal/config"
	"slicegen/internal/driver"
	"slicegen/internal/report"
)

type MainConfig struct {
	Suffix    string `cli:"name=suffix desc='generated file suffix (default _slicegen.go)'"`
	Pattern   string `cli:"name=pattern desc='spec file glob for directory arguments'"`
	SkipTypes bool   `cli:"name=skip-types desc='do not load the target package'"`
	Debug     bool   `cli:"name=debug desc='debug logging and unformatted output sidecars'"`
	NoColor   bool   `cli:"name=no-color desc='disable coloured diagnostics'"`
	Verbose   bool   `cli:"name=v desc='also print info diagnostics'"`

	// Profile overrides the profile of every spec file.
	Profile catalog.Profile
	// Env is read from SLICEGEN_* variables before any command runs.
	Env config.Config

	Main *cli.Command
}

func (cfg *MainConfig) profileOpt(_ *cli.Context, v string) (any, error) {
	p, err := catalog.ParseProfile(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	cfg.Profile = p

	return p, nil
}

// merge fills settings not given as flags from the environment.
func (cfg *MainConfig) merge(env config.Config) {
	cfg.Env = env

	if cfg.Suffix == "" {
		cfg.Suffix = env.Suffix
	}

	if cfg.Pattern == "" {
		cfg.Pattern = env.Pattern
	}

	cfg.SkipTypes = cfg.SkipTypes || env.SkipTypes
	cfg.Debug = cfg.Debug || env.Debug
	cfg.NoColor = cfg.NoColor || env.NoColor
}

func (cfg *MainConfig) driverOptions() driver.Options {
	return driver.Options{
		Profile:         cfg.Profile,
		FallbackProfile: cfg.Env.Profile,
		Suffix:          cfg.Suffix,
		Pattern:         cfg.Pattern,
		SkipTypes:       cfg.SkipTypes,
		Debug:           cfg.Debug,
	}
}

func (cfg *MainConfig) diagnostics() *report.Printer {
	return report.NewPrinter(os.Stderr, cfg.NoColor)
}

type GenConfig struct {
	*MainConfig

	Gen *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type PlanConfig struct {
	*MainConfig
	Dump bool `cli:"name=dump desc='dump the full model instead of a summary'"`

	Plan *cli.Command
}

type FamiliesConfig struct {
	*MainConfig

	Families *cli.Command
}

type WatchConfig struct {
	*MainConfig
	Debounce time.Duration

	Watch *cli.Command
}

func (cfg *WatchConfig) mkDebounce() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Debounce = d
		return d, nil
	}
}
