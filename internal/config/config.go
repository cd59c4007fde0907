// Package config loads slicegen settings from the environment.
//
// Variables use the SLICEGEN_ prefix. An optional .slicegen.env file in the
// working directory is read first; variables already set in the process
// environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"slicegen/internal/catalog"
	"slicegen/internal/spec"
)

const (
	// Prefix is prepended to every variable name.
	Prefix = "SLICEGEN_"
	// EnvFile is the optional dotenv file read by Load.
	EnvFile = ".slicegen.env"
)

// ErrParsingConfig is returned when environment variables cannot be parsed.
var ErrParsingConfig = errors.New("failed to parse slicegen environment")

// Config holds settings shared by all commands. CLI flags override it.
type Config struct {
	// Profile is the fallback profile for spec files that declare none.
	Profile catalog.Profile `env:"PROFILE"`
	// Suffix names generated files: <spec stem><Suffix>.
	Suffix string `env:"SUFFIX"`
	// Pattern is the doublestar glob used when no spec files are given.
	Pattern string `env:"PATTERN"`
	// SkipTypes disables loading the target package.
	SkipTypes bool `env:"SKIP_TYPES"`
	// Debug enables debug logging and unformatted output sidecars.
	Debug bool `env:"DEBUG"`
	// NoColor disables coloured diagnostics.
	NoColor bool `env:"NO_COLOR"`
	// Debounce is how long watch waits for events to settle.
	Debounce time.Duration `env:"DEBOUNCE"`
}

// Default returns the configuration used when the environment is empty.
// Variables that are set override its fields.
func Default() Config {
	return Config{
		Suffix:   spec.DefaultSuffix,
		Pattern:  spec.DefaultPattern,
		Debounce: 200 * time.Millisecond,
	}
}

// Load reads EnvFile, if present, and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading %s: %w", EnvFile, err)
	}

	return parse(env.Options{Prefix: Prefix})
}

// FromMap reads the configuration from vars instead of the process
// environment. Keys carry the SLICEGEN_ prefix.
func FromMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	return cfg, nil
}
