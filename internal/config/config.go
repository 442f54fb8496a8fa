// Package config loads workload profiles for the zipfkeys command.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/keyset"
)

// Config is a workload profile. Command-line flags override its fields.
type Config struct {
	Stream   Stream   `toml:"stream"`
	Keys     Keys     `toml:"keys"`
	Requests Requests `toml:"requests"`
	Run      Run      `toml:"run"`
}

// Stream selects the seeded stream everything is drawn from.
type Stream struct {
	Seed    uint64 `toml:"seed"`
	Thread  uint64 `toml:"thread"`
	Purpose string `toml:"purpose"`
}

// Keys configures the key set.
type Keys struct {
	Strategy       string  `toml:"strategy"`
	Count          uint32  `toml:"count"`
	Density        float64 `toml:"density"`
	Partitions     uint32  `toml:"partitions"`
	MaxIntKeyspace float64 `toml:"max_int_keyspace"`
}

// Requests configures the Zipfian request index stream.
type Requests struct {
	Count uint64  `toml:"count"`
	Skew  float64 `toml:"skew"`
}

// Run holds execution settings.
type Run struct {
	// Workers sizes the worker pool; 0 means GOMAXPROCS.
	Workers int    `toml:"workers"`
	Output  string `toml:"output"`
	Debug   bool   `toml:"debug"`
}

// Default returns a small skewed workload.
func Default() Config {
	opts := keyset.DefaultOptions()
	return Config{
		Stream: Stream{Purpose: "load"},
		Keys: Keys{
			Strategy:       "rng8",
			Count:          1_000_000,
			Density:        opts.Density,
			Partitions:     opts.Partitions,
			MaxIntKeyspace: opts.MaxIntKeyspace,
		},
		Requests: Requests{
			Count: 10_000_000,
			Skew:  0.99,
		},
		Run: Run{Output: "var/workload.db"},
	}
}

// Load reads a profile over the defaults. Unknown keys are an error so a
// misspelled setting does not silently fall back to its default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load profile %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks the profile before any generation starts.
func (c Config) Validate() error {
	var errs []error
	if _, err := keyset.Parse(c.Keys.Strategy); err != nil {
		errs = append(errs, err)
	}
	if err := c.KeysetOptions().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Keys.Count == 0 && c.Requests.Count > 0 {
		errs = append(errs, errors.New("requests need at least one key"))
	}
	if c.Run.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Run.Workers))
	}
	if c.Run.Output == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	return errors.Join(errs...)
}

// KeysetOptions returns the strategy options of the profile.
func (c Config) KeysetOptions() keyset.Options {
	return keyset.Options{
		Density:        c.Keys.Density,
		Partitions:     c.Keys.Partitions,
		MaxIntKeyspace: c.Keys.MaxIntKeyspace,
	}
}
