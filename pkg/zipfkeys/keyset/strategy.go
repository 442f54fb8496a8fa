// Package keyset generates key sets by named strategy.
package keyset

import (
	"fmt"
	"sort"
	"strings"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

const (
	// DefaultMaxIntKeyspace bounds the integer range the int strategy may
	// materialize.
	DefaultMaxIntKeyspace = 4.0e9

	// MinDensity and MaxDensity bound Options.Density.
	MinDensity = 0.05
	MaxDensity = 1.0

	maxUint32Keyspace = 1 << 32
)

// Options carries the per-call strategy parameters.
type Options struct {
	// Density is the ratio of requested keys to the integer keyspace of
	// the int strategy. It is validated for every strategy.
	Density float64
	// Partitions is the number of id counters of partitioned_id.
	Partitions uint32
	// MaxIntKeyspace caps round(count/Density) for the int strategy.
	// Zero means DefaultMaxIntKeyspace.
	MaxIntKeyspace float64
}

// DefaultOptions returns dense, single-partition options.
func DefaultOptions() Options {
	return Options{
		Density:        1.0,
		Partitions:     1,
		MaxIntKeyspace: DefaultMaxIntKeyspace,
	}
}

// Validate checks the parameters every strategy shares.
func (o Options) Validate() error {
	if !(o.Density >= MinDensity && o.Density <= MaxDensity) {
		return fmt.Errorf("%w: %v", zipfkeys.ErrInvalidDensity, o.Density)
	}
	if o.MaxIntKeyspace < 0 || o.MaxIntKeyspace > maxUint32Keyspace {
		return fmt.Errorf("%w: ceiling %v must be within [0, 2^32]",
			zipfkeys.ErrKeyspaceTooLarge, o.MaxIntKeyspace)
	}
	return nil
}

func (o Options) intCeiling() float64 {
	if o.MaxIntKeyspace == 0 {
		return DefaultMaxIntKeyspace
	}
	return o.MaxIntKeyspace
}

// Strategy produces key sets of an exact length.
type Strategy interface {
	// Generate returns exactly count keys drawn from r.
	Generate(r *rng.Rand, count int, opts Options) (zipfkeys.KeySet, error)

	// Description returns a human-readable description of the key shape
	Description() string
}

// Registry maps plain strategy names to factories.
var Registry = map[string]func() Strategy{
	"rng4":           func() Strategy { return fixed32{} },
	"rng8":           func() Strategy { return fixed64{} },
	"int":            func() Strategy { return dense{} },
	"partitioned_id": func() Strategy { return partitioned{} },
	"test":           func() Strategy { return synthetic{} },
	"long1":          func() Strategy { return long{random: false} },
	"long2":          func() Strategy { return long{random: true} },
}

// PathRegistry maps "<prefix>:<path>" strategy prefixes to factories.
var PathRegistry = map[string]func(path string) Strategy{
	"file": func(path string) Strategy { return corpus{path: path} },
	"mix":  func(path string) Strategy { return mix{dir: path} },
}

// Parse resolves a strategy name such as "rng8" or "file:/data/wiki".
func Parse(name string) (Strategy, error) {
	if factory, ok := Registry[name]; ok {
		return factory(), nil
	}
	prefix, path, found := strings.Cut(name, ":")
	if !found {
		return nil, fmt.Errorf("%w: %q", zipfkeys.ErrUnknownStrategy, name)
	}
	factory, ok := PathRegistry[prefix]
	if !ok {
		return nil, fmt.Errorf("%w: %q", zipfkeys.ErrUnknownStrategy, name)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: %q has an empty path", zipfkeys.ErrMalformedStrategy, name)
	}
	return factory(path), nil
}

// List returns all strategy names, path strategies as "<prefix>:<path>".
func List() []string {
	names := make([]string, 0, len(Registry)+len(PathRegistry))
	for name := range Registry {
		names = append(names, name)
	}
	for prefix := range PathRegistry {
		names = append(names, prefix+":<path>")
	}
	sort.Strings(names)
	return names
}

// Describe returns the description of a registered strategy name.
func Describe(name string) (string, error) {
	if prefix, ok := strings.CutSuffix(name, ":<path>"); ok {
		name = prefix + ":_"
	}
	s, err := Parse(name)
	if err != nil {
		return "", err
	}
	return s.Description(), nil
}

// Load generates count keys with the named strategy. It returns no partial
// result on error.
func Load(r *rng.Rand, name string, count uint32, opts Options) (zipfkeys.KeySet, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s, err := Parse(name)
	if err != nil {
		return nil, err
	}
	keys, err := s.Generate(r, int(count), opts)
	if err != nil {
		return nil, fmt.Errorf("generate %s keys: %w", name, err)
	}
	if len(keys) != int(count) {
		panic(fmt.Sprintf("keyset: strategy %s returned %d keys, want %d", name, len(keys), count))
	}
	return keys, nil
}
