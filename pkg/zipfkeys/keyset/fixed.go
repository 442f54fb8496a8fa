package keyset

import (
	"fmt"
	"math"

	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/unique"
)

// fixed32 is rng4: distinct uniformly random 4 byte keys.
type fixed32 struct{}

func (fixed32) Generate(r *rng.Rand, count int, _ Options) (zipfkeys.KeySet, error) {
	vals, err := unique.Fixed[uint32](r, count, 0, func(r *rng.Rand) uint32 { return r.Uint32() })
	if err != nil {
		return nil, err
	}
	return encodeUint32(vals), nil
}

func (fixed32) Description() string {
	return "Distinct random 32-bit integers, 4 byte big-endian"
}

// fixed64 is rng8: distinct uniformly random 8 byte keys.
type fixed64 struct{}

func (fixed64) Generate(r *rng.Rand, count int, _ Options) (zipfkeys.KeySet, error) {
	vals, err := unique.Fixed[uint64](r, count, 0, func(r *rng.Rand) uint64 { return r.Uint64() })
	if err != nil {
		return nil, err
	}
	return encodeUint64(vals), nil
}

func (fixed64) Description() string {
	return "Distinct random 64-bit integers, 8 byte big-endian"
}

// dense is int: count keys drawn without replacement from [0, count/density).
type dense struct{}

func (dense) Generate(r *rng.Rand, count int, opts Options) (zipfkeys.KeySet, error) {
	generated := math.Round(float64(count) / opts.Density)
	if generated >= opts.intCeiling() {
		return nil, keyspaceError(count, opts.Density, generated, opts.intCeiling())
	}
	vals := pool.Iota(uint32(generated))
	pool.Shuffle(r, vals)
	return encodeUint32(vals[:count]), nil
}

func (dense) Description() string {
	return "Dense integers from a keyspace count/density wide, shuffled, 4 byte big-endian"
}

func keyspaceError(count int, density, generated, ceiling float64) error {
	return fmt.Errorf("%w: %d keys at density %v need %.0f values, ceiling %.0f",
		zipfkeys.ErrKeyspaceTooLarge, count, density, generated, ceiling)
}
