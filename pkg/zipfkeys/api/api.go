// Package api is the flat call surface of the engine for hosts that drive
// it operation by operation.
//
// Handles are ordinary Go values owned by the caller. A *rng.Rand must not
// be used by two calls at once; a *zipf.Permutation may be shared. Returned
// slices belong to the caller and are never touched by the engine again.
// There is no release call: memory is reclaimed by the garbage collector,
// or with the process, which is how benchmark drivers use the engine.
package api

import (
	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/fill"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/keyset"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/zipf"
)

// CreateStream returns the stream for (seed, thread, purpose).
func CreateStream(seed, thread uint64, purpose string) *rng.Rand {
	pool.Default()
	return rng.New(seed, thread, purpose)
}

// LoadKeySet generates count keys with the named strategy.
func LoadKeySet(r *rng.Rand, strategy string, count uint32, density float64, partitions uint32) (zipfkeys.KeySet, error) {
	pool.Default()
	opts := keyset.DefaultOptions()
	opts.Density = density
	opts.Partitions = partitions
	return keyset.Load(r, strategy, count, opts)
}

// GenerateZipfIndices draws count indices in [0, keyCount) in parallel.
func GenerateZipfIndices(r *rng.Rand, keyCount uint32, skew float64, count uint64) ([]uint32, error) {
	pool.Default()
	return zipf.Generate(r, keyCount, skew, count)
}

// CreateZipfPermutation builds a reusable sampler for SampleZipfSingle.
func CreateZipfPermutation(r *rng.Rand, keyCount uint32, skew float64) (*zipf.Permutation, error) {
	pool.Default()
	return zipf.NewPermutation(r, keyCount, skew)
}

// SampleZipfSingle draws count indices from dist on the calling goroutine.
func SampleZipfSingle(r *rng.Rand, dist *zipf.Permutation, count uint64) ([]uint32, error) {
	pool.Default()
	return dist.Sample(r, count)
}

// FillRandom overwrites buf with random values.
func FillRandom(r *rng.Rand, buf []uint64) {
	pool.Default()
	fill.Random(r, buf)
}

// FillRandomRange overwrites buf with values uniform over [lo, hi].
func FillRandomRange(r *rng.Rand, buf []uint64, lo, hi uint64) error {
	pool.Default()
	return fill.Range(r, buf, lo, hi)
}

// Hash is a stable mixing hash for host-side use.
func Hash(x uint64) uint64 {
	return rng.Hash(x)
}
