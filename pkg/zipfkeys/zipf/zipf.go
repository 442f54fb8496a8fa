// Package zipf draws key indices with a Zipfian popularity skew.
//
// Ranks are mapped through a random permutation of the key indices, so the
// most popular key is a random one rather than index 0. Hash based
// scrambling (as in YCSB) visibly distorts the distribution; a permutation
// does not.
package zipf

import (
	"fmt"

	"go.uber.org/zap"

	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

// ChunkSize is the number of indices one sub-stream fills in bulk mode.
const ChunkSize = 1 << 16

// Permutation is a reusable sampler over [0, keyCount). It is immutable
// after construction and may be shared by readers, but every caller brings
// its own *rng.Rand.
type Permutation struct {
	keyCount uint32
	perm     []uint32
	dist     *rng.Zipf
}

// NewPermutation builds a sampler over keyCount keys. A skew of zero or
// less selects uniform sampling.
func NewPermutation(r *rng.Rand, keyCount uint32, skew float64) (*Permutation, error) {
	if keyCount == 0 {
		return &Permutation{}, nil
	}
	p := &Permutation{keyCount: keyCount}
	if !(skew > 0) {
		return p, nil
	}

	dist, err := rng.NewZipf(uint64(keyCount), skew)
	if err != nil {
		return nil, fmt.Errorf("zipf sampler: %w", err)
	}
	p.dist = dist
	p.perm = pool.Iota(keyCount)
	pool.Shuffle(r, p.perm)

	zipfkeys.Logger().Debug("built zipf permutation",
		zap.Uint32("keys", keyCount),
		zap.Float64("skew", skew))
	return p, nil
}

// KeyCount returns the number of keys sampled over.
func (p *Permutation) KeyCount() uint32 {
	return p.keyCount
}

// Uniform reports whether the sampler ignores popularity.
func (p *Permutation) Uniform() bool {
	return p.dist == nil
}

// Next draws one index.
func (p *Permutation) Next(r *rng.Rand) uint32 {
	if p.dist == nil {
		return r.Uint32N(p.keyCount)
	}
	return p.perm[p.dist.Sample(r)-1]
}

// Fill draws len(dst) indices on the calling goroutine.
func (p *Permutation) Fill(r *rng.Rand, dst []uint32) error {
	if p.keyCount == 0 && len(dst) > 0 {
		return fmt.Errorf("%w: %d samples requested", zipfkeys.ErrEmptyKeySpace, len(dst))
	}
	for i := range dst {
		dst[i] = p.Next(r)
	}
	return nil
}

// Sample returns count fresh indices drawn on the calling goroutine.
func (p *Permutation) Sample(r *rng.Rand, count uint64) ([]uint32, error) {
	if p.keyCount == 0 && count > 0 {
		return nil, fmt.Errorf("%w: %d samples requested", zipfkeys.ErrEmptyKeySpace, count)
	}
	out := make([]uint32, count)
	if err := p.Fill(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// FillParallel fills dst in chunks of ChunkSize, each chunk on its own
// sub-stream of r. The result depends only on r.
func (p *Permutation) FillParallel(r *rng.Rand, dst []uint32) error {
	if p.keyCount == 0 && len(dst) > 0 {
		return fmt.Errorf("%w: %d samples requested", zipfkeys.ErrEmptyKeySpace, len(dst))
	}
	chunks := pool.Chunks(len(dst), ChunkSize)
	streams := r.Take(len(chunks))
	pool.Run(len(chunks), func(c int) {
		st := streams[c]
		for i := chunks[c][0]; i < chunks[c][1]; i++ {
			dst[i] = p.Next(st)
		}
	})
	return nil
}

// Generate builds a fresh sampler and draws count indices in bulk mode.
func Generate(r *rng.Rand, keyCount uint32, skew float64, count uint64) ([]uint32, error) {
	if keyCount == 0 {
		if count > 0 {
			return nil, fmt.Errorf("%w: %d samples requested", zipfkeys.ErrEmptyKeySpace, count)
		}
		return []uint32{}, nil
	}
	p, err := NewPermutation(r, keyCount, skew)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	if err := p.FillParallel(r, out); err != nil {
		return nil, err
	}
	return out, nil
}
