// Package unique produces sequences of exactly N distinct values.
//
// Both entry points run in two phases. The bulk phase fills chunks in
// parallel, each chunk on its own sub-stream, then sorts and removes
// duplicates. The repair phase then draws replacements one at a time from
// the primary stream until the shortfall is closed. Repair stays sequential:
// whether a candidate is accepted depends on every candidate before it.
package unique

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"pkg.jsn.cam/zipfkeys/internal/bloom"
	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

// Chunks is the number of parallel fill chunks the bulk phase aims for.
const Chunks = 32

// Sampler draws one candidate value.
type Sampler[T any] func(r *rng.Rand) T

// Drawer draws one candidate key from the stream and state it was built
// around.
type Drawer func() []byte

// Fixed returns count distinct values of T drawn by sample, in random
// order. domain is the number of distinct values sample can return, 0
// meaning every value of T; count must be smaller than domain.
func Fixed[T constraints.Unsigned](r *rng.Rand, count int, domain uint64, sample Sampler[T]) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative count %d", count)
	}
	if domain == 0 {
		domain = widthDomain[T]()
	}
	if uint64(count) >= domain {
		return nil, fmt.Errorf("%w: %d values requested from a domain of %d",
			zipfkeys.ErrDomainTooSmall, count, domain)
	}

	out := make([]T, count)
	chunks := pool.Chunks(count, max(count/Chunks, 1))
	streams := r.Take(len(chunks))
	pool.Run(len(chunks), func(i int) {
		st := streams[i]
		for j := chunks[i][0]; j < chunks[i][1]; j++ {
			out[j] = sample(st)
		}
	})

	pool.Sort(out)
	out = pool.Compact(out)
	shortfall := count - len(out)
	zipfkeys.Logger().Debug("generating more keys", zap.Int("shortfall", shortfall))

	if shortfall > 0 {
		out = repairFixed(r, out, count, sample)
	}

	pool.Shuffle(r, out)
	return out, nil
}

// repairFixed tops sorted, duplicate-free accepted up to count. The filter
// only lets most fresh candidates skip the binary search; a filter hit
// still goes to the authoritative lookup.
func repairFixed[T constraints.Unsigned](r *rng.Rand, accepted []T, count int, sample Sampler[T]) []T {
	filter := bloom.New(len(accepted), bloom.DefaultFalsePositiveRate)
	for _, v := range accepted {
		filter.AddUint64(uint64(v))
	}

	pending := make([]T, 0, count-len(accepted))
	seen := make(map[T]struct{}, count-len(accepted))
	for len(accepted)+len(pending) < count {
		c := sample(r)
		if filter.MayContainUint64(uint64(c)) {
			if _, found := slices.BinarySearch(accepted, c); found {
				continue
			}
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		pending = append(pending, c)
	}
	return append(accepted, pending...)
}

func widthDomain[T constraints.Unsigned]() uint64 {
	var zero T
	bits := unsafe.Sizeof(zero) * 8
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1 << bits
}

// Bytes returns count distinct byte keys in ascending order. Every bulk
// chunk draws from newDrawer(sub-stream), so drawer state such as sequential
// counters never crosses chunks; repair draws from newDrawer(r). Chunks hold
// at least minChunk keys. domain is the number of distinct keys a drawer can
// emit, 0 meaning unbounded; count must not exceed it.
func Bytes(r *rng.Rand, count, minChunk int, domain uint64, newDrawer func(r *rng.Rand) Drawer) ([][]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative count %d", count)
	}
	if domain > 0 && uint64(count) > domain {
		return nil, fmt.Errorf("%w: %d keys requested from a domain of %d",
			zipfkeys.ErrDomainTooSmall, count, domain)
	}

	out := make([][]byte, count)
	chunks := pool.Chunks(count, max(count/Chunks, minChunk, 1))
	streams := r.Take(len(chunks))
	pool.Run(len(chunks), func(i int) {
		draw := newDrawer(streams[i])
		for j := chunks[i][0]; j < chunks[i][1]; j++ {
			out[j] = draw()
		}
	})

	pool.SortFunc(out, bytes.Compare)
	out = pool.CompactFunc(out, bytes.Equal)
	shortfall := count - len(out)
	zipfkeys.Logger().Debug("generating more keys", zap.Int("shortfall", shortfall))

	if shortfall > 0 {
		draw := newDrawer(r)
		pending := make([][]byte, 0, shortfall)
		seen := make(map[string]struct{}, shortfall)
		for len(out)+len(pending) < count {
			c := draw()
			if _, found := slices.BinarySearchFunc(out, c, bytes.Compare); found {
				continue
			}
			if _, dup := seen[string(c)]; dup {
				continue
			}
			seen[string(c)] = struct{}{}
			pending = append(pending, c)
		}
		out = append(out, pending...)
		pool.SortFunc(out, bytes.Compare)
	}
	return out, nil
}
