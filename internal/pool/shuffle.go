package pool

import (
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

// The bucket and chunk counts are fixed rather than derived from the pool
// size so a shuffle gives the same permutation on every machine.
const (
	shuffleBuckets = 64
	shuffleChunks  = 64
)

// Shuffle permutes s uniformly at random. Large inputs are scattered into
// random buckets by sub-streams of r, then every bucket is shuffled on its
// own sub-stream. The result depends only on r, never on scheduling.
func Shuffle[T any](r *rng.Rand, s []T) {
	if len(s) < serialCutoff {
		r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		return
	}

	p := Default()
	chunks := Chunks(len(s), (len(s)+shuffleChunks-1)/shuffleChunks)
	streams := r.Take(len(chunks) + shuffleBuckets)

	assign := make([]uint8, len(s))
	counts := make([][shuffleBuckets]int, len(chunks))
	p.Run(len(chunks), func(c int) {
		st := streams[c]
		for i := chunks[c][0]; i < chunks[c][1]; i++ {
			b := uint8(st.Uint32N(shuffleBuckets))
			assign[i] = b
			counts[c][b]++
		}
	})

	// Buckets are laid out in order; inside a bucket, chunks keep their order.
	offsets := make([][shuffleBuckets]int, len(chunks))
	var bounds [shuffleBuckets + 1]int
	pos := 0
	for b := range shuffleBuckets {
		bounds[b] = pos
		for c := range chunks {
			offsets[c][b] = pos
			pos += counts[c][b]
		}
	}
	bounds[shuffleBuckets] = pos

	out := make([]T, len(s))
	p.Run(len(chunks), func(c int) {
		off := offsets[c]
		for i := chunks[c][0]; i < chunks[c][1]; i++ {
			b := assign[i]
			out[off[b]] = s[i]
			off[b]++
		}
	})

	p.Run(shuffleBuckets, func(b int) {
		bucket := out[bounds[b]:bounds[b+1]]
		streams[len(chunks)+b].Shuffle(len(bucket), func(i, j int) {
			bucket[i], bucket[j] = bucket[j], bucket[i]
		})
	})

	p.Run(len(chunks), func(c int) {
		copy(s[chunks[c][0]:chunks[c][1]], out[chunks[c][0]:chunks[c][1]])
	})
}

// Iota returns [0, n) filled in parallel.
func Iota(n uint32) []uint32 {
	out := make([]uint32, n)
	if n < serialCutoff {
		for i := range out {
			out[i] = uint32(i)
		}
		return out
	}
	p := Default()
	chunks := Chunks(len(out), (len(out)+p.Size()-1)/p.Size())
	p.Run(len(chunks), func(c int) {
		for i := chunks[c][0]; i < chunks[c][1]; i++ {
			out[i] = uint32(i)
		}
	})
	return out
}
