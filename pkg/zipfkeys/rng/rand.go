package rng

import (
	"encoding/binary"
	"iter"
	"math/rand/v2"

	"github.com/spaolacci/murmur3"
)

// Rand is an exclusively owned random stream. Every sampling call mutates
// it, so a Rand must not be used from two goroutines at once; parallel work
// takes its own sub-streams from Streams instead.
type Rand struct {
	*rand.Rand
	src *Xoshiro256StarStar
}

func wrap(src *Xoshiro256StarStar) *Rand {
	return &Rand{Rand: rand.New(src), src: src}
}

// New derives a stream from the numeric seed, the host thread id and a
// purpose label. Equal arguments always give bit-identical streams.
func New(seed, thread uint64, purpose string) *Rand {
	return wrap(NewXoshiro256StarStar(DeriveSeed(seed, thread, purpose)))
}

// DeriveSeed hashes four salted combinations of the inputs into a 256 bit
// seed.
func DeriveSeed(seed, thread uint64, purpose string) [32]byte {
	var out [32]byte
	var word [8]byte
	for i := range uint64(4) {
		h := murmur3.New64()
		for _, v := range [...]uint64{i, seed, thread} {
			binary.LittleEndian.PutUint64(word[:], v)
			h.Write(word[:])
		}
		h.Write([]byte(purpose))
		h.Write([]byte{0xff})
		binary.LittleEndian.PutUint64(out[i*8:], h.Sum64())
	}
	return out
}

// FromUint64 seeds a stream from a single word.
func FromUint64(seed uint64) *Rand {
	src := &Xoshiro256StarStar{}
	src.SeedUint64(seed)
	return wrap(src)
}

// FromSeed builds a stream from a raw 256 bit seed.
func FromSeed(seed [32]byte) *Rand {
	return wrap(NewXoshiro256StarStar(seed))
}

// Clone returns an independent copy of the current state.
func (r *Rand) Clone() *Rand {
	src := *r.src
	return wrap(&src)
}

// Jump advances r by 2^128 draws.
func (r *Rand) Jump() {
	r.src.Jump()
}

// Streams yields an unbounded sequence of sub-streams. Each step hands out a
// clone of the current state and then jumps r, so every yielded stream and
// r's own future output are 2^128 draws apart.
func (r *Rand) Streams() iter.Seq[*Rand] {
	return func(yield func(*Rand) bool) {
		for {
			sub := r.Clone()
			r.Jump()
			if !yield(sub) {
				return
			}
		}
	}
}

// Take collects the next n sub-streams of r.
func (r *Rand) Take(n int) []*Rand {
	out := make([]*Rand, 0, n)
	if n == 0 {
		return out
	}
	for sub := range r.Streams() {
		out = append(out, sub)
		if len(out) == n {
			break
		}
	}
	return out
}

// Bool returns a fair coin flip.
func (r *Rand) Bool() bool {
	return r.Uint64()>>63 == 1
}

// Fill fills b with random bytes.
func (r *Rand) Fill(b []byte) {
	for len(b) >= 8 {
		binary.LittleEndian.PutUint64(b, r.Uint64())
		b = b[8:]
	}
	if len(b) > 0 {
		v := r.Uint64()
		for i := range b {
			b[i] = byte(v)
			v >>= 8
		}
	}
}
