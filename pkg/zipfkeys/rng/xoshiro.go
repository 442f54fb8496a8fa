// Package rng provides the seeded, jumpable random streams every generator
// in the engine draws from.
package rng

import (
	"encoding/binary"
	"math/bits"
)

// Xoshiro256StarStar is the xoshiro256** generator. It implements
// math/rand/v2.Source. The zero value is not a valid state; use
// NewXoshiro256StarStar or SeedUint64.
type Xoshiro256StarStar struct {
	s [4]uint64
}

var (
	jumpPoly     = [4]uint64{0x180ec6d33cfd0aba, 0xd5a61266f0c9392c, 0xa9582618e03fc9aa, 0x39abdc4529b1661c}
	longJumpPoly = [4]uint64{0x76e15d3efefdcbbf, 0xc5004e441c522fb3, 0x77710069854ee241, 0x39109bb02acbe635}
)

// NewXoshiro256StarStar builds a generator from a 32 byte little-endian
// seed. An all-zero seed would lock the generator at zero, so it is
// replaced by the splitmix64 expansion of 0.
func NewXoshiro256StarStar(seed [32]byte) *Xoshiro256StarStar {
	x := &Xoshiro256StarStar{}
	for i := range x.s {
		x.s[i] = binary.LittleEndian.Uint64(seed[i*8:])
	}
	if x.s == [4]uint64{} {
		x.SeedUint64(0)
	}
	return x
}

// SeedUint64 resets the state from a single word via splitmix64.
func (x *Xoshiro256StarStar) SeedUint64(seed uint64) {
	for i := range x.s {
		seed += 0x9e3779b97f4a7c15
		z := seed
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		x.s[i] = z ^ (z >> 31)
	}
}

// Uint64 returns the next output and advances the state.
func (x *Xoshiro256StarStar) Uint64() uint64 {
	s := &x.s
	result := bits.RotateLeft64(s[1]*5, 7) * 9
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

// Jump advances the state by 2^128 steps.
func (x *Xoshiro256StarStar) Jump() {
	x.jump(&jumpPoly)
}

// LongJump advances the state by 2^192 steps.
func (x *Xoshiro256StarStar) LongJump() {
	x.jump(&longJumpPoly)
}

func (x *Xoshiro256StarStar) jump(poly *[4]uint64) {
	var acc [4]uint64
	for _, word := range poly {
		for b := range 64 {
			if word&(1<<uint(b)) != 0 {
				acc[0] ^= x.s[0]
				acc[1] ^= x.s[1]
				acc[2] ^= x.s[2]
				acc[3] ^= x.s[3]
			}
			x.Uint64()
		}
	}
	x.s = acc
}
