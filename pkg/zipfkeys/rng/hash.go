package rng

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Hash is a stable, non-cryptographic mixing hash of x.
func Hash(x uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return murmur3.Sum64(b[:])
}

// HashPair mixes an ordered pair of words.
func HashPair(a, b uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], a)
	binary.LittleEndian.PutUint64(buf[8:], b)
	return murmur3.Sum64(buf[:])
}
