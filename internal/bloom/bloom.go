// Package bloom is a probabilistic membership filter used to skip exact
// lookups when a candidate is certainly new.
package bloom

import (
	"encoding/binary"

	"github.com/jcalabro/gloom"
)

// DefaultFalsePositiveRate is the rate the unique-value repair loop sizes
// its filter for.
const DefaultFalsePositiveRate = 0.01

// Filter is a cache-line blocked Bloom filter. It may report false
// positives, never false negatives. It is not safe for concurrent use.
type Filter struct {
	f *gloom.Filter
}

// New sizes a filter for n elements at false positive rate p. A
// non-positive n is treated as 1 and an out-of-range p as the default.
func New(n int, p float64) *Filter {
	if n <= 0 {
		n = 1
	}
	if p <= 0 || p >= 1 {
		p = DefaultFalsePositiveRate
	}
	return &Filter{f: gloom.New(uint64(n), p)}
}

// Add records data.
func (f *Filter) Add(data []byte) {
	f.f.Add(data)
}

// MayContain reports whether data might have been added.
func (f *Filter) MayContain(data []byte) bool {
	return f.f.Test(data)
}

// AddUint64 records an integer by its little-endian bytes.
func (f *Filter) AddUint64(x uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	f.f.Add(b[:])
}

// MayContainUint64 is MayContain for an integer added with AddUint64.
func (f *Filter) MayContainUint64(x uint64) bool {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return f.f.Test(b[:])
}
