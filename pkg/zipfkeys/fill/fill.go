// Package fill writes raw random values into caller buffers.
package fill

import (
	"fmt"
	"math"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

// Random fills buf with independent uniformly random values.
func Random(r *rng.Rand, buf []uint64) {
	for i := range buf {
		buf[i] = r.Uint64()
	}
}

// Range fills buf with values uniform over [lo, hi], both inclusive.
// Values may repeat.
func Range(r *rng.Rand, buf []uint64, lo, hi uint64) error {
	if hi == math.MaxUint64 {
		return fmt.Errorf("%w: max %d", zipfkeys.ErrRangeOverflow, hi)
	}
	if lo > hi {
		return fmt.Errorf("%w: [%d, %d]", zipfkeys.ErrInvalidRange, lo, hi)
	}
	span := hi - lo + 1
	for i := range buf {
		buf[i] = lo + r.Uint64N(span)
	}
	return nil
}
