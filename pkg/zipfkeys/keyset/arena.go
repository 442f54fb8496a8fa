package keyset

import (
	"encoding/binary"

	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
)

const arenaChunkSize = 4 << 20 // 4 MB

// arena hands out key storage from large shared chunks instead of one
// allocation per key. Exhausted chunks stay alive through the keys that
// point into them.
type arena struct {
	buf []byte
	off int
}

// copyKey copies b into the arena. The returned key has its capacity
// clipped so an append can never run into a neighbour.
func (a *arena) copyKey(b []byte) zipfkeys.Key {
	if a.off+len(b) > len(a.buf) {
		a.buf = make([]byte, max(arenaChunkSize, len(b)))
		a.off = 0
	}
	end := a.off + len(b)
	k := a.buf[a.off:end:end]
	copy(k, b)
	a.off = end
	return k
}

// encodeUint32 big-endian encodes vals into one contiguous buffer.
func encodeUint32(vals []uint32) zipfkeys.KeySet {
	const width = 4
	buf := make([]byte, len(vals)*width)
	keys := make(zipfkeys.KeySet, len(vals))
	chunks := pool.Chunks(len(vals), max(len(vals)/pool.Default().Size(), 1))
	pool.Run(len(chunks), func(c int) {
		for i := chunks[c][0]; i < chunks[c][1]; i++ {
			k := buf[i*width : (i+1)*width : (i+1)*width]
			binary.BigEndian.PutUint32(k, vals[i])
			keys[i] = k
		}
	})
	return keys
}

// encodeUint64 big-endian encodes vals into one contiguous buffer.
func encodeUint64(vals []uint64) zipfkeys.KeySet {
	const width = 8
	buf := make([]byte, len(vals)*width)
	keys := make(zipfkeys.KeySet, len(vals))
	chunks := pool.Chunks(len(vals), max(len(vals)/pool.Default().Size(), 1))
	pool.Run(len(chunks), func(c int) {
		for i := chunks[c][0]; i < chunks[c][1]; i++ {
			k := buf[i*width : (i+1)*width : (i+1)*width]
			binary.BigEndian.PutUint64(k, vals[i])
			keys[i] = k
		}
	})
	return keys
}
