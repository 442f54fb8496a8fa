package keyset

import (
	"encoding/binary"
	"fmt"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

// partitioned is partitioned_id: (partition, next id in partition) pairs.
// It runs on one goroutine because every draw mutates a counter.
type partitioned struct{}

func (partitioned) Generate(r *rng.Rand, count int, opts Options) (zipfkeys.KeySet, error) {
	if opts.Partitions < 1 {
		return nil, fmt.Errorf("%w: got %d", zipfkeys.ErrInvalidPartitions, opts.Partitions)
	}

	const width = 8
	nextID := make([]uint32, opts.Partitions)
	buf := make([]byte, count*width)
	keys := make(zipfkeys.KeySet, count)
	for i := range keys {
		partition := r.Uint32N(opts.Partitions)
		k := buf[i*width : (i+1)*width : (i+1)*width]
		binary.BigEndian.PutUint32(k[:4], partition)
		binary.BigEndian.PutUint32(k[4:], nextID[partition])
		nextID[partition]++
		keys[i] = k
	}
	return keys, nil
}

func (partitioned) Description() string {
	return "Sequential ids in random partitions: partition u32 || id u32, big-endian"
}
