package export

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/storage"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
)

// Writer writes one workload into a backend. Writing replaces any workload
// already stored there.
type Writer struct {
	backend storage.Backend
	// Progress, if set, is called with the number of items written after
	// every chunk.
	Progress func(n int)
}

// NewWriter returns a Writer over backend.
func NewWriter(backend storage.Backend) *Writer {
	return &Writer{backend: backend}
}

// Write stores meta, keys and indices in one transaction. It fills in the
// run id, format version, counts and creation time and returns the stored
// meta.
func (w *Writer) Write(meta Meta, keys zipfkeys.KeySet, indices []uint32) (Meta, error) {
	if meta.RunID == uuid.Nil {
		meta.RunID = uuid.New()
	}
	meta.FormatVersion = zipfkeys.FormatVersion
	meta.KeyCount = uint32(len(keys))
	meta.IndexCount = uint64(len(indices))
	meta.KeyBytes = uint64(keys.Bytes())
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	keyChunks := pool.Chunks(len(keys), KeysPerChunk)
	encodedKeys := make([][]byte, len(keyChunks))
	pool.Run(len(keyChunks), func(c int) {
		encodedKeys[c] = encodeKeys(keys[keyChunks[c][0]:keyChunks[c][1]])
	})

	indexChunks := pool.Chunks(len(indices), IndicesPerChunk)
	encodedIndices := make([][]byte, len(indexChunks))
	pool.Run(len(indexChunks), func(c int) {
		encodedIndices[c] = encodeIndices(indices[indexChunks[c][0]:indexChunks[c][1]])
	})

	err := w.backend.Update(func(tx storage.Tx) error {
		for _, name := range [][]byte{metaBucket, keysBucket, indicesBucket} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
		}

		mb, err := tx.CreateBucket(metaBucket)
		if err != nil {
			return err
		}
		if err := storage.PutJSON(mb, metaKey, meta); err != nil {
			return err
		}

		if err := w.putChunks(tx, keysBucket, encodedKeys, keyChunks); err != nil {
			return fmt.Errorf("write keys: %w", err)
		}
		if err := w.putChunks(tx, indicesBucket, encodedIndices, indexChunks); err != nil {
			return fmt.Errorf("write indices: %w", err)
		}
		return nil
	})
	if err != nil {
		return Meta{}, fmt.Errorf("export workload: %w", err)
	}

	zipfkeys.Logger().Info("exported workload",
		zap.Stringer("run_id", meta.RunID),
		zap.String("strategy", meta.Strategy),
		zap.Uint32("keys", meta.KeyCount),
		zap.Uint64("indices", meta.IndexCount))
	return meta, nil
}

func (w *Writer) putChunks(tx storage.Tx, name []byte, chunks [][]byte, bounds [][2]int) error {
	b, err := tx.CreateBucket(name)
	if err != nil {
		return err
	}
	for i, chunk := range chunks {
		if err := b.Put(storage.ChunkKey(uint32(i)), chunk); err != nil {
			return err
		}
		if w.Progress != nil {
			w.Progress(bounds[i][1] - bounds[i][0])
		}
	}
	return nil
}

func encodeKeys(keys zipfkeys.KeySet) []byte {
	size := 0
	for _, k := range keys {
		size += binary.MaxVarintLen64 + len(k)
	}
	buf := make([]byte, 0, size)
	for _, k := range keys {
		buf = binary.AppendUvarint(buf, uint64(len(k)))
		buf = append(buf, k...)
	}
	return snappy.Encode(nil, buf)
}

func encodeIndices(indices []uint32) []byte {
	buf := make([]byte, 0, 4*len(indices))
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint32(buf, i)
	}
	return snappy.Encode(nil, buf)
}
