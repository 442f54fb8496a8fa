package export

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/golang/snappy"

	"pkg.jsn.cam/zipfkeys/pkg/storage"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
)

var errCorruptChunk = errors.New("corrupt export chunk")

// Workload is a decoded export.
type Workload struct {
	Meta    Meta
	Keys    zipfkeys.KeySet
	Indices []uint32
}

// Reader decodes workloads written by Writer.
type Reader struct {
	backend storage.Backend
}

// NewReader returns a Reader over backend.
func NewReader(backend storage.Backend) *Reader {
	return &Reader{backend: backend}
}

// Meta reads and version-checks the workload metadata.
func (r *Reader) Meta() (Meta, error) {
	var meta Meta
	err := r.backend.View(func(tx storage.Tx) error {
		var err error
		meta, err = readMeta(tx)
		return err
	})
	return meta, err
}

// Read decodes the whole workload.
func (r *Reader) Read() (*Workload, error) {
	var w Workload
	err := r.backend.View(func(tx storage.Tx) error {
		meta, err := readMeta(tx)
		if err != nil {
			return err
		}
		w.Meta = meta

		w.Keys = make(zipfkeys.KeySet, 0, meta.KeyCount)
		if err := forEachChunk(tx, keysBucket, func(data []byte) error {
			return decodeKeys(data, &w.Keys)
		}); err != nil {
			return fmt.Errorf("read keys: %w", err)
		}

		w.Indices = make([]uint32, 0, meta.IndexCount)
		if err := forEachChunk(tx, indicesBucket, func(data []byte) error {
			return decodeIndices(data, meta.KeyCount, &w.Indices)
		}); err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uint32(len(w.Keys)) != w.Meta.KeyCount || uint64(len(w.Indices)) != w.Meta.IndexCount {
		return nil, fmt.Errorf("%w: decoded %d keys and %d indices, meta says %d and %d",
			errCorruptChunk, len(w.Keys), len(w.Indices), w.Meta.KeyCount, w.Meta.IndexCount)
	}
	return &w, nil
}

func readMeta(tx storage.Tx) (Meta, error) {
	var meta Meta
	b := tx.Bucket(metaBucket)
	if b == nil {
		return meta, zipfkeys.ErrMissingMeta
	}
	found, err := storage.GetJSON(b, metaKey, &meta)
	if err != nil {
		return meta, err
	}
	if !found {
		return meta, zipfkeys.ErrMissingMeta
	}

	ok, err := zipfkeys.IsCompatibleVersion(meta.FormatVersion, zipfkeys.FormatVersion)
	if err != nil {
		return meta, fmt.Errorf("%w: %w", zipfkeys.ErrIncompatibleVersion, err)
	}
	if !ok {
		return meta, zipfkeys.CompatibilityError(meta.FormatVersion, zipfkeys.FormatVersion)
	}
	return meta, nil
}

// forEachChunk calls fn with every decompressed chunk in index order and
// rejects gaps in the chunk sequence.
func forEachChunk(tx storage.Tx, name []byte, fn func(data []byte) error) error {
	b := tx.Bucket(name)
	if b == nil {
		return nil
	}
	var next uint32
	return b.ForEach(func(k, v []byte) error {
		i, ok := storage.ChunkIndex(k)
		if !ok || i != next {
			return fmt.Errorf("%w: unexpected chunk key %x", errCorruptChunk, k)
		}
		next++
		data, err := snappy.Decode(nil, v)
		if err != nil {
			return fmt.Errorf("%w: chunk %d: %w", errCorruptChunk, i, err)
		}
		return fn(data)
	})
}

// decodeKeys copies keys out of data, which is owned by snappy, into one
// backing array per chunk.
func decodeKeys(data []byte, keys *zipfkeys.KeySet) error {
	backing := make([]byte, 0, len(data))
	for len(data) > 0 {
		n, size := binary.Uvarint(data)
		if size <= 0 || uint64(len(data)-size) < n {
			return fmt.Errorf("%w: truncated key", errCorruptChunk)
		}
		data = data[size:]
		start := len(backing)
		backing = append(backing, data[:n]...)
		*keys = append(*keys, backing[start:len(backing):len(backing)])
		data = data[n:]
	}
	return nil
}

// decodeIndices appends the indices in data, each of which must address one
// of keyCount keys.
func decodeIndices(data []byte, keyCount uint32, indices *[]uint32) error {
	if len(data)%4 != 0 {
		return fmt.Errorf("%w: index chunk of %d bytes", errCorruptChunk, len(data))
	}
	for i := 0; i < len(data); i += 4 {
		idx := binary.LittleEndian.Uint32(data[i:])
		if idx >= keyCount {
			return fmt.Errorf("%w: index %d out of range for %d keys", errCorruptChunk, idx, keyCount)
		}
		*indices = append(*indices, idx)
	}
	return nil
}
