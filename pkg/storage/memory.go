package storage

import (
	"maps"
	"slices"
	"sync"
)

// MemoryBackend implements Backend in process memory. Update works on
// copy-on-write buckets and publishes them only if fn succeeds.
type MemoryBackend struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
	closed  bool
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{buckets: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) Update(fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	tx := &memoryTx{
		writable: true,
		buckets:  maps.Clone(m.buckets),
		copied:   make(map[string]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}
	m.buckets = tx.buckets
	return nil
}

func (m *MemoryBackend) View(fn func(tx Tx) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return fn(&memoryTx{buckets: m.buckets})
}

func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.buckets = nil
	return nil
}

type memoryTx struct {
	writable bool
	buckets  map[string]map[string][]byte
	// copied marks buckets already cloned by this transaction
	copied map[string]bool
}

func (t *memoryTx) Writable() bool {
	return t.writable
}

func (t *memoryTx) CreateBucket(name []byte) (Bucket, error) {
	if !t.writable {
		return nil, ErrReadOnly
	}
	if _, ok := t.buckets[string(name)]; !ok {
		t.buckets[string(name)] = make(map[string][]byte)
		t.copied[string(name)] = true
	}
	return t.Bucket(name), nil
}

func (t *memoryTx) DeleteBucket(name []byte) error {
	if !t.writable {
		return ErrReadOnly
	}
	delete(t.buckets, string(name))
	return nil
}

func (t *memoryTx) Bucket(name []byte) Bucket {
	if _, ok := t.buckets[string(name)]; !ok {
		return nil
	}
	return &memoryBucket{tx: t, name: string(name)}
}

func (t *memoryTx) ForEachBucket(fn func(name []byte) error) error {
	for _, name := range slices.Sorted(maps.Keys(t.buckets)) {
		if err := fn([]byte(name)); err != nil {
			return err
		}
	}
	return nil
}

type memoryBucket struct {
	tx   *memoryTx
	name string
}

func (b *memoryBucket) data() map[string][]byte {
	return b.tx.buckets[b.name]
}

func (b *memoryBucket) Put(key, value []byte) error {
	if !b.tx.writable {
		return ErrReadOnly
	}
	if _, ok := b.tx.buckets[b.name]; !ok {
		return ErrBucketNotFound
	}
	if !b.tx.copied[b.name] {
		b.tx.buckets[b.name] = maps.Clone(b.data())
		b.tx.copied[b.name] = true
	}
	b.data()[string(key)] = slices.Clone(value)
	return nil
}

func (b *memoryBucket) Get(key []byte) []byte {
	return b.data()[string(key)]
}

func (b *memoryBucket) ForEach(fn func(k, v []byte) error) error {
	data := b.data()
	for _, k := range slices.Sorted(maps.Keys(data)) {
		if err := fn([]byte(k), data[k]); err != nil {
			return err
		}
	}
	return nil
}

func (b *memoryBucket) Len() int {
	return len(b.data())
}
