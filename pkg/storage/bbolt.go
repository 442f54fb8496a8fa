package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

// BboltBackend implements Backend on a bbolt file.
type BboltBackend struct {
	db *bolt.DB
}

// OpenBbolt opens or creates the database at path. A read-only backend
// takes a shared lock, so several readers may open the same export.
func OpenBbolt(path string, readOnly bool) (*BboltBackend, error) {
	if !readOnly {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout:  time.Second,
		ReadOnly: readOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db %s: %w", path, err)
	}
	return &BboltBackend{db: db}, nil
}

// Path returns the database file path.
func (b *BboltBackend) Path() string {
	return b.db.Path()
}

func (b *BboltBackend) Update(fn func(tx Tx) error) error {
	return translate(b.db.Update(func(tx *bolt.Tx) error {
		return fn(bboltTx{tx: tx})
	}))
}

func (b *BboltBackend) View(fn func(tx Tx) error) error {
	return translate(b.db.View(func(tx *bolt.Tx) error {
		return fn(bboltTx{tx: tx})
	}))
}

func (b *BboltBackend) Close() error {
	return b.db.Close()
}

func translate(err error) error {
	switch {
	case errors.Is(err, berrors.ErrTxNotWritable), errors.Is(err, berrors.ErrDatabaseReadOnly):
		return fmt.Errorf("%w: %w", ErrReadOnly, err)
	case errors.Is(err, berrors.ErrDatabaseNotOpen):
		return ErrClosed
	}
	return err
}

type bboltTx struct {
	tx *bolt.Tx
}

func (t bboltTx) Writable() bool {
	return t.tx.Writable()
}

func (t bboltTx) CreateBucket(name []byte) (Bucket, error) {
	bkt, err := t.tx.CreateBucketIfNotExists(name)
	if err != nil {
		return nil, translate(err)
	}
	return bboltBucket{bkt: bkt}, nil
}

func (t bboltTx) DeleteBucket(name []byte) error {
	err := t.tx.DeleteBucket(name)
	if errors.Is(err, berrors.ErrBucketNotFound) {
		return nil
	}
	return translate(err)
}

func (t bboltTx) Bucket(name []byte) Bucket {
	bkt := t.tx.Bucket(name)
	if bkt == nil {
		return nil
	}
	return bboltBucket{bkt: bkt}
}

func (t bboltTx) ForEachBucket(fn func(name []byte) error) error {
	return t.tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
		return fn(name)
	})
}

type bboltBucket struct {
	bkt *bolt.Bucket
}

func (b bboltBucket) Put(key, value []byte) error {
	return translate(b.bkt.Put(key, value))
}

func (b bboltBucket) Get(key []byte) []byte {
	return b.bkt.Get(key)
}

func (b bboltBucket) ForEach(fn func(k, v []byte) error) error {
	return b.bkt.ForEach(fn)
}

func (b bboltBucket) Len() int {
	return b.bkt.Stats().KeyN
}
