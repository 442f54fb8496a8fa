// Package storage is the ordered key-value layer that exported workloads
// are written to.
package storage

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrReadOnly is returned by writes inside a View transaction.
	ErrReadOnly = errors.New("storage: write in read-only transaction")
	// ErrBucketNotFound is returned by writes through a handle whose bucket was
	// deleted.
	ErrBucketNotFound = errors.New("storage: bucket not found")
	// ErrClosed is returned by transactions started after Close.
	ErrClosed = errors.New("storage: backend closed")
)

// Backend is a bucketed key-value store with serializable transactions.
// Within a bucket, keys iterate in ascending byte order.
type Backend interface {
	// Update runs fn in a read-write transaction. An error from fn discards
	// every change it made.
	Update(fn func(tx Tx) error) error
	// View runs fn in a read-only transaction.
	View(fn func(tx Tx) error) error

	Close() error
}

// Tx is a transaction. It is only valid inside the Update or View callback.
type Tx interface {
	Writable() bool

	// CreateBucket returns the named bucket, creating it if needed.
	CreateBucket(name []byte) (Bucket, error)
	// DeleteBucket removes a bucket. Deleting a missing bucket is not an
	// error.
	DeleteBucket(name []byte) error
	// Bucket returns nil if the bucket does not exist.
	Bucket(name []byte) Bucket

	ForEachBucket(fn func(name []byte) error) error
}

// Bucket is a keyspace within a transaction. Slices returned by Get and
// passed to ForEach are only valid until the transaction ends.
type Bucket interface {
	Put(key, value []byte) error
	Get(key []byte) []byte
	ForEach(fn func(k, v []byte) error) error
	Len() int
}

// ChunkKey encodes a chunk index so chunks iterate in index order.
func ChunkKey(i uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, i)
}

// ChunkIndex decodes a key written by ChunkKey.
func ChunkIndex(key []byte) (uint32, bool) {
	if len(key) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(key), true
}
