package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestBboltBackend(t *testing.T) {
	backendTestSuite(t, func(t *testing.T) Backend {
		backend, err := OpenBbolt(filepath.Join(t.TempDir(), "nested", "test.db"), false)
		if err != nil {
			t.Fatalf("failed to open backend: %v", err)
		}
		t.Cleanup(func() { backend.Close() })
		return backend
	})
}

func TestBboltReadOnlyReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")

	rw, err := OpenBbolt(path, false)
	if err != nil {
		t.Fatalf("OpenBbolt: %v", err)
	}
	err = rw.Update(func(tx Tx) error {
		b, err := tx.CreateBucket(testBucket)
		if err != nil {
			return err
		}
		return b.Put(ChunkKey(0), []byte("chunk"))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	rw.Close()

	ro, err := OpenBbolt(path, true)
	if err != nil {
		t.Fatalf("OpenBbolt read-only: %v", err)
	}
	defer ro.Close()

	err = ro.View(func(tx Tx) error {
		if got := tx.Bucket(testBucket).Get(ChunkKey(0)); string(got) != "chunk" {
			t.Errorf("got %q, want chunk", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	err = ro.Update(func(Tx) error { return nil })
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("Update on read-only db err = %v, want ErrReadOnly", err)
	}
}
