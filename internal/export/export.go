// Package export persists generated workloads so a benchmark harness can
// replay them without regenerating.
//
// Layout:
//
//	meta     "workload" -> JSON Meta
//	keys     BE u32 chunk index -> snappy(uvarint len | key bytes)...
//	indices  BE u32 chunk index -> snappy(LE u32...)
package export

import (
	"time"

	"github.com/google/uuid"
)

const (
	// KeysPerChunk is the number of keys in one keys chunk.
	KeysPerChunk = 4096
	// IndicesPerChunk is the number of request indices in one indices chunk.
	IndicesPerChunk = 1 << 16
)

var (
	metaBucket    = []byte("meta")
	keysBucket    = []byte("keys")
	indicesBucket = []byte("indices")

	metaKey = []byte("workload")
)

// Meta describes how a workload was generated.
type Meta struct {
	RunID         uuid.UUID `json:"run_id"`
	FormatVersion string    `json:"format_version"`
	Strategy      string    `json:"strategy"`
	Seed          uint64    `json:"seed"`
	Thread        uint64    `json:"thread"`
	Purpose       string    `json:"purpose"`
	Density       float64   `json:"density"`
	Partitions    uint32    `json:"partitions"`
	KeyCount      uint32    `json:"key_count"`
	IndexCount    uint64    `json:"index_count"`
	Skew          float64   `json:"skew"`
	KeyBytes      uint64    `json:"key_bytes"`
	CreatedAt     time.Time `json:"created_at"`
}
