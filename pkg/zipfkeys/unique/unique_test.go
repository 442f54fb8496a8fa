package unique

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

func uint32Sampler(r *rng.Rand) uint32 { return r.Uint32() }

func TestFixedExactCountAndDistinct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		count  int
		domain uint64
	}{
		{"empty", 0, 0},
		{"tiny", 3, 0},
		{"below chunk count", 31, 0},
		{"large", 200_000, 0},
		{"narrow domain forces repair", 900, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := rng.New(1, 0, tt.name)
			sample := uint32Sampler
			if tt.domain != 0 {
				d := uint32(tt.domain)
				sample = func(r *rng.Rand) uint32 { return r.Uint32N(d) }
			}
			got, err := Fixed[uint32](r, tt.count, tt.domain, sample)
			if err != nil {
				t.Fatalf("Fixed: %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("got %d values, want %d", len(got), tt.count)
			}
			sorted := slices.Clone(got)
			slices.Sort(sorted)
			if len(slices.Compact(sorted)) != tt.count {
				t.Fatal("values are not distinct")
			}
			if tt.domain != 0 {
				for _, v := range got {
					if uint64(v) >= tt.domain {
						t.Fatalf("value %d outside domain %d", v, tt.domain)
					}
				}
			}
		})
	}
}

func TestFixedIsShuffled(t *testing.T) {
	t.Parallel()

	got, err := Fixed[uint64](rng.New(2, 0, "order"), 10_000, 0, func(r *rng.Rand) uint64 { return r.Uint64() })
	if err != nil {
		t.Fatalf("Fixed: %v", err)
	}
	if slices.IsSorted(got) {
		t.Error("fixed-width output came back sorted")
	}
}

func TestFixedRejectsSmallDomain(t *testing.T) {
	t.Parallel()

	_, err := Fixed[uint8](rng.New(3, 0, "domain"), 256, 0, func(r *rng.Rand) uint8 { return uint8(r.Uint32()) })
	if !errors.Is(err, zipfkeys.ErrDomainTooSmall) {
		t.Fatalf("err = %v, want ErrDomainTooSmall", err)
	}

	got, err := Fixed[uint8](rng.New(3, 0, "domain"), 255, 0, func(r *rng.Rand) uint8 { return uint8(r.Uint32()) })
	if err != nil {
		t.Fatalf("255 of 256 values: %v", err)
	}
	if len(got) != 255 {
		t.Fatalf("got %d values, want 255", len(got))
	}
}

func TestFixedIsReproducible(t *testing.T) {
	t.Parallel()

	a, _ := Fixed[uint32](rng.New(4, 1, "repro"), 50_000, 0, uint32Sampler)
	b, _ := Fixed[uint32](rng.New(4, 1, "repro"), 50_000, 0, uint32Sampler)
	if !slices.Equal(a, b) {
		t.Fatal("identical streams produced different outputs")
	}
}

func TestFixedProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 2000).Draw(t, "count")
		domain := rapid.Uint64Range(uint64(count)+1, uint64(count)*2+2).Draw(t, "domain")
		seed := rapid.Uint64().Draw(t, "seed")

		got, err := Fixed[uint32](rng.New(seed, 0, "prop"), count, domain, func(r *rng.Rand) uint32 {
			return uint32(r.Uint64N(domain))
		})
		if err != nil {
			t.Fatalf("Fixed: %v", err)
		}
		seen := make(map[uint32]struct{}, len(got))
		for _, v := range got {
			if _, dup := seen[v]; dup {
				t.Fatalf("duplicate %d", v)
			}
			seen[v] = struct{}{}
		}
		if len(got) != count {
			t.Fatalf("got %d values, want %d", len(got), count)
		}
	})
}

// counterDomain is the number of keys counterDrawer can emit: 4 + 16 + 64.
const counterDomain = 84

// counterDrawer emits a small alphabet so chunks collide and repair runs.
func counterDrawer(r *rng.Rand) Drawer {
	return func() []byte {
		k := make([]byte, 1+r.IntN(3))
		for i := range k {
			k[i] = 'a' + byte(r.IntN(4))
		}
		return k
	}
}

func TestBytesExactCountSortedDistinct(t *testing.T) {
	t.Parallel()

	got, err := Bytes(rng.New(5, 0, "bytes"), 80, 16, counterDomain, counterDrawer)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(got) != 80 {
		t.Fatalf("got %d keys, want 80", len(got))
	}
	if !slices.IsSortedFunc(got, bytes.Compare) {
		t.Error("keys are not sorted")
	}
	for i := 1; i < len(got); i++ {
		if bytes.Equal(got[i-1], got[i]) {
			t.Fatalf("duplicate key %q", got[i])
		}
	}
}

func TestBytesChunkLocalState(t *testing.T) {
	t.Parallel()

	// Each drawer counts from its own random start; keys only repeat if
	// two drawers overlap, which repair must fix.
	seq := func(r *rng.Rand) Drawer {
		next := r.Uint64() >> 32
		return func() []byte {
			next++
			return []byte{byte(next >> 24), byte(next >> 16), byte(next >> 8), byte(next)}
		}
	}
	got, err := Bytes(rng.New(6, 0, "seq"), 5000, 16, 0, seq)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(got) != 5000 {
		t.Fatalf("got %d keys, want 5000", len(got))
	}
}

func TestBytesIsReproducible(t *testing.T) {
	t.Parallel()

	a, _ := Bytes(rng.New(7, 0, "r"), 60, 16, counterDomain, counterDrawer)
	b, _ := Bytes(rng.New(7, 0, "r"), 60, 16, counterDomain, counterDrawer)
	if !slices.EqualFunc(a, b, bytes.Equal) {
		t.Fatal("identical streams produced different keys")
	}
}

func TestBytesDomain(t *testing.T) {
	t.Parallel()

	t.Run("exceeded", func(t *testing.T) {
		t.Parallel()

		_, err := Bytes(rng.New(8, 0, "d"), counterDomain+1, 16, counterDomain, counterDrawer)
		if !errors.Is(err, zipfkeys.ErrDomainTooSmall) {
			t.Fatalf("err = %v, want ErrDomainTooSmall", err)
		}
	})

	t.Run("exhausted", func(t *testing.T) {
		t.Parallel()

		got, err := Bytes(rng.New(8, 0, "d"), counterDomain, 16, counterDomain, counterDrawer)
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}
		if len(got) != counterDomain {
			t.Fatalf("got %d keys, want %d", len(got), counterDomain)
		}
	})
}
