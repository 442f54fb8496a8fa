package rng

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestXoshiroReferenceOutput(t *testing.T) {
	t.Parallel()

	x := &Xoshiro256StarStar{s: [4]uint64{1, 2, 3, 4}}
	want := []uint64{11520, 0, 1509978240}
	for i, w := range want {
		if got := x.Uint64(); got != w {
			t.Fatalf("output %d = %d, want %d", i, got, w)
		}
	}
}

func TestZeroSeedIsReplaced(t *testing.T) {
	t.Parallel()

	x := NewXoshiro256StarStar([32]byte{})
	if x.s == [4]uint64{} {
		t.Fatal("all-zero seed left the generator stuck at zero")
	}
}

func TestNewIsReproducible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seed    uint64
		thread  uint64
		purpose string
	}{
		{"basic", 42, 0, "keys"},
		{"thread", 42, 7, "keys"},
		{"empty purpose", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New(tt.seed, tt.thread, tt.purpose)
			b := New(tt.seed, tt.thread, tt.purpose)
			for i := range 1000 {
				if x, y := a.Uint64(), b.Uint64(); x != y {
					t.Fatalf("draw %d differs: %d vs %d", i, x, y)
				}
			}
		})
	}
}

func TestNewSeparatesInputs(t *testing.T) {
	t.Parallel()

	base := DeriveSeed(1, 2, "keys")
	variants := map[string][32]byte{
		"seed":    DeriveSeed(2, 2, "keys"),
		"thread":  DeriveSeed(1, 3, "keys"),
		"purpose": DeriveSeed(1, 2, "requests"),
	}
	for name, v := range variants {
		if v == base {
			t.Errorf("changing %s did not change the derived seed", name)
		}
	}
}

func TestStreamsAreDistinct(t *testing.T) {
	t.Parallel()

	r := New(9, 0, "streams")
	subs := r.Take(8)
	if len(subs) != 8 {
		t.Fatalf("Take(8) returned %d streams", len(subs))
	}

	firsts := make(map[uint64]int)
	for i, s := range subs {
		firsts[s.Uint64()] = i
	}
	firsts[r.Uint64()] = -1
	if len(firsts) != 9 {
		t.Errorf("sub-streams and parent produced only %d distinct first draws, want 9", len(firsts))
	}
}

func TestStreamsAreDeterministic(t *testing.T) {
	t.Parallel()

	a := New(5, 1, "p").Take(4)
	b := New(5, 1, "p").Take(4)
	for i := range a {
		if a[i].Uint64() != b[i].Uint64() {
			t.Fatalf("stream %d differs between identical parents", i)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	r := New(3, 3, "clone")
	c := r.Clone()
	first := c.Uint64()
	if got := r.Uint64(); got != first {
		t.Fatalf("clone diverged immediately: %d vs %d", got, first)
	}
	c.Uint64()
	c.Uint64()
	if r.Uint64() == c.Uint64() {
		t.Error("advancing the clone moved the original")
	}
}

// The xoshiro state transition is linear over GF(2), so jumping the xor of
// two states must equal the xor of the jumped states.
func TestJumpIsLinear(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		var a, b, ab Xoshiro256StarStar
		for i := range 4 {
			a.s[i] = rapid.Uint64().Draw(t, "a")
			b.s[i] = rapid.Uint64().Draw(t, "b")
			ab.s[i] = a.s[i] ^ b.s[i]
		}
		a.Jump()
		b.Jump()
		ab.Jump()
		for i := range 4 {
			if ab.s[i] != a.s[i]^b.s[i] {
				t.Fatalf("word %d: jump(a^b) = %x, jump(a)^jump(b) = %x", i, ab.s[i], a.s[i]^b.s[i])
			}
		}
	})
}

func TestJumpAndLongJumpDiffer(t *testing.T) {
	t.Parallel()

	a := &Xoshiro256StarStar{s: [4]uint64{1, 2, 3, 4}}
	b := *a
	a.Jump()
	b.LongJump()
	if a.s == b.s {
		t.Error("Jump and LongJump reached the same state")
	}
}

func TestFillCoversTail(t *testing.T) {
	t.Parallel()

	r := New(1, 1, "fill")
	buf := make([]byte, 13)
	for range 20 {
		r.Fill(buf)
		if buf[12] != 0 {
			return
		}
	}
	t.Error("last byte of an odd-sized buffer never filled")
}

func TestHashIsStable(t *testing.T) {
	t.Parallel()

	if Hash(12345) != Hash(12345) {
		t.Fatal("Hash not deterministic")
	}
	if Hash(1) == Hash(2) {
		t.Error("Hash(1) == Hash(2)")
	}
	if HashPair(1, 2) == HashPair(2, 1) {
		t.Error("HashPair ignores argument order")
	}
}

func TestGeometricMean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p float64
	}{{0.7}, {0.08}, {0.5}, {1}}

	for _, tt := range tests {
		g := MustGeometric(tt.p)
		r := New(11, 0, "geometric")
		const n = 200_000
		sum := 0.0
		for range n {
			sum += float64(g.Sample(r))
		}
		mean := sum / n
		want := (1 - tt.p) / tt.p
		if math.Abs(mean-want) > 0.05*want+0.01 {
			t.Errorf("p=%v: mean %v, want about %v", tt.p, mean, want)
		}
	}
}

func TestGeometricRejectsBadP(t *testing.T) {
	t.Parallel()

	for _, p := range []float64{0, -1, 1.5, math.NaN()} {
		if _, err := NewGeometric(p); err == nil {
			t.Errorf("NewGeometric(%v) succeeded", p)
		}
	}
}

func TestZipfFrequencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    uint64
		s    float64
	}{
		{"s=1", 10, 1.0},
		{"s=0.5", 20, 0.5},
		{"s=2", 8, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			z, err := NewZipf(tt.n, tt.s)
			if err != nil {
				t.Fatalf("NewZipf: %v", err)
			}
			r := New(21, 0, tt.name)
			const draws = 500_000
			counts := make([]float64, tt.n+1)
			for range draws {
				k := z.Sample(r)
				if k < 1 || k > tt.n {
					t.Fatalf("rank %d outside [1, %d]", k, tt.n)
				}
				counts[k]++
			}

			norm := 0.0
			for k := uint64(1); k <= tt.n; k++ {
				norm += math.Pow(float64(k), -tt.s)
			}
			for k := uint64(1); k <= tt.n; k++ {
				want := draws * math.Pow(float64(k), -tt.s) / norm
				if math.Abs(counts[k]-want) > 5*math.Sqrt(want)+0.01*want {
					t.Errorf("rank %d: %v draws, want about %v", k, counts[k], want)
				}
			}
		})
	}
}

func TestZipfRejectsBadParameters(t *testing.T) {
	t.Parallel()

	if _, err := NewZipf(0, 1); err == nil {
		t.Error("NewZipf(0, 1) succeeded")
	}
	if _, err := NewZipf(10, 0); err == nil {
		t.Error("NewZipf(10, 0) succeeded")
	}
	if _, err := NewZipf(10, math.Inf(1)); err == nil {
		t.Error("NewZipf(10, +Inf) succeeded")
	}
}
