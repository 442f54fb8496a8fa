package pool

import (
	"bytes"
	"slices"
	"sync/atomic"
	"testing"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

func TestDefaultIsSingleton(t *testing.T) {
	t.Parallel()

	if Default() != Default() {
		t.Fatal("Default returned two different pools")
	}
	if Init(3) {
		t.Error("Init reported starting a pool that was already running")
	}
	if Default().Size() < 1 {
		t.Errorf("pool size = %d, want at least 1", Default().Size())
	}
}

func TestRunVisitsEveryIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"one", 1},
		{"many", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seen := make([]int32, tt.n)
			var total atomic.Int64
			Run(tt.n, func(i int) {
				atomic.AddInt32(&seen[i], 1)
				total.Add(1)
			})
			if total.Load() != int64(tt.n) {
				t.Fatalf("ran %d tasks, want %d", total.Load(), tt.n)
			}
			for i, c := range seen {
				if c != 1 {
					t.Fatalf("index %d ran %d times", i, c)
				}
			}
		})
	}
}

func TestRunPropagatesPanic(t *testing.T) {
	t.Parallel()

	p := New(4)
	defer func() {
		if recover() == nil {
			t.Error("Run did not re-raise the task panic")
		}
	}()
	p.Run(8, func(i int) {
		if i == 5 {
			panic("boom")
		}
	})
}

func TestChunks(t *testing.T) {
	t.Parallel()

	got := Chunks(10, 4)
	want := [][2]int{{0, 4}, {4, 8}, {8, 10}}
	if !slices.Equal(got, want) {
		t.Errorf("Chunks(10, 4) = %v, want %v", got, want)
	}
	if len(Chunks(0, 4)) != 0 {
		t.Error("Chunks(0, 4) not empty")
	}
}

func TestSortMatchesSerial(t *testing.T) {
	t.Parallel()

	r := rng.New(1, 0, "sort")
	for _, n := range []int{0, 5, serialCutoff - 1, serialCutoff * 5} {
		s := make([]uint64, n)
		for i := range s {
			s[i] = r.Uint64N(uint64(n/3 + 1))
		}
		want := slices.Clone(s)
		slices.Sort(want)
		Sort(s)
		if !slices.Equal(s, want) {
			t.Fatalf("n=%d: parallel sort differs from slices.Sort", n)
		}
	}
}

func TestSortFuncBytes(t *testing.T) {
	t.Parallel()

	r := rng.New(2, 0, "sortbytes")
	s := make([][]byte, serialCutoff*3)
	for i := range s {
		s[i] = make([]byte, 1+r.IntN(6))
		r.Fill(s[i])
	}
	SortFunc(s, bytes.Compare)
	if !slices.IsSortedFunc(s, bytes.Compare) {
		t.Fatal("SortFunc left byte keys unsorted")
	}
}

func TestCompactMatchesSerial(t *testing.T) {
	t.Parallel()

	r := rng.New(3, 0, "compact")
	for _, n := range []int{0, 1, 100, serialCutoff * 4} {
		s := make([]uint32, n)
		for i := range s {
			s[i] = r.Uint32N(uint32(n/2 + 1))
		}
		slices.Sort(s)
		want := slices.Compact(slices.Clone(s))
		got := Compact(s)
		if !slices.Equal(got, want) {
			t.Fatalf("n=%d: Compact kept %d, want %d", n, len(got), len(want))
		}
	}
}

func TestCompactAcrossChunkBoundary(t *testing.T) {
	t.Parallel()

	s := make([]uint32, serialCutoff*2)
	for i := range s {
		s[i] = 7
	}
	got := Compact(s)
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("Compact of a constant slice = %v", got[:min(len(got), 4)])
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	t.Parallel()

	for _, n := range []uint32{10, serialCutoff * 3} {
		s := Iota(n)
		Shuffle(rng.New(4, 0, "shuffle"), s)
		sorted := slices.Clone(s)
		slices.Sort(sorted)
		if !slices.Equal(sorted, Iota(n)) {
			t.Fatalf("n=%d: shuffle lost or duplicated elements", n)
		}
		if slices.Equal(s, Iota(n)) {
			t.Fatalf("n=%d: shuffle left the input in order", n)
		}
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	t.Parallel()

	a := Iota(serialCutoff * 2)
	b := Iota(serialCutoff * 2)
	Shuffle(rng.New(5, 0, "det"), a)
	Shuffle(rng.New(5, 0, "det"), b)
	if !slices.Equal(a, b) {
		t.Fatal("equal seeds produced different shuffles")
	}
}

func TestShufflePositionsAreUniform(t *testing.T) {
	t.Parallel()

	// Track where element 0 lands over many large shuffles.
	const n = serialCutoff * 2
	const rounds = 400
	r := rng.New(6, 0, "uniform")
	halves := [2]int{}
	for range rounds {
		s := Iota(n)
		Shuffle(r, s)
		pos := slices.Index(s, 0)
		halves[pos*2/n]++
	}
	if halves[0] < rounds/4 || halves[1] < rounds/4 {
		t.Errorf("element 0 landed in halves %v, want roughly even", halves)
	}
}
