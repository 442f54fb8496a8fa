package bloom

import (
	"fmt"
	"testing"
)

func TestNoFalseNegatives(t *testing.T) {
	t.Parallel()

	f := New(10_000, DefaultFalsePositiveRate)
	for i := range uint64(10_000) {
		f.AddUint64(i * 7919)
	}
	for i := range uint64(10_000) {
		if !f.MayContainUint64(i * 7919) {
			t.Fatalf("added value %d reported absent", i*7919)
		}
	}
}

func TestFalsePositiveRate(t *testing.T) {
	t.Parallel()

	const n = 20_000
	f := New(n, DefaultFalsePositiveRate)
	for i := range n {
		f.Add([]byte(fmt.Sprintf("member-%d", i)))
	}

	falsePositives := 0
	for i := range n {
		if f.MayContain([]byte(fmt.Sprintf("other-%d", i))) {
			falsePositives++
		}
	}
	rate := float64(falsePositives) / n
	if rate > 3*DefaultFalsePositiveRate {
		t.Errorf("false positive rate %.4f, want about %.2f", rate, DefaultFalsePositiveRate)
	}
}

func TestSizing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		p    float64
	}{
		{"default", 1000, 0.01},
		{"zero n", 0, 0.01},
		{"bad p", 1000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := New(tt.n, tt.p)
			for i := range uint64(100) {
				f.AddUint64(i)
			}
			for i := range uint64(100) {
				if !f.MayContainUint64(i) {
					t.Fatalf("New(%d, %v): added value %d reported absent", tt.n, tt.p, i)
				}
			}
		})
	}
}
