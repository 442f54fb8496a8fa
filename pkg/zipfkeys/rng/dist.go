package rng

import (
	"fmt"
	"math"
)

// Geometric counts the failures before the first success of a Bernoulli(p)
// trial.
type Geometric struct {
	p       float64
	logFail float64
}

// NewGeometric returns the distribution for success probability p in (0, 1].
func NewGeometric(p float64) (Geometric, error) {
	if !(p > 0 && p <= 1) {
		return Geometric{}, fmt.Errorf("geometric probability %v out of range (0, 1]", p)
	}
	return Geometric{p: p, logFail: math.Log1p(-p)}, nil
}

// MustGeometric is NewGeometric for constant parameters.
func MustGeometric(p float64) Geometric {
	g, err := NewGeometric(p)
	if err != nil {
		panic(err)
	}
	return g
}

// Sample draws by inversion.
func (g Geometric) Sample(r *Rand) uint64 {
	if g.p == 1 {
		return 0
	}
	// 1-U lies in (0, 1] so the logarithm stays finite.
	u := 1 - r.Float64()
	v := math.Floor(math.Log(u) / g.logFail)
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(v)
}

// Zipf samples ranks in [1, n] with probability proportional to 1/k^s using
// rejection-inversion (Hörmann and Derflinger). Unlike math/rand.Zipf it
// accepts any exponent s > 0, including the common s = 1.
type Zipf struct {
	n         float64
	s         float64
	hX1       float64
	hN        float64
	threshold float64
}

// NewZipf builds a sampler over n elements with exponent s.
func NewZipf(n uint64, s float64) (*Zipf, error) {
	if n < 1 {
		return nil, fmt.Errorf("zipf element count must be at least 1")
	}
	if !(s > 0) || math.IsInf(s, 1) {
		return nil, fmt.Errorf("zipf exponent %v must be positive and finite", s)
	}
	z := &Zipf{n: float64(n), s: s}
	z.hX1 = z.hIntegral(1.5) - 1
	z.hN = z.hIntegral(z.n + 0.5)
	z.threshold = 2 - z.hIntegralInverse(z.hIntegral(2.5)-z.h(2))
	return z, nil
}

// N returns the number of ranks.
func (z *Zipf) N() uint64 {
	return uint64(z.n)
}

// Sample draws one rank in [1, N()].
func (z *Zipf) Sample(r *Rand) uint64 {
	for {
		u := z.hN + r.Float64()*(z.hX1-z.hN)
		x := z.hIntegralInverse(u)
		k := math.Floor(x + 0.5)
		if k < 1 {
			k = 1
		} else if k > z.n {
			k = z.n
		}
		if k-x <= z.threshold || u >= z.hIntegral(k+0.5)-z.h(k) {
			return uint64(k)
		}
	}
}

func (z *Zipf) h(x float64) float64 {
	return math.Exp(-z.s * math.Log(x))
}

func (z *Zipf) hIntegral(x float64) float64 {
	logX := math.Log(x)
	return helper2((1-z.s)*logX) * logX
}

func (z *Zipf) hIntegralInverse(x float64) float64 {
	t := x * (1 - z.s)
	if t < -1 {
		t = -1
	}
	return math.Exp(helper1(t) * x)
}

// helper1 is log1p(x)/x, stable around 0.
func helper1(x float64) float64 {
	if math.Abs(x) > 1e-8 {
		return math.Log1p(x) / x
	}
	return 1 - x*(0.5-x*(1.0/3.0-0.25*x))
}

// helper2 is expm1(x)/x, stable around 0.
func helper2(x float64) float64 {
	if math.Abs(x) > 1e-8 {
		return math.Expm1(x) / x
	}
	return 1 + x*0.5*(1+x*(1.0/3.0)*(1+0.25*x))
}
