package keyset

import (
	"encoding/binary"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/unique"
)

const syntheticMinChunk = 16

var (
	// branching draws the fan-out of a path segment
	branching = rng.MustGeometric(0.08)
	// gap draws the distance between sequential keys
	gap = rng.MustGeometric(0.7)
)

// synthetic is test: a mix of four key shapes with realistic prefix
// sharing.
type synthetic struct{}

func (synthetic) Generate(r *rng.Rand, count int, _ Options) (zipfkeys.KeySet, error) {
	pathSeed := r.Uint64()
	out, err := unique.Bytes(r, count, syntheticMinChunk, 0, func(st *rng.Rand) unique.Drawer {
		g := &shapes{r: st, pathSeed: pathSeed, seq: st.Uint64()}
		return g.next
	})
	if err != nil {
		return nil, err
	}
	keys := make(zipfkeys.KeySet, len(out))
	for i, k := range out {
		keys[i] = k
	}
	return keys, nil
}

func (synthetic) Description() string {
	return "Random bytes, bit strings, dictionary paths and sequential integers"
}

// shapes draws keys for one chunk. Each chunk owns its sequential counter.
type shapes struct {
	r        *rng.Rand
	pathSeed uint64
	seq      uint64
	a        arena
}

func (g *shapes) next() []byte {
	switch g.r.IntN(4) {
	case 0:
		return g.randomBytes()
	case 1:
		return g.bitString()
	case 2:
		return g.path()
	default:
		return g.sequential()
	}
}

func (g *shapes) randomBytes() []byte {
	var buf [7]byte
	k := buf[:3+g.r.IntN(5)]
	g.r.Fill(k)
	return g.a.copyKey(k)
}

func (g *shapes) bitString() []byte {
	var buf [59]byte
	k := buf[:20+g.r.IntN(40)]
	for i := range k {
		k[i] = '0'
		if g.r.Bool() {
			k[i] = '1'
		}
	}
	return g.a.copyKey(k)
}

// path chains dictionary words. Every segment seed fixes how many words
// may follow it, so paths share prefixes like a directory tree.
func (g *shapes) path() []byte {
	dict := words()
	var buf []byte
	seed := g.pathSeed
	for i, n := 0, 8+g.r.IntN(4); i < n; i++ {
		choices := 2 + branching.Sample(rng.FromUint64(seed))
		wordID := rng.HashPair(seed, g.r.Uint64()%choices) % uint64(len(dict))
		seed = rng.HashPair(wordID, seed)
		if i > 0 {
			buf = append(buf, '/')
		}
		buf = append(buf, dict[wordID]...)
	}
	return g.a.copyKey(buf)
}

func (g *shapes) sequential() []byte {
	g.seq += gap.Sample(g.r) + 1
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], g.seq)
	return g.a.copyKey(buf[:])
}
