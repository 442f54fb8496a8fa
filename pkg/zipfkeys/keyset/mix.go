package keyset

import (
	"path/filepath"

	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

// mix is mix:<dir>: a quarter each of rng4, <dir>/urls-short and
// <dir>/wiki, the rest from int, shuffled together.
type mix struct {
	dir string
}

func (m mix) Generate(r *rng.Rand, count int, opts Options) (zipfkeys.KeySet, error) {
	quarter := count / 4
	parts := []struct {
		s     Strategy
		count int
	}{
		{fixed32{}, quarter},
		{corpus{path: filepath.Join(m.dir, "urls-short")}, quarter},
		{corpus{path: filepath.Join(m.dir, "wiki")}, quarter},
		{dense{}, count - 3*quarter},
	}

	keys := make(zipfkeys.KeySet, 0, count)
	for _, part := range parts {
		ks, err := part.s.Generate(r, part.count, opts)
		if err != nil {
			return nil, err
		}
		keys = append(keys, ks...)
	}
	pool.Shuffle(r, keys)
	return keys, nil
}

func (m mix) Description() string {
	return "A quarter each of rng4, <dir>/urls-short and <dir>/wiki, the rest int"
}
