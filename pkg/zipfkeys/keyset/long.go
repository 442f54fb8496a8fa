package keyset

import (
	"bytes"
	"fmt"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

// MaxLongKeyCount caps long1 and long2, whose total size grows with the
// square of the count.
const MaxLongKeyCount = 1 << 14

// long is a ladder of keys where key i is i bytes long.
type long struct {
	random bool
}

func (l long) Generate(r *rng.Rand, count int, _ Options) (zipfkeys.KeySet, error) {
	if count > MaxLongKeyCount {
		return nil, fmt.Errorf("%w: %d long keys, max %d",
			zipfkeys.ErrCountTooLarge, count, MaxLongKeyCount)
	}

	var a arena
	keys := make(zipfkeys.KeySet, count)
	for i := range keys {
		if !l.random {
			keys[i] = a.copyKey(bytes.Repeat([]byte{'A'}, i))
			continue
		}
		k := make([]byte, i)
		for j := range k {
			k[j] = 'A' + byte(r.Uint64()%60)
		}
		keys[i] = a.copyKey(k)
	}
	return keys, nil
}

func (l long) Description() string {
	if l.random {
		return "Key i is i random letters from 'A' to 'A'+59"
	}
	return "Key i is i repetitions of 'A'"
}
