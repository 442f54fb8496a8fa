package zipfkeys

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Key is an immutable byte string produced by a key set strategy.
// Nothing in this module writes to a Key after it has been returned.
type Key []byte

// KeySet is an ordered sequence of exactly the requested number of keys.
//
// A KeySet is owned by the caller once returned; the engine keeps no
// reference to it and offers no release call. Memory goes back to the
// runtime when the caller drops the set, or at process exit for hosts that
// keep it for their whole lifetime.
type KeySet []Key

// Uint32Key encodes x as a 4 byte big-endian key.
func Uint32Key(x uint32) Key {
	return binary.BigEndian.AppendUint32(make(Key, 0, 4), x)
}

// Uint64Key encodes x as an 8 byte big-endian key.
func Uint64Key(x uint64) Key {
	return binary.BigEndian.AppendUint64(make(Key, 0, 8), x)
}

// String renders printable keys as quoted text and everything else as
// bytes. Short printable keys get both.
func (k Key) String() string {
	showText := len(k) > 10 || isGraphic(k)
	switch {
	case showText && len(k) <= 8:
		return fmt.Sprintf("Key(%s, %v)", strconv.Quote(string(k)), []byte(k))
	case showText:
		return fmt.Sprintf("Key(%s)", strconv.Quote(string(k)))
	default:
		return fmt.Sprintf("Key(%v)", []byte(k))
	}
}

func isGraphic(b []byte) bool {
	for _, c := range b {
		if c <= ' ' || c > '~' {
			return false
		}
	}
	return true
}

// Bytes returns the total payload size of the set.
func (s KeySet) Bytes() int {
	n := 0
	for _, k := range s {
		n += len(k)
	}
	return n
}
