package keyset

import (
	"bufio"
	"fmt"
	"os"
	"unicode/utf8"

	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

const maxLineSize = 16 << 20

// corpus is file:<path>: a shuffled sample of the lines of a text file.
type corpus struct {
	path string
}

func (c corpus) Generate(r *rng.Rand, count int, _ Options) (zipfkeys.KeySet, error) {
	lines, err := readLines(c.path)
	if err != nil {
		return nil, err
	}
	if len(lines) < count {
		return nil, fmt.Errorf("%w: %s has %d lines, need %d",
			zipfkeys.ErrCorpusTooShort, c.path, len(lines), count)
	}
	pool.Shuffle(r, lines)
	return lines[:count:count], nil
}

func (c corpus) Description() string {
	return "Lines of a UTF-8 text file, shuffled"
}

// readLines reads every line of path into arena-backed keys with the line
// terminator stripped.
func readLines(path string) (zipfkeys.KeySet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var (
		a     arena
		lines zipfkeys.KeySet
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if !utf8.Valid(line) {
			return nil, fmt.Errorf("%w: %s line %d", zipfkeys.ErrInvalidCorpus, path, n)
		}
		lines = append(lines, a.copyKey(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return lines, nil
}
