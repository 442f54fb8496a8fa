package pool

import (
	"cmp"
	"slices"
)

// Inputs shorter than this are handled on the calling goroutine.
const serialCutoff = 1 << 14

// Sort sorts s in ascending order using the process-wide pool.
func Sort[T cmp.Ordered](s []T) {
	SortFunc(s, cmp.Compare[T])
}

// SortFunc sorts s by cmp: runs are sorted in parallel, then merged pairwise
// in parallel rounds. Elements that compare equal must be interchangeable,
// which holds for every caller in this module.
func SortFunc[T any](s []T, cmp func(a, b T) int) {
	p := Default()
	if len(s) < serialCutoff || p.Size() == 1 {
		slices.SortFunc(s, cmp)
		return
	}

	runs := Chunks(len(s), (len(s)+p.Size()-1)/p.Size())
	p.Run(len(runs), func(i int) {
		slices.SortFunc(s[runs[i][0]:runs[i][1]], cmp)
	})

	src, dst := s, make([]T, len(s))
	for len(runs) > 1 {
		merged := make([][2]int, (len(runs)+1)/2)
		p.Run(len(merged), func(i int) {
			a := runs[2*i]
			if 2*i+1 == len(runs) {
				copy(dst[a[0]:a[1]], src[a[0]:a[1]])
				merged[i] = a
				return
			}
			b := runs[2*i+1]
			merge(dst[a[0]:b[1]], src[a[0]:a[1]], src[b[0]:b[1]], cmp)
			merged[i] = [2]int{a[0], b[1]}
		})
		runs = merged
		src, dst = dst, src
	}
	if &src[0] != &s[0] {
		copy(s, src)
	}
}

func merge[T any](dst, a, b []T, cmp func(a, b T) int) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if cmp(b[j], a[i]) < 0 {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}

// Compact removes adjacent duplicates from sorted s and returns the shortened
// slice.
func Compact[T comparable](s []T) []T {
	return CompactFunc(s, func(a, b T) bool { return a == b })
}

// CompactFunc removes adjacent elements that eq reports equal. Chunks are
// compacted in parallel, then slid together.
func CompactFunc[T any](s []T, eq func(a, b T) bool) []T {
	p := Default()
	if len(s) < serialCutoff || p.Size() == 1 {
		return slices.CompactFunc(s, eq)
	}

	chunks := Chunks(len(s), (len(s)+p.Size()-1)/p.Size())
	// Boundary elements are read before any chunk is rewritten.
	prev := make([]T, len(chunks))
	for i, c := range chunks {
		if c[0] > 0 {
			prev[i] = s[c[0]-1]
		}
	}
	kept := make([]int, len(chunks))
	p.Run(len(chunks), func(i int) {
		start, end := chunks[i][0], chunks[i][1]
		w := start
		last, hasLast := prev[i], start > 0
		for r := start; r < end; r++ {
			if hasLast && eq(s[r], last) {
				continue
			}
			last, hasLast = s[r], true
			s[w] = s[r]
			w++
		}
		kept[i] = w - start
	})

	n := 0
	for i, c := range chunks {
		n += copy(s[n:], s[c[0]:c[0]+kept[i]])
	}
	clear(s[n:])
	return s[:n]
}
