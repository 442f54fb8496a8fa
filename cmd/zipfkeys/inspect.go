package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"pkg.jsn.cam/zipfkeys/internal/export"
	"pkg.jsn.cam/zipfkeys/pkg/storage"
)

type hotKey struct {
	index uint32
	hits  int
}

func runInspect(args []string) error {
	fs := pflag.NewFlagSet("inspect", pflag.ExitOnError)
	path := fs.StringP("output", "o", "var/workload.db", "Export database path")
	top := fs.Int("top", 10, "Number of hottest keys to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	backend, err := storage.OpenBbolt(*path, true)
	if err != nil {
		return err
	}
	defer backend.Close()

	w, err := export.NewReader(backend).Read()
	if err != nil {
		return err
	}
	m := w.Meta

	fmt.Printf("Workload %s (format %s)\n", m.RunID, m.FormatVersion)
	fmt.Printf("  Created:   %s (%s)\n", m.CreatedAt.Format("2006-01-02 15:04:05"), humanize.Time(m.CreatedAt))
	fmt.Printf("  Stream:    seed=%d thread=%d purpose=%q\n", m.Seed, m.Thread, m.Purpose)
	fmt.Printf("  Strategy:  %s\n", m.Strategy)
	fmt.Printf("  Keys:      %s (%s, avg %.1f B)\n",
		humanize.Comma(int64(m.KeyCount)), humanize.Bytes(m.KeyBytes), avg(m.KeyBytes, uint64(m.KeyCount)))
	fmt.Printf("  Requests:  %s at skew %v\n", humanize.Comma(int64(m.IndexCount)), m.Skew)

	if len(w.Indices) == 0 || *top <= 0 {
		return nil
	}
	hits := make([]int, m.KeyCount)
	for _, i := range w.Indices {
		hits[i]++
	}
	hot := make([]hotKey, 0, len(hits))
	for i, h := range hits {
		if h > 0 {
			hot = append(hot, hotKey{index: uint32(i), hits: h})
		}
	}
	slices.SortFunc(hot, func(a, b hotKey) int {
		return cmp.Or(cmp.Compare(b.hits, a.hits), cmp.Compare(a.index, b.index))
	})

	fmt.Printf("  Touched:   %s distinct keys\n", humanize.Comma(int64(len(hot))))
	fmt.Printf("\nHottest keys:\n")
	for _, h := range hot[:min(*top, len(hot))] {
		share := 100 * float64(h.hits) / float64(len(w.Indices))
		fmt.Printf("  #%-10d %10s  %5.2f%%  %s\n", h.index, humanize.Comma(int64(h.hits)), share, w.Keys[h.index])
	}
	return nil
}

func avg(total, n uint64) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
