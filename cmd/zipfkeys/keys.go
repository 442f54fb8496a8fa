package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/keyset"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
)

func runKeys(args []string) error {
	w := newWorkloadFlags("keys")
	asHex := w.fs.Bool("hex", false, "Print keys as hex instead of the debug rendering")
	cfg, err := w.parse(args)
	if err != nil {
		return err
	}
	setupLogger(cfg.Run.Debug)
	pool.Init(cfg.Run.Workers)

	r := rng.New(cfg.Stream.Seed, cfg.Stream.Thread, cfg.Stream.Purpose)
	keys, err := keyset.Load(r, cfg.Keys.Strategy, cfg.Keys.Count, cfg.KeysetOptions())
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for _, k := range keys {
		if *asHex {
			fmt.Fprintln(out, hex.EncodeToString(k))
			continue
		}
		fmt.Fprintln(out, k)
	}
	return nil
}

func runStrategies([]string) error {
	for _, name := range keyset.List() {
		desc, err := keyset.Describe(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-16s %s\n", name, desc)
	}
	return nil
}
