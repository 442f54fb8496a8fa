package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"pkg.jsn.cam/zipfkeys/internal/config"
	"pkg.jsn.cam/zipfkeys/internal/export"
	"pkg.jsn.cam/zipfkeys/internal/pool"
	"pkg.jsn.cam/zipfkeys/pkg/storage"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/keyset"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/rng"
	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys/zipf"
)

// workloadFlags binds every profile field to a flag. Only flags that were
// set on the command line override the profile.
type workloadFlags struct {
	fs      *pflag.FlagSet
	profile string
	cfg     config.Config
}

func newWorkloadFlags(name string) *workloadFlags {
	w := &workloadFlags{
		fs:  pflag.NewFlagSet(name, pflag.ExitOnError),
		cfg: config.Default(),
	}
	c := &w.cfg
	w.fs.StringVar(&w.profile, "profile", "", "TOML workload profile; flags override its values")
	w.fs.Uint64Var(&c.Stream.Seed, "seed", c.Stream.Seed, "Stream seed")
	w.fs.Uint64Var(&c.Stream.Thread, "thread", c.Stream.Thread, "Stream thread id")
	w.fs.StringVar(&c.Stream.Purpose, "purpose", c.Stream.Purpose, "Stream purpose label")
	w.fs.StringVarP(&c.Keys.Strategy, "strategy", "s", c.Keys.Strategy, "Key set strategy (see \"zipfkeys strategies\")")
	w.fs.Uint32VarP(&c.Keys.Count, "keys", "n", c.Keys.Count, "Number of keys")
	w.fs.Float64Var(&c.Keys.Density, "density", c.Keys.Density, "Key density of the int strategy, in [0.05, 1]")
	w.fs.Uint32Var(&c.Keys.Partitions, "partitions", c.Keys.Partitions, "Partition count of partitioned_id")
	w.fs.Float64Var(&c.Keys.MaxIntKeyspace, "max-int-keyspace", c.Keys.MaxIntKeyspace, "Largest keyspace the int strategy may materialize")
	w.fs.Uint64VarP(&c.Requests.Count, "requests", "r", c.Requests.Count, "Number of request indices")
	w.fs.Float64Var(&c.Requests.Skew, "skew", c.Requests.Skew, "Zipf exponent; 0 or less is uniform")
	w.fs.IntVar(&c.Run.Workers, "workers", c.Run.Workers, "Worker pool size; 0 uses GOMAXPROCS")
	w.fs.StringVarP(&c.Run.Output, "output", "o", c.Run.Output, "Export database path")
	w.fs.BoolVar(&c.Run.Debug, "debug", c.Run.Debug, "Development logging")
	return w
}

// parse applies flags, then the profile, then the flags again so that
// explicitly set flags win.
func (w *workloadFlags) parse(args []string) (config.Config, error) {
	if err := w.fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if w.profile != "" {
		// The flag values live in w.cfg, so capture them before the
		// profile overwrites it.
		var reapply []string
		w.fs.Visit(func(f *pflag.Flag) {
			if f.Name != "profile" {
				reapply = append(reapply, "--"+f.Name+"="+f.Value.String())
			}
		})
		cfg, err := config.Load(w.profile)
		if err != nil {
			return config.Config{}, err
		}
		w.cfg = cfg
		if err := w.fs.Parse(reapply); err != nil {
			return config.Config{}, err
		}
	}
	if err := w.cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid workload: %w", err)
	}
	return w.cfg, nil
}

func runGenerate(args []string) error {
	cfg, err := newWorkloadFlags("generate").parse(args)
	if err != nil {
		return err
	}
	setupLogger(cfg.Run.Debug)
	log := zipfkeys.Logger()
	pool.Init(cfg.Run.Workers)

	r := rng.New(cfg.Stream.Seed, cfg.Stream.Thread, cfg.Stream.Purpose)

	start := time.Now()
	keys, err := keyset.Load(r, cfg.Keys.Strategy, cfg.Keys.Count, cfg.KeysetOptions())
	if err != nil {
		return err
	}
	log.Info("generated keys",
		zap.String("strategy", cfg.Keys.Strategy),
		zap.Int("count", len(keys)),
		zap.String("size", humanize.Bytes(uint64(keys.Bytes()))),
		zap.Duration("took", time.Since(start)))

	start = time.Now()
	indices, err := zipf.Generate(r, cfg.Keys.Count, cfg.Requests.Skew, cfg.Requests.Count)
	if err != nil {
		return err
	}
	log.Info("generated requests",
		zap.Int("count", len(indices)),
		zap.Float64("skew", cfg.Requests.Skew),
		zap.Duration("took", time.Since(start)))

	backend, err := storage.OpenBbolt(cfg.Run.Output, false)
	if err != nil {
		return err
	}
	defer backend.Close()

	bar := progressbar.NewOptions64(int64(len(keys)+len(indices)),
		progressbar.OptionSetDescription("exporting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish())
	w := export.NewWriter(backend)
	w.Progress = func(n int) { bar.Add(n) }

	meta, err := w.Write(export.Meta{
		Strategy:   cfg.Keys.Strategy,
		Seed:       cfg.Stream.Seed,
		Thread:     cfg.Stream.Thread,
		Purpose:    cfg.Stream.Purpose,
		Density:    cfg.Keys.Density,
		Partitions: cfg.Keys.Partitions,
		Skew:       cfg.Requests.Skew,
	}, keys, indices)
	if err != nil {
		return err
	}
	bar.Finish()

	info, err := os.Stat(cfg.Run.Output)
	if err != nil {
		return err
	}
	fmt.Printf("Workload %s\n", meta.RunID)
	fmt.Printf("  Keys:      %s (%s)\n", humanize.Comma(int64(meta.KeyCount)), humanize.Bytes(meta.KeyBytes))
	fmt.Printf("  Requests:  %s\n", humanize.Comma(int64(meta.IndexCount)))
	fmt.Printf("  Output:    %s (%s)\n", cfg.Run.Output, humanize.Bytes(uint64(info.Size())))
	return nil
}
