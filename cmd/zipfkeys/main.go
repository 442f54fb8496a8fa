// Command zipfkeys generates reproducible key sets and Zipfian request
// streams for key-value store benchmarks.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
)

var commands = map[string]func(args []string) error{
	"generate":   runGenerate,
	"inspect":    runInspect,
	"keys":       runKeys,
	"strategies": runStrategies,
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: zipfkeys <command> [flags]

Commands:
  generate     generate a key set and request stream and export them
  inspect      summarize an exported workload
  keys         print a key set to stdout
  strategies   list key set strategies

Run "zipfkeys <command> --help" for the flags of a command.
`)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run dispatches a command and returns the process exit code. Errors go to
// stderr since flag and profile errors happen before a logger is installed.
func run(args []string, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(stderr)
		return 2
	}
	if err := cmd(args[1:]); err != nil {
		zipfkeys.Logger().Error("command failed", zap.String("command", args[0]), zap.Error(err))
		fmt.Fprintf(stderr, "zipfkeys %s: %v\n", args[0], err)
		return 1
	}
	_ = zipfkeys.Logger().Sync()
	return 0
}

// setupLogger installs the process logger. Debug mode also surfaces the
// engine's debug events such as repair shortfalls.
func setupLogger(debug bool) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopmentConfig().Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	zipfkeys.SetLogger(logger.With(zap.String("name", "zipfkeys")))
}
