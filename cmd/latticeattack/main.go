// Command latticeattack recovers an ECDSA private key from signatures
// with partially-leaked nonces, via the Hidden Number Problem lattice
// reduction.
//
// Usage:
//
//	latticeattack [flags]
//
// Flags:
//
//	-f         Path to the problem JSON input file (default: data.json)
//	-l         Keep reshuffling and retrying until a key is found
//	-v         Log level 0-5 (default: 3)
//	-workers   Number of concurrent reshuffle attempts (requires -l)
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitlogik/lattice-attack/input"
	"github.com/bitlogik/lattice-attack/log"
	"github.com/bitlogik/lattice-attack/recovery"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		return code
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logger := log.New(slogLevel(cfg.Verbosity))
	log.SetDefault(logger)
	runLog := logger.Module("cmd")

	data, err := os.ReadFile(cfg.InputFile)
	if err != nil {
		runLog.Error("reading input file", "error", err)
		return 1
	}

	problem, err := input.Parse(data)
	if err != nil {
		runLog.Error("parsing input", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := recovery.Options{Loop: cfg.Loop, Logger: logger.Module("recovery")}

	var key *big.Int
	if cfg.Loop && cfg.Workers > 1 {
		key, err = recovery.RecoverConcurrent(ctx, problem, cfg.Workers, opts)
	} else {
		key, err = recovery.Recover(ctx, problem, opts)
	}
	if err != nil {
		return exitForError(runLog, err)
	}

	fmt.Printf("0x%x\n", key)
	return 0
}

func exitForError(runLog *log.Logger, err error) int {
	if errors.Is(err, recovery.ErrNotFound) {
		runLog.Info("recovery exhausted without a match")
		return 1
	}
	runLog.Error("recovery failed", "error", err)
	return 1
}

// parseFlags parses CLI arguments into a Config. Returns the config,
// whether the caller should exit immediately, and the exit code.
func parseFlags(args []string) (Config, bool, int) {
	cfg := DefaultConfig()
	fs := newFlagSet(&cfg)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, true, 2
	}
	return cfg, false, 0
}

func slogLevel(verbosity int) slog.Level {
	switch verbosityToLogLevel(verbosity) {
	case "silent":
		return slog.LevelError + 4 // above every level the tool logs at
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
