package main

import "flag"

// flagSet wraps flag.FlagSet with ContinueOnError behavior, matching the
// project convention so flag-parse errors are returned to the caller
// rather than exiting the process from inside the flag package.
type flagSet struct {
	*flag.FlagSet
}

func newCustomFlagSet(name string) *flagSet {
	return &flagSet{FlagSet: flag.NewFlagSet(name, flag.ContinueOnError)}
}

// newFlagSet creates a flag.FlagSet that binds all CLI flags to cfg.
func newFlagSet(cfg *Config) *flagSet {
	fs := newCustomFlagSet("latticeattack")
	fs.StringVar(&cfg.InputFile, "f", cfg.InputFile, "path to the problem JSON input file")
	fs.BoolVar(&cfg.Loop, "l", cfg.Loop, "keep reshuffling and retrying until a key is found")
	fs.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log level 0-5 (0=silent, 5=trace)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of concurrent reshuffle attempts (requires -l)")
	return fs
}
