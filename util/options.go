// Options parser utilities shared by the ldfops verbs.

package util

import (
	"flag"
	"fmt"
	"os"
	"path"
)

// NewFlagSet returns a flag set in the house style: errors are returned, not
// fatal, so that the verb can wrap them with its own usage text.

func NewFlagSet(progname, verb string) *flag.FlagSet {
	fs := flag.NewFlagSet(progname+" "+verb, flag.ContinueOnError)
	return fs
}

// Options common to all verbs.

type StandardOptions struct {
	Verbose bool
}

func AddStandardOptions(opts *flag.FlagSet) *StandardOptions {
	stdOpts := StandardOptions{}
	opts.BoolVar(&stdOpts.Verbose, "v", false, "Print verbose diagnostics to stderr")
	opts.BoolVar(&stdOpts.Verbose, "verbose", false, "Print verbose diagnostics to stderr")
	return &stdOpts
}

// Simple utility: Clean a required path and make it absolute

func RequireCleanPath(optval, optname string) (string, error) {
	if optval == "" {
		return "", fmt.Errorf("%s requires a value", optname)
	}

	optval = path.Clean(optval)
	if path.IsAbs(optval) {
		return optval, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return path.Join(wd, optval), nil
}
