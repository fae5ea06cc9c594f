// Package replconfig holds the small set of flags the lispcore binary
// accepts. The interpreter core itself takes no configuration: no
// environment variables, no on-disk config file, no CLI arguments beyond
// these — that bounds the core's contract, not the driver binary wrapping
// it.
package replconfig

import (
	"flag"

	"github.com/sirupsen/logrus"
)

// Config is the parsed flag set for a single lispcore invocation.
type Config struct {
	Prompt    string
	NoPrelude bool
	Verbose   bool
}

// Parse registers the flags on fs and parses args, returning the resulting
// Config. fs is normally flag.CommandLine; a fresh FlagSet is accepted so
// tests can parse without touching global state.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.Prompt, "prompt", "> ", "REPL prompt string")
	fs.BoolVar(&cfg.NoPrelude, "no-prelude", false, "skip loading the built-in library")
	fs.BoolVar(&cfg.Verbose, "v", false, "log caught runtime errors at debug level")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LogLevel returns the logrus level implied by the config.
func (c Config) LogLevel() logrus.Level {
	if c.Verbose {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}
