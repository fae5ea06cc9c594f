package main

import (
	"flag"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/riftlisp/lispcore"
	"github.com/riftlisp/lispcore/internal/replconfig"
)

func main() {
	cfg, err := replconfig.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.New()
	log.SetLevel(cfg.LogLevel())

	evalEnv, parseEnv := (*golisp.Env)(nil), (*golisp.Env)(nil)
	if !cfg.NoPrelude {
		var err error
		evalEnv, err = golisp.LoadPrelude(evalEnv, log)
		if err != nil {
			log.WithError(err).Fatal("failed to load prelude")
		}
	}

	var f *os.File
	interactive := false

	switch flag.NArg() {
	case 0:
		if isatty.IsTerminal(os.Stdin.Fd()) {
			interactive = true
		}
		f = os.Stdin
	case 1:
		f, err = os.Open(flag.Arg(0))
		if err != nil {
			log.WithError(err).Fatal("failed to open input file")
		}
		defer f.Close()
	}

	log.Info("lispcore starting")
	r := golisp.NewREPL(f, os.Stdout, parseEnv, evalEnv, log)
	r.SetPrompt(cfg.Prompt)
	if err := r.Run(interactive); err != nil {
		log.WithError(err).Fatal("repl terminated")
	}
	log.Info("lispcore shutting down")
}
