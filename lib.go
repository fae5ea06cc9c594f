package golisp

import (
	"bytes"
	"embed"
	"io/fs"
	"sort"

	"github.com/sirupsen/logrus"
)

//go:embed lib/*.lisp
var preludeFS embed.FS

// LoadPrelude evaluates every embedded .lisp file into env, in a fixed sort
// order so later files may depend on earlier ones. Each form is parsed
// against a running compile-time environment seeded from the prelude's own
// defines, so the prelude's internal shadowing behaves exactly like
// user-entered code would. Top-level defines use the same
// placeholder-then-patch pattern as the REPL, reassigning env directly
// rather than going through defineExpr.Eval, so each definition actually
// accumulates for the forms that follow it instead of being immediately
// discarded. A definition that fails to parse or evaluate is logged and
// skipped rather than aborting the rest of the prelude.
func LoadPrelude(env *Env, log *logrus.Logger) (*Env, error) {
	entries, err := fs.ReadDir(preludeFS, "lib")
	if err != nil {
		return env, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var parseEnv *Env
	for _, name := range names {
		data, err := preludeFS.ReadFile("lib/" + name)
		if err != nil {
			return env, err
		}
		rd := NewReader(bytes.NewReader(data))
		for {
			stx, err := rd.ReadSyntax()
			if err != nil {
				break
			}
			expr, perr := Parse(stx, parseEnv)
			if perr != nil {
				if log != nil {
					log.WithField("file", name).Infof("prelude definition skipped: %v", perr)
				}
				continue
			}
			if d, ok := expr.(*defineExpr); ok {
				parseEnv = Extend(d.name, voidValue, parseEnv)
				env = ensureBound(d.name, env)
				v, err := d.rhs.Eval(env)
				if err != nil {
					if log != nil {
						log.WithField("file", name).Infof("prelude definition skipped: %v", err)
					}
					continue
				}
				Modify(d.name, v, env)
				continue
			}
			if _, err := expr.Eval(env); err != nil && log != nil {
				log.WithField("file", name).Infof("prelude definition skipped: %v", err)
			}
		}
	}
	return env, nil
}
