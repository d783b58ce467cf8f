package cmd

import (
	"context"

	"github.com/ardnew/asciimath/cli/cmd/repl"
	"github.com/ardnew/asciimath/log"
	"github.com/ardnew/asciimath/pkg"
)

// Repl starts an interactive session.
type Repl struct{}

// Run executes the repl command.
func (Repl) Run(ctx context.Context, g *Globals) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	scope, err := g.Scope(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, repl.Config{
		Scope:    scope,
		Options:  g.Options,
		Split:    SplitBinding,
		CacheDir: cacheDir(ctx),
		Logger:   log.Default(),
	})
}

// cacheDir returns the cache directory configured on the command line, or
// the package default.
func cacheDir(ctx context.Context) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			return dir
		}
	}

	return pkg.CacheDir()
}
