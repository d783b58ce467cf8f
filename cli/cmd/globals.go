package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/asciimath/lang"
	"github.com/ardnew/asciimath/log"
)

// Globals are the flags shared by every command.
type Globals struct {
	Var      []string `help:"Bind NAME to the value of EXPR (repeatable)."                         placeholder:"NAME=EXPR" sep:"none" short:"v"`
	Defs     []string `help:"Load a YAML definitions file, searched in ASCIIMATH_PATH (repeatable)." placeholder:"FILE"      sep:"none" short:"d"`
	Strict   bool     `help:"Reject unexpected characters instead of ignoring them."`
	MaxDepth int      `default:"${maxDepth}" help:"Maximum expression nesting depth."`
}

// Options returns the parse options selected by the flags, evaluating in
// scope.
func (g *Globals) Options(scope *lang.Scope) []lang.Option {
	return []lang.Option{
		lang.WithScope(scope),
		lang.WithStrict(g.Strict),
		lang.WithMaxDepth(g.MaxDepth),
		lang.WithLogger(log.Default()),
	}
}

// Scope builds the evaluation scope: each definitions file in order, then
// each --var binding in order. Later bindings may refer to earlier ones.
func (g *Globals) Scope(ctx context.Context) (*lang.Scope, error) {
	scope := lang.NewScope()

	srcs, closeAll, err := openSources(g.Defs)
	if err != nil {
		return nil, ErrLoadDefs.Wrap(err)
	}
	defer closeAll()

	for _, src := range srcs {
		err := lang.LoadDefs(ctx, src, scope, g.Options(scope)...)
		if err != nil {
			return nil, ErrLoadDefs.Wrap(err).With(slog.String("file", src.name))
		}

		log.DebugContext(ctx, "loaded definitions",
			slog.String("file", src.name),
			slog.Int("names", scope.Len()),
		)
	}

	for _, v := range g.Var {
		name, value, err := g.bind(ctx, scope, v)
		if err != nil {
			return nil, ErrInvalidVar.Wrap(err).With(slog.String("var", v))
		}

		log.TraceContext(ctx, "bound variable",
			slog.String("name", name),
			slog.Float64("value", value),
		)
	}

	return scope, nil
}

// bind evaluates a NAME=EXPR binding and stores the result in scope.
func (g *Globals) bind(
	ctx context.Context,
	scope *lang.Scope,
	binding string,
) (string, float64, error) {
	name, expr, err := SplitBinding(binding)
	if err != nil {
		return "", 0, err
	}

	root, err := lang.ParseContext(ctx, expr, g.Options(scope)...)
	if err != nil {
		return name, 0, err
	}

	value, err := root.EvalContext(ctx)
	if err != nil {
		return name, 0, err
	}

	scope.SetNumber(name, value)

	return name, value, nil
}

// SplitBinding splits "NAME = EXPR" into its trimmed parts. NAME must be an
// identifier: a letter or underscore followed by letters, digits, or
// underscores.
func SplitBinding(s string) (name, expr string, err error) {
	name, expr, ok := strings.Cut(s, "=")
	name, expr = strings.TrimSpace(name), strings.TrimSpace(expr)

	switch {
	case !ok:
		return "", "", ErrMissingAssign
	case !IsIdentifier(name):
		return "", "", ErrInvalidName.Wrap(errors.New(strconv.Quote(name)))
	case expr == "":
		return "", "", lang.ErrMissingOperands.Detail(name)
	}

	return name, expr, nil
}

// IsIdentifier reports whether s can be bound as a variable name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}

	return true
}
