package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/asciimath/lang"
)

// Eval evaluates expressions and prints one result per line.
type Eval struct {
	Exprs  []string `arg:"" help:"Expressions to evaluate (use -- before an expression starting with '-')." name:"expr" optional:""`
	Source string   `       help:"Read expressions one per line from FILE, or '-' for stdin."                   placeholder:"FILE" short:"f"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, g *Globals) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	scope, err := g.Scope(ctx)
	if err != nil {
		return err
	}

	if len(e.Exprs) == 0 && e.Source == "" {
		return ErrNoInput
	}

	w := outputFrom(ctx)

	for i, expr := range e.Exprs {
		err := evalLine(ctx, w, g, scope, expr)
		if err != nil {
			return lang.WrapError(err).With(
				slog.String("command", "eval"),
				slog.Int("arg", i+1),
			)
		}
	}

	if e.Source == "" {
		return nil
	}

	r, closeSource, err := e.openSource(ctx)
	if err != nil {
		return ErrReadSource.Wrap(err).With(slog.String("file", e.Source))
	}
	defer closeSource()

	line := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++

		expr := strings.TrimSpace(scanner.Text())
		if expr == "" || strings.HasPrefix(expr, "#") {
			continue
		}

		err := evalLine(ctx, w, g, scope, expr)
		if err != nil {
			return lang.WrapError(err).With(
				slog.String("command", "eval"),
				slog.String("file", e.Source),
				slog.Int("line", line),
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return ErrReadSource.Wrap(err).With(slog.String("file", e.Source))
	}

	return nil
}

func (e *Eval) openSource(ctx context.Context) (io.Reader, func(), error) {
	if e.Source == stdinSource {
		return inputFrom(ctx), func() {}, nil
	}

	f, err := os.Open(e.Source)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { _ = f.Close() }, nil
}

// evalLine evaluates expr in scope and writes the result to w. A line
// containing '=' is a NAME = EXPR binding: the result is stored in scope
// instead of printed.
func evalLine(
	ctx context.Context,
	w io.Writer,
	g *Globals,
	scope *lang.Scope,
	expr string,
) error {
	name := ""
	if strings.ContainsRune(expr, '=') {
		var err error

		name, expr, err = SplitBinding(expr)
		if err != nil {
			return err
		}
	}

	root, err := lang.ParseContext(ctx, expr, g.Options(scope)...)
	if err != nil {
		return err
	}

	v, err := root.EvalContext(ctx)
	if err != nil {
		return err
	}

	if name != "" {
		scope.SetNumber(name, v)

		return nil
	}

	_, err = fmt.Fprintf(w, "%g\n", v)

	return err
}
