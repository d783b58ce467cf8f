package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/asciimath/lang"
)

// Fmt parses an expression and writes it back out in the chosen format.
type Fmt struct {
	Infix Infix `cmd:"" default:"withargs" help:"Format as canonical infix (default)."`
	JSON  JSON  `cmd:""                    help:"Format as JSON."`
	YAML  YAML  `cmd:""                    help:"Format as YAML."`
	AST   AST   `cmd:""                    help:"Format as an indented syntax tree."`
}

// Infix formats input as canonical infix notation.
type Infix struct {
	Expr string `arg:"" default:"-" help:"Expression to format, or '-' to read stdin." name:"expr"`
}

// Run executes the infix command.
func (f *Infix) Run(ctx context.Context, g *Globals) (err error) {
	root, err := parseFmt(ctx, g, f.Expr, "infix")
	if err != nil {
		return err
	}

	return root.Format(outputFrom(ctx))
}

// JSON formats input as a JSON syntax tree.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output." short:"i"`

	Expr string `arg:"" default:"-" help:"Expression to format, or '-' to read stdin." name:"expr"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context, g *Globals) (err error) {
	root, err := parseFmt(ctx, g, j.Expr, "json")
	if err != nil {
		return err
	}

	return root.FormatJSON(ctx, outputFrom(ctx), j.Indent)
}

// YAML formats input as a YAML syntax tree.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output." short:"i"`

	Expr string `arg:"" default:"-" help:"Expression to format, or '-' to read stdin." name:"expr"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context, g *Globals) (err error) {
	root, err := parseFmt(ctx, g, y.Expr, "yaml")
	if err != nil {
		return err
	}

	return root.FormatYAML(ctx, outputFrom(ctx), y.Indent)
}

// AST prints the syntax tree one node per line.
type AST struct {
	Expr string `arg:"" default:"-" help:"Expression to format, or '-' to read stdin." name:"expr"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context, g *Globals) (err error) {
	root, err := parseFmt(ctx, g, a.Expr, "ast")
	if err != nil {
		return err
	}

	return root.Print(outputFrom(ctx))
}

// parseFmt parses expr, or all of stdin when expr is "-", using the scope and
// parser options from g.
func parseFmt(
	ctx context.Context,
	g *Globals,
	expr, format string,
) (*lang.Root, error) {
	scope, err := g.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var root *lang.Root
	if expr == stdinSource {
		root, err = lang.ParseReader(ctx, inputFrom(ctx), g.Options(scope)...)
	} else {
		root, err = lang.ParseContext(ctx, expr, g.Options(scope)...)
	}

	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("format", format))
	}

	return root, nil
}
