package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/asciimath/log"
)

// DefaultMaxDepth is the default maximum nesting depth of a parsed
// expression. It limits parser recursion, not tree height: a long chain of
// alternating operators such as 1-1+1-1 is built without recursion.
const DefaultMaxDepth = 256

// Node is a node of an expression tree.
//
// Operator and function nodes carry their operands in Args. Number and
// variable nodes are leaves. A function node with nil Args has no argument
// list at all, which is distinct from an empty one.
type Node struct {
	Args  []*Node
	Token Token
}

// Equal reports whether n and other have the same shape and tokens.
// Token positions are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	if !n.Token.Same(other.Token) {
		return false
	}

	if (n.Args == nil) != (other.Args == nil) || len(n.Args) != len(other.Args) {
		return false
	}

	for i, arg := range n.Args {
		if !arg.Equal(other.Args[i]) {
			return false
		}
	}

	return true
}

// Root is a parsed expression.
//
// The scope is borrowed, not owned: it is consulted by the lexer to recognize
// multi-letter names and is the default scope of [Root.Eval].
type Root struct {
	Node   *Node
	scope  *Scope
	logger log.Logger // zero value disables logging
	opts   options
}

type options struct {
	maxDepth int
	strict   bool
}

// Scope returns the scope the expression was parsed with, or nil.
func (r *Root) Scope() *Scope {
	if r == nil {
		return nil
	}

	return r.scope
}

// Option configures parsing and evaluation.
type Option func(*Root)

// WithScope sets the scope used to recognize multi-letter names while
// lexing, and to resolve names in [Root.Eval].
func WithScope(scope *Scope) Option {
	return func(r *Root) {
		r.scope = scope
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithMaxDepth sets the maximum nesting depth of parenthesized groups,
// function calls, and prefix operators. Non-positive values select
// [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(r *Root) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}

		r.opts.maxDepth = depth
	}
}

// WithStrict makes the lexer fail with [ErrUnexpectedCharacter] instead of
// dropping characters that are not part of the language. A decimal point that
// is not the single point of a number literal is rejected too, so "1.2.3"
// fails instead of lexing as 1.2 .3.
func WithStrict(strict bool) Option {
	return func(r *Root) {
		r.opts.strict = strict
	}
}

func applyDefaults(r *Root) {
	r.opts.maxDepth = DefaultMaxDepth
}

func applyOptions(r *Root, opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}

func newRoot(opts ...Option) *Root {
	r := new(Root)

	applyDefaults(r)
	applyOptions(r, opts...)

	return r
}

// Parse parses expr into an expression tree.
func Parse(expr string, opts ...Option) (*Root, error) {
	return ParseContext(context.Background(), expr, opts...)
}

// ParseContext parses expr into an expression tree. The context is passed to
// the logger only.
func ParseContext(ctx context.Context, expr string, opts ...Option) (*Root, error) {
	root := newRoot(opts...)

	root.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(expr)))

	tokens, err := newLexer(ctx, root).run(expr)
	if err != nil {
		return nil, err
	}

	return root.parse(ctx, tokens)
}

// ParseReader reads all of r and parses it as a single expression.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Root, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseContext(ctx, string(data), opts...)
}

// ParseTokens parses a token sequence produced by [Tokenize] or built by
// hand.
func ParseTokens(tokens []Token, opts ...Option) (*Root, error) {
	return newRoot(opts...).parse(context.Background(), tokens)
}

func (r *Root) parse(ctx context.Context, tokens []Token) (*Root, error) {
	node, err := newParser(ctx, r, tokens).parse()
	if err != nil {
		r.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	r.Node = node

	r.logger.TraceContext(ctx, "parse complete",
		slog.Int("token_count", len(tokens)))

	return r, nil
}
