package lang

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Eval evaluates the expression against the scope it was parsed with.
// A root parsed without a scope evaluates against an empty one.
func (r *Root) Eval() (float64, error) {
	return r.EvalWithContext(context.Background(), r.Scope())
}

// EvalWith evaluates the expression against scope.
func (r *Root) EvalWith(scope *Scope) (float64, error) {
	return r.EvalWithContext(context.Background(), scope)
}

// EvalContext is like [Root.Eval]. The context is passed to the logger only.
func (r *Root) EvalContext(ctx context.Context) (float64, error) {
	return r.EvalWithContext(ctx, r.Scope())
}

// EvalWithContext is like [Root.EvalWith]. The context is passed to the
// logger only.
func (r *Root) EvalWithContext(ctx context.Context, scope *Scope) (float64, error) {
	if r == nil || r.Node == nil {
		return 0, ErrMissingOperands
	}

	e := evaluator{scope: scope}

	v, err := e.eval(r.Node)
	if err != nil {
		r.logger.TraceContext(ctx, "eval failed", slog.Any("error", err))

		return 0, err
	}

	r.logger.TraceContext(ctx, "eval complete", slog.Float64("result", v))

	return v, nil
}

// Eval evaluates the subtree rooted at n against an empty scope.
func (n *Node) Eval() (float64, error) { return n.EvalWith(nil) }

// EvalWith evaluates the subtree rooted at n against scope.
func (n *Node) EvalWith(scope *Scope) (float64, error) {
	e := evaluator{scope: scope}

	return e.eval(n)
}

// evaluator walks an expression tree. It never mutates the tree or the
// scope.
type evaluator struct {
	scope *Scope
}

func (e evaluator) eval(n *Node) (float64, error) {
	if n == nil {
		return 0, ErrMissingOperands
	}

	tok := n.Token

	switch tok.Kind {
	case TokenNumber:
		return tok.Value, nil

	case TokenVariable:
		v, ok := e.scope.number(tok.Name)
		if !ok {
			return 0, ErrUnknownVariable.Detail(tok.Name).
				With(slog.Int("pos", tok.Pos))
		}

		return v, nil

	case TokenOperator:
		return e.operator(n)

	case TokenFunction:
		return e.call(n)

	default:
		return 0, ErrCannotEvaluateToken.Detail(tok.String()).
			With(slog.Int("pos", tok.Pos))
	}
}

func (e evaluator) args(n *Node) ([]float64, error) {
	vals := make([]float64, len(n.Args))

	for i, arg := range n.Args {
		v, err := e.eval(arg)
		if err != nil {
			return nil, err
		}

		vals[i] = v
	}

	return vals, nil
}

func (e evaluator) operator(n *Node) (float64, error) {
	op := n.Token.Op

	if len(n.Args) == 0 {
		return 0, ErrMissingOperands.Detail(op.String()).
			With(slog.Int("pos", n.Token.Pos))
	}

	if !op.Arithmetic() {
		return 0, ErrCannotEvaluateToken.Detail(op.String()).
			With(slog.Int("pos", n.Token.Pos))
	}

	vals, err := e.args(n)
	if err != nil {
		return 0, err
	}

	switch op {
	case OpAdd:
		return sum(vals), nil

	case OpSubtract:
		return vals[0] - sum(vals[1:]), nil

	case OpMultiply:
		return product(vals), nil

	case OpDivide:
		return vals[0] / product(vals[1:]), nil

	default: // OpExponentiate
		acc := vals[0]
		for _, v := range vals[1:] {
			acc = math.Pow(acc, v)
		}

		return acc, nil
	}
}

func sum(vals []float64) (s float64) {
	for _, v := range vals {
		s += v
	}

	return s
}

func product(vals []float64) float64 {
	p := 1.0
	for _, v := range vals {
		p *= v
	}

	return p
}

func (e evaluator) call(n *Node) (v float64, err error) {
	name := n.Token.Name

	fn, ok := Builtin(name)
	if !ok {
		fn, ok = e.scope.function(name)
	}

	if !ok {
		return 0, ErrUnknownFunction.Detail(name).
			With(slog.Int("pos", n.Token.Pos))
	}

	if n.Args == nil {
		return 0, ErrNotEnoughFunctionParams.Detail(name).
			With(slog.Int("pos", n.Token.Pos))
	}

	vals, err := e.args(n)
	if err != nil {
		return 0, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = ErrCannotEvaluateToken.Detail(name).
				Wrap(fmt.Errorf("function panicked: %v", r))
		}
	}()

	return fn(vals)
}
