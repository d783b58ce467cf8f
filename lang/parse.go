package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/asciimath/log"
)

// prefixPrecedence is the binding strength of a prefix sign: looser than
// exponentiation, tighter than multiplication.
const prefixPrecedence = 4

// parser is a precedence-climbing parser over a token sequence.
type parser struct {
	ctx      context.Context
	logger   log.Logger
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
	open     int // unclosed parentheses
}

func newParser(ctx context.Context, root *Root, tokens []Token) *parser {
	return &parser{
		ctx:      ctx,
		logger:   root.logger,
		tokens:   tokens,
		maxDepth: root.opts.maxDepth,
	}
}

func (p *parser) parse() (*Node, error) {
	if len(p.tokens) == 0 {
		return nil, ErrMissingOperands
	}

	node, err := p.parseExpr(0, 0)
	if err != nil {
		return nil, err
	}

	if tok, ok := p.peek(); ok {
		if tok.Kind == TokenRightParen {
			return nil, ErrUnbalancedParentheses.With(slog.Int("pos", tok.Pos))
		}

		return nil, ErrUnexpectedToken.Detail(tok.String()).
			With(slog.Int("pos", tok.Pos))
	}

	return node, nil
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}

	return p.tokens[p.pos], true
}

// endPos returns the position reported for errors at end of input.
func (p *parser) endPos() int {
	if len(p.tokens) == 0 {
		return 0
	}

	return p.tokens[len(p.tokens)-1].Pos
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return ErrMaxDepthExceeded.With(slog.Int("max_depth", p.maxDepth))
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

// startsOperand reports whether tok can begin an operand that directly
// follows another one, which is read as an implicit multiplication.
func startsOperand(tok Token) bool {
	switch tok.Kind {
	case TokenNumber, TokenVariable, TokenFunction, TokenLeftParen:
		return true
	default:
		return false
	}
}

// flattens reports whether left chains of op collapse into one node.
func flattens(op Operator) bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	default:
		return false
	}
}

// parseExpr parses an expression whose binary operators all bind at least
// as tightly as minPrec. The operator that precedes the expression, if any,
// names the error when the expression is missing.
func (p *parser) parseExpr(minPrec int, after Operator) (*Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	lhs, err := p.parseOperand(after)
	if err != nil {
		return nil, err
	}

	var chain Operator // operator of the n-ary node built in this loop

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}

		var (
			op       Operator
			implicit bool
		)

		switch {
		case tok.Kind == TokenOperator && tok.Op.Operands() == 2:
			op = tok.Op
		case startsOperand(tok):
			op, implicit = OpMultiply, true
		}

		if op == 0 || op.Precedence() < minPrec {
			break
		}

		opTok := OperatorToken(op)
		opTok.Pos = tok.Pos

		if !implicit {
			p.pos++
		}

		next := op.Precedence() + 1
		if op.RightAssociative() {
			next = op.Precedence()
		}

		rhs, err := p.parseExpr(next, op)
		if err != nil {
			return nil, err
		}

		if chain == op && flattens(op) {
			lhs.Args = append(lhs.Args, rhs)

			continue
		}

		lhs = &Node{Token: opTok, Args: []*Node{lhs, rhs}}
		chain = op
	}

	return lhs, nil
}

// parseOperand parses a number, variable, function call, parenthesized
// group, or prefixed operand.
func (p *parser) parseOperand(after Operator) (*Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.missing(after, p.endPos())
	}

	switch tok.Kind {
	case TokenNumber, TokenVariable:
		p.pos++

		return &Node{Token: tok}, nil

	case TokenFunction:
		p.pos++

		return p.parseCall(tok)

	case TokenLeftParen:
		p.pos++

		return p.parseGroup(tok)

	case TokenOperator:
		return p.parsePrefix(tok)

	case TokenRightParen:
		if p.open == 0 {
			return nil, ErrUnbalancedParentheses.With(slog.Int("pos", tok.Pos))
		}

		return nil, p.missing(after, tok.Pos)

	default:
		return nil, ErrUnexpectedToken.Detail(tok.String()).
			With(slog.Int("pos", tok.Pos))
	}
}

func (p *parser) missing(op Operator, pos int) error {
	if op == 0 {
		return ErrMissingOperands.With(slog.Int("pos", pos))
	}

	return ErrMissingOperands.Detail(op.String()).With(slog.Int("pos", pos))
}

// parsePrefix parses a sign or a unary operator in operand position.
// A leading minus is read as subtraction from zero and a leading plus is
// dropped.
func (p *parser) parsePrefix(tok Token) (*Node, error) {
	op := tok.Op

	if op != OpAdd && op != OpSubtract && op.Operands() != 1 {
		return nil, ErrMissingOperands.Detail(op.String()).
			With(slog.Int("pos", tok.Pos))
	}

	p.pos++

	operand, err := p.parseExpr(prefixPrecedence, op)
	if err != nil {
		return nil, err
	}

	switch op {
	case OpAdd:
		return operand, nil

	case OpSubtract:
		zero := NumberToken(0)
		zero.Pos = tok.Pos

		return &Node{Token: tok, Args: []*Node{{Token: zero}, operand}}, nil

	default:
		return &Node{Token: tok, Args: []*Node{operand}}, nil
	}
}

// parseGroup parses the rest of a parenthesized expression.
func (p *parser) parseGroup(open Token) (*Node, error) {
	p.open++
	defer func() { p.open-- }()

	if _, ok := p.peek(); !ok {
		return nil, ErrUnbalancedParentheses.With(slog.Int("pos", open.Pos))
	}

	node, err := p.parseExpr(0, 0)
	if err != nil {
		return nil, err
	}

	return node, p.expect(TokenRightParen, open)
}

// parseCall parses the argument list of a function call. A function token
// not followed by an opening parenthesis yields a node without arguments.
func (p *parser) parseCall(fn Token) (*Node, error) {
	node := &Node{Token: fn}

	open, ok := p.peek()
	if !ok || open.Kind != TokenLeftParen {
		return node, nil
	}

	p.pos++
	p.open++
	defer func() { p.open-- }()

	node.Args = make([]*Node, 0)

	if tok, ok := p.peek(); ok && tok.Kind == TokenRightParen {
		p.pos++

		return node, nil
	}

	for {
		if _, ok := p.peek(); !ok {
			return nil, ErrUnbalancedParentheses.With(slog.Int("pos", open.Pos))
		}

		arg, err := p.parseExpr(0, 0)
		if err != nil {
			return nil, err
		}

		node.Args = append(node.Args, arg)

		tok, ok := p.peek()
		if !ok {
			return nil, ErrUnbalancedParentheses.With(slog.Int("pos", open.Pos))
		}

		switch tok.Kind {
		case TokenComma:
			p.pos++

		case TokenRightParen:
			p.pos++

			p.logger.TraceContext(p.ctx, "call",
				slog.String("function", fn.Name),
				slog.Int("args", len(node.Args)))

			return node, nil

		default:
			return nil, ErrUnexpectedToken.Detail(tok.String()).
				With(slog.Int("pos", tok.Pos))
		}
	}
}

// expect consumes a token of the given kind, which closes the group opened
// by open.
func (p *parser) expect(kind TokenKind, open Token) error {
	tok, ok := p.peek()
	if !ok {
		return ErrUnbalancedParentheses.With(slog.Int("pos", open.Pos))
	}

	if tok.Kind != kind {
		return ErrUnexpectedToken.Detail(tok.String()).
			With(slog.Int("pos", tok.Pos))
	}

	p.pos++

	return nil
}
