package lang

//go:generate go tool stringer --linecomment --type TokenKind,Operator --output token_string.go

import (
	"cmp"
	"strconv"
)

// TokenKind identifies the lexical category of a [Token].
type TokenKind int

const (
	TokenOperator   TokenKind = iota // operator
	TokenNumber                      // number
	TokenVariable                    // variable
	TokenFunction                    // function
	TokenLeftParen                   // (
	TokenRightParen                  // )
	TokenComma                       // ,
)

// Token is a single lexical unit.
//
// Only the field matching Kind is meaningful: Op for operators, Value for
// numbers, and Name for variables and functions.
type Token struct {
	Name  string
	Value float64
	Pos   int // byte offset of the token in the source text
	Kind  TokenKind
	Op    Operator
}

// NumberToken returns a number token with the given value.
func NumberToken(v float64) Token { return Token{Kind: TokenNumber, Value: v} }

// VariableToken returns a variable token with the given name.
func VariableToken(name string) Token { return Token{Kind: TokenVariable, Name: name} }

// FunctionToken returns a function token with the given name.
func FunctionToken(name string) Token { return Token{Kind: TokenFunction, Name: name} }

// OperatorToken returns an operator token for op.
func OperatorToken(op Operator) Token { return Token{Kind: TokenOperator, Op: op} }

// SymbolToken returns a parenthesis or comma token.
func SymbolToken(kind TokenKind) Token { return Token{Kind: kind} }

// String returns the source text of the token.
func (t Token) String() string {
	switch t.Kind {
	case TokenOperator:
		return t.Op.String()
	case TokenNumber:
		return strconv.FormatFloat(t.Value, 'f', -1, 64)
	case TokenVariable, TokenFunction:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// Same reports whether t and u are the same token regardless of position.
func (t Token) Same(u Token) bool {
	if t.Kind != u.Kind {
		return false
	}

	switch t.Kind {
	case TokenOperator:
		return t.Op == u.Op
	case TokenNumber:
		return t.Value == u.Value
	case TokenVariable, TokenFunction:
		return t.Name == u.Name
	default:
		return true
	}
}

// Operator identifies an operator kind.
//
// Only the arithmetic operators are produced by the lexer and understood by
// the evaluator. The comparison, logical, shift, and bitwise operators are
// reserved: they may appear in hand-built token streams and trees, but
// evaluating them fails with [ErrCannotEvaluateToken].
type Operator int

const (
	OpAdd          Operator = iota + 1 // +
	OpSubtract                         // -
	OpMultiply                         // *
	OpDivide                           // /
	OpExponentiate                     // ^
	OpGreater                          // >
	OpLess                             // <
	OpGreaterEqual                     // >=
	OpLessEqual                        // <=
	OpEqual                            // ==
	OpNotEqual                         // !=
	OpNot                              // !
	OpShiftLeft                        // <<
	OpShiftRight                       // >>
	OpBitwiseOr                        // |
	OpBitwiseAnd                       // &
)

type operatorInfo struct {
	precedence int
	operands   int
}

var operatorTable = [...]operatorInfo{
	OpAdd:          {2, 2},
	OpSubtract:     {2, 2},
	OpMultiply:     {3, 2},
	OpDivide:       {3, 2},
	OpExponentiate: {4, 2},
	OpGreater:      {2, 2},
	OpLess:         {2, 2},
	OpGreaterEqual: {2, 2},
	OpLessEqual:    {2, 2},
	OpEqual:        {2, 2},
	OpNotEqual:     {2, 2},
	OpNot:          {2, 1},
	OpShiftLeft:    {5, 2},
	OpShiftRight:   {5, 2},
	OpBitwiseOr:    {5, 2},
	OpBitwiseAnd:   {5, 2},
}

func (o Operator) info() operatorInfo {
	if o <= 0 || int(o) >= len(operatorTable) {
		return operatorInfo{}
	}

	return operatorTable[o]
}

// Precedence returns the binding strength of the operator. Higher binds
// tighter.
func (o Operator) Precedence() int { return o.info().precedence }

// Operands returns the number of operands the operator requires.
func (o Operator) Operands() int { return o.info().operands }

// RightAssociative reports whether chains of the operator group from the
// right. Only exponentiation does.
func (o Operator) RightAssociative() bool { return o == OpExponentiate }

// Arithmetic reports whether the evaluator has a rule for the operator.
func (o Operator) Arithmetic() bool { return o >= OpAdd && o <= OpExponentiate }

// Equal reports whether o and other have the same precedence.
//
// This is not identity: OpAdd.Equal(OpSubtract) is true. Compare Operator
// values with == when identity matters.
func (o Operator) Equal(other Operator) bool {
	return o.Precedence() == other.Precedence()
}

// Compare orders operators by precedence, returning -1, 0, or +1.
func (o Operator) Compare(other Operator) int {
	return cmp.Compare(o.Precedence(), other.Precedence())
}
