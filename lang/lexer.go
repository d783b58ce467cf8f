package lang

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/ardnew/asciimath/log"
)

var symbols = map[rune]Token{
	'+': OperatorToken(OpAdd),
	'-': OperatorToken(OpSubtract),
	'*': OperatorToken(OpMultiply),
	'/': OperatorToken(OpDivide),
	'^': OperatorToken(OpExponentiate),
	'(': SymbolToken(TokenLeftParen),
	')': SymbolToken(TokenRightParen),
	',': SymbolToken(TokenComma),
}

// Tokenize converts expr into a token sequence. It never fails: characters
// that are not part of the language are dropped.
//
// Without a scope, every letter outside a function name is lexed as its own
// single-letter variable. Use [TokenizeContext] with [WithScope] to keep
// multi-letter names intact.
func Tokenize(expr string) []Token {
	tokens, _ := TokenizeContext(context.Background(), expr)

	return tokens
}

// TokenizeContext converts expr into a token sequence using the scope, logger,
// and strictness configured by opts. It fails only in strict mode, on the
// first character that is not part of the language.
func TokenizeContext(
	ctx context.Context,
	expr string,
	opts ...Option,
) ([]Token, error) {
	var root Root

	applyDefaults(&root)
	applyOptions(&root, opts...)

	return newLexer(ctx, &root).run(expr)
}

// lexer holds the state of a single tokenization.
type lexer struct {
	ctx    context.Context
	scope  *Scope
	logger log.Logger
	strict bool

	tokens []Token
	buf    []rune // pending identifier or number run
	bufPos []int  // byte offset of each rune in buf
}

func newLexer(ctx context.Context, root *Root) *lexer {
	return &lexer{
		ctx:    ctx,
		scope:  root.scope,
		logger: root.logger,
		strict: root.opts.strict,
	}
}

func (l *lexer) run(expr string) ([]Token, error) {
	l.tokens = make([]Token, 0, len(expr))

	for i, r := range expr {
		switch {
		case unicode.IsSpace(r):
			// Whitespace never ends a run.

		case isRunRune(r):
			l.buf = append(l.buf, r)
			l.bufPos = append(l.bufPos, i)

		case r == '(':
			if err := l.flushCall(); err != nil {
				return nil, err
			}

			l.emit(SymbolToken(TokenLeftParen), i)

		default:
			if err := l.flush(); err != nil {
				return nil, err
			}

			if tok, ok := symbols[r]; ok {
				l.emit(tok, i)

				continue
			}

			if err := l.reject(r, i); err != nil {
				return nil, err
			}
		}
	}

	if err := l.flush(); err != nil {
		return nil, err
	}

	l.logger.TraceContext(l.ctx, "tokenize",
		slog.Int("count", len(l.tokens)),
		slog.Any("tokens", tokenList(l.tokens)))

	return l.tokens, nil
}

func isRunRune(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_' || r == '.'
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func (l *lexer) emit(tok Token, pos int) {
	tok.Pos = pos
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) reset() {
	l.buf = l.buf[:0]
	l.bufPos = l.bufPos[:0]
}

// flushCall flushes the pending run as the name of a called function.
// A leading number is split off first, so "2sin(" lexes as 2 sin (.
func (l *lexer) flushCall() error {
	if len(l.buf) == 0 {
		return nil
	}

	defer l.reset()

	n := numberPrefix(l.buf)
	if n > 0 {
		if err := l.number(0, n); err != nil {
			return err
		}
	}

	if n == len(l.buf) {
		return nil
	}

	if l.strict {
		for i := n; i < len(l.buf); i++ {
			if l.buf[i] == '.' {
				return l.drop(i)
			}
		}
	}

	l.emit(FunctionToken(string(l.buf[n:])), l.bufPos[n])

	return nil
}

// flush flushes the pending run through the implicit-token splitter.
func (l *lexer) flush() error {
	if len(l.buf) == 0 {
		return nil
	}

	defer l.reset()

	name := string(l.buf)
	if l.scope.has(name) {
		l.emit(VariableToken(name), l.bufPos[0])

		return nil
	}

	for i := 0; i < len(l.buf); {
		r := l.buf[i]

		switch {
		case isDigit(r) || r == '.':
			n := numberPrefix(l.buf[i:])
			if n == 0 {
				if err := l.drop(i); err != nil {
					return err
				}

				i++

				continue
			}

			if err := l.number(i, i+n); err != nil {
				return err
			}

			i += n

			// A second decimal point cannot extend the literal just emitted.
			if l.strict && i < len(l.buf) && l.buf[i] == '.' {
				return l.drop(i)
			}

		case unicode.IsLetter(r):
			l.emit(VariableToken(string(r)), l.bufPos[i])
			i++

		default:
			i++
		}
	}

	return nil
}

// number emits the run between start and end as a number literal.
func (l *lexer) number(start, end int) error {
	s := string(l.buf[start:end])

	// Out-of-range literals saturate to ±Inf.
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.drop(start)
	}

	l.emit(NumberToken(v), l.bufPos[start])

	return nil
}

// drop discards the pending rune at i. See [lexer.reject].
func (l *lexer) drop(i int) error {
	return l.reject(l.buf[i], l.bufPos[i])
}

// reject discards r, or fails with [ErrUnexpectedCharacter] in strict mode.
func (l *lexer) reject(r rune, pos int) error {
	if l.strict {
		return ErrUnexpectedCharacter.Detail(strconv.QuoteRune(r)).
			With(slog.Int("pos", pos))
	}

	l.logger.TraceContext(l.ctx, "drop character",
		slog.String("char", string(r)),
		slog.Int("pos", pos))

	return nil
}

// numberPrefix returns the length of the longest prefix of run made of
// digits with at most one decimal point. A prefix without any digit has
// length zero.
func numberPrefix(run []rune) int {
	var (
		n      int
		digits bool
		point  bool
	)

	for _, r := range run {
		switch {
		case isDigit(r):
			digits = true
		case r == '.' && !point:
			point = true
		default:
			return prefixLen(n, digits)
		}

		n++
	}

	return prefixLen(n, digits)
}

func prefixLen(n int, digits bool) int {
	if !digits {
		return 0
	}

	return n
}

// tokenList defers rendering of a token sequence until a record is handled.
type tokenList []Token

func (tl tokenList) LogValue() slog.Value {
	var sb strings.Builder

	for i, tok := range tl {
		if i > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(tok.String())
	}

	return slog.StringValue(sb.String())
}
