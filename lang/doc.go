// Package lang parses and evaluates infix arithmetic expressions.
//
// An expression passes through three stages:
//
//   - [Tokenize] splits the source text into [Token] values.
//   - [Parse] builds a [Root] holding a precedence-correct tree of [Node].
//   - [Root.Eval] walks the tree against a [Scope] and the built-in function
//     table.
//
// # Grammar
//
// Informal EBNF, loosest binding first:
//
//	Expr     → Term (('+' | '-') Term)*
//	Term     → Signed (('*' | '/') Signed | Implicit)*
//	Implicit → Signed                     (juxtaposition multiplies)
//	Signed   → ('-' | '+') Signed | Power
//	Power    → Operand ('^' Signed)?      (right-associative)
//	Operand  → Number | Variable | Call | '(' Expr ')'
//	Call     → Function '(' (Expr (',' Expr)*)? ')'
//
// # Lexing
//
// Whitespace is ignored everywhere, even inside names and numbers. A run of
// letters, digits, underscores, and decimal points directly before '(' names
// a function, after splitting off any leading number. Any other run is bound
// as a single variable if its full text is bound in the scope given by
// [WithScope]. Otherwise it is split into numbers and single-letter
// variables, so "2xy" reads as 2*x*y.
//
// Characters outside the language are dropped, or rejected with
// [WithStrict].
//
// # Functions
//
// The built-in functions are:
//
//	sin(x), cos(x), tan(x)    trigonometry on degrees
//	abs(x), sqrt(x), cbrt(x)
//	min(x, ...), max(x, ...)
//
// Built-ins take precedence over [Function] values bound in a [Scope].
//
// # Example
//
//	scope := lang.NewScope()
//	scope.SetNumber("r", 2)
//
//	root, err := lang.Parse("2r^2 + max(r, 3)", lang.WithScope(scope))
//	if err != nil {
//		return err
//	}
//
//	v, err := root.Eval() // 11
package lang
