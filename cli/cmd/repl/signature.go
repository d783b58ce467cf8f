package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/asciimath/lang"
)

// Signature hint styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// variadicParam marks a trailing parameter that accepts any number of
// arguments.
const variadicParam = "..."

// functionCall describes the call whose argument list contains the cursor.
type functionCall struct {
	name     string
	argIndex int  // 0-based index of the argument under the cursor
	inCall   bool // cursor is inside a parameter list
}

// detectFunctionCall finds the innermost unclosed '(' before cursor that
// directly follows a name, and counts the top-level commas between it and the
// cursor.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	open, depth := -1, 0

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	call := functionCall{name: name, inCall: true}

	depth = 0
	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				call.argIndex++
			}
		}
	}

	return call
}

// getSignature returns the rendered signature and parameter names of the
// function name. Scope functions take precedence over built-ins and, having
// no declared parameters, are shown as variadic. It returns an empty
// signature if name is not a function.
func getSignature(scope *lang.Scope, name string) (signature string, params []string) {
	if v, ok := scope.GetVar(name); ok {
		if _, fn := v.(lang.Function); !fn {
			return "", nil
		}

		params = []string{variadicParam}
	} else if params, ok = lang.Signature(name); !ok {
		return "", nil
	}

	return name + "(" + strings.Join(params, ", ") + ")", params
}

// renderSignatureHint renders signature with the parameter at argIdx
// highlighted. A variadic parameter stays highlighted for every argument
// past its position.
func renderSignatureHint(signature string, params []string, argIdx int) string {
	name, _, ok := strings.Cut(signature, "(")
	if !ok {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		style := signatureStyle
		if argIdx == i || (param == variadicParam && argIdx > i) {
			style = currentParamStyle
		}

		b.WriteString(style.Render(param))
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
