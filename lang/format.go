package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// String returns the expression in infix notation with the fewest
// parentheses that preserve its structure.
func (r *Root) String() string {
	if r == nil {
		return ""
	}

	return r.Node.String()
}

// Format writes the expression in infix notation to the writer, followed by
// a newline.
func (r *Root) Format(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.String())

	return err
}

// FormatJSON writes the expression tree as JSON to the writer.
func (r *Root) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(r.toMap(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(r.toMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the expression tree as YAML to the writer.
func (r *Root) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, r.toMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Print writes an indented dump of the expression tree to the writer, one
// node per line.
func (r *Root) Print(w io.Writer) error {
	if r == nil || r.Node == nil {
		return nil
	}

	return printNode(w, r.Node, 0)
}

func printNode(w io.Writer, n *Node, depth int) error {
	_, err := fmt.Fprintf(w, "%s%s %s\n",
		strings.Repeat("  ", depth), n.Token.Kind, n.Token)
	if err != nil {
		return err
	}

	for _, arg := range n.Args {
		if err := printNode(w, arg, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (r *Root) toMap() map[string]any {
	if r == nil {
		return nil
	}

	return r.Node.ToMap()
}

// ToMap converts the subtree rooted at n into nested maps with the keys
// "token", "kind", and, for nodes with an argument list, "args".
func (n *Node) ToMap() map[string]any {
	if n == nil {
		return nil
	}

	m := map[string]any{
		"token": n.Token.String(),
		"kind":  n.Token.Kind.String(),
	}

	if n.Args != nil {
		args := make([]any, len(n.Args))
		for i, arg := range n.Args {
			args[i] = arg.ToMap()
		}

		m["args"] = args
	}

	return m
}

// String returns the subtree rooted at n in infix notation.
func (n *Node) String() string {
	var sb strings.Builder

	writeNode(&sb, n)

	return sb.String()
}

// formatNumber writes v as source text that evaluates back to v. Values with
// no literal form are written as the quotient that produces them.
func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "(1/0)"
	case math.IsInf(v, -1):
		return "(-1/0)"
	case math.IsNaN(v):
		return "(0/0)"
	case v < 0:
		return "(" + strconv.FormatFloat(v, 'f', -1, 64) + ")"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func writeNode(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}

	tok := n.Token

	switch tok.Kind {
	case TokenNumber:
		sb.WriteString(formatNumber(tok.Value))

	case TokenFunction:
		sb.WriteString(tok.Name)

		if n.Args == nil {
			return
		}

		sb.WriteByte('(')

		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeNode(sb, arg)
		}

		sb.WriteByte(')')

	case TokenOperator:
		writeOperator(sb, n)

	default:
		sb.WriteString(tok.String())
	}
}

func writeOperator(sb *strings.Builder, n *Node) {
	op := n.Token.Op

	switch {
	case len(n.Args) == 0:
		sb.WriteString(op.String())

	case len(n.Args) == 1:
		sb.WriteString(op.String())
		writeOperand(sb, n.Args[0], isOperation(n.Args[0]))

	case op.RightAssociative() && len(n.Args) > 2:
		// A left fold of a right-associative operator groups every prefix.
		sb.WriteString(strings.Repeat("(", len(n.Args)-2))
		writeOperand(sb, n.Args[0], needsParens(op, n.Args[0], 0))

		for i, arg := range n.Args[1:] {
			sb.WriteString(op.String())
			writeOperand(sb, arg, needsParens(op, arg, 1))

			if i < len(n.Args)-2 {
				sb.WriteByte(')')
			}
		}

	default:
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(op.String())
			}

			writeOperand(sb, arg, needsParens(op, arg, i))
		}
	}
}

func writeOperand(sb *strings.Builder, n *Node, parens bool) {
	if parens {
		sb.WriteByte('(')
	}

	writeNode(sb, n)

	if parens {
		sb.WriteByte(')')
	}
}

func isOperation(n *Node) bool {
	return n != nil && n.Token.Kind == TokenOperator
}

// needsParens reports whether the i-th operand of op must be grouped to
// keep its place in the tree.
func needsParens(op Operator, arg *Node, i int) bool {
	if !isOperation(arg) {
		return false
	}

	if len(arg.Args) < 2 {
		return true
	}

	switch c := arg.Token.Op.Compare(op); {
	case c < 0:
		return true
	case c > 0:
		return false
	case op.RightAssociative():
		return i == 0
	default:
		return i > 0
	}
}
