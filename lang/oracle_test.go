package lang

import (
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEval_MatchesExpr checks plain arithmetic against an independent
// evaluator. Leading signs are left out because the two languages bind
// them differently around exponentiation.
func TestEval_MatchesExpr(t *testing.T) {
	exprs := []string{
		"3 + 4 * 2",
		"2^3^2",
		"(2^3)^2",
		"1-2-3",
		"8/2/2",
		"100/8/5",
		"10-(2-3)",
		"3 + 4 * 2 / (1 - 5)^2^3",
		"2*3*4/5",
		"1.5*4-0.25",
		"(1+2)*(3+4)/7",
		"2^10 - 1000",
		"0.1 + 0.2",
		"((((((4^2))-((16))))))",
		"7 - 3 + 2 * 5 ^ 2 / 10",
	}

	for _, input := range exprs {
		t.Run(input, func(t *testing.T) {
			out, err := expr.Eval(input, nil)
			require.NoError(t, err)

			var want float64

			switch v := out.(type) {
			case int:
				want = float64(v)
			case float64:
				want = v
			default:
				t.Fatalf("unexpected result type %T", out)
			}

			root, err := Parse(input)
			require.NoError(t, err)

			got, err := root.Eval()
			require.NoError(t, err)

			assert.InDelta(t, want, got, 1e-9)
		})
	}
}
