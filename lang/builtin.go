package lang

import (
	"iter"
	"log/slog"
	"maps"
	"math"
	"slices"
	"sync"
)

type builtin struct {
	fn     Function
	params []string
}

const degree = math.Pi / 180

var builtins = sync.OnceValue(func() map[string]builtin {
	return map[string]builtin{
		"sin":  unary("sin", func(x float64) float64 { return math.Sin(x * degree) }),
		"cos":  unary("cos", func(x float64) float64 { return math.Cos(x * degree) }),
		"tan":  unary("tan", func(x float64) float64 { return math.Tan(x * degree) }),
		"abs":  unary("abs", math.Abs),
		"sqrt": unary("sqrt", math.Sqrt),
		"cbrt": unary("cbrt", math.Cbrt),
		"max":  variadic("max", func(x, acc float64) bool { return x > acc }),
		"min":  variadic("min", func(x, acc float64) bool { return x < acc }),
	}
})

func unary(name string, f func(float64) float64) builtin {
	return builtin{
		params: []string{"x"},
		fn: func(args []float64) (float64, error) {
			if len(args) != 1 {
				return 0, ErrParamCountMismatch.Detail(name).With(
					slog.Int("want", 1),
					slog.Int("got", len(args)),
				)
			}

			return f(args[0]), nil
		},
	}
}

// variadic returns a builtin selecting the argument for which better holds
// against every other. NaN arguments are ignored unless all are NaN.
func variadic(name string, better func(x, acc float64) bool) builtin {
	return builtin{
		params: []string{"x", "..."},
		fn: func(args []float64) (float64, error) {
			if len(args) == 0 {
				return 0, ErrParamCountMismatch.Detail(name).With(
					slog.Int("want", 1),
					slog.Int("got", 0),
				)
			}

			acc := math.NaN()
			for _, x := range args {
				if math.IsNaN(acc) || better(x, acc) {
					acc = x
				}
			}

			return acc, nil
		},
	}
}

// Builtin returns the built-in function with the given name.
func Builtin(name string) (Function, bool) {
	b, ok := builtins()[name]

	return b.fn, ok
}

// Builtins returns an iterator over the built-in function names in sorted
// order.
func Builtins() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(builtins())))
}

// Signature returns the parameter names of the built-in function with the
// given name. A trailing "..." marks a variadic function.
func Signature(name string) ([]string, bool) {
	b, ok := builtins()[name]
	if !ok {
		return nil, false
	}

	return slices.Clone(b.params), true
}
