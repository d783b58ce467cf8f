package lang

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestBuiltins(t *testing.T) {
	got := slices.Collect(Builtins())
	want := []string{"abs", "cbrt", "cos", "max", "min", "sin", "sqrt", "tan"}

	if !slices.Equal(got, want) {
		t.Errorf("Builtins() = %v, want %v", got, want)
	}
}

func TestBuiltin_MinMax(t *testing.T) {
	tests := []struct {
		name string
		args []float64
		want float64
	}{
		{"max", []float64{1, 2}, 2},
		{"max", []float64{1}, 1},
		{"max", []float64{1, 2, 3, 25.75, 10.5, 25.7}, 25.75},
		{"max", []float64{-3, -7}, -3},
		{"max", []float64{math.NaN(), 4, math.NaN()}, 4},
		{"min", []float64{1, 2}, 1},
		{"min", []float64{5}, 5},
		{"min", []float64{1, 2, 3, 25.75, -10.5, 25.7}, -10.5},
		{"min", []float64{math.NaN(), 4, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := Builtin(tt.name)
			if !ok {
				t.Fatalf("builtin %q not found", tt.name)
			}

			got, err := fn(tt.args)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("%s(%v) = %v, want %v", tt.name, tt.args, got, tt.want)
			}
		})
	}
}

func TestBuiltin_AllNaN(t *testing.T) {
	fn, _ := Builtin("max")

	got, err := fn([]float64{math.NaN(), math.NaN()})
	if err != nil {
		t.Fatal(err)
	}

	if !math.IsNaN(got) {
		t.Errorf("max(NaN, NaN) = %v, want NaN", got)
	}
}

func TestBuiltin_Arity(t *testing.T) {
	for name := range Builtins() {
		t.Run(name, func(t *testing.T) {
			fn, _ := Builtin(name)

			_, err := fn(nil)
			if !errors.Is(err, ErrParamCountMismatch) {
				t.Errorf("%s() error = %v, want ErrParamCountMismatch", name, err)
			}
		})
	}

	fn, _ := Builtin("sqrt")

	_, err := fn([]float64{1, 2})
	if !errors.Is(err, ErrParamCountMismatch) {
		t.Errorf("sqrt(1, 2) error = %v, want ErrParamCountMismatch", err)
	}
}

func TestSignature(t *testing.T) {
	params, ok := Signature("sin")
	if !ok || !slices.Equal(params, []string{"x"}) {
		t.Errorf("Signature(sin) = %v, %v", params, ok)
	}

	params, ok = Signature("max")
	if !ok || !slices.Equal(params, []string{"x", "..."}) {
		t.Errorf("Signature(max) = %v, %v", params, ok)
	}

	params[0] = "mutated"

	if again, _ := Signature("max"); again[0] != "x" {
		t.Error("Signature returns a copy")
	}

	if _, ok := Signature("nope"); ok {
		t.Error("expected unknown function to have no signature")
	}

	if _, ok := Builtin("nope"); ok {
		t.Error("expected unknown function to have no builtin")
	}
}
