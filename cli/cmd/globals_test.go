package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/asciimath/lang"
	"github.com/ardnew/asciimath/pkg"
)

func TestSplitBinding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
		wantExpr string
		wantErr  error
	}{
		{"simple", "x=1", "x", "1", nil},
		{"spaced", "  rate =  2 * 3 ", "rate", "2 * 3", nil},
		{"underscore", "_h2=h^2", "_h2", "h^2", nil},
		{"first_equals_only", "a=b=c", "a", "b=c", nil},
		{"missing_assign", "x 1", "", "", ErrMissingAssign},
		{"leading_digit", "2x=1", "", "", ErrInvalidName},
		{"empty_name", "=1", "", "", ErrInvalidName},
		{"operator_in_name", "a-b=1", "", "", ErrInvalidName},
		{"empty_expr", "x=  ", "", "", lang.ErrMissingOperands},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, expr, err := SplitBinding(tt.input)
			if !errors.Is(err, tt.wantErr) || (err == nil) != (tt.wantErr == nil) {
				t.Fatalf("SplitBinding(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}

			if name != tt.wantName || expr != tt.wantExpr {
				t.Errorf("SplitBinding(%q) = (%q, %q), want (%q, %q)",
					tt.input, name, expr, tt.wantName, tt.wantExpr)
			}
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"x":       true,
		"height":  true,
		"_":       true,
		"r2":      true,
		"δ":       true,
		"":        false,
		"2r":      false,
		"a b":     false,
		"max(":    false,
		"rate.up": false,
	}

	for input, want := range tests {
		if got := IsIdentifier(input); got != want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", input, got, want)
		}
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestGlobalsScope(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	consts := writeFile(t, dir, "consts.yaml", "g: 9.8\nh: 2\n")
	derived := writeFile(t, dir, "derived.yaml", "w: h*g\n")

	g := &Globals{
		Defs: []string{consts, derived, consts}, // duplicate is loaded once
		Var:  []string{"m = 3", "e = m*w"},
	}

	scope, err := g.Scope(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]lang.Number{
		"g": 9.8,
		"h": 2,
		"w": 19.6,
		"m": 3,
		"e": 58.8,
	}

	if scope.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", scope.Len(), len(want))
	}

	for name, w := range want {
		v, ok := scope.GetVar(name)
		if !ok {
			t.Errorf("%s is not bound", name)

			continue
		}

		if diff := float64(v.(lang.Number) - w); diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s = %v, want %v", name, v, w)
		}
	}
}

func TestGlobalsScope_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "a: nope +\n")

	tests := []struct {
		name string
		g    Globals
		want []error
	}{
		{
			name: "missing_file",
			g:    Globals{Defs: []string{filepath.Join(dir, "missing.yaml")}},
			want: []error{ErrLoadDefs, pkg.ErrFileNotFound},
		},
		{
			name: "invalid_definition",
			g:    Globals{Defs: []string{bad}},
			want: []error{ErrLoadDefs, lang.ErrInvalidDefinition},
		},
		{
			name: "invalid_var",
			g:    Globals{Var: []string{"x"}},
			want: []error{ErrInvalidVar, ErrMissingAssign},
		},
		{
			name: "unknown_variable",
			g:    Globals{Var: []string{"x = 1", "y = x + z"}},
			want: []error{ErrInvalidVar, lang.ErrUnknownVariable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.g.Scope(t.Context())
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Scope() error = %v, want %v", err, want)
				}
			}
		})
	}
}
