package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/asciimath/lang"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no call", "radius", 6, "", 0, false},
		{"open paren", "max(", 4, "max", 0, true},
		{"first arg", "max(1", 5, "max", 0, true},
		{"second arg", "max(1,", 6, "max", 1, true},
		{"third arg", "max(1, 2, 3", 11, "max", 2, true},
		{"nested closed", "max(sqrt(4), ", 13, "max", 1, true},
		{"nested open", "max(1, sqrt(", 12, "sqrt", 0, true},
		{"group not call", "2*(1, ", 6, "", 0, false},
		{"after close", "sqrt(4) + 1", 11, "", 0, false},
		{"cursor inside", "max(1, 2)", 6, "max", 1, true},
		{"operator before", "1+cos(", 6, "cos", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)
			if got.name != tt.wantName || got.argIndex != tt.wantIndex ||
				got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%s %d %v}",
					tt.input, tt.cursor, got,
					tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestGetSignature(t *testing.T) {
	scope := lang.NewScope()
	scope.SetFunction("hypot", func([]float64) (float64, error) { return 0, nil })
	scope.SetNumber("k", 1)

	tests := []struct {
		name       string
		wantSig    string
		wantParams []string
	}{
		{"sqrt", "sqrt(x)", []string{"x"}},
		{"max", "max(x, ...)", []string{"x", "..."}},
		{"hypot", "hypot(...)", []string{"..."}},
		{"k", "", nil},
		{"nope", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, params := getSignature(scope, tt.name)
			if sig != tt.wantSig {
				t.Errorf("signature = %q, want %q", sig, tt.wantSig)
			}

			if !slices.Equal(params, tt.wantParams) {
				t.Errorf("params = %v, want %v", params, tt.wantParams)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	if got := renderSignatureHint("sqrt(x)", []string{"x"}, 0); got == "" {
		t.Error("expected rendered hint")
	}

	plain := renderSignatureHint("pi", nil, 0)
	if plain != signatureStyle.Render("pi") {
		t.Errorf("hint without parameters = %q", plain)
	}
}
