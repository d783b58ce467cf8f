package repl

import (
	"slices"
	"testing"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/asciimath/lang"
)

func TestWordBounds_Operators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "a-fo", 4, "fo", 2, 4},
		{"after_caret", "2^fo", 4, "fo", 2, 4},
		{"after_paren", "sqrt(fo", 7, "fo", 5, 7},
		{"after_comma", "max(a, fo", 9, "fo", 7, 9},
		{"after_assign", "x = fo", 6, "fo", 4, 6},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a*b", 2, "b", 2, 3},
		{"underscore", "double_h", 8, "double_h", 0, 8},
		{"cursor_past_end", "ab", 10, "ab", 0, 2},
		// Implicit multiplication keeps the coefficient in the word.
		{"coefficient", "2ra", 3, "2ra", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	scope := lang.NewScope()
	scope.SetNumber("rate", 0.5)
	scope.SetNumber("max", 3) // shadows the built-in

	got := candidates(scope)

	if !slices.Contains(got, "rate") || !slices.Contains(got, "sqrt") {
		t.Errorf("candidates() = %v, missing scope or built-in names", got)
	}

	n := 0
	for _, name := range got {
		if name == "max" {
			n++
		}
	}

	if n != 1 {
		t.Errorf("candidates() lists %q %d times, want once", "max", n)
	}
}

func TestComputeMatches(t *testing.T) {
	scope := lang.NewScope()
	scope.SetNumber("radius", 2)

	m := newModel(t.Context(), Config{Scope: scope}, NewHistory(t.TempDir()+"/h"))

	m.input.SetValue("1 + rad")
	m.input.SetCursor(7)

	matches, start, end := m.computeMatches()
	if start != 4 || end != 7 {
		t.Errorf("bounds = (%d, %d), want (4, 7)", start, end)
	}

	if len(matches) == 0 || matches[0].Str != "radius" {
		t.Errorf("best match = %v, want radius", matches)
	}

	m.mode = modeCtrl
	m.input.SetValue("un")
	m.input.SetCursor(2)

	matches, _, _ = m.computeMatches()
	if len(matches) == 0 || matches[0].Str != "unset" {
		t.Errorf("command match = %v, want unset", matches)
	}
}

func TestIsFunction(t *testing.T) {
	scope := lang.NewScope()
	scope.SetNumber("sin", 1)
	scope.SetFunction("f", func([]float64) (float64, error) { return 0, nil })

	m := model{scope: scope}

	tests := map[string]bool{
		"f":    true,
		"cos":  true,
		"sin":  false, // shadowed by a number
		"none": false,
	}

	for name, want := range tests {
		if got := m.isFunction(name); got != want {
			t.Errorf("isFunction(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	if got := renderCandidateBar(nil, -1, false, 80, nil); got != "" {
		t.Errorf("empty matches rendered %q", got)
	}

	matches := fuzzy.Find("a", []string{"alpha", "beta", "gamma", "delta"})

	if got := renderCandidateBar(matches, 0, true, 0, nil); got != "" {
		t.Errorf("zero width rendered %q", got)
	}

	if got := renderCandidateBar(matches, 0, false, 80, nil); got == "" {
		t.Error("expected a candidate bar")
	}
}
