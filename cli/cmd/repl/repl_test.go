package repl

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/asciimath/lang"
)

var errNoAssign = errors.New("missing '='")

func splitBinding(s string) (string, string, error) {
	name, expr, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", errNoAssign
	}

	return strings.TrimSpace(name), strings.TrimSpace(expr), nil
}

func testModel(t *testing.T, scope *lang.Scope) model {
	t.Helper()

	cfg := Config{Scope: scope, Split: splitBinding}

	return newModel(t.Context(), cfg, NewHistory(filepath.Join(t.TempDir(), baseHistory)))
}

func TestModel_Evaluate(t *testing.T) {
	scope := lang.NewScope()
	scope.SetNumber("r", 2)

	m := testModel(t, scope)

	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3"},
		{"2r^2", "8"},
		{"max(r, 5, 1)", "5"},
		{"area = 3r", "area = 6"},
		{"area / 2", "3"},
		{"0.1 + 0.2", "0.30000000000000004"},
	}

	for _, tt := range tests {
		got, err := m.evaluate(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	v, ok := scope.GetVar("area")
	require.True(t, ok)
	assert.Equal(t, lang.Number(6), v)
}

func TestModel_EvaluateErrors(t *testing.T) {
	m := testModel(t, lang.NewScope())

	tests := []struct {
		input string
		want  error
	}{
		{"(1 + 2", lang.ErrUnbalancedParentheses},
		{"nope(1)", lang.ErrUnknownFunction},
		{"x = (", lang.ErrUnbalancedParentheses},
	}

	for _, tt := range tests {
		_, err := m.evaluate(tt.input)
		assert.ErrorIs(t, err, tt.want, tt.input)
	}

	_, ok := m.scope.GetVar("x")
	assert.False(t, ok, "failed binding must not assign")
}

func TestModel_Unset(t *testing.T) {
	scope := lang.NewScope()
	scope.SetNumber("a", 1)
	scope.SetNumber("b", 2)

	m := testModel(t, scope)

	m, _ = m.executeCommand("unset a")

	_, ok := scope.GetVar("a")
	assert.False(t, ok)
	assert.Equal(t, 1, scope.Len())

	m, _ = m.executeCommand("quit")
	assert.True(t, m.quitting)
}

func TestModel_ListScope(t *testing.T) {
	scope := lang.NewScope()
	scope.SetNumber("height", 10)

	out := testModel(t, scope).listScope()

	for _, want := range []string{"height", "10", "sqrt", "max"} {
		assert.Contains(t, out, want)
	}
}

func TestModel_Recall(t *testing.T) {
	m := testModel(t, lang.NewScope())

	for _, e := range []HistoryEntry{
		{"1+1", modeEval},
		{"list", modeCtrl},
		{"2+2", modeEval},
	} {
		_, err := m.history.WriteWithMode(e.Line, e.Mode)
		require.NoError(t, err)
	}

	m.historyIdx = m.history.Len()

	require.True(t, m.recall(-1, nil))
	assert.Equal(t, "2+2", m.input.Value())

	require.True(t, m.recall(-1, nil))
	assert.Equal(t, "list", m.input.Value())
	assert.Equal(t, modeCtrl, m.mode, "recall switches to the entry's mode")

	require.True(t, m.recall(-1, m.inMode(modeEval)))
	assert.Equal(t, "1+1", m.input.Value())
	assert.Equal(t, modeEval, m.mode)

	assert.False(t, m.recall(-1, nil))
}

func TestModel_SwitchModeKeepsInput(t *testing.T) {
	m := testModel(t, lang.NewScope())

	m.input.SetValue("1 +")
	m.switchToMode(modeCtrl)
	assert.Empty(t, m.input.Value())

	m.input.SetValue("li")
	m.switchToMode(modeEval)
	assert.Equal(t, "1 +", m.input.Value())

	m.switchToMode(modeCtrl)
	assert.Equal(t, "li", m.input.Value())
}
