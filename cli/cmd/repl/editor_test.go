package repl

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/asciimath/lang"
)

func TestEditScopeCommand_UnchangedRoundTrip(t *testing.T) {
	t.Setenv("EDITOR", "true")

	scope := lang.NewScope()
	scope.SetNumber("e", 2)
	scope.SetNumber("big", 1e21)
	scope.SetNumber("small", 1e-7)
	scope.SetNumber("inf", math.Inf(1))
	scope.SetFunction("twice", func(args []float64) (float64, error) {
		return 2 * args[0], nil
	})

	ctx := t.Context()
	cmd := &editScopeCommand{
		scope:   scope,
		ctxFunc: func() context.Context { return ctx },
	}

	require.NoError(t, cmd.Run())
	require.NotNil(t, cmd.edited)

	for name := range scope.Names() {
		want, _ := scope.GetVar(name)
		got, ok := cmd.edited.GetVar(name)
		require.True(t, ok, name)

		if _, fn := want.(lang.Function); fn {
			assert.IsType(t, lang.Function(nil), got, name)

			continue
		}

		assert.Equal(t, want, got, name)
	}
}

func TestEditScopeCommand_LoadUsesSessionOptions(t *testing.T) {
	const content = "x: 1.2.3\n"

	ctx := t.Context()

	lenient := &editScopeCommand{scope: lang.NewScope()}

	scope, err := lenient.load(ctx, []byte(content))
	require.NoError(t, err)

	v, _ := scope.GetVar("x")
	assert.InDelta(t, 0.36, float64(v.(lang.Number)), 1e-12)

	strict := &editScopeCommand{
		scope: lang.NewScope(),
		options: func(s *lang.Scope) []lang.Option {
			return []lang.Option{lang.WithScope(s), lang.WithStrict(true)}
		},
	}

	_, err = strict.load(ctx, []byte(content))
	require.ErrorIs(t, err, lang.ErrUnexpectedCharacter)

	deep := &editScopeCommand{
		scope: lang.NewScope(),
		options: func(s *lang.Scope) []lang.Option {
			return []lang.Option{lang.WithScope(s), lang.WithMaxDepth(2)}
		},
	}

	_, err = deep.load(ctx, []byte("y: "+strings.Repeat("(", 3)+"1"+strings.Repeat(")", 3)+"\n"))
	require.ErrorIs(t, err, lang.ErrMaxDepthExceeded)
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"\n":    true,
		"y\n":   true,
		"No\n":  false,
		" n \n": false,
		"":      false,
	}

	for in, want := range tests {
		assert.Equal(t, want, confirm(strings.NewReader(in)), "%q", in)
	}
}
