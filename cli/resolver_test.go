package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverCLI struct {
	LogLevel string   `default:"info"`
	MaxDepth int      `default:"256"`
	Strict   bool     `default:"false"`
	Scale    float64  `default:"1"`
	Var      []string `sep:"none"`
}

func parseWithConfig(t *testing.T, conf string, args ...string) resolverCLI {
	t.Helper()

	var cli resolverCLI

	resolver, err := resolve(t.Context(), baseConfig)(strings.NewReader(conf))
	require.NoError(t, err)

	parser, err := kong.New(&cli, kong.Resolvers(resolver))
	require.NoError(t, err)

	_, err = parser.Parse(args)
	require.NoError(t, err)

	return cli
}

func TestResolve(t *testing.T) {
	cli := parseWithConfig(t, `
config:
  log-level: debug
  max_depth: 64
  strict: true
  scale: 2.5
  var:
    - g=9.80665
    - h=2,3
`)

	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, 64, cli.MaxDepth)
	assert.True(t, cli.Strict)
	assert.InDelta(t, 2.5, cli.Scale, 0)
	assert.Equal(t, []string{"g=9.80665", "h=2,3"}, cli.Var)
}

func TestResolve_FlagsOverride(t *testing.T) {
	cli := parseWithConfig(t, "config:\n  max-depth: 64\n", "--max-depth=8")

	assert.Equal(t, 8, cli.MaxDepth)
}

func TestResolve_Ignored(t *testing.T) {
	tests := map[string]string{
		"empty":       "",
		"other key":   "settings:\n  strict: true\n",
		"not mapping": "config: 3\n",
		"invalid":     "config: [\n",
	}

	for name, conf := range tests {
		t.Run(name, func(t *testing.T) {
			cli := parseWithConfig(t, conf)

			assert.Equal(t, resolverCLI{LogLevel: "info", MaxDepth: 256, Scale: 1}, cli)
		})
	}
}

func TestFlagValue(t *testing.T) {
	assert.Equal(t, "42", flagValue(uint64(42)))
	assert.Equal(t, "-3", flagValue(int64(-3)))
	assert.Equal(t, "0.5", flagValue(0.5))
	assert.Equal(t, true, flagValue(true))
	assert.Equal(t, []any{"1", "x=2"}, flagValue([]any{uint64(1), "x=2"}))
}
