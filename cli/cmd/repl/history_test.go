package repl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_WriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	require.NoError(t, h.Load(), "missing file is not an error")

	for _, e := range []HistoryEntry{
		{"1 + 2", modeEval},
		{"list", modeCtrl},
		{"x = 3", modeEval},
		{"x = 3", modeEval}, // repeated last entry
	} {
		_, err := h.WriteWithMode(e.Line, e.Mode)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "E:1 + 2\nC:list\nE:x = 3\n", string(data))

	loaded := NewHistory(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, h.Entries(), loaded.Entries())
}

func TestHistory_MovesDuplicateToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, line := range []string{"a", "b", "a"} {
		_, err := h.WriteWithMode(line, modeEval)
		require.NoError(t, err)
	}

	// Same text in another mode is a distinct entry.
	_, err := h.WriteWithMode("b", modeCtrl)
	require.NoError(t, err)

	assert.Equal(t, []HistoryEntry{
		{"b", modeEval},
		{"a", modeEval},
		{"b", modeCtrl},
	}, h.Entries())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "E:b\nE:a\nC:b\n", string(data))
}

func TestHistory_LoadUntagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	require.NoError(t, os.WriteFile(path, []byte("2^8\n\nC:quit\nE:sin(90)\n"), 0o600))

	h := NewHistory(path)
	require.NoError(t, h.Load())

	assert.Equal(t, []HistoryEntry{
		{"2^8", modeEval},
		{"quit", modeCtrl},
		{"sin(90)", modeEval},
	}, h.Entries())
}

func TestHistory_GetEntry(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	_, err := h.WriteWithMode("  1  ", modeEval)
	require.NoError(t, err)

	n, err := h.WriteWithMode("   ", modeEval)
	require.NoError(t, err)
	assert.Zero(t, n)

	e, err := h.GetEntry(0)
	require.NoError(t, err)
	assert.Equal(t, HistoryEntry{"1", modeEval}, e)

	_, err = h.GetEntry(1)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = h.GetEntry(-1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}
