package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/uap/internal/media"
	"github.com/llehouerou/uap/internal/state"
)

func execute(args ...string) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func TestRootCommand_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"volume above range", []string{"--volume=150", "book.m4b"}},
		{"negative volume", []string{"--volume=-1", "book.m4b"}},
		{"volume not a number", []string{"--volume=loud", "book.m4b"}},
		{"unknown flag", []string{"--shuffle", "book.m4b"}},
		{"two files", []string{"a.m4b", "b.m4b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(tt.args...)
			require.ErrorIs(t, err, ErrInvalidOption)
			assert.True(t, isUsageError(err))
		})
	}
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestResolvePath_Argument(t *testing.T) {
	path := writeFile(t, "book.m4b")

	got, err := resolvePath([]string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolvePath_FallsBackToLastFile(t *testing.T) {
	path := writeFile(t, "book.mp3")
	st := state.NewMock()
	require.NoError(t, st.SetLastFile(path))

	got, err := resolvePath(nil, st)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolvePath_Missing(t *testing.T) {
	_, err := resolvePath(nil, nil)
	require.ErrorIs(t, err, ErrMissingPath)

	_, err = resolvePath(nil, state.NewMock())
	require.ErrorIs(t, err, ErrMissingPath)
}

func TestResolvePath_InvalidFile(t *testing.T) {
	notes := writeFile(t, "notes.txt")
	_, err := resolvePath([]string{notes}, nil)
	require.ErrorIs(t, err, ErrInvalidFile)
	require.ErrorIs(t, err, media.ErrNotAudio)

	_, err = resolvePath([]string{filepath.Join(t.TempDir(), "gone.m4b")}, nil)
	require.ErrorIs(t, err, ErrInvalidFile)

	dir := filepath.Join(t.TempDir(), "folder.m4b")
	require.NoError(t, os.Mkdir(dir, 0o755))
	_, err = resolvePath([]string{dir}, nil)
	require.ErrorIs(t, err, ErrInvalidFile)
}

func TestListRecent(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	st := state.NewMock()
	require.NoError(t, st.RecordPosition(state.Entry{
		Path:      "/books/dune.m4b",
		Title:     "Dune",
		Artist:    "Frank Herbert",
		Position:  37 * time.Minute,
		UpdatedAt: fixed.Add(-3 * time.Hour),
	}))
	require.NoError(t, st.RecordPosition(state.Entry{
		Path:      "/books/emma.mp3",
		Title:     "Emma",
		Position:  90 * time.Second,
		UpdatedAt: fixed.Add(-48 * time.Hour),
	}))

	var out bytes.Buffer
	require.NoError(t, listRecent(&out, st, 10))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "3 hours ago")
	assert.Contains(t, lines[0], "00:37:00")
	assert.Contains(t, lines[0], "Dune by Frank Herbert")
	assert.Contains(t, lines[0], "/books/dune.m4b")
	assert.Contains(t, lines[1], "2 days ago")
	assert.Contains(t, lines[1], "00:01:30")
	assert.NotContains(t, lines[1], " by ")
}

func TestListRecent_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listRecent(&out, state.NewMock(), 10))
	assert.Equal(t, "No listening history.\n", out.String())
}
