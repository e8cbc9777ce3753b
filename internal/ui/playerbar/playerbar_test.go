package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Playing(t *testing.T) {
	out := ansi.Strip(Render(State{
		Playing:      true,
		Title:        "Dune",
		Artist:       "Frank Herbert",
		Chapter:      "Book One",
		ChapterIndex: 1,
		Chapters:     3,
		Position:     62 * time.Second,
		Duration:     time.Hour,
		Volume:       80,
	}, 80))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Dune by Frank Herbert", lines[0])
	assert.Equal(t, "Chapter 2/3: Book One", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "▶  00:01:02"), lines[3])
	assert.Contains(t, lines[3], "01:00:00")
	assert.True(t, strings.HasSuffix(lines[3], "vol: 80%"), lines[3])
}

func TestRender_PausedWithoutChapters(t *testing.T) {
	out := ansi.Strip(Render(State{
		Title:        "Dune",
		ChapterIndex: -1,
		Duration:     time.Hour,
		Volume:       150,
	}, 60))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Dune", lines[0])
	assert.Empty(t, lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "⏸"), lines[3])
	assert.Contains(t, lines[3], "vol: 150%")
}

func TestRender_FitsWidth(t *testing.T) {
	out := Render(State{
		Playing:      true,
		Title:        strings.Repeat("Very long title ", 10),
		ChapterIndex: -1,
		Duration:     time.Hour,
		Volume:       100,
	}, 40)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40, line)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		position   time.Duration
		duration   time.Duration
		width      int
		wantFilled int
		wantEmpty  int
	}{
		{"half", 30 * time.Minute, time.Hour, 39, 8, 8},
		{"start", 0, time.Hour, 39, 0, 16},
		{"end", time.Hour, time.Hour, 39, 16, 0},
		{"unknown duration", time.Minute, 0, 39, 0, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(RenderProgressBar(tt.position, tt.duration, tt.width, true))
			assert.Equal(t, tt.wantFilled, strings.Count(got, filledBlock), got)
			assert.Equal(t, tt.wantEmpty, strings.Count(got, emptyBlock), got)
			assert.Equal(t, tt.width, lipgloss.Width(got))
		})
	}
}

func TestRenderProgressBar_Narrow(t *testing.T) {
	got := ansi.Strip(RenderProgressBar(time.Minute, time.Hour, 10, false))
	assert.Equal(t, "⏸  00:01:00 / 01:00:00", got)
}
