// Package playerbar renders the now-playing view.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/uap/internal/ui/render"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// State holds everything needed to render the player view.
type State struct {
	Playing      bool
	Title        string
	Artist       string
	Chapter      string
	ChapterIndex int // -1 when there is no current chapter
	Chapters     int
	Position     time.Duration
	Duration     time.Duration
	Volume       int
}

// Render returns the player view lines for the given width.
func Render(s State, width int) string {
	width = max(width, 1)
	lines := make([]string, 0, 5)

	title := s.Title
	if title == "" {
		title = "Unknown Book"
	}
	header := titleStyle().Render(render.Sanitize(title))
	if s.Artist != "" {
		header += mutedStyle().Render(" by " + render.Sanitize(s.Artist))
	}
	lines = append(lines, render.TruncateEllipsis(header, width))

	if s.ChapterIndex >= 0 && s.Chapters > 0 {
		chapter := fmt.Sprintf("Chapter %d/%d", s.ChapterIndex+1, s.Chapters)
		if s.Chapter != "" {
			chapter += ": " + render.Sanitize(s.Chapter)
		}
		lines = append(lines, render.TruncateEllipsis(chapterStyle().Render(chapter), width))
	} else {
		lines = append(lines, "")
	}

	volume := RenderVolume(s.Volume)
	barWidth := max(width-lipgloss.Width(volume)-3, 0)
	bar := RenderProgressBar(s.Position, s.Duration, barWidth, s.Playing)
	lines = append(lines, "", render.Row(bar, volume, width))

	return strings.Join(lines, "\n")
}

// RenderVolume renders the volume level. Levels above 100 are boosted and
// highlighted.
func RenderVolume(level int) string {
	text := fmt.Sprintf("vol: %d%%", level)
	if level > 100 {
		return boostStyle().Render(text)
	}
	return mutedStyle().Render(text)
}
