package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var frameBorder = lipgloss.RoundedBorder()

// Frame draws content inside a rounded border of exactly width x height
// cells, with title centered in the top edge. Content taller than the frame
// is cut at the bottom.
func Frame(title, content string, width, height int) string {
	if width < 4 || height < 2 {
		return content
	}
	border := lipgloss.NewStyle().Foreground(T().Border)
	innerWidth := width - 2
	innerHeight := height - 2

	titleWidth := lipgloss.Width(title)
	fill := innerWidth - titleWidth - 2
	var top string
	if title == "" || fill < 0 {
		top = frameBorder.TopLeft + strings.Repeat(frameBorder.Top, innerWidth) + frameBorder.TopRight
		top = border.Render(top)
	} else {
		left := fill / 2
		top = border.Render(frameBorder.TopLeft+strings.Repeat(frameBorder.Top, left)+" ") +
			title +
			border.Render(" "+strings.Repeat(frameBorder.Top, fill-left)+frameBorder.TopRight)
	}

	lines := strings.Split(content, "\n")
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	body := lipgloss.NewStyle().
		Border(frameBorder, false, true, true, true).
		BorderForeground(T().Border).
		Width(innerWidth).
		Height(innerHeight).
		MaxWidth(width).
		Render(strings.Join(lines, "\n"))

	return top + "\n" + body
}
