package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/uap/internal/ui/render"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  00:01:23  ▓▓▓▓▓░░░░░  01:04:56
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := playingStyle().Render(playSymbol)
	if !playing {
		status = mutedStyle().Render(pauseSymbol)
	}

	posStr := render.Clock(position)
	durStr := render.Clock(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = min(float64(position)/float64(duration), 1)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := barStyle().Render(strings.Repeat(filledBlock, filled)) +
		mutedStyle().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}
