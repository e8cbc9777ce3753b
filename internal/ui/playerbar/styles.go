package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/uap/internal/ui/styles"
)

func titleStyle() lipgloss.Style   { return styles.T().S().Title }
func mutedStyle() lipgloss.Style   { return styles.T().S().Muted }
func chapterStyle() lipgloss.Style { return styles.T().S().Base }
func playingStyle() lipgloss.Style { return styles.T().S().Playing }
func boostStyle() lipgloss.Style   { return styles.T().S().Warning }

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}
