package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/uap/internal/command"
	"github.com/llehouerou/uap/internal/deadline"
	"github.com/llehouerou/uap/internal/playback"
	"github.com/llehouerou/uap/internal/ui/playerbar"
	"github.com/llehouerou/uap/internal/ui/render"
	"github.com/llehouerou/uap/internal/ui/styles"
)

const appTitle = "UAP"

// View renders the application UI.
func (m Model) View() string {
	if m.width < 4 || m.height < 3 {
		return ""
	}
	innerWidth := m.width - 2
	bodyHeight := m.bodyHeight()

	lines, _ := render.Window(m.viewLines(innerWidth), m.scroll, bodyHeight)
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	lines = append(lines, m.statusLine(innerWidth))

	return styles.Frame(styles.Header(appTitle), strings.Join(lines, "\n"), m.width, m.height)
}

// bodyHeight is the number of rows available to the active view: the
// frame borders and the status line are reserved.
func (m Model) bodyHeight() int {
	return max(m.height-3, 0)
}

func (m Model) maxScroll() int {
	if m.width < 4 {
		return 0
	}
	return max(len(m.viewLines(m.width-2))-m.bodyHeight(), 0)
}

func (m Model) viewLines(width int) []string {
	switch m.view {
	case command.ViewChapters:
		return m.chapterLines(width)
	case command.ViewHelp:
		return m.helpLines(width)
	default:
		return strings.Split(m.playerView(width), "\n")
	}
}

func (m Model) playerView(width int) string {
	now := m.now()
	return playerbar.Render(playerbar.State{
		Playing:      m.estimator.Playing(),
		Title:        m.meta.Title,
		Artist:       m.meta.Artist,
		Chapter:      m.meta.ChapterTitle,
		ChapterIndex: m.meta.ChapterIndex,
		Chapters:     len(m.meta.Chapters),
		Position:     m.estimator.Position(now),
		Duration:     m.estimator.Duration(),
		Volume:       m.meta.Volume,
	}, width)
}

func (m Model) chapterLines(width int) []string {
	if len(m.meta.Chapters) == 0 {
		return []string{styles.T().S().Muted.Render("No chapters")}
	}
	s := styles.T().S()
	spans := playback.Spans(m.meta.Chapters, m.estimator.Duration())
	lines := make([]string, len(spans))
	for i, span := range spans {
		marker := "  "
		if i == m.meta.ChapterIndex {
			marker = "▶ "
		}
		times := render.Clock(span.Start) + " - " + render.Clock(span.End)
		left := fmt.Sprintf("%s%3d. %s", marker, i+1, render.Sanitize(span.Title))
		left = render.TruncateEllipsis(left, max(width-lipgloss.Width(times)-1, 1))

		line := render.Row(left, times, width)
		if i == m.meta.ChapterIndex {
			line = s.Playing.Render(line)
		}
		lines[i] = line
	}
	return lines
}

func (m Model) helpLines(width int) []string {
	s := styles.T().S()
	lines := []string{s.Title.Render("Commands")}

	usage := m.lang.Usage()
	names := make([]string, len(usage))
	nameWidth := 0
	for i, u := range usage {
		names[i] = strings.Join(u.Names, ", ")
		if u.Args != "" {
			names[i] += " " + u.Args
		}
		nameWidth = max(nameWidth, lipgloss.Width(names[i]))
	}
	for i, u := range usage {
		line := "  " + s.Key.Render(render.Pad(names[i], nameWidth)) + "  " + u.Description
		lines = append(lines, render.TruncateEllipsis(line, width))
	}

	lines = append(lines, "", s.Title.Render("Keys"))
	help := m.keys.Help()
	keyWidth := 0
	for _, h := range help {
		keyWidth = max(keyWidth, lipgloss.Width(h.Key))
	}
	for _, h := range help {
		line := "  " + s.Key.Render(render.Pad(h.Key, keyWidth)) + "  " + h.Desc
		lines = append(lines, render.TruncateEllipsis(line, width))
	}
	return lines
}

// statusLine is the bottom row: the command prompt, an error or the resume
// banner on the left and the armed timer on the right.
func (m Model) statusLine(width int) string {
	s := styles.T().S()

	var left string
	switch {
	case m.commandMode:
		left = m.prompt()
	case m.errMsg != "":
		left = s.Error.Render(m.errMsg)
	case m.banner != "":
		left = s.Muted.Render(m.banner)
	}

	right := m.timerLabel()
	if right == "" {
		return render.TruncateEllipsis(left, width)
	}
	right = s.Timer.Render(right)
	left = render.TruncateEllipsis(left, max(width-lipgloss.Width(right)-1, 1))
	return render.Row(left, right, width)
}

// prompt renders ':' and the buffer with the cursor cell highlighted.
func (m Model) prompt() string {
	text := m.cmdline.text
	cursor := m.cmdline.cursor
	under := " "
	after := ""
	if cursor < len(text) {
		under = string(text[cursor])
		after = string(text[cursor+1:])
	}
	return ":" + string(text[:cursor]) + styles.T().S().Cursor.Render(under) + after
}

// timerLabel is "P: HH:MM:SS" or "Q: HH:MM:SS" while a timer is armed.
func (m Model) timerLabel() string {
	kind, left := m.deadlines.Remaining(m.now())
	switch kind {
	case deadline.PauseAfter:
		return "P: " + render.Clock(left)
	case deadline.QuitAfter:
		return "Q: " + render.Clock(left)
	case deadline.None:
	}
	return ""
}
