package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the UI cycle period.
const FrameInterval = 16 * time.Millisecond

// FrameCmd returns a command that sends FrameMsg after one frame.
func FrameCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// waitForStderr returns a command that waits for the next captured line.
func waitForStderr(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return StderrMsg(line)
	}
}
