package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/uap/internal/command"
	"github.com/llehouerou/uap/internal/deadline"
	"github.com/llehouerou/uap/internal/errmsg"
	"github.com/llehouerou/uap/internal/playback"
	"github.com/llehouerou/uap/internal/ui/render"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		return m.handleFrame()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll = min(m.scroll, m.maxScroll())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StderrMsg:
		m.log.Debug().Str("line", string(msg)).Msg("engine stderr")
		return m, waitForStderr(m.stderr)
	}
	return m, nil
}

// handleFrame runs one UI cycle. The UI keeps cycling after it sent Quit
// until the engine confirms with Quitting, so that the engine never
// broadcasts to a dropped mailbox.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	if ev, ok := m.events.TryRecv(); ok {
		m.log.Debug().Stringer("event", ev).Msg("event received")
		if _, quit := ev.(playback.Quitting); quit {
			m.done = true
			return m, tea.Quit
		}
		m.apply(ev)
	}

	switch m.deadlines.Poll() {
	case deadline.PauseAfter:
		m.log.Info().Msg("pause timer fired")
		if cmd := m.send(playback.Pause{}); cmd != nil {
			return m, cmd
		}
	case deadline.QuitAfter:
		m.log.Info().Msg("quit timer fired")
		if cmd := m.send(playback.Quit{}); cmd != nil {
			return m, cmd
		}
	case deadline.None:
	}

	return m, FrameCmd()
}

// apply folds a playback event into the local state.
func (m *Model) apply(ev playback.Event) {
	m.estimator.Apply(ev, m.now())

	switch ev := ev.(type) {
	case playback.FileLoaded:
		m.meta = ev.Metadata
		m.scroll = min(m.scroll, m.maxScroll())
	case playback.VolumeChanged:
		m.meta.Volume = ev.Level
	case playback.ChapterChanged:
		if _, ok := playback.ChapterAt(m.meta.Chapters, ev.Index); ok {
			m.meta.ChapterIndex = ev.Index
			m.meta.ChapterTitle = ev.Title
		}
	}
}

// send forwards c to the engine. A failed send is fatal: the returned
// command ends the program. Once Quit was sent the engine may already be
// gone, so later controls are dropped.
func (m *Model) send(c playback.Control) tea.Cmd {
	if m.quitSent {
		m.log.Debug().Stringer("control", c).Msg("quit pending, control dropped")
		return nil
	}
	m.log.Debug().Stringer("control", c).Msg("send control")
	if err := m.controls.Send(c); err != nil {
		m.err = fmt.Errorf("send %s: %w", c, err)
		return tea.Quit
	}
	if _, quit := c.(playback.Quit); quit {
		m.quitSent = true
		m.deadlines.Cancel()
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.banner = ""

	if m.commandMode {
		return m.handleCommandKey(msg)
	}

	c, ok := m.keys.Resolve(msg.String())
	if !ok {
		return m, nil
	}
	m.log.Debug().Str("key", msg.String()).Stringer("command", c).Msg("key")
	return m.dispatch(c)
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyTab && msg.Type != tea.KeyShiftTab {
		m.cmdline.endCompletion()
	}

	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.leaveCommandMode()
	case tea.KeyEnter:
		text := m.cmdline.String()
		m.leaveCommandMode()
		c := m.lang.Parse(text)
		if c == nil {
			if strings.TrimSpace(text) != "" {
				m.errMsg = errmsg.UnknownCommand
			}
			return m, nil
		}
		m.log.Debug().Str("text", text).Stringer("command", c).Msg("command line")
		return m.dispatch(c)
	case tea.KeyBackspace:
		m.cmdline.backspace()
	case tea.KeyLeft:
		m.cmdline.left()
	case tea.KeyRight:
		m.cmdline.right()
	case tea.KeyTab:
		m.cmdline.complete(m.lang, true)
	case tea.KeyShiftTab:
		m.cmdline.complete(m.lang, false)
	case tea.KeySpace:
		m.cmdline.space()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if accepts(r) {
				m.cmdline.insert(r)
			}
		}
	}
	return m, nil
}

func (m *Model) leaveCommandMode() {
	m.commandMode = false
	m.cmdline = newCommandLine()
}

// dispatch executes a parsed command.
func (m Model) dispatch(c command.Command) (tea.Model, tea.Cmd) {
	switch c := c.(type) {
	case command.Control:
		if cmd := m.send(c.Msg); cmd != nil {
			return m, cmd
		}
	case command.PauseAfter:
		m.deadlines.SetPauseAfter(c.After, m.now())
	case command.QuitAfter:
		m.deadlines.SetQuitAfter(c.After, m.now())
	case command.SwitchView:
		m.view = c.View
		m.scroll = 0
	case command.Scroll:
		m.scroll = min(max(m.scroll+c.Delta, 0), m.maxScroll())
	case command.CommandMode:
		if c.Enter {
			m.commandMode = true
			m.cmdline = newCommandLine()
		} else {
			m.leaveCommandMode()
		}
	}
	return m, nil
}

func resumeBanner(at time.Duration, savedAt, now time.Time) string {
	if at <= 0 {
		return ""
	}
	banner := "Resuming at " + render.Clock(at)
	if !savedAt.IsZero() {
		banner += " (saved " + humanize.RelTime(savedAt, now, "ago", "from now") + ")"
	}
	return banner
}
