// Package app is the terminal UI loop, written as a bubbletea model.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/uap/internal/command"
	"github.com/llehouerou/uap/internal/deadline"
	"github.com/llehouerou/uap/internal/keymap"
	"github.com/llehouerou/uap/internal/playback"
)

// Options configures the UI model.
type Options struct {
	Controls playback.Sender[playback.Control]
	Events   *playback.Mailbox[playback.Event]
	Language *command.Language
	Keys     *keymap.Resolver

	// ResumeAt and SavedAt describe the resume point, shown once on start.
	ResumeAt time.Duration
	SavedAt  time.Time

	// Stderr carries lines written by the native engine, logged at debug.
	Stderr <-chan string

	Logger zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the root UI model.
type Model struct {
	controls  playback.Sender[playback.Control]
	events    *playback.Mailbox[playback.Event]
	lang      *command.Language
	keys      *keymap.Resolver
	deadlines *deadline.Set
	stderr    <-chan string
	log       zerolog.Logger
	now       func() time.Time

	view        command.View
	scroll      int
	commandMode bool
	cmdline     commandLine
	errMsg      string
	banner      string

	estimator playback.Estimator
	meta      playback.Metadata

	quitSent bool
	done     bool
	err      error

	width  int
	height int
}

// New creates the UI model.
func New(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		controls:  opts.Controls,
		events:    opts.Events,
		lang:      opts.Language,
		keys:      opts.Keys,
		deadlines: &deadline.Set{},
		stderr:    opts.Stderr,
		log:       opts.Logger,
		now:       now,
		view:      command.ViewPlayer,
		cmdline:   newCommandLine(),
		banner:    resumeBanner(opts.ResumeAt, opts.SavedAt, now()),
		estimator: playback.NewEstimator(),
		meta:      playback.Metadata{ChapterIndex: playback.NoChapter, Volume: 100},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(FrameCmd(), waitForStderr(m.stderr))
}

// Err returns the fatal error that ended the UI, if any.
func (m Model) Err() error {
	return m.err
}

// QuitSent reports whether the UI asked the engine to quit.
func (m Model) QuitSent() bool {
	return m.quitSent
}

// Done reports whether the engine confirmed it is quitting.
func (m Model) Done() bool {
	return m.done
}

// ActiveView returns the screen being shown.
func (m Model) ActiveView() command.View {
	return m.view
}
