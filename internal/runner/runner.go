// Package runner starts the engine, UI and desktop-session loops and ties
// their lifetimes together.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/uap/internal/app"
	"github.com/llehouerou/uap/internal/command"
	"github.com/llehouerou/uap/internal/config"
	"github.com/llehouerou/uap/internal/errmsg"
	"github.com/llehouerou/uap/internal/keymap"
	"github.com/llehouerou/uap/internal/log"
	"github.com/llehouerou/uap/internal/media"
	"github.com/llehouerou/uap/internal/mpris"
	"github.com/llehouerou/uap/internal/playback"
	"github.com/llehouerou/uap/internal/player"
	"github.com/llehouerou/uap/internal/resume"
	"github.com/llehouerou/uap/internal/session"
	"github.com/llehouerou/uap/internal/state"
)

// UIFunc runs the UI model until it exits and returns the final model.
type UIFunc func(m app.Model) (app.Model, error)

// Options configures Run.
type Options struct {
	Path   string
	Config *config.Config
	Engine player.Engine

	// Binding publishes the desktop session. Nil disables it. Transport is
	// the mailbox the binding's callback feeds.
	Binding   session.Binding
	Transport *playback.Mailbox[mpris.Transport]
	Announcer session.Announcer

	// State is optional.
	State  state.Interface
	Stderr <-chan string

	// RunUI defaults to a full-screen bubbletea program.
	RunUI UIFunc
}

// Run plays opts.Path until the user quits, the context is cancelled or a
// loop fails. The engine is closed before Run returns. The first fatal
// error is returned.
func Run(ctx context.Context, opts Options) error {
	logger := log.WithComponent("runner")
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	defer opts.Engine.Close()

	store := resume.Store{Margin: cfg.ResumeMarginDuration()}
	point, err := store.Load(opts.Path)
	if err != nil {
		logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpLoadResume, err))
		point = resume.Point{}
	}

	if opts.State != nil {
		if err := opts.State.SetLastFile(opts.Path); err != nil {
			logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpRecordHistory, err))
		}
	}

	info, err := media.Probe(opts.Path)
	if err != nil {
		logger.Debug().Err(err).Msg("read tags")
	}

	binding := opts.Binding
	if binding == nil {
		binding = noBinding{}
	}
	transport := opts.Transport
	if transport == nil {
		transport = playback.NewMailbox[mpris.Transport]()
	}

	controls := playback.NewMailbox[playback.Control]()
	uiEvents := playback.NewMailbox[playback.Event]()
	sessionEvents := playback.NewMailbox[playback.Event]()

	engine := player.NewLoop(player.LoopOptions{
		Engine:      opts.Engine,
		Path:        opts.Path,
		ResumeAt:    point.Position,
		Controls:    controls,
		Subscribers: []playback.Sender[playback.Event]{uiEvents, sessionEvents},
		Store: historyStore{
			resume: store,
			state:  opts.State,
			info:   info,
			log:    logger,
		},
		Logger: log.WithComponent("engine"),
	})

	sess := session.New(session.Options{
		Binding:   binding,
		Path:      opts.Path,
		Events:    sessionEvents,
		Transport: transport,
		Controls:  controls,
		Announcer: opts.Announcer,
		Logger:    log.WithComponent("session"),
	})

	seekStep, seekLong := cfg.SeekSteps()
	model := app.New(app.Options{
		Controls: controls,
		Events:   uiEvents,
		Language: command.New(),
		Keys:     keymap.NewResolver(keymap.Default(seekStep, seekLong)),
		ResumeAt: point.Position,
		SavedAt:  point.SavedAt,
		Stderr:   opts.Stderr,
		Logger:   log.WithComponent("ui"),
	})

	runUI := opts.RunUI
	if runUI == nil {
		runUI = RunProgram
	}

	logger.Info().Str("path", opts.Path).Dur("resume", point.Position).Msg("starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := engine.Run(gctx); err != nil {
			return fmt.Errorf("engine: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return sess.Run(gctx)
	})
	g.Go(func() error {
		return runModel(runUI, model, controls, logger)
	})

	// The UI mailbox is closed only after the engine is gone, so an early UI
	// exit reaches the engine as a Quit rather than a send failure.
	err = g.Wait()
	uiEvents.Close()
	if cerr := binding.Close(); cerr != nil {
		logger.Warn().Err(cerr).Msg(errmsg.Format(errmsg.OpMediaSession, cerr))
	}
	if err != nil {
		logger.Error().Err(err).Msg("stopped")
		return err
	}
	logger.Info().Msg("stopped")
	return nil
}

// runModel runs the UI. When the UI ends before the engine confirmed it is
// quitting, the engine is told to quit so the other loops follow.
func runModel(
	runUI UIFunc,
	model app.Model,
	controls playback.Sender[playback.Control],
	logger zerolog.Logger,
) error {
	final, err := runUI(model)
	if err == nil {
		err = final.Err()
	}
	if !final.Done() {
		if serr := controls.Send(playback.Quit{}); serr != nil && !errors.Is(serr, playback.ErrClosed) {
			logger.Warn().Err(serr).Msg("send quit after ui exit")
		}
	}
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// RunProgram runs m as a full-screen bubbletea program. Signals are left to
// the caller's context.
func RunProgram(m app.Model) (app.Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithoutSignalHandler())
	final, err := p.Run()
	fm, ok := final.(app.Model)
	if !ok {
		return app.Model{}, err
	}
	return fm, err
}

// historyStore saves the resume file and records the listening history.
// History failures are logged; only the resume file is essential.
type historyStore struct {
	resume resume.Store
	state  state.Interface
	info   media.Info
	log    zerolog.Logger
}

func (h historyStore) Save(path string, pos time.Duration) error {
	if err := h.resume.Save(path, pos); err != nil {
		return err
	}
	if h.state == nil {
		return nil
	}
	err := h.state.RecordPosition(state.Entry{
		Path:     path,
		Title:    h.info.Title,
		Artist:   h.info.Artist,
		Position: max(pos-h.resume.Margin, 0),
	})
	if err != nil {
		h.log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpRecordHistory, err))
	}
	return nil
}

type noBinding struct{}

func (noBinding) SetMetadata(mpris.Metadata) error { return nil }
func (noBinding) SetPlayback(mpris.Playback) error { return nil }
func (noBinding) Close() error                     { return nil }
