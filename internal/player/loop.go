package player

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/uap/internal/playback"
)

// DefaultPollInterval bounds how long one cycle waits for an engine event.
const DefaultPollInterval = 16 * time.Millisecond

// PositionStore persists the position reached when the loop quits.
type PositionStore interface {
	Save(path string, pos time.Duration) error
}

// LoopOptions configures a Loop.
type LoopOptions struct {
	Engine Engine
	Path   string
	// ResumeAt is the position to seek to once the file is loaded.
	ResumeAt     time.Duration
	Controls     *playback.Mailbox[playback.Control]
	Subscribers  []playback.Sender[playback.Event]
	Store        PositionStore
	PollInterval time.Duration
	Logger       zerolog.Logger
}

// Loop is the engine adapter. Run owns the engine for its whole lifetime.
type Loop struct {
	engine   Engine
	path     string
	resumeAt time.Duration
	controls *playback.Mailbox[playback.Control]
	subs     []playback.Sender[playback.Event]
	store    PositionStore
	poll     time.Duration
	log      zerolog.Logger

	phase    Phase
	chapters []playback.Chapter
}

// NewLoop creates an engine loop.
func NewLoop(opts LoopOptions) *Loop {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Loop{
		engine:   opts.Engine,
		path:     opts.Path,
		resumeAt: opts.ResumeAt,
		controls: opts.Controls,
		subs:     opts.Subscribers,
		store:    opts.Store,
		poll:     poll,
		log:      opts.Logger,
	}
}

// Phase returns the current lifecycle phase.
func (l *Loop) Phase() Phase {
	return l.phase
}

// Run loads the file and pumps engine events and control messages until a
// Quit control arrives, ctx is cancelled or a fatal error occurs. Every exit
// path broadcasts Quitting to the subscribers.
func (l *Loop) Run(ctx context.Context) error {
	defer l.controls.Close()

	l.setPhase(Loading)
	if err := l.engine.LoadFile(l.path); err != nil {
		err = fmt.Errorf("load %s: %w", l.path, err)
		l.abort(err)
		return err
	}

	for {
		if ctx.Err() != nil {
			l.log.Debug().Msg("context done, quitting")
			return l.quit()
		}

		if err := l.handleEvent(l.engine.WaitEvent(l.poll)); err != nil {
			// A subscriber that left because ctx is done is part of the
			// shutdown, not a failure.
			if ctx.Err() != nil && errors.Is(err, playback.ErrClosed) {
				l.log.Debug().Err(err).Msg("subscriber gone during shutdown")
				return l.quit()
			}
			l.abort(err)
			return err
		}

		c, ok := l.controls.TryRecv()
		if !ok {
			continue
		}
		l.log.Debug().Stringer("control", c).Msg("control received")
		if _, quit := c.(playback.Quit); quit {
			return l.quit()
		}
		if err := l.apply(c); err != nil {
			err = fmt.Errorf("%s: %w", c, err)
			l.abort(err)
			return err
		}
	}
}

func (l *Loop) setPhase(p Phase) {
	if p != l.phase {
		l.log.Debug().Stringer("from", l.phase).Stringer("to", p).Msg("phase")
		l.phase = p
	}
}

func (l *Loop) setPaused(paused bool) {
	if !l.phase.Loaded() {
		return
	}
	if paused {
		l.setPhase(Paused)
	} else {
		l.setPhase(Playing)
	}
}

func (l *Loop) broadcast(ev playback.Event) error {
	l.log.Debug().Stringer("event", ev).Msg("broadcast")
	if err := playback.Broadcast(ev, l.subs...); err != nil {
		return fmt.Errorf("broadcast %s: %w", ev, err)
	}
	return nil
}

func (l *Loop) handleEvent(ev Event) error {
	switch ev.Kind {
	case EventNone, EventOther:
		return nil
	case EventStartFile:
		l.setPhase(Loading)
		return l.broadcast(playback.FileStarted{})
	case EventFileLoaded:
		return l.handleFileLoaded()
	case EventPlaybackRestart:
		paused, err := l.engine.Paused()
		if err != nil {
			return err
		}
		l.setPaused(paused)
		return l.broadcast(playback.PlaybackRestarted{Paused: paused})
	case EventSeek:
		pos, err := l.engine.Position()
		if err != nil {
			return err
		}
		return l.broadcast(playback.PositionChanged{Position: pos})
	case EventPropertyChange:
		return l.handleProperty(ev)
	case EventShutdown:
		return ErrEngineClosed
	default:
		return nil
	}
}

func (l *Loop) handleProperty(ev Event) error {
	switch ev.Property {
	case PropPause:
		paused, ok := asBool(ev.Value)
		if !ok {
			return nil
		}
		l.setPaused(paused)
		if paused {
			return l.broadcast(playback.PlaybackPaused{})
		}
		return l.broadcast(playback.PlaybackResumed{})
	case PropVolume:
		level, ok := asInt64(ev.Value)
		if !ok {
			return nil
		}
		return l.broadcast(playback.VolumeChanged{Level: int(level)})
	case PropChapter:
		idx, ok := asInt64(ev.Value)
		if !ok {
			return nil
		}
		c, ok := playback.ChapterAt(l.chapters, int(idx))
		if !ok {
			return nil
		}
		return l.broadcast(playback.ChapterChanged{Title: c.Title, Index: int(idx)})
	}
	return nil
}

func (l *Loop) handleFileLoaded() error {
	meta := playback.Metadata{ChapterIndex: playback.NoChapter}

	title, err := l.engine.Title()
	if err != nil {
		return err
	}
	if title == "" {
		title = filepath.Base(l.path)
	}
	meta.Title = title

	if meta.Duration, err = l.engine.Duration(); err != nil {
		return err
	}

	if l.resumeAt > 0 {
		if err := l.engine.Seek(l.resumeAt, SeekAbsolute); err != nil {
			return fmt.Errorf("seek to resume position: %w", err)
		}
		l.resumeAt = 0
	}

	chapters, err := l.engine.Chapters()
	if err != nil {
		l.log.Debug().Err(err).Msg("read chapter list")
	}
	l.chapters = chapters
	meta.Chapters = chapters
	if len(chapters) > 0 {
		if idx, err := l.engine.Chapter(); err == nil {
			if c, ok := playback.ChapterAt(chapters, idx); ok {
				meta.ChapterIndex = idx
				meta.ChapterTitle = c.Title
			}
		}
	}

	if meta.Volume, err = l.engine.Volume(); err != nil {
		return err
	}
	meta.Artist, _ = l.engine.Metadata(MetaArtist)
	meta.Album, _ = l.engine.Metadata(MetaAlbum)

	l.setPhase(Ready)
	return l.broadcast(playback.FileLoaded{Metadata: meta})
}

func (l *Loop) apply(c playback.Control) error {
	switch c := c.(type) {
	case playback.AdjustVolume:
		v, err := l.engine.Volume()
		if err != nil {
			return err
		}
		return l.engine.SetVolume(playback.ClampVolume(v + c.Delta))
	case playback.SetVolume:
		return l.engine.SetVolume(playback.ClampVolume(c.Level))
	case playback.SeekRelative:
		return l.engine.Seek(c.Offset, SeekRelative)
	case playback.SeekAbsolute:
		return l.engine.Seek(max(c.Position, 0), SeekAbsolute)
	case playback.Resume:
		return l.engine.SetPaused(false)
	case playback.Pause:
		return l.engine.SetPaused(true)
	case playback.TogglePause:
		return l.engine.CyclePause()
	case playback.NextChapter:
		return l.stepChapter(1)
	case playback.PrevChapter:
		return l.stepChapter(-1)
	}
	return nil
}

// stepChapter moves by delta chapters. Out-of-range targets are ignored.
func (l *Loop) stepChapter(delta int) error {
	if len(l.chapters) == 0 {
		return nil
	}
	cur, err := l.engine.Chapter()
	if err != nil {
		return err
	}
	next := cur + delta
	if next < 0 || next >= len(l.chapters) {
		return nil
	}
	return l.engine.SetChapter(next)
}

// quit persists the position, stops the engine and tells the subscribers.
func (l *Loop) quit() error {
	loaded := l.phase.Loaded()
	l.setPhase(Quitting)

	var errs []error
	if loaded {
		if err := l.persist(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := l.engine.Quit(); err != nil {
		errs = append(errs, fmt.Errorf("quit engine: %w", err))
	}
	playback.BroadcastBestEffort(playback.Quitting{}, l.subs...)
	return errors.Join(errs...)
}

func (l *Loop) persist() error {
	pos, err := l.engine.Position()
	if err != nil {
		return fmt.Errorf("persist position: %w", err)
	}
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(l.path, pos); err != nil {
		return fmt.Errorf("persist position: %w", err)
	}
	l.log.Info().Dur("position", pos).Str("path", l.path).Msg("position saved")
	return nil
}

// abort is the fatal exit path: save what can be saved and release the
// subscribers.
func (l *Loop) abort(cause error) {
	l.log.Error().Err(cause).Msg("engine loop failed")
	loaded := l.phase.Loaded()
	l.setPhase(Quitting)
	if loaded {
		if err := l.persist(); err != nil {
			l.log.Warn().Err(err).Msg("persist after failure")
		}
	}
	if !errors.Is(cause, ErrEngineClosed) {
		_ = l.engine.Quit()
	}
	playback.BroadcastBestEffort(playback.Quitting{}, l.subs...)
}
