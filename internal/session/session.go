// Package session mirrors playback state to the desktop media session and
// turns desktop transport commands into playback controls.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/uap/internal/mpris"
	"github.com/llehouerou/uap/internal/notify"
	"github.com/llehouerou/uap/internal/playback"
)

// Default loop cadences.
const (
	DefaultDrainInterval   = 16 * time.Millisecond
	DefaultRefreshInterval = 250 * time.Millisecond
)

// Binding is the desktop media session.
type Binding interface {
	SetMetadata(m mpris.Metadata) error
	SetPlayback(p mpris.Playback) error
	Close() error
}

// Announcer shows chapter changes to the user.
type Announcer interface {
	SetBook(title, icon string)
	Announce(title string, index, total int) error
}

// Options configures a Loop.
type Options struct {
	Binding   Binding
	Path      string
	Events    *playback.Mailbox[playback.Event]
	Transport *playback.Mailbox[mpris.Transport]
	Controls  playback.Sender[playback.Control]
	// Announcer is optional.
	Announcer Announcer
	Logger    zerolog.Logger

	DrainInterval   time.Duration
	RefreshInterval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Loop is the OS-session loop. It keeps its own position estimate, folded
// from the same events the UI receives.
type Loop struct {
	binding   Binding
	path      string
	events    *playback.Mailbox[playback.Event]
	transport *playback.Mailbox[mpris.Transport]
	controls  playback.Sender[playback.Control]
	announcer Announcer
	log       zerolog.Logger
	drain     time.Duration
	refresh   time.Duration
	now       func() time.Time

	estimator playback.Estimator
	meta      mpris.Metadata
	volume    int
	chapter   int
	chapters  int
	status    mpris.Status
}

// New creates a session loop.
func New(opts Options) *Loop {
	l := &Loop{
		binding:   opts.Binding,
		path:      opts.Path,
		events:    opts.Events,
		transport: opts.Transport,
		controls:  opts.Controls,
		announcer: opts.Announcer,
		log:       opts.Logger,
		drain:     opts.DrainInterval,
		refresh:   opts.RefreshInterval,
		now:       opts.Now,
		estimator: playback.NewEstimator(),
		volume:    100,
		chapter:   playback.NoChapter,
		status:    mpris.StatusPaused,
	}
	if l.drain <= 0 {
		l.drain = DefaultDrainInterval
	}
	if l.refresh <= 0 {
		l.refresh = DefaultRefreshInterval
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// TransportSink returns a callback that queues desktop commands for the
// loop. It is safe to call from any goroutine.
func TransportSink(box *playback.Mailbox[mpris.Transport]) func(mpris.Transport) {
	return func(t mpris.Transport) {
		_ = box.Send(t)
	}
}

// Run mirrors events until Quitting arrives or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.events.Close()
	defer l.transport.Close()

	drain := time.NewTicker(l.drain)
	defer drain.Stop()
	refresh := time.NewTicker(l.refresh)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Debug().Msg("context done")
			return nil
		case <-drain.C:
			if ev, ok := l.events.TryRecv(); ok {
				l.log.Debug().Stringer("event", ev).Msg("event received")
				if _, quit := ev.(playback.Quitting); quit {
					return nil
				}
				l.handle(ev)
			}
			if t, ok := l.transport.TryRecv(); ok {
				l.forward(t)
			}
		case <-refresh.C:
			if l.estimator.Ready() {
				l.pushPlayback()
			}
		}
	}
}

func (l *Loop) handle(ev playback.Event) {
	now := l.now()
	l.estimator.Apply(ev, now)

	switch ev := ev.(type) {
	case playback.FileLoaded:
		l.loaded(ev.Metadata)
	case playback.VolumeChanged:
		l.volume = ev.Level
		l.pushPlayback()
	case playback.ChapterChanged:
		l.chapterChanged(ev)
	case playback.PositionChanged:
		l.pushPlayback()
	default:
		if l.currentStatus() != l.status {
			l.pushPlayback()
		}
	}
}

func (l *Loop) loaded(md playback.Metadata) {
	l.meta = mpris.Metadata{
		Path:    l.path,
		Title:   md.Title,
		Artist:  md.Artist,
		Album:   md.Album,
		Length:  md.Duration,
		ArtPath: mpris.FindAlbumArt(l.path),
	}
	l.volume = md.Volume
	l.chapter = md.ChapterIndex
	l.chapters = len(md.Chapters)

	if err := l.binding.SetMetadata(l.meta); err != nil {
		l.log.Warn().Err(err).Msg("set session metadata")
	}
	if l.announcer != nil {
		l.announcer.SetBook(md.Title, l.meta.ArtPath)
	}
	l.pushPlayback()
}

// chapterChanged announces chapter transitions after the file is loaded.
// The engine reports the starting chapter too; it is not announced.
func (l *Loop) chapterChanged(ev playback.ChapterChanged) {
	prev := l.chapter
	l.chapter = ev.Index
	if l.announcer == nil || l.chapters == 0 || prev == ev.Index || prev == playback.NoChapter {
		return
	}
	if err := l.announcer.Announce(ev.Title, ev.Index, l.chapters); err != nil {
		l.log.Warn().Err(err).Int("chapter", ev.Index).Msg("announce chapter")
	}
}

func (l *Loop) currentStatus() mpris.Status {
	if l.estimator.Playing() {
		return mpris.StatusPlaying
	}
	return mpris.StatusPaused
}

func (l *Loop) pushPlayback() {
	l.status = l.currentStatus()
	p := mpris.Playback{
		Status:   l.status,
		Position: l.estimator.Position(l.now()),
		Volume:   l.volume,
	}
	if err := l.binding.SetPlayback(p); err != nil {
		l.log.Warn().Err(err).Msg("set session playback")
	}
}

// forward translates a desktop command into a control for the engine.
func (l *Loop) forward(t mpris.Transport) {
	c := Translate(t)
	if c == nil {
		l.log.Debug().Stringer("transport", t).Msg("transport ignored")
		return
	}
	l.log.Debug().Stringer("transport", t).Stringer("control", c).Msg("transport")
	if err := l.controls.Send(c); err != nil {
		l.log.Warn().Err(err).Stringer("control", c).Msg("forward transport")
	}
}

// Translate maps a desktop command to a playback control. It returns nil
// for commands with no equivalent.
func Translate(t mpris.Transport) playback.Control {
	switch t.Kind {
	case mpris.TransportPlay:
		return playback.Resume{}
	case mpris.TransportPause, mpris.TransportStop:
		return playback.Pause{}
	case mpris.TransportToggle:
		return playback.TogglePause{}
	case mpris.TransportNext:
		return playback.NextChapter{}
	case mpris.TransportPrevious:
		return playback.PrevChapter{}
	case mpris.TransportSeek:
		return playback.SeekRelative{Offset: t.Offset}
	case mpris.TransportSetPosition:
		return playback.SeekAbsolute{Position: t.Position}
	case mpris.TransportSetVolume:
		return playback.SetVolume{Level: playback.ClampVolume(t.Volume)}
	case mpris.TransportQuit:
		return playback.Quit{}
	}
	return nil
}

// Volume returns the last volume reported by the engine.
func (l *Loop) Volume() int {
	return l.volume
}

// Position returns the estimated position at now.
func (l *Loop) Position(now time.Time) time.Duration {
	return l.estimator.Position(now)
}

var _ Announcer = (*notify.Chapters)(nil)
