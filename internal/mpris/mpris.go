//go:build linux

package mpris

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Adapter publishes the player on the session bus. The D-Bus side reads
// the last snapshot set through SetMetadata and SetPlayback, and every
// change is announced with PropertiesChanged (Seeked for the position).
// Transport commands go to the callback given to New.
type Adapter struct {
	server *server.Server
	player *playerAdapter
	events types.OrgMprisMediaPlayer2PlayerEventHandler
}

// New registers org.mpris.MediaPlayer2.uap and starts serving it in the
// background. onTransport is called from the D-Bus goroutine. New fails
// when there is no session bus.
func New(onTransport func(Transport)) (*Adapter, error) {
	if onTransport == nil {
		return nil, fmt.Errorf("mpris: nil transport callback")
	}
	// Listen connects through the same shared session bus connection.
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("mpris: connect session bus: %w", err)
	}

	root := &rootAdapter{onTransport: onTransport}
	player := newPlayerAdapter(onTransport)

	// The emitting side gets its own Server value with the connection set
	// up front; Listen assigns Conn on the serving one from its goroutine.
	emitter := &server.Server{Conn: conn, RootAdapter: root, PlayerAdapter: player}

	a := &Adapter{
		server: server.NewServer(BusName, root, player),
		player: player,
		events: events.NewEventHandler(emitter).Player,
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// SetMetadata replaces the now-playing information and announces it.
func (a *Adapter) SetMetadata(m Metadata) error {
	a.player.update(func(s *snapshot) { s.meta = m })
	if err := a.events.OnTitle(); err != nil {
		return fmt.Errorf("mpris: emit metadata: %w", err)
	}
	return nil
}

// SetPlayback replaces the playback state and announces what changed.
func (a *Adapter) SetPlayback(p Playback) error {
	prev := a.player.snapshot().playback
	a.player.update(func(s *snapshot) { s.playback = p })

	var errs []error
	if p.Status != prev.Status {
		errs = append(errs, a.events.OnPlayPause())
	}
	if p.Volume != prev.Volume {
		errs = append(errs, a.events.OnVolume())
	}
	if p.Position != prev.Position {
		errs = append(errs, a.events.OnSeek(types.Microseconds(p.Position.Microseconds())))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("mpris: emit playback: %w", err)
	}
	return nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	onTransport func(Transport)
}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	r.onTransport(Transport{Kind: TransportQuit})
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return Identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mp4", "audio/x-m4b", "audio/mpeg", "audio/flac", "audio/ogg", "audio/opus"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	onTransport func(Transport)
	state       atomic.Pointer[snapshot]
}

func newPlayerAdapter(onTransport func(Transport)) *playerAdapter {
	p := &playerAdapter{onTransport: onTransport}
	p.state.Store(&snapshot{playback: Playback{Status: StatusPaused, Volume: 100}})
	return p
}

func (p *playerAdapter) snapshot() snapshot {
	return *p.state.Load()
}

// update is only called from the session loop, so load-modify-store
// cannot race with another writer.
func (p *playerAdapter) update(fn func(*snapshot)) {
	next := p.snapshot()
	fn(&next)
	p.state.Store(&next)
}

func (p *playerAdapter) send(kind TransportKind) error {
	p.onTransport(Transport{Kind: kind})
	return nil
}

func (p *playerAdapter) Next() error {
	return p.send(TransportNext)
}

func (p *playerAdapter) Previous() error {
	return p.send(TransportPrevious)
}

func (p *playerAdapter) Pause() error {
	return p.send(TransportPause)
}

func (p *playerAdapter) PlayPause() error {
	return p.send(TransportToggle)
}

func (p *playerAdapter) Stop() error {
	return p.send(TransportStop)
}

func (p *playerAdapter) Play() error {
	return p.send(TransportPlay)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.onTransport(Transport{
		Kind:   TransportSeek,
		Offset: time.Duration(offset) * time.Microsecond,
	})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	if position < 0 {
		return nil
	}
	length := p.snapshot().meta.Length
	pos := time.Duration(position) * time.Microsecond
	if length > 0 && pos > length {
		return nil
	}
	p.onTransport(Transport{Kind: TransportSetPosition, Position: pos})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	if p.snapshot().playback.Status == StatusPlaying {
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusPaused, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	m := p.snapshot().meta
	if m.Path == "" && m.Title == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(m.Path)),
		Length:  types.Microseconds(m.Length.Microseconds()),
		Title:   m.Title,
		Album:   m.Album,
	}
	if m.Artist != "" {
		meta.Artist = []string{m.Artist}
	}
	if m.ArtPath != "" {
		meta.ArtUrl = "file://" + m.ArtPath
	}
	return meta, nil
}

// Volume reports the level on the MPRIS scale where 1.0 is unity.
func (p *playerAdapter) Volume() (float64, error) {
	return float64(p.snapshot().playback.Volume) / 100, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	p.onTransport(Transport{Kind: TransportSetVolume, Volume: int(math.Round(v * 100))})
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.snapshot().playback.Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
