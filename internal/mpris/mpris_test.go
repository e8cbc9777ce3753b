//go:build linux

package mpris

import (
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []Transport
}

func (r *recorder) record(t Transport) {
	r.got = append(r.got, t)
}

func newTestPlayer() (*playerAdapter, *recorder) {
	r := &recorder{}
	return newPlayerAdapter(r.record), r
}

func TestPlayerAdapter_Transport(t *testing.T) {
	p, r := newTestPlayer()

	require.NoError(t, p.Play())
	require.NoError(t, p.Pause())
	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Stop())
	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())
	require.NoError(t, p.Seek(types.Microseconds(-5_000_000)))

	kinds := make([]TransportKind, len(r.got))
	for i, tr := range r.got {
		kinds[i] = tr.Kind
	}
	assert.Equal(t, []TransportKind{
		TransportPlay, TransportPause, TransportToggle, TransportStop,
		TransportNext, TransportPrevious, TransportSeek,
	}, kinds)
	assert.Equal(t, -5*time.Second, r.got[6].Offset)
}

func TestPlayerAdapter_SetPosition(t *testing.T) {
	p, r := newTestPlayer()
	p.update(func(s *snapshot) { s.meta.Length = time.Minute })

	require.NoError(t, p.SetPosition("/x", types.Microseconds(30_000_000)))
	require.NoError(t, p.SetPosition("/x", types.Microseconds(-1)))
	require.NoError(t, p.SetPosition("/x", types.Microseconds(120_000_000)))

	require.Len(t, r.got, 1)
	assert.Equal(t, TransportSetPosition, r.got[0].Kind)
	assert.Equal(t, 30*time.Second, r.got[0].Position)
}

func TestPlayerAdapter_Volume(t *testing.T) {
	p, r := newTestPlayer()
	p.update(func(s *snapshot) { s.playback.Volume = 150 })

	v, err := p.Volume()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, v, 1e-9)

	require.NoError(t, p.SetVolume(0.456))
	require.Len(t, r.got, 1)
	assert.Equal(t, Transport{Kind: TransportSetVolume, Volume: 46}, r.got[0])
}

func TestPlayerAdapter_Snapshot(t *testing.T) {
	p, _ := newTestPlayer()

	status, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPaused, status)

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title)

	p.update(func(s *snapshot) {
		s.meta = Metadata{Path: "/books/dune.m4b", Title: "Dune", Artist: "Frank Herbert", Length: time.Hour, ArtPath: "/books/cover.jpg"}
		s.playback = Playback{Status: StatusPlaying, Position: 90 * time.Second, Volume: 100}
	})

	status, err = p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(90_000_000), pos)

	meta, err = p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Dune", meta.Title)
	assert.Equal(t, []string{"Frank Herbert"}, meta.Artist)
	assert.Equal(t, types.Microseconds(time.Hour.Microseconds()), meta.Length)
	assert.Equal(t, "file:///books/cover.jpg", meta.ArtUrl)
	assert.Equal(t, formatTrackID("/books/dune.m4b"), string(meta.TrackId))
}

// emitted records the change notifications sent by the adapter.
type emitted struct {
	calls []string
	seeks []types.Microseconds
	err   error
}

func (e *emitted) record(name string) error {
	e.calls = append(e.calls, name)
	return e.err
}

func (e *emitted) OnEnded() error     { return e.record("ended") }
func (e *emitted) OnVolume() error    { return e.record("volume") }
func (e *emitted) OnPlayback() error  { return e.record("playback") }
func (e *emitted) OnPlayPause() error { return e.record("play-pause") }
func (e *emitted) OnTitle() error     { return e.record("title") }
func (e *emitted) OnOptions() error   { return e.record("options") }
func (e *emitted) OnAll() error       { return e.record("all") }
func (e *emitted) OnSeek(pos types.Microseconds) error {
	e.seeks = append(e.seeks, pos)
	return e.record("seek")
}

func newTestAdapter() (*Adapter, *emitted) {
	e := &emitted{}
	p, _ := newTestPlayer()
	return &Adapter{player: p, events: e}, e
}

func TestAdapter_SetMetadataAnnounces(t *testing.T) {
	a, e := newTestAdapter()

	require.NoError(t, a.SetMetadata(Metadata{Path: "/books/dune.m4b", Title: "Dune"}))

	assert.Equal(t, []string{"title"}, e.calls)
	meta, err := a.player.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Dune", meta.Title)
}

func TestAdapter_SetPlaybackAnnouncesChanges(t *testing.T) {
	a, e := newTestAdapter()

	require.NoError(t, a.SetPlayback(Playback{Status: StatusPlaying, Volume: 100}))
	assert.Equal(t, []string{"play-pause"}, e.calls)

	e.calls = nil
	require.NoError(t, a.SetPlayback(Playback{Status: StatusPlaying, Position: 250 * time.Millisecond, Volume: 100}))
	assert.Equal(t, []string{"seek"}, e.calls)
	assert.Equal(t, []types.Microseconds{250_000}, e.seeks)

	e.calls = nil
	require.NoError(t, a.SetPlayback(Playback{Status: StatusPaused, Position: 250 * time.Millisecond, Volume: 120}))
	assert.Equal(t, []string{"play-pause", "volume"}, e.calls)

	e.calls = nil
	require.NoError(t, a.SetPlayback(Playback{Status: StatusPaused, Position: 250 * time.Millisecond, Volume: 120}))
	assert.Empty(t, e.calls)
}

func TestAdapter_EmitErrorsAreReturned(t *testing.T) {
	a, e := newTestAdapter()
	e.err = assert.AnError

	require.ErrorIs(t, a.SetMetadata(Metadata{Title: "Dune"}), assert.AnError)
	require.ErrorIs(t, a.SetPlayback(Playback{Status: StatusPlaying, Volume: 100}), assert.AnError)

	// The snapshot is still updated for clients that query.
	status, err := a.player.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPlaying, status)
}

func TestAdapter_NoBusConnection(t *testing.T) {
	p, _ := newTestPlayer()
	root := &rootAdapter{onTransport: func(Transport) {}}
	a := &Adapter{
		player: p,
		events: events.NewEventHandler(&server.Server{RootAdapter: root, PlayerAdapter: p}).Player,
	}

	assert.Error(t, a.SetMetadata(Metadata{Title: "Dune"}))
}

func TestRootAdapter_Quit(t *testing.T) {
	r := &recorder{}
	root := &rootAdapter{onTransport: r.record}

	require.NoError(t, root.Quit())
	assert.Equal(t, []Transport{{Kind: TransportQuit}}, r.got)

	id, err := root.Identity()
	require.NoError(t, err)
	assert.Equal(t, Identity, id)
}

func TestTransportString(t *testing.T) {
	assert.Equal(t, "seek -5s", Transport{Kind: TransportSeek, Offset: -5 * time.Second}.String())
	assert.Equal(t, "play-pause", Transport{Kind: TransportToggle}.String())
	assert.Equal(t, "Playing", StatusPlaying.String())
}
