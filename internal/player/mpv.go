package player

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gen2brain/go-mpv"

	"github.com/llehouerou/uap/internal/playback"
)

// MPV is the libmpv engine. The default build links libmpv through cgo and
// needs mpv/client.h. Built with CGO_ENABLED=0 or -tags nocgo, go-mpv opens
// libmpv.so at process start instead and panics when it is missing.
type MPV struct {
	m *mpv.Mpv
}

var _ Engine = (*MPV)(nil)

// NewMPV creates an audio-only libmpv handle at the given volume and
// observes the pause, volume and chapter properties.
func NewMPV(volume int) (*MPV, error) {
	m := mpv.New()

	options := [][2]string{
		{"vo", "null"},
		{"video", "no"},
		{"terminal", "no"},
		{"input-default-bindings", "no"},
	}
	for _, o := range options {
		if err := m.SetOptionString(o[0], o[1]); err != nil {
			m.TerminateDestroy()
			return nil, fmt.Errorf("set option %s: %w", o[0], err)
		}
	}

	if err := m.Initialize(); err != nil {
		m.TerminateDestroy()
		return nil, fmt.Errorf("initialize mpv: %w", err)
	}

	e := &MPV{m: m}
	if err := e.SetVolume(volume); err != nil {
		e.Close()
		return nil, err
	}

	observed := []struct {
		name   string
		format mpv.Format
	}{
		{PropPause, mpv.FormatFlag},
		{PropVolume, mpv.FormatInt64},
		{PropChapter, mpv.FormatInt64},
	}
	for i, o := range observed {
		if err := m.ObserveProperty(uint64(i+1), o.name, o.format); err != nil {
			e.Close()
			return nil, fmt.Errorf("observe %s: %w", o.name, err)
		}
	}
	return e, nil
}

func (e *MPV) LoadFile(path string) error {
	return e.m.Command([]string{"loadfile", path, "append-play"})
}

func (e *MPV) WaitEvent(timeout time.Duration) Event {
	ev := e.m.WaitEvent(timeout.Seconds())
	if ev == nil {
		return Event{Kind: EventNone}
	}
	switch ev.EventID {
	case mpv.EventNone:
		return Event{Kind: EventNone}
	case mpv.EventStart:
		return Event{Kind: EventStartFile}
	case mpv.EventFileLoaded:
		return Event{Kind: EventFileLoaded}
	case mpv.EventPlaybackRestart:
		return Event{Kind: EventPlaybackRestart}
	case mpv.EventSeek:
		return Event{Kind: EventSeek}
	case mpv.EventShutdown:
		return Event{Kind: EventShutdown}
	case mpv.EventPropertyChange:
		p := ev.Property()
		return Event{Kind: EventPropertyChange, Property: p.Name, Value: normalize(p.Data)}
	default:
		return Event{Kind: EventOther}
	}
}

func (e *MPV) Volume() (int, error) {
	v, err := e.m.GetProperty(PropVolume, mpv.FormatInt64)
	if err != nil {
		return 0, fmt.Errorf("get volume: %w", err)
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, fmt.Errorf("get volume: unexpected value %v", v)
	}
	return int(n), nil
}

func (e *MPV) SetVolume(level int) error {
	if err := e.m.SetProperty(PropVolume, mpv.FormatInt64, int64(level)); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}
	return nil
}

func (e *MPV) Paused() (bool, error) {
	v, err := e.m.GetProperty(PropPause, mpv.FormatFlag)
	if err != nil {
		return false, fmt.Errorf("get pause: %w", err)
	}
	b, ok := asBool(v)
	if !ok {
		return false, fmt.Errorf("get pause: unexpected value %v", v)
	}
	return b, nil
}

func (e *MPV) SetPaused(paused bool) error {
	if err := e.m.SetProperty(PropPause, mpv.FormatFlag, paused); err != nil {
		return fmt.Errorf("set pause: %w", err)
	}
	return nil
}

func (e *MPV) Chapter() (int, error) {
	v, err := e.m.GetProperty(PropChapter, mpv.FormatInt64)
	if err != nil {
		return 0, fmt.Errorf("get chapter: %w", err)
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, fmt.Errorf("get chapter: unexpected value %v", v)
	}
	return int(n), nil
}

func (e *MPV) SetChapter(index int) error {
	if err := e.m.SetProperty(PropChapter, mpv.FormatInt64, int64(index)); err != nil {
		return fmt.Errorf("set chapter: %w", err)
	}
	return nil
}

func (e *MPV) Position() (time.Duration, error) {
	return e.seconds("time-pos")
}

func (e *MPV) Duration() (time.Duration, error) {
	return e.seconds("duration")
}

func (e *MPV) seconds(name string) (time.Duration, error) {
	v, err := e.m.GetProperty(name, mpv.FormatDouble)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", name, err)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("get %s: unexpected value %v", name, v)
	}
	return time.Duration(f * float64(time.Second)), nil
}

func (e *MPV) Title() (string, error) {
	return e.str("media-title")
}

func (e *MPV) Metadata(key string) (string, error) {
	return e.str("metadata/by-key/" + key)
}

func (e *MPV) str(name string) (string, error) {
	v, err := e.m.GetProperty(name, mpv.FormatString)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", name, err)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("get %s: unexpected value %v", name, v)
	}
	return s, nil
}

// chapterEntry mirrors one element of mpv's chapter-list property.
type chapterEntry struct {
	Title string  `json:"title"`
	Time  float64 `json:"time"`
}

func (e *MPV) Chapters() ([]playback.Chapter, error) {
	raw, err := e.str("chapter-list")
	if err != nil {
		return nil, err
	}
	return parseChapterList(raw)
}

func parseChapterList(raw string) ([]playback.Chapter, error) {
	var entries []chapterEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("parse chapter list: %w", err)
	}
	chapters := make([]playback.Chapter, len(entries))
	for i, c := range entries {
		chapters[i] = playback.Chapter{
			Title: c.Title,
			Start: time.Duration(c.Time * float64(time.Second)),
		}
	}
	return chapters, nil
}

func (e *MPV) Seek(offset time.Duration, mode SeekMode) error {
	flag := "relative"
	if mode == SeekAbsolute {
		flag = "absolute"
	}
	secs := strconv.FormatFloat(offset.Seconds(), 'f', -1, 64)
	return e.m.Command([]string{"seek", secs, flag})
}

func (e *MPV) CyclePause() error {
	return e.m.Command([]string{"cycle", PropPause})
}

func (e *MPV) Quit() error {
	return e.m.Command([]string{"quit", "0"})
}

func (e *MPV) Close() {
	e.m.TerminateDestroy()
}

// normalize turns property payloads into bool or int64.
func normalize(v any) any {
	switch v := v.(type) {
	case bool:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return v
	}
}

func asInt64(v any) (int64, bool) {
	n, ok := normalize(v).(int64)
	return n, ok
}

func asBool(v any) (bool, bool) {
	switch v := normalize(v).(type) {
	case bool:
		return v, true
	case int64:
		return v != 0, true
	}
	return false, false
}
