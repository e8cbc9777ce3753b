package player

import (
	"errors"
	"sync"
	"time"

	"github.com/llehouerou/uap/internal/playback"
)

var errMockNoValue = errors.New("property unavailable")

// Mock is a test double for Engine. It behaves like a cooperative engine:
// setters queue the matching property-change events, seeks queue a Seek and
// a PlaybackRestart, and LoadFile queues the start/loaded/restart sequence.
type Mock struct {
	mu sync.Mutex

	events   []Event
	volume   int
	paused   bool
	chapter  int
	position time.Duration
	duration time.Duration
	title    string
	meta     map[string]string
	chapters []playback.Chapter

	loaded    []string
	seeks     []SeekCall
	quitCalls int
	closed    bool

	failures map[string]error // method name -> injected error
}

// SeekCall records one Seek invocation.
type SeekCall struct {
	Offset time.Duration
	Mode   SeekMode
}

// NewMock creates a mock engine for a file with the given title and duration.
func NewMock(title string, duration time.Duration) *Mock {
	return &Mock{
		volume:   100,
		title:    title,
		duration: duration,
		meta:     make(map[string]string),
		failures: make(map[string]error),
	}
}

// Fail makes every later call to the named method return err. A nil err
// clears the failure (test helper).
func (m *Mock) Fail(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, method)
		return
	}
	m.failures[method] = err
}

// SetChapters sets the chapter list (test helper).
func (m *Mock) SetChapters(chapters []playback.Chapter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chapters = chapters
}

// SetMetadata sets a tag value (test helper).
func (m *Mock) SetMetadata(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[key] = value
}

// SetPosition sets the playback position (test helper).
func (m *Mock) SetPosition(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

// Push queues a native event (test helper).
func (m *Mock) Push(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

// Loaded returns the paths passed to LoadFile (test helper).
func (m *Mock) Loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loaded...)
}

// Seeks returns the recorded seek calls (test helper).
func (m *Mock) Seeks() []SeekCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SeekCall(nil), m.seeks...)
}

// QuitCalls returns how many times Quit was called (test helper).
func (m *Mock) QuitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quitCalls
}

// Closed reports whether Close was called (test helper).
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) push(ev Event) {
	m.events = append(m.events, ev)
}

func (m *Mock) LoadFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["LoadFile"]; err != nil {
		return err
	}
	m.loaded = append(m.loaded, path)
	m.push(Event{Kind: EventStartFile})
	m.push(Event{Kind: EventFileLoaded})
	m.push(Event{Kind: EventPlaybackRestart})
	return nil
}

// WaitEvent returns the next queued event, or sleeps for timeout and
// returns an EventNone event when the queue is empty.
func (m *Mock) WaitEvent(timeout time.Duration) Event {
	m.mu.Lock()
	if len(m.events) == 0 {
		m.mu.Unlock()
		time.Sleep(timeout)
		return Event{Kind: EventNone}
	}
	defer m.mu.Unlock()
	ev := m.events[0]
	m.events = m.events[1:]
	return ev
}

func (m *Mock) Volume() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Volume"]; err != nil {
		return 0, err
	}
	return m.volume, nil
}

func (m *Mock) SetVolume(level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["SetVolume"]; err != nil {
		return err
	}
	if level != m.volume {
		m.volume = level
		m.push(Event{Kind: EventPropertyChange, Property: PropVolume, Value: int64(level)})
	}
	return nil
}

func (m *Mock) Paused() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Paused"]; err != nil {
		return false, err
	}
	return m.paused, nil
}

func (m *Mock) SetPaused(paused bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["SetPaused"]; err != nil {
		return err
	}
	m.setPaused(paused)
	return nil
}

func (m *Mock) setPaused(paused bool) {
	if paused != m.paused {
		m.paused = paused
		m.push(Event{Kind: EventPropertyChange, Property: PropPause, Value: paused})
	}
}

func (m *Mock) Chapter() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Chapter"]; err != nil {
		return 0, err
	}
	return m.chapter, nil
}

func (m *Mock) SetChapter(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["SetChapter"]; err != nil {
		return err
	}
	m.chapter = index
	if c, ok := playback.ChapterAt(m.chapters, index); ok {
		m.position = c.Start
	}
	m.push(Event{Kind: EventPropertyChange, Property: PropChapter, Value: int64(index)})
	return nil
}

func (m *Mock) Position() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Position"]; err != nil {
		return 0, err
	}
	return m.position, nil
}

func (m *Mock) Duration() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Duration"]; err != nil {
		return 0, err
	}
	return m.duration, nil
}

func (m *Mock) Title() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Title"]; err != nil {
		return "", err
	}
	return m.title, nil
}

func (m *Mock) Metadata(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.meta[key]
	if !ok {
		return "", errMockNoValue
	}
	return v, nil
}

func (m *Mock) Chapters() ([]playback.Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Chapters"]; err != nil {
		return nil, err
	}
	return append([]playback.Chapter(nil), m.chapters...), nil
}

func (m *Mock) Seek(offset time.Duration, mode SeekMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Seek"]; err != nil {
		return err
	}
	m.seeks = append(m.seeks, SeekCall{Offset: offset, Mode: mode})
	if mode == SeekAbsolute {
		m.position = offset
	} else {
		m.position += offset
	}
	m.position = min(max(m.position, 0), m.duration)
	m.push(Event{Kind: EventSeek})
	m.push(Event{Kind: EventPlaybackRestart})
	return nil
}

func (m *Mock) CyclePause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["CyclePause"]; err != nil {
		return err
	}
	m.setPaused(!m.paused)
	return nil
}

func (m *Mock) Quit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures["Quit"]; err != nil {
		return err
	}
	m.quitCalls++
	return nil
}

func (m *Mock) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

var _ Engine = (*Mock)(nil)
