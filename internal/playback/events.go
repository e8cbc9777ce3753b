package playback

import (
	"fmt"
	"time"
)

// Event is emitted by the engine adapter and fanned out to every subscriber.
// The set of implementations is closed to this package.
type Event interface {
	fmt.Stringer
	event()
}

// FileStarted is emitted when the engine begins opening the file.
type FileStarted struct{}

// PlaybackRestarted is emitted when playback (re)starts after a load or seek.
// Paused reports the engine's pause flag at that instant.
type PlaybackRestarted struct{ Paused bool }

// PlaybackPaused is emitted when the engine pause flag becomes true.
type PlaybackPaused struct{}

// PlaybackResumed is emitted when the engine pause flag becomes false.
type PlaybackResumed struct{}

// FileLoaded carries the metadata gathered once the file is open.
type FileLoaded struct{ Metadata Metadata }

// VolumeChanged is emitted when the engine volume changes.
type VolumeChanged struct{ Level int }

// PositionChanged is emitted after a seek with the new position.
type PositionChanged struct{ Position time.Duration }

// ChapterChanged is emitted when the current chapter changes.
type ChapterChanged struct {
	Title string
	Index int
}

// Quitting is the last event a subscriber receives.
type Quitting struct{}

func (FileStarted) event()       {}
func (PlaybackRestarted) event() {}
func (PlaybackPaused) event()    {}
func (PlaybackResumed) event()   {}
func (FileLoaded) event()        {}
func (VolumeChanged) event()     {}
func (PositionChanged) event()   {}
func (ChapterChanged) event()    {}
func (Quitting) event()          {}

func (FileStarted) String() string { return "file-started" }
func (e PlaybackRestarted) String() string {
	return fmt.Sprintf("playback-restarted paused=%t", e.Paused)
}
func (PlaybackPaused) String() string    { return "playback-paused" }
func (PlaybackResumed) String() string   { return "playback-resumed" }
func (e FileLoaded) String() string      { return fmt.Sprintf("file-loaded %q", e.Metadata.Title) }
func (e VolumeChanged) String() string   { return fmt.Sprintf("volume-changed %d", e.Level) }
func (e PositionChanged) String() string { return fmt.Sprintf("position-changed %s", e.Position) }
func (e ChapterChanged) String() string {
	return fmt.Sprintf("chapter-changed %d %q", e.Index, e.Title)
}
func (Quitting) String() string { return "quitting" }
