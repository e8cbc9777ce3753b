// Package player drives the external playback engine. It owns the engine
// handle, turns control messages into engine calls and engine events into
// playback events.
package player

import (
	"errors"
	"time"

	"github.com/llehouerou/uap/internal/playback"
)

// ErrEngineClosed is returned when the engine shuts down on its own.
var ErrEngineClosed = errors.New("playback engine shut down")

// SeekMode selects how a seek offset is interpreted.
type SeekMode int

const (
	SeekRelative SeekMode = iota
	SeekAbsolute
)

// Properties the engine reports through EventPropertyChange.
const (
	PropPause   = "pause"
	PropVolume  = "volume"
	PropChapter = "chapter"
)

// Metadata keys readable through Engine.Metadata.
const (
	MetaArtist = "artist"
	MetaAlbum  = "album"
)

// EventKind identifies a native engine event.
type EventKind int

const (
	EventNone EventKind = iota
	EventStartFile
	EventFileLoaded
	EventPlaybackRestart
	EventSeek
	EventPropertyChange
	EventShutdown
	EventOther
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventStartFile:
		return "StartFile"
	case EventFileLoaded:
		return "FileLoaded"
	case EventPlaybackRestart:
		return "PlaybackRestart"
	case EventSeek:
		return "Seek"
	case EventPropertyChange:
		return "PropertyChange"
	case EventShutdown:
		return "Shutdown"
	case EventOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Event is a native engine event. Property and Value are set for
// EventPropertyChange: Value is a bool for PropPause and an int64 for
// PropVolume and PropChapter.
type Event struct {
	Kind     EventKind
	Property string
	Value    any
}

// Engine is the playback engine binding.
type Engine interface {
	// LoadFile appends path to the playlist and starts playing it.
	LoadFile(path string) error
	// WaitEvent blocks up to timeout for the next event. It returns an
	// EventNone event on timeout.
	WaitEvent(timeout time.Duration) Event

	Volume() (int, error)
	SetVolume(level int) error
	Paused() (bool, error)
	SetPaused(paused bool) error
	Chapter() (int, error)
	SetChapter(index int) error
	Position() (time.Duration, error)
	Duration() (time.Duration, error)
	// Title returns the media title, falling back to the file name.
	Title() (string, error)
	// Metadata returns a tag value. It fails when the tag is absent.
	Metadata(key string) (string, error)
	Chapters() ([]playback.Chapter, error)

	Seek(offset time.Duration, mode SeekMode) error
	CyclePause() error
	Quit() error
	Close()
}
