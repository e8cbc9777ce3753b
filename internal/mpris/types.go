// Package mpris publishes the player on the desktop media session
// (MPRIS over D-Bus) and reports the transport commands it receives.
package mpris

import (
	"fmt"
	"time"
)

// Bus name suffix and display name of the player.
const (
	BusName  = "uap"
	Identity = "UAP"
)

// Status is the playback status shown by the desktop.
type Status int

const (
	StatusPaused Status = iota
	StatusPlaying
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPaused:
		return "Paused"
	case StatusPlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// Metadata is the now-playing information.
type Metadata struct {
	Path    string
	Title   string
	Artist  string
	Album   string
	Length  time.Duration
	ArtPath string
}

// Playback is the playback state pushed to the desktop.
type Playback struct {
	Status   Status
	Position time.Duration
	Volume   int // 0-200, 100 is unity
}

// TransportKind identifies a command coming from the desktop.
type TransportKind int

const (
	TransportPlay TransportKind = iota
	TransportPause
	TransportToggle
	TransportStop
	TransportNext
	TransportPrevious
	TransportSeek
	TransportSetPosition
	TransportSetVolume
	TransportQuit
)

// Transport is a command coming from the desktop. Offset is set for
// TransportSeek, Position for TransportSetPosition and Volume for
// TransportSetVolume.
type Transport struct {
	Kind     TransportKind
	Offset   time.Duration
	Position time.Duration
	Volume   int
}

// String returns a debug representation.
func (t Transport) String() string {
	switch t.Kind {
	case TransportPlay:
		return "play"
	case TransportPause:
		return "pause"
	case TransportToggle:
		return "play-pause"
	case TransportStop:
		return "stop"
	case TransportNext:
		return "next"
	case TransportPrevious:
		return "previous"
	case TransportSeek:
		return fmt.Sprintf("seek %s", t.Offset)
	case TransportSetPosition:
		return fmt.Sprintf("set-position %s", t.Position)
	case TransportSetVolume:
		return fmt.Sprintf("set-volume %d", t.Volume)
	case TransportQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// snapshot is what the D-Bus side reads. It is replaced, never mutated.
type snapshot struct {
	meta     Metadata
	playback Playback
}
