// Package playback defines the messages exchanged between the engine
// adapter, the terminal UI and the OS media session, along with the
// mailboxes that carry them.
package playback

import (
	"fmt"
	"time"
)

// Volume bounds accepted by the engine. The engine allows boosting above 100;
// the launch option is limited to MaxInitialVolume.
const (
	MinVolume        = 0
	MaxVolume        = 200
	MaxInitialVolume = 100
)

// ClampVolume bounds v to [MinVolume, MaxVolume].
func ClampVolume(v int) int {
	return min(max(v, MinVolume), MaxVolume)
}

// Control is a request sent to the engine adapter.
// The set of implementations is closed to this package.
type Control interface {
	fmt.Stringer
	control()
}

// Quit asks the engine to persist the resume position and shut down.
type Quit struct{}

// AdjustVolume changes the volume by Delta.
type AdjustVolume struct{ Delta int }

// SetVolume sets the volume to Level.
type SetVolume struct{ Level int }

// SeekRelative moves the playback position by Offset.
type SeekRelative struct{ Offset time.Duration }

// SeekAbsolute moves the playback position to Position.
type SeekAbsolute struct{ Position time.Duration }

// Resume starts playback.
type Resume struct{}

// Pause stops playback without unloading.
type Pause struct{}

// TogglePause flips between paused and playing.
type TogglePause struct{}

// NextChapter jumps to the next chapter if there is one.
type NextChapter struct{}

// PrevChapter jumps to the previous chapter if there is one.
type PrevChapter struct{}

func (Quit) control()         {}
func (AdjustVolume) control() {}
func (SetVolume) control()    {}
func (SeekRelative) control() {}
func (SeekAbsolute) control() {}
func (Resume) control()       {}
func (Pause) control()        {}
func (TogglePause) control()  {}
func (NextChapter) control()  {}
func (PrevChapter) control()  {}

func (Quit) String() string           { return "quit" }
func (c AdjustVolume) String() string { return fmt.Sprintf("adjust-volume %+d", c.Delta) }
func (c SetVolume) String() string    { return fmt.Sprintf("set-volume %d", c.Level) }
func (c SeekRelative) String() string { return fmt.Sprintf("seek-relative %s", c.Offset) }
func (c SeekAbsolute) String() string { return fmt.Sprintf("seek-absolute %s", c.Position) }
func (Resume) String() string         { return "resume" }
func (Pause) String() string          { return "pause" }
func (TogglePause) String() string    { return "toggle-pause" }
func (NextChapter) String() string    { return "next-chapter" }
func (PrevChapter) String() string    { return "prev-chapter" }
