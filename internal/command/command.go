// Package command implements the typed command language of the player:
// the commands bound to keys and the text commands typed after ':'.
package command

import (
	"fmt"
	"time"

	"github.com/llehouerou/uap/internal/playback"
)

// View identifies one of the screens of the terminal UI.
type View int

const (
	ViewPlayer View = iota
	ViewChapters
	ViewHelp
)

// String returns the view name as typed in the command line.
func (v View) String() string {
	switch v {
	case ViewPlayer:
		return "player"
	case ViewChapters:
		return "chapters"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Command is a parsed user intent.
// The set of implementations is closed to this package.
type Command interface {
	fmt.Stringer
	command()
}

// Control forwards a control message to the engine.
type Control struct{ Msg playback.Control }

// PauseAfter arms the pause timer.
type PauseAfter struct{ After time.Duration }

// QuitAfter arms the quit timer.
type QuitAfter struct{ After time.Duration }

// SwitchView changes the active screen.
type SwitchView struct{ View View }

// Scroll moves the viewport by Delta lines.
type Scroll struct{ Delta int }

// CommandMode enters (Enter=true) or leaves the command line.
type CommandMode struct{ Enter bool }

func (Control) command()     {}
func (PauseAfter) command()  {}
func (QuitAfter) command()   {}
func (SwitchView) command()  {}
func (Scroll) command()      {}
func (CommandMode) command() {}

func (c Control) String() string     { return c.Msg.String() }
func (c PauseAfter) String() string  { return fmt.Sprintf("pause-after %s", c.After) }
func (c QuitAfter) String() string   { return fmt.Sprintf("quit-after %s", c.After) }
func (c SwitchView) String() string  { return "view " + c.View.String() }
func (c Scroll) String() string      { return fmt.Sprintf("scroll %+d", c.Delta) }
func (c CommandMode) String() string { return fmt.Sprintf("command-mode %t", c.Enter) }
