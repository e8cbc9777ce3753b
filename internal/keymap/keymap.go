// Package keymap defines the key bindings of the player.
package keymap

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/llehouerou/uap/internal/command"
	"github.com/llehouerou/uap/internal/playback"
)

// Binding ties keys to a command. Bindings without help text are hidden
// from the help screen.
type Binding struct {
	Key     key.Binding
	Command command.Command
}

// Default returns the binding table. seekStep and seekLong are the offsets
// used by the arrow keys and their shifted variants.
func Default(seekStep, seekLong time.Duration) []Binding {
	return []Binding{
		bind(command.SwitchView{View: command.ViewPlayer}, "view player", "1"),
		bind(command.SwitchView{View: command.ViewChapters}, "view chapters", "2"),
		bind(command.SwitchView{View: command.ViewHelp}, "view help", "0"),
		bind(control(playback.Quit{}), "quit, q", "q", "ctrl+c"),
		bind(control(playback.AdjustVolume{Delta: -1}), "vol -1", "{"),
		bind(control(playback.AdjustVolume{Delta: 1}), "vol +1", "}"),
		bind(control(playback.AdjustVolume{Delta: -10}), "vol -10", "["),
		bind(control(playback.AdjustVolume{Delta: 10}), "vol +10", "]"),
		bind(control(playback.SeekRelative{Offset: -seekStep}), seekHelp(-seekStep), "left"),
		bind(control(playback.SeekRelative{Offset: seekStep}), seekHelp(seekStep), "right"),
		bind(control(playback.SeekRelative{Offset: -seekLong}), seekHelp(-seekLong), "shift+left"),
		bind(control(playback.SeekRelative{Offset: seekLong}), seekHelp(seekLong), "shift+right"),
		bind(control(playback.PrevChapter{}), "play-prev", "z"),
		bind(control(playback.NextChapter{}), "play-next", "b"),
		bind(control(playback.TogglePause{}), "play-pause", " "),
		bind(command.Scroll{Delta: 1}, "scroll down", "j", "down"),
		bind(command.Scroll{Delta: -1}, "scroll up", "k", "up"),
		hidden(command.CommandMode{Enter: true}, ":"),
		hidden(command.CommandMode{Enter: false}, "esc"),
	}
}

func control(c playback.Control) command.Command {
	return command.Control{Msg: c}
}

func bind(c command.Command, desc string, keys ...string) Binding {
	return Binding{
		Key:     key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), desc)),
		Command: c,
	}
}

func hidden(c command.Command, keys ...string) Binding {
	return Binding{Key: key.NewBinding(key.WithKeys(keys...)), Command: c}
}

func seekHelp(d time.Duration) string {
	secs := int(math.Round(d.Seconds()))
	return fmt.Sprintf("seek %+d", secs)
}

func helpKeys(keys []string) string {
	out := ""
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		if i > 0 {
			out += "/"
		}
		out += k
	}
	return out
}
