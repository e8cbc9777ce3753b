package command

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/uap/internal/playback"
)

// parseFunc builds a command from the optional argument.
// It returns nil when the argument is missing or malformed.
type parseFunc func(arg string, hasArg bool) Command

type entry struct {
	names []string
	args  string
	desc  string
	parse parseFunc
}

// Usage documents one command for the help screen.
type Usage struct {
	Names       []string
	Args        string
	Description string
}

// Language is the immutable table of text commands.
// Build it once with New and share it.
type Language struct {
	entries  []entry
	handlers map[string]parseFunc
	names    []string
}

// New returns the command table.
func New() *Language {
	entries := []entry{
		{names: []string{"quit", "q"}, desc: "quit the player", parse: noArg(Control{Msg: playback.Quit{}})},
		{names: []string{"vol"}, args: "<+N|-N|N>", desc: "change or set the volume (0-200)", parse: parseVolume},
		{names: []string{"seek"}, args: "<+S|-S|S|HH:MM:SS>", desc: "seek relative or absolute", parse: parseSeek},
		{names: []string{"play-pause"}, desc: "toggle playback", parse: noArg(Control{Msg: playback.TogglePause{}})},
		{names: []string{"play-next"}, desc: "next chapter", parse: noArg(Control{Msg: playback.NextChapter{}})},
		{names: []string{"play-prev"}, desc: "previous chapter", parse: noArg(Control{Msg: playback.PrevChapter{}})},
		{names: []string{"pause-after"}, args: "<minutes>", desc: "pause when the timer runs out", parse: parseMinutes(func(d time.Duration) Command { return PauseAfter{After: d} })},
		{names: []string{"quit-after"}, args: "<minutes>", desc: "quit when the timer runs out", parse: parseMinutes(func(d time.Duration) Command { return QuitAfter{After: d} })},
		{names: []string{"view"}, args: "<player|chapters|help>", desc: "switch screen", parse: parseView},
	}

	l := &Language{
		entries:  entries,
		handlers: make(map[string]parseFunc),
	}
	for _, e := range entries {
		for _, name := range e.names {
			l.handlers[name] = e.parse
			l.names = append(l.names, name)
		}
	}
	slices.SortFunc(l.names, byLengthThenName)
	return l
}

// Parse turns a command line into a command.
// It returns nil for empty, unknown or malformed input.
func (l *Language) Parse(text string) Command {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return nil
	}
	parse, ok := l.handlers[fields[0]]
	if !ok {
		return nil
	}
	if len(fields) == 1 {
		return parse("", false)
	}
	return parse(fields[1], true)
}

// Suggest returns the command names starting with partial, ordered by the
// number of characters left to type, then by name.
func (l *Language) Suggest(partial string) []string {
	var out []string
	for _, name := range l.names {
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	return out
}

// Names returns every command name in suggestion order.
func (l *Language) Names() []string {
	return slices.Clone(l.names)
}

// Usage returns the help lines in table order.
func (l *Language) Usage() []Usage {
	out := make([]Usage, len(l.entries))
	for i, e := range l.entries {
		out[i] = Usage{Names: e.names, Args: e.args, Description: e.desc}
	}
	return out
}

func byLengthThenName(a, b string) int {
	return cmp.Or(cmp.Compare(len(a), len(b)), cmp.Compare(a, b))
}

func noArg(c Command) parseFunc {
	return func(_ string, hasArg bool) Command {
		if hasArg {
			return nil
		}
		return c
	}
}

func isSigned(s string) bool {
	return strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
}

func parseVolume(arg string, hasArg bool) Command {
	if !hasArg {
		return nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil
	}
	if isSigned(arg) {
		delta := min(max(n, -playback.MaxVolume), playback.MaxVolume)
		return Control{Msg: playback.AdjustVolume{Delta: delta}}
	}
	return Control{Msg: playback.SetVolume{Level: playback.ClampVolume(n)}}
}

func parseSeek(arg string, hasArg bool) Command {
	if !hasArg {
		return nil
	}
	if strings.Contains(arg, ":") {
		pos, ok := parseClock(arg)
		if !ok {
			return nil
		}
		return Control{Msg: playback.SeekAbsolute{Position: pos}}
	}
	secs, ok := parseSeconds(arg)
	if !ok {
		return nil
	}
	d := time.Duration(secs * float64(time.Second))
	if isSigned(arg) {
		return Control{Msg: playback.SeekRelative{Offset: d}}
	}
	return Control{Msg: playback.SeekAbsolute{Position: d}}
}

func parseSeconds(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseClock accepts HH:MM:SS and MM:SS. Seconds may carry a fraction.
func parseClock(s string) (time.Duration, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var total float64
	for i, p := range parts {
		if p == "" || isSigned(p) {
			return 0, false
		}
		last := i == len(parts)-1
		var v float64
		if last {
			f, ok := parseSeconds(p)
			if !ok {
				return 0, false
			}
			v = f
		} else {
			n, err := strconv.Atoi(p)
			if err != nil {
				return 0, false
			}
			v = float64(n)
		}
		total = total*60 + v
	}
	return time.Duration(total * float64(time.Second)), true
}

func parseMinutes(build func(time.Duration) Command) parseFunc {
	return func(arg string, hasArg bool) Command {
		if !hasArg || isSigned(arg) {
			return nil
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return nil
		}
		return build(time.Duration(n) * time.Minute)
	}
}

func parseView(arg string, hasArg bool) Command {
	if !hasArg {
		return nil
	}
	switch arg {
	case "player":
		return SwitchView{View: ViewPlayer}
	case "chapters":
		return SwitchView{View: ViewChapters}
	case "help":
		return SwitchView{View: ViewHelp}
	}
	return nil
}
