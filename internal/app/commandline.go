package app

import (
	"slices"
	"unicode"

	"github.com/llehouerou/uap/internal/command"
)

// commandLine is the ':' prompt: a rune buffer, a cursor and the state of
// the current completion cycle.
type commandLine struct {
	text        []rune
	cursor      int
	suggestions []string
	index       int // selected suggestion, -1 before the first Tab
}

func newCommandLine() commandLine {
	return commandLine{index: -1}
}

func (c commandLine) String() string {
	return string(c.text)
}

// accepts reports whether r may be typed into the prompt.
func accepts(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '-' || r == '+' || r == ':' || r == '.'
}

func (c *commandLine) endCompletion() {
	c.suggestions = nil
	c.index = -1
}

func (c *commandLine) insert(r rune) {
	c.text = slices.Insert(slices.Clip(c.text), c.cursor, r)
	c.cursor++
}

// space inserts a separator. Only allowed at the end of the buffer.
func (c *commandLine) space() {
	if c.cursor == len(c.text) {
		c.insert(' ')
	}
}

func (c *commandLine) backspace() {
	if c.cursor == 0 {
		return
	}
	c.text = slices.Delete(slices.Clone(c.text), c.cursor-1, c.cursor)
	c.cursor--
}

func (c *commandLine) left() {
	c.cursor = max(c.cursor-1, 0)
}

func (c *commandLine) right() {
	c.cursor = min(c.cursor+1, len(c.text))
}

// complete replaces the buffer with the next (or previous) suggestion for
// the text typed before the cycle started. The first backward step selects
// the last suggestion.
func (c *commandLine) complete(lang *command.Language, forward bool) {
	if c.suggestions == nil {
		c.suggestions = lang.Suggest(string(c.text))
		if len(c.suggestions) == 0 {
			c.suggestions = nil
			return
		}
	}
	n := len(c.suggestions)
	switch {
	case c.index < 0 && forward:
		c.index = 0
	case c.index < 0:
		c.index = n - 1
	case forward:
		c.index = (c.index + 1) % n
	default:
		c.index = (c.index - 1 + n) % n
	}
	c.text = []rune(c.suggestions[c.index])
	c.cursor = len(c.text)
}
