package keymap

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"github.com/llehouerou/uap/internal/command"
)

// Resolver maps key strings to commands.
type Resolver struct {
	bindings map[string]command.Command // key -> command
	help     []key.Help
}

// NewResolver creates a resolver from bindings. A key listed twice keeps its
// last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{bindings: make(map[string]command.Command)}
	for _, b := range bindings {
		for _, k := range b.Key.Keys() {
			r.bindings[k] = b.Command
		}
		if h := b.Key.Help(); h.Desc != "" {
			r.help = append(r.help, h)
		}
	}
	slices.SortStableFunc(r.help, func(a, b key.Help) int {
		return cmp.Compare(a.Desc, b.Desc)
	})
	return r
}

// Resolve returns the command bound to k.
func (r *Resolver) Resolve(k string) (command.Command, bool) {
	c, ok := r.bindings[k]
	return c, ok
}

// Help returns the documented bindings sorted by description.
func (r *Resolver) Help() []key.Help {
	return slices.Clone(r.help)
}
