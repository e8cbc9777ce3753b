package state

import (
	"cmp"
	"slices"
	"sync"
)

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	lastFile string
	history  map[string]Entry
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{history: make(map[string]Entry)}
}

func (m *Mock) LastFile() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFile, nil
}

func (m *Mock) SetLastFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFile = path
	return nil
}

func (m *Mock) RecordPosition(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[e.Path] = e
	return nil
}

func (m *Mock) Recent(limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, 0, len(m.history))
	for _, e := range m.history {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), cmp.Compare(a.Path, b.Path))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called (test helper).
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ Interface = (*Mock)(nil)
