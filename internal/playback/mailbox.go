package playback

import (
	"errors"
	"sync"
)

// ErrClosed is returned when sending to a mailbox whose receiver has exited.
var ErrClosed = errors.New("mailbox closed")

// Sender is the write side of a mailbox.
type Sender[T any] interface {
	Send(msg T) error
}

// Mailbox is an unbounded FIFO with a single receiver.
// Send never blocks. TryRecv never blocks.
type Mailbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool
}

// NewMailbox returns an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{}
}

// Send appends msg. It fails with ErrClosed once the receiver closed the mailbox.
func (m *Mailbox[T]) Send(msg T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.queue = append(m.queue, msg)
	return nil
}

// TryRecv pops the oldest message, if any.
func (m *Mailbox[T]) TryRecv() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if len(m.queue) == 0 {
		return zero, false
	}
	msg := m.queue[0]
	m.queue[0] = zero
	m.queue = m.queue[1:]
	return msg, true
}

// Len returns the number of pending messages.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close marks the receiver as gone and drops pending messages.
// Closing twice is a no-op.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.queue = nil
}

// Closed reports whether Close was called.
func (m *Mailbox[T]) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Broadcast sends ev to every subscriber, in order. It stops at the first
// failure and returns it.
func Broadcast(ev Event, subs ...Sender[Event]) error {
	for _, s := range subs {
		if err := s.Send(ev); err != nil {
			return err
		}
	}
	return nil
}

// BroadcastBestEffort sends ev to every subscriber and ignores failures.
// It is used for the final Quitting event, when some receivers may be gone.
func BroadcastBestEffort(ev Event, subs ...Sender[Event]) {
	for _, s := range subs {
		_ = s.Send(ev)
	}
}
