// Package deadline holds the sleep timers of the player: pause after a delay
// or quit after a delay. At most one timer is armed at any time.
package deadline

import "time"

// Kind identifies the action taken when a timer fires.
type Kind int

const (
	None Kind = iota
	PauseAfter
	QuitAfter
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case PauseAfter:
		return "PauseAfter"
	case QuitAfter:
		return "QuitAfter"
	default:
		return "Unknown"
	}
}

// Set owns the armed timer. The zero value has no timer.
// A Set is used from a single goroutine.
type Set struct {
	kind  Kind
	timer *time.Timer
	due   time.Time
}

// SetPauseAfter arms a pause timer and disarms any quit timer.
func (s *Set) SetPauseAfter(d time.Duration, now time.Time) {
	s.arm(PauseAfter, d, now)
}

// SetQuitAfter arms a quit timer and disarms any pause timer.
func (s *Set) SetQuitAfter(d time.Duration, now time.Time) {
	s.arm(QuitAfter, d, now)
}

func (s *Set) arm(k Kind, d time.Duration, now time.Time) {
	s.Cancel()
	s.kind = k
	s.timer = time.NewTimer(d)
	s.due = now.Add(d)
}

// Cancel disarms the timer, if any.
func (s *Set) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
	}
	*s = Set{}
}

// Active returns the kind of the armed timer.
func (s *Set) Active() Kind {
	return s.kind
}

// Poll reports which timer fired since the last poll, without blocking.
// A fired timer is disarmed.
func (s *Set) Poll() Kind {
	if s.timer == nil {
		return None
	}
	select {
	case <-s.timer.C:
		k := s.kind
		*s = Set{}
		return k
	default:
		return None
	}
}

// Remaining returns the armed kind and the time left at now, saturating at 0.
func (s *Set) Remaining(now time.Time) (Kind, time.Duration) {
	if s.kind == None {
		return None, 0
	}
	return s.kind, max(s.due.Sub(now), 0)
}
