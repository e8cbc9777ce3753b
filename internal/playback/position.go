package playback

import "time"

// Estimator reconstructs the playback position from the event stream.
// It keeps no clock of its own; every call takes the current instant.
//
// State diagram:
//
//	  FileStarted          PlaybackRestarted
//	* ───────────> [not ready] ───────────────> [ready, paused|playing]
//	                                               │  ▲
//	                               PlaybackPaused  │  │ PlaybackResumed
//	                                               ▼  │
//	                                          [ready, paused]
//
// While playing, the position is offset + (now - ref). While paused it is
// offset. Before the first restart it is zero.
type Estimator struct {
	offset   time.Duration
	ref      time.Time
	duration time.Duration
	paused   bool
	ready    bool
}

// NewEstimator returns an estimator for a file that has not started yet.
func NewEstimator() Estimator {
	return Estimator{paused: true}
}

// Apply folds ev into the estimator at instant now.
// Events that carry no timing information are ignored.
func (e *Estimator) Apply(ev Event, now time.Time) {
	switch ev := ev.(type) {
	case FileStarted:
		e.ready = false
	case PlaybackRestarted:
		e.ref = now
		e.ready = true
		e.paused = ev.Paused
	case PlaybackPaused:
		if e.ready && !e.paused {
			e.offset += now.Sub(e.ref)
		}
		e.paused = true
	case PlaybackResumed:
		if e.paused {
			e.ref = now
			e.paused = false
		}
	case PositionChanged:
		e.ref = now
		e.offset = ev.Position
	case FileLoaded:
		e.ref = now
		e.offset = 0
		e.duration = ev.Metadata.Duration
	}
}

// Position returns the estimated position at now, clamped to [0, duration]
// when the duration is known.
func (e Estimator) Position(now time.Time) time.Duration {
	if !e.ready {
		return 0
	}
	pos := e.offset
	if !e.paused {
		pos += now.Sub(e.ref)
	}
	pos = max(pos, 0)
	if e.duration > 0 {
		pos = min(pos, e.duration)
	}
	return pos
}

// Playing reports whether playback is known to be advancing.
func (e Estimator) Playing() bool {
	return e.ready && !e.paused
}

// Ready reports whether playback has restarted since the last FileStarted.
func (e Estimator) Ready() bool {
	return e.ready
}

// Duration returns the file duration learned from FileLoaded.
func (e Estimator) Duration() time.Duration {
	return e.duration
}
