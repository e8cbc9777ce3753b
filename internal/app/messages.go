package app

import "time"

// FrameMsg drives one UI cycle: drain one playback event, poll the
// deadline timers and redraw.
type FrameMsg time.Time

// StderrMsg carries one line written by the native engine to fd 2.
type StderrMsg string
