package player

// Phase is the lifecycle of the engine loop.
//
//	┌──────┐  run   ┌─────────┐ file loaded ┌───────┐
//	│ Idle │ ──────▶│ Loading │ ───────────▶│ Ready │
//	└──────┘        └─────────┘             └───────┘
//	                                           │ restart / pause / resume
//	                                           ▼
//	                                  ┌─────────┐   ┌─────────┐
//	                                  │ Playing │◀─▶│ Paused  │
//	                                  └─────────┘   └─────────┘
//	                                           │ quit (from any phase)
//	                                           ▼
//	                                      ┌──────────┐
//	                                      │ Quitting │
//	                                      └──────────┘
//
// A new StartFile while Ready, Playing or Paused goes back to Loading.
type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Playing
	Paused
	Quitting
)

// String returns the phase name for debugging.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Quitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// Loaded reports whether a file is open.
func (p Phase) Loaded() bool {
	return p == Ready || p == Playing || p == Paused
}
