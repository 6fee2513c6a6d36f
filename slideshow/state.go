package slideshow

// State is the session lifecycle state. Exactly one holds at a time.
type State int

const (
	// StateIdle is the initial and post-restart state. No countdown runs.
	StateIdle State = iota
	// StateRunning lets the countdown progress and the queue advance.
	StateRunning
	// StatePaused freezes the countdown and the queue.
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
