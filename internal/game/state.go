package game

// State is the session lifecycle. Finished is terminal.
type State uint8

const (
	StateIdle State = iota
	StateReady
	StatePlaying
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}
