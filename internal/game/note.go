package game

import (
	"time"
)

// Hand identifies one tracked hand.
type Hand uint8

const (
	HandLeft Hand = iota
	HandRight

	// HandCount sizes per-hand state arrays.
	HandCount
)

func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	}
	return "unknown"
}

// GestureKind is the discrete strike classification after arbitration.
type GestureKind uint8

const (
	GestureNone GestureKind = iota
	GestureLeft
	GestureRight
	GestureBoth
)

func (g GestureKind) String() string {
	switch g {
	case GestureLeft:
		return "left"
	case GestureRight:
		return "right"
	case GestureBoth:
		return "both"
	}
	return "none"
}

// GestureEvent is one debounced strike. It is produced by the arbiter,
// consumed immediately by the judgment engine, and not retained.
type GestureEvent struct {
	Kind   GestureKind
	Target string // drum id when spatial hit-testing is in use, else empty
	Time   time.Duration
}

// Note is one expected hit in a chart. Immutable once the chart is loaded.
type Note struct {
	Time     time.Duration
	Target   string      // kick, snare, hihat
	Hand     GestureKind // the gesture this note expects
	Velocity float64
}
