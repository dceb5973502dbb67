package gesture

import (
	"time"
)

// Config tunes the whole sample-to-strike pipeline. Velocities are in
// normalized screen heights per millisecond, displacements in normalized
// screen heights.
type Config struct {
	// ConfidenceGate treats weaker samples as hand absence.
	ConfidenceGate float64

	// PositionSmoothing blends the previous filtered position into the new
	// one, 0 is passthrough.
	PositionSmoothing float64

	// MedianFilterSize is the velocity ring buffer length.
	MedianFilterSize int

	// MaxSampleGap marks the longest gap still usable for a velocity
	// estimate. Larger gaps re-baseline the hand silently.
	MaxSampleGap time.Duration

	// VelocityThreshold starts a stroke when exceeded downward and cancels
	// one when exceeded upward.
	VelocityThreshold float64

	// DisplacementThreshold is the accumulated downward travel that counts
	// as a strike.
	DisplacementThreshold float64

	// StrokeTimeout discards a downswing that takes too long to land.
	StrokeTimeout time.Duration

	// DeadTime is the minimum interval between accepted hits on one hand.
	DeadTime time.Duration

	// DualHitWindow merges near-simultaneous hits of opposite hands.
	DualHitWindow time.Duration
}

func DefaultConfig() Config {
	return Config{
		ConfidenceGate:        0.2,
		PositionSmoothing:     0.3,
		MedianFilterSize:      5,
		MaxSampleGap:          time.Second,
		VelocityThreshold:     0.0004,
		DisplacementThreshold: 0.03,
		StrokeTimeout:         800 * time.Millisecond,
		DeadTime:              150 * time.Millisecond,
		DualHitWindow:         120 * time.Millisecond,
	}
}
