package gesture

import (
	"sort"
	"time"

	"github.com/atrika/airdrum/internal/game"
)

// Sample is one raw hand observation from the pose pipeline. Coordinates
// are normalized to [0,1] with y growing downward. Timestamps are supplied
// by the caller and must be monotonic per hand.
type Sample struct {
	Hand       game.Hand
	X, Y       float64
	Confidence float64
	Time       time.Duration
}

// Motion is the filtered view of one hand after a sample was ingested.
// DY is the downward displacement of the filtered position since the
// previous valid sample, 0 across discontinuities. Velocity is the median
// of the recent raw velocities.
type Motion struct {
	X, Y     float64
	DY       float64
	Velocity float64
}

type handMotion struct {
	x, y        float64
	hasPosition bool

	lastTime    time.Duration
	hasBaseline bool

	velocities []float64 // ring buffer
	head       int
	filled     int
}

// Tracker converts raw per-hand samples into filtered positions and
// jitter-resistant vertical velocities. Instantaneous velocity is never
// used downstream; a single wild keypoint frame lands in the ring buffer
// and is outvoted by the median.
type Tracker struct {
	cfg   Config
	hands [game.HandCount]handMotion
}

func NewTracker(cfg Config) *Tracker {
	if cfg.MedianFilterSize < 1 {
		cfg.MedianFilterSize = 1
	}
	t := &Tracker{cfg: cfg}
	for i := range t.hands {
		t.hands[i].velocities = make([]float64, cfg.MedianFilterSize)
	}
	return t
}

func (h *handMotion) push(v float64) {
	h.velocities[h.head] = v
	h.head = (h.head + 1) % len(h.velocities)
	if h.filled < len(h.velocities) {
		h.filled++
	}
}

func (h *handMotion) median() float64 {
	if h.filled == 0 {
		return 0
	}
	vs := make([]float64, h.filled)
	copy(vs, h.velocities[:h.filled])
	sort.Float64s(vs)
	mid := len(vs) / 2
	if len(vs)%2 == 0 {
		return (vs[mid-1] + vs[mid]) / 2
	}
	return vs[mid]
}

func (h *handMotion) clearVelocity() {
	h.head = 0
	h.filled = 0
	h.hasBaseline = false
}

// Observe ingests one sample. The second result is false when the sample
// failed the confidence gate, meaning the hand is treated as absent this
// tick. Absence clears the velocity state but deliberately not the caller's
// stroke state; brief dropouts mid-swing stay judgeable until the stroke
// timeout handles them.
func (t *Tracker) Observe(s Sample) (Motion, bool) {
	if int(s.Hand) >= len(t.hands) {
		return Motion{}, false
	}
	h := &t.hands[s.Hand]

	if s.Confidence < t.cfg.ConfidenceGate {
		h.clearVelocity()
		return Motion{X: h.x, Y: h.y}, false
	}

	prevY := h.y
	if h.hasPosition {
		f := t.cfg.PositionSmoothing
		h.x = s.X*(1-f) + h.x*f
		h.y = s.Y*(1-f) + h.y*f
	} else {
		h.x, h.y = s.X, s.Y
		h.hasPosition = true
	}

	dy := 0.0
	if h.hasBaseline {
		dt := s.Time - h.lastTime
		if dt > 0 && dt <= t.cfg.MaxSampleGap {
			dy = h.y - prevY
			h.push(dy / (float64(dt) / float64(time.Millisecond)))
		}
		// Out-of-range dt is a tracking discontinuity: the baseline moves,
		// no velocity is recorded.
	}
	h.lastTime = s.Time
	h.hasBaseline = true

	return Motion{X: h.x, Y: h.y, DY: dy, Velocity: h.median()}, true
}

func (t *Tracker) Reset() {
	for i := range t.hands {
		t.hands[i] = handMotion{velocities: make([]float64, t.cfg.MedianFilterSize)}
	}
}
