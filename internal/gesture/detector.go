package gesture

import (
	"time"

	"github.com/atrika/airdrum/internal/game"
)

// Hit is one accepted single-hand strike.
type Hit struct {
	Hand game.Hand
	Time time.Duration
	X, Y float64
}

type strokePhase uint8

const (
	strokeIdle strokePhase = iota
	strokeTracking
)

// stroke is the per-hand downswing state. The tagged phase replaces the
// nullable start fields the concept came from; an Idle stroke has no start
// position to misread.
type stroke struct {
	phase       strokePhase
	startY      float64
	startTime   time.Duration
	accumulated float64
}

type handStroke struct {
	stroke
	lastHit    time.Duration
	hasLastHit bool
}

// Detector turns filtered hand motion into discrete strikes. One continuous
// downswing is tracked from the first fast downward frame until it either
// travels far enough (a hit), reverses upward (cancelled), or takes longer
// than the stroke timeout (too slow to be a strike).
//
// Thresholding instantaneous velocity alone is hopeless against skeletal
// jitter; accumulating displacement over a timestamp-driven window stays
// correct under variable frame rates.
type Detector struct {
	cfg     Config
	tracker *Tracker
	hands   [game.HandCount]handStroke
}

func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg, tracker: NewTracker(cfg)}
}

// Feed ingests one raw sample and reports whether it completed a strike.
func (d *Detector) Feed(s Sample) (Hit, bool) {
	if int(s.Hand) >= len(d.hands) {
		return Hit{}, false
	}
	h := &d.hands[s.Hand]

	motion, present := d.tracker.Observe(s)
	if !present {
		// Hand absent this tick. The stroke stays alive so a dropout
		// mid-swing does not cancel a real attempt, but it still ages out.
		d.expire(h, s.Time)
		return Hit{}, false
	}

	switch h.phase {
	case strokeIdle:
		if motion.Velocity > d.cfg.VelocityThreshold {
			h.phase = strokeTracking
			h.startY = motion.Y
			h.startTime = s.Time
			h.accumulated = 0
		}

	case strokeTracking:
		if s.Time-h.startTime > d.cfg.StrokeTimeout {
			h.stroke = stroke{}
			return Hit{}, false
		}
		if motion.Velocity < -d.cfg.VelocityThreshold {
			// Clear upward reversal, not a strike
			h.stroke = stroke{}
			return Hit{}, false
		}
		if motion.DY > 0 {
			h.accumulated += motion.DY
		}
		if h.accumulated >= d.cfg.DisplacementThreshold &&
			(!h.hasLastHit || s.Time-h.lastHit >= d.cfg.DeadTime) {
			h.stroke = stroke{}
			h.lastHit = s.Time
			h.hasLastHit = true
			return Hit{Hand: s.Hand, Time: s.Time, X: motion.X, Y: motion.Y}, true
		}
	}

	return Hit{}, false
}

// Tick ages out strokes on hands that produced no sample this tick.
func (d *Detector) Tick(now time.Duration) {
	for i := range d.hands {
		d.expire(&d.hands[i], now)
	}
}

func (d *Detector) expire(h *handStroke, now time.Duration) {
	if h.phase == strokeTracking && now-h.startTime > d.cfg.StrokeTimeout {
		h.stroke = stroke{}
	}
}

// LastHit returns when the hand last landed a strike.
func (d *Detector) LastHit(hand game.Hand) (time.Duration, bool) {
	h := &d.hands[hand]
	return h.lastHit, h.hasLastHit
}

func (d *Detector) Reset() {
	d.tracker.Reset()
	for i := range d.hands {
		d.hands[i] = handStroke{}
	}
}
