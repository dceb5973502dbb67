package gesture

import (
	"time"

	"github.com/atrika/airdrum/internal/game"
)

// Arbiter merges independent per-hand strikes into one musical event.
// Human two-hand strikes are rarely sample-synchronous, so a single strike
// also looks back a short window at the opposite hand; two near-simultaneous
// singles become one combined event instead of two separately scored ones.
type Arbiter struct {
	window time.Duration

	lastHit [game.HandCount]time.Duration
	hasHit  [game.HandCount]bool
	// merged marks a hit that was already folded into a Both event so a
	// later strike cannot claim it again.
	merged [game.HandCount]bool
}

func NewArbiter(window time.Duration) *Arbiter {
	return &Arbiter{window: window}
}

// Combine resolves the strikes of one tick into at most one gesture event.
func (a *Arbiter) Combine(hits []Hit, now time.Duration) (game.GestureEvent, bool) {
	if len(hits) == 0 {
		return game.GestureEvent{}, false
	}

	var left, right bool
	for _, h := range hits {
		a.lastHit[h.Hand] = h.Time
		a.hasHit[h.Hand] = true
		a.merged[h.Hand] = false
		switch h.Hand {
		case game.HandLeft:
			left = true
		case game.HandRight:
			right = true
		}
	}

	if left && right {
		a.merged[game.HandLeft] = true
		a.merged[game.HandRight] = true
		return game.GestureEvent{Kind: game.GestureBoth, Time: now}, true
	}

	hand := game.HandLeft
	other := game.HandRight
	if right {
		hand, other = game.HandRight, game.HandLeft
	}

	// A fresh strike within the dual window of the other hand's last hit
	// supersedes that earlier single and upgrades to a combined event.
	if a.hasHit[other] && !a.merged[other] && now-a.lastHit[other] <= a.window {
		a.merged[hand] = true
		a.merged[other] = true
		return game.GestureEvent{Kind: game.GestureBoth, Time: now}, true
	}

	kind := game.GestureLeft
	if hand == game.HandRight {
		kind = game.GestureRight
	}
	return game.GestureEvent{Kind: kind, Time: now}, true
}

func (a *Arbiter) Reset() {
	for i := range a.lastHit {
		a.lastHit[i] = 0
		a.hasHit[i] = false
		a.merged[i] = false
	}
}
