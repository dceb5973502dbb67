// Package telemetry is a rate-limited structured event hook. It replaces
// the randomly-sampled debug prints the engine grew up with: observability
// stays optional and outside the judgment contract, and a chatty event
// cannot flood the log.
package telemetry

import (
	"time"

	"go.uber.org/zap"
)

type bucket struct {
	tokens   float64
	lastFill time.Duration
}

// Hook emits structured events through zap, at most burst events per
// interval per event name. Timestamps are caller-supplied game time, never
// a wall clock, so replayed sessions log identically. A nil Hook is silent.
type Hook struct {
	log      *zap.Logger
	interval time.Duration
	burst    float64
	buckets  map[string]*bucket
}

func NewHook(log *zap.Logger, interval time.Duration, burst int) *Hook {
	if nil == log {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	if burst < 1 {
		burst = 1
	}
	return &Hook{
		log:      log,
		interval: interval,
		burst:    float64(burst),
		buckets:  map[string]*bucket{},
	}
}

// Emit logs one event unless its bucket is exhausted. Dropped events are
// counted nowhere; they are debug exhaust, not behavior.
func (h *Hook) Emit(now time.Duration, event string, fields ...zap.Field) {
	if nil == h {
		return
	}

	b, ok := h.buckets[event]
	if !ok {
		b = &bucket{tokens: h.burst, lastFill: now}
		h.buckets[event] = b
	} else {
		refill := float64(now-b.lastFill) / float64(h.interval) * h.burst
		if refill > 0 {
			b.tokens += refill
			if b.tokens > h.burst {
				b.tokens = h.burst
			}
			b.lastFill = now
		}
	}

	if b.tokens < 1 {
		return
	}
	b.tokens--

	h.log.Debug(event, append(fields, zap.Duration("game_time", now))...)
}
