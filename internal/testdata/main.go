package testdata

import (
	"time"

	"github.com/atrika/airdrum/internal/game"
)

// GetChart returns a fresh copy of a small two-bar drum pattern, the same
// shape the chart pipeline emits: kick on the downbeats, snare on the
// backbeats, hihat filling between.
func GetChart() *game.Chart {
	pattern := []struct {
		at     time.Duration
		target string
		hand   game.GestureKind
	}{
		{500 * time.Millisecond, "kick", game.GestureBoth},
		{1000 * time.Millisecond, "hihat", game.GestureLeft},
		{1500 * time.Millisecond, "snare", game.GestureRight},
		{2000 * time.Millisecond, "hihat", game.GestureLeft},
		{2500 * time.Millisecond, "kick", game.GestureBoth},
		{3000 * time.Millisecond, "hihat", game.GestureLeft},
		{3500 * time.Millisecond, "snare", game.GestureRight},
		{4000 * time.Millisecond, "hihat", game.GestureLeft},
	}

	notes := make([]*game.Note, len(pattern))
	for i, p := range pattern {
		notes[i] = &game.Note{Time: p.at, Target: p.target, Hand: p.hand, Velocity: 0.8}
	}
	return &game.Chart{
		SongID:     "testdata",
		Title:      "Two Bar Groove",
		Difficulty: "normal",
		Duration:   5 * time.Second,
		BPM:        120,
		Notes:      notes,
	}
}
