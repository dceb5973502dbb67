package score

import (
	"fmt"
	"time"

	"github.com/atrika/airdrum/internal/game"
)

type Scorer interface {
	// Judge matches one gesture event against the chart's active window.
	// The second result is false when the event produced no judgement.
	Judge(chart *game.Chart, ev game.GestureEvent) (game.Judgement, bool)

	// Expire retires overdue unjudged notes as misses, each exactly once.
	Expire(chart *game.Chart, now time.Duration) []game.Judgement
}

// MatchMode selects how gesture events find their note.
type MatchMode uint8

const (
	// MatchHand pairs events with notes expecting the same gesture.
	MatchHand MatchMode = iota
	// MatchSpatial pairs events with notes on the struck drum.
	MatchSpatial
)

// ScoringMode selects the score formula.
type ScoringMode uint8

const (
	ScoringFlat ScoringMode = iota
	ScoringProgressive
)

// Profile is one named set of timing windows and scoring rules. The two
// stock profiles carry the constants of the two historical play modes
// rather than a reconciled set.
type Profile struct {
	Name          string
	PerfectWindow time.Duration
	GoodWindow    time.Duration
	MissWindow    time.Duration

	Scoring      ScoringMode
	PerfectValue int64
	GoodValue    int64

	Match MatchMode

	// CountUnmatchedAsMiss records events that match no active note as an
	// unattributed miss instead of dropping them.
	CountUnmatchedAsMiss bool
}

// RhythmProfile is the lane-matched mode: tight windows, flat scoring,
// events that hit nothing are ignored.
func RhythmProfile() Profile {
	return Profile{
		Name:          "rhythm",
		PerfectWindow: 120 * time.Millisecond,
		GoodWindow:    250 * time.Millisecond,
		MissWindow:    400 * time.Millisecond,
		Scoring:       ScoringFlat,
		PerfectValue:  100,
		GoodValue:     50,
		Match:         MatchHand,
	}
}

// FreeplayProfile is the spatial drum mode: looser windows, combo-scaled
// scoring, wild swings count against you.
func FreeplayProfile() Profile {
	return Profile{
		Name:                 "freeplay",
		PerfectWindow:        150 * time.Millisecond,
		GoodWindow:           300 * time.Millisecond,
		MissWindow:           500 * time.Millisecond,
		Scoring:              ScoringProgressive,
		PerfectValue:         100,
		GoodValue:            50,
		Match:                MatchSpatial,
		CountUnmatchedAsMiss: true,
	}
}

func ProfileByName(name string) (Profile, error) {
	switch name {
	case "rhythm":
		return RhythmProfile(), nil
	case "freeplay":
		return FreeplayProfile(), nil
	}
	return Profile{}, fmt.Errorf("unknown profile %q", name)
}
