package score

import (
	"github.com/atrika/airdrum/internal/game"
)

// Tracker folds judgements into the running session stats. Accuracy weighs
// a good hit half a perfect one; it starts at 1.0 and only changes once
// something has been judged.
type Tracker struct {
	profile Profile
	stats   game.Stats
}

func NewTracker(profile Profile) *Tracker {
	return &Tracker{profile: profile, stats: game.Stats{Accuracy: 1}}
}

func (t *Tracker) value(base int64) int64 {
	if t.profile.Scoring == ScoringProgressive {
		return base * int64(t.stats.Combo)
	}
	return base
}

// Apply updates the totals for one judgement and returns a snapshot.
func (t *Tracker) Apply(j game.Judgement) game.Stats {
	switch j.Kind {
	case game.JudgementPerfect:
		t.stats.Perfect++
		t.stats.Combo++
		t.stats.Score += t.value(t.profile.PerfectValue)
	case game.JudgementGood:
		t.stats.Good++
		t.stats.Combo++
		t.stats.Score += t.value(t.profile.GoodValue)
	case game.JudgementMiss:
		t.stats.Miss++
		t.stats.Combo = 0
	}

	if t.stats.Combo > t.stats.MaxCombo {
		t.stats.MaxCombo = t.stats.Combo
	}

	judged := t.stats.Judged()
	if judged > 0 {
		t.stats.Accuracy = (float64(t.stats.Perfect) + 0.5*float64(t.stats.Good)) / float64(judged)
	}
	return t.stats
}

// Stats returns the current snapshot.
func (t *Tracker) Stats() game.Stats {
	return t.stats
}

func (t *Tracker) Reset() {
	t.stats = game.Stats{Accuracy: 1}
}
