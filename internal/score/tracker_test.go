package score

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atrika/airdrum/internal/game"
)

func judgement(kind game.JudgementKind) game.Judgement {
	return game.Judgement{Kind: kind}
}

func TestInitialAccuracy(t *testing.T) {
	tr := NewTracker(RhythmProfile())
	require.Equal(t, 1.0, tr.Stats().Accuracy, "accuracy starts at 1.0")
	require.Equal(t, int64(0), tr.Stats().Score)
}

func TestComboResetsOnMiss(t *testing.T) {
	tr := NewTracker(RhythmProfile())
	for i := 0; i < 5; i++ {
		tr.Apply(judgement(game.JudgementPerfect))
	}
	require.Equal(t, 5, tr.Stats().Combo)

	stats := tr.Apply(judgement(game.JudgementMiss))
	require.Equal(t, 0, stats.Combo, "combo resets to zero on every miss")
	require.Equal(t, 5, stats.MaxCombo, "max combo survives the miss")
}

func TestMaxComboNonDecreasing(t *testing.T) {
	tr := NewTracker(RhythmProfile())
	seq := []game.JudgementKind{
		game.JudgementPerfect, game.JudgementPerfect, game.JudgementMiss,
		game.JudgementGood, game.JudgementMiss, game.JudgementPerfect,
	}
	prev := 0
	for _, kind := range seq {
		stats := tr.Apply(judgement(kind))
		require.GreaterOrEqual(t, stats.MaxCombo, prev, "max combo never decreases")
		prev = stats.MaxCombo
	}
}

func TestAccuracyFormula(t *testing.T) {
	tr := NewTracker(RhythmProfile())

	stats := tr.Apply(judgement(game.JudgementMiss))
	require.Equal(t, 0.0, stats.Accuracy, "all misses is 0")

	stats = tr.Apply(judgement(game.JudgementGood))
	require.InDelta(t, 0.25, stats.Accuracy, 1e-9) // (0 + 0.5*1) / 2

	stats = tr.Apply(judgement(game.JudgementPerfect))
	require.InDelta(t, 0.5, stats.Accuracy, 1e-9) // (1 + 0.5*1) / 3
}

func TestAccuracyImprovesWithBetterJudgements(t *testing.T) {
	// any Miss replaced by Good, or Good by Perfect, raises accuracy
	base := []game.JudgementKind{game.JudgementPerfect, game.JudgementGood, game.JudgementMiss}

	runAccuracy := func(seq []game.JudgementKind) float64 {
		tr := NewTracker(RhythmProfile())
		var stats game.Stats
		for _, kind := range seq {
			stats = tr.Apply(judgement(kind))
		}
		return stats.Accuracy
	}

	missToGood := []game.JudgementKind{game.JudgementPerfect, game.JudgementGood, game.JudgementGood}
	goodToPerfect := []game.JudgementKind{game.JudgementPerfect, game.JudgementPerfect, game.JudgementMiss}

	require.Greater(t, runAccuracy(missToGood), runAccuracy(base))
	require.Greater(t, runAccuracy(goodToPerfect), runAccuracy(base))
}

func TestFlatScoring(t *testing.T) {
	tr := NewTracker(RhythmProfile())
	tr.Apply(judgement(game.JudgementPerfect))
	tr.Apply(judgement(game.JudgementPerfect))
	stats := tr.Apply(judgement(game.JudgementGood))
	require.Equal(t, int64(250), stats.Score, "flat scoring ignores combo")
}

func TestProgressiveScoring(t *testing.T) {
	tr := NewTracker(FreeplayProfile())
	tr.Apply(judgement(game.JudgementPerfect)) // 100 * 1
	tr.Apply(judgement(game.JudgementPerfect)) // 100 * 2
	stats := tr.Apply(judgement(game.JudgementGood)) // 50 * 3
	require.Equal(t, int64(450), stats.Score, "progressive scoring scales with combo")

	tr.Apply(judgement(game.JudgementMiss))
	stats = tr.Apply(judgement(game.JudgementPerfect)) // combo back to 1
	require.Equal(t, int64(550), stats.Score)
}

func TestMissAddsNoScore(t *testing.T) {
	tr := NewTracker(FreeplayProfile())
	tr.Apply(judgement(game.JudgementPerfect))
	before := tr.Stats().Score
	stats := tr.Apply(judgement(game.JudgementMiss))
	require.Equal(t, before, stats.Score)
}

func TestReset(t *testing.T) {
	tr := NewTracker(RhythmProfile())
	tr.Apply(judgement(game.JudgementPerfect))
	tr.Reset()
	require.Equal(t, game.Stats{Accuracy: 1}, tr.Stats())
}
