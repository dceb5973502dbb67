package score

import (
	"time"

	"github.com/atrika/airdrum/internal/game"
)

type DefaultScorer struct {
	profile Profile
}

func NewScorer(profile Profile) *DefaultScorer {
	return &DefaultScorer{profile: profile}
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

func (s *DefaultScorer) compatible(note *game.Note, ev game.GestureEvent) bool {
	if s.profile.Match == MatchSpatial {
		return note.Target == ev.Target
	}
	return note.Hand == ev.Kind
}

// Judge finds the nearest unjudged compatible note and classifies the hit
// by its absolute timing error. At most one note is consumed per event, and
// a consumed note never returns to the window.
func (s *DefaultScorer) Judge(chart *game.Chart, ev game.GestureEvent) (game.Judgement, bool) {
	active, _ := chart.Active()

	var closest *game.ActiveNote
	closestDistance := time.Duration(1<<63 - 1)
	var distance time.Duration

	for _, an := range active {
		if an.Judged || !s.compatible(an.Note, ev) {
			continue
		}
		dd := an.Note.Time - ev.Time
		d := abs(dd)
		if d < closestDistance {
			distance = dd
			closestDistance = d
			closest = an
		} else if nil != closest {
			// The window is time-sorted, distances only grow from here
			break
		}
	}

	if nil == closest || closestDistance > s.profile.MissWindow {
		if s.profile.CountUnmatchedAsMiss {
			return game.Judgement{Kind: game.JudgementMiss, Target: ev.Target}, true
		}
		return game.Judgement{}, false
	}

	kind := game.JudgementMiss
	switch {
	case closestDistance <= s.profile.PerfectWindow:
		kind = game.JudgementPerfect
	case closestDistance <= s.profile.GoodWindow:
		kind = game.JudgementGood
	}

	chart.Consume(closest.ID)
	return game.Judgement{
		Kind:   kind,
		Error:  distance,
		NoteID: closest.ID,
		Target: closest.Note.Target,
	}, true
}

// Expire reports every note that aged past the miss window. The recorded
// timing error is the miss-window boundary, the most charitable reading of
// a hit that never came.
func (s *DefaultScorer) Expire(chart *game.Chart, now time.Duration) []game.Judgement {
	var judgements []game.Judgement
	for _, an := range chart.Expire(now, s.profile.MissWindow) {
		judgements = append(judgements, game.Judgement{
			Kind:   game.JudgementMiss,
			Error:  -s.profile.MissWindow,
			NoteID: an.ID,
			Target: an.Note.Target,
		})
	}
	return judgements
}
