package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/atrika/airdrum/internal/game"
)

type DefaultParser struct{}

// Chart file layout produced by the authoring pipeline.
type chartFile struct {
	SongID     string      `json:"songId"`
	Difficulty string      `json:"difficulty"`
	Notes      []chartNote `json:"notes"`
	Metadata   chartMeta   `json:"metadata"`
}

type chartNote struct {
	Time     float64 `json:"time"`
	Type     string  `json:"type"`
	Velocity float64 `json:"velocity"`
}

type chartMeta struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	BPM       float64 `json:"bpm"`
	NoteCount int     `json:"noteCount"`
}

// The authoring pipeline maps drum voices to hands: kick is struck with
// both, snare with the right, hihat with the left. Charts may carry either
// the voice name or the hand name; both resolve to the same pair.
func mapNoteType(t string) (string, game.GestureKind, bool) {
	switch t {
	case "kick", "both":
		return "kick", game.GestureBoth, true
	case "snare", "right":
		return "snare", game.GestureRight, true
	case "hihat", "left":
		return "hihat", game.GestureLeft, true
	}
	return "", game.GestureNone, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart: %w", err)
	}

	var cf chartFile
	if err := json.Unmarshal(data, &cf); nil != err {
		return nil, fmt.Errorf("unable to decode chart %v: %w", file, err)
	}

	duration := cf.Metadata.Duration
	if duration <= 0 {
		// Fall back to the last note when the metadata is incomplete
		for _, n := range cf.Notes {
			if n.Time > duration {
				duration = n.Time
			}
		}
	}

	notes := make([]*game.Note, 0, len(cf.Notes))
	for _, n := range cf.Notes {
		target, hand, ok := mapNoteType(n.Type)
		if !ok {
			// Unknown voices are authoring noise, not a load failure
			continue
		}
		notes = append(notes, &game.Note{
			Time:     time.Duration(clamp(n.Time, 0, duration) * float64(time.Second)),
			Target:   target,
			Hand:     hand,
			Velocity: clamp(n.Velocity, 0, 1),
		})
	}

	if len(notes) == 0 {
		return nil, errors.New("chart contains no playable notes")
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})

	return &game.Chart{
		SongID:     cf.SongID,
		Title:      cf.Metadata.Title,
		Difficulty: cf.Difficulty,
		Duration:   time.Duration(duration * float64(time.Second)),
		BPM:        cf.Metadata.BPM,
		Notes:      notes,
	}, nil
}
