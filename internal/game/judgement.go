package game

import (
	"time"
)

// JudgementKind classifies one judged hit or expiry.
type JudgementKind uint8

const (
	JudgementPerfect JudgementKind = iota
	JudgementGood
	JudgementMiss
)

func (k JudgementKind) String() string {
	switch k {
	case JudgementPerfect:
		return "perfect"
	case JudgementGood:
		return "good"
	case JudgementMiss:
		return "miss"
	}
	return "unknown"
}

// Judgement is the outcome of matching one gesture event (or a passive
// expiry) against the chart. Error is note time minus hit time, so positive
// means early. Expired notes carry the miss-window boundary as their error.
// NoteID is 0 for an unattributed miss.
type Judgement struct {
	Kind   JudgementKind
	Error  time.Duration
	NoteID int
	Target string
}
