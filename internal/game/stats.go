package game

// Stats is a value snapshot of one session's running totals.
// Accuracy starts at 1.0 and stays there until the first judgement.
type Stats struct {
	Perfect  int
	Good     int
	Miss     int
	Combo    int
	MaxCombo int
	Score    int64
	Accuracy float64
}

func (s Stats) Judged() int {
	return s.Perfect + s.Good + s.Miss
}
