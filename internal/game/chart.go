package game

import (
	"time"
)

// ActiveNote is a chart note inside the judgeable lookahead window.
type ActiveNote struct {
	ID     int
	Note   *Note
	Judged bool
}

// Progress reports how far the note has fallen toward its hit time,
// 0 at the lookahead horizon and 1 at the hit time. Purely positional,
// it carries no judgment semantics.
func (a *ActiveNote) Progress(now, lookahead time.Duration) float64 {
	if lookahead <= 0 {
		return 1
	}
	p := 1 - float64(a.Note.Time-now)/float64(lookahead)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// NoteView is an immutable active-note snapshot handed to external renderers.
type NoteView struct {
	ID       int
	Target   string
	Hand     GestureKind
	Time     time.Duration
	Progress float64
}

type Chart struct {
	SongID     string
	Title      string
	Difficulty string
	Duration   time.Duration
	BPM        float64
	Notes      []*Note

	active []*ActiveNote
	cursor int // index of the first note not yet admitted
	nextID int
}

// Active returns the current window and the chart cursor.
func (c *Chart) Active() ([]*ActiveNote, int) {
	return c.active, c.cursor
}

// Advance admits every note with Time <= now+lookahead into the active
// window, in chart order. The cursor is monotonic; rewinding time has no
// effect.
func (c *Chart) Advance(now, lookahead time.Duration) []*ActiveNote {
	var admitted []*ActiveNote
	for c.cursor < len(c.Notes) && c.Notes[c.cursor].Time <= now+lookahead {
		c.nextID++
		an := &ActiveNote{ID: c.nextID, Note: c.Notes[c.cursor]}
		c.active = append(c.active, an)
		admitted = append(admitted, an)
		c.cursor++
	}
	return admitted
}

// Expire removes every unjudged note older than the miss window and returns
// the removed notes, each exactly once. Judged notes have already left the
// window via Consume.
func (c *Chart) Expire(now, missWindow time.Duration) []*ActiveNote {
	var expired []*ActiveNote
	kept := c.active[:0]
	for _, an := range c.active {
		if !an.Judged && now-an.Note.Time > missWindow {
			expired = append(expired, an)
			continue
		}
		kept = append(kept, an)
	}
	for i := len(kept); i < len(c.active); i++ {
		c.active[i] = nil
	}
	c.active = kept
	return expired
}

// Consume marks the note judged and drops it from the active window.
func (c *Chart) Consume(id int) {
	for i, an := range c.active {
		if an.ID != id {
			continue
		}
		an.Judged = true
		c.active = append(c.active[:i], c.active[i+1:]...)
		return
	}
}

// Snapshot renders the active window into immutable views for callers.
func (c *Chart) Snapshot(now, lookahead time.Duration) []NoteView {
	views := make([]NoteView, 0, len(c.active))
	for _, an := range c.active {
		views = append(views, NoteView{
			ID:       an.ID,
			Target:   an.Note.Target,
			Hand:     an.Note.Hand,
			Time:     an.Note.Time,
			Progress: an.Progress(now, lookahead),
		})
	}
	return views
}

// ResetWindow clears all scheduling state so the chart can be replayed.
func (c *Chart) ResetWindow() {
	c.active = nil
	c.cursor = 0
	c.nextID = 0
}
