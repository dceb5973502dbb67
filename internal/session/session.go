package session

import (
	"errors"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/atrika/airdrum/internal/game"
	"github.com/atrika/airdrum/internal/gesture"
	"github.com/atrika/airdrum/internal/score"
	"github.com/atrika/airdrum/internal/telemetry"
)

type Config struct {
	Gesture   gesture.Config
	Profile   score.Profile
	Lookahead time.Duration

	// Autoplay synthesizes perfectly timed gestures for every due note and
	// feeds them through the normal judgment path. A demo mode, not a
	// second scoring engine.
	Autoplay bool
}

func DefaultConfig() Config {
	return Config{
		Gesture:   gesture.DefaultConfig(),
		Profile:   score.FreeplayProfile(),
		Lookahead: 2 * time.Second,
	}
}

// Callbacks are the session's only outputs besides snapshots. All fire
// synchronously inside Update/HandleSample on the caller's goroutine.
type Callbacks struct {
	OnGesture     func(game.GestureEvent)
	OnJudgement   func(game.Judgement, game.Stats)
	OnStateChange func(game.State)
	OnActiveNotes func([]game.NoteView)

	// OnFinished fires exactly once per session, with the final stats.
	OnFinished func(game.Stats)
}

// Session drives one play-through of one chart. It is single-threaded and
// tick-driven: the caller invokes Update once per frame and HandleSample
// per hand observation, always with caller-supplied timestamps. No wall
// clock is read anywhere, so identical timestamped inputs reproduce
// identical judgments.
type Session struct {
	cfg   Config
	chart *game.Chart
	cb    Callbacks
	hook  *telemetry.Hook

	detector *gesture.Detector
	arbiter  *gesture.Arbiter
	scorer   score.Scorer
	tracker  *score.Tracker

	state game.State

	// Caller-clock bookkeeping. Game time is caller time minus the start
	// mark minus accumulated pauses, so pausing freezes musical time.
	startMark   time.Duration
	pauseMark   time.Duration
	pausedTotal time.Duration

	// Strikes gathered since the last tick, arbitrated together so that
	// two hands landing in one tick merge into one event.
	pending []gesture.Hit

	// Game time of the latest Update, for telemetry timestamps.
	gameTime time.Duration
}

// New builds a Ready session. A missing or empty chart is the one hard
// failure in the whole engine; everything later is recoverable.
func New(chart *game.Chart, cfg Config, cb Callbacks, hook *telemetry.Hook) (*Session, error) {
	if nil == chart {
		return nil, errors.New("session needs a chart")
	}
	if len(chart.Notes) == 0 {
		return nil, errors.New("chart has no notes")
	}
	chart.ResetWindow()
	return &Session{
		cfg:      cfg,
		chart:    chart,
		cb:       cb,
		hook:     hook,
		detector: gesture.NewDetector(cfg.Gesture),
		arbiter:  gesture.NewArbiter(cfg.Gesture.DualHitWindow),
		scorer:   score.NewScorer(cfg.Profile),
		tracker:  score.NewTracker(cfg.Profile),
		state:    game.StateReady,
	}, nil
}

func (s *Session) State() game.State { return s.state }

// Stats returns an immutable snapshot of the running totals.
func (s *Session) Stats() game.Stats { return s.tracker.Stats() }

// GameTime maps a caller timestamp onto the musical timeline.
func (s *Session) GameTime(now time.Duration) time.Duration {
	return now - s.startMark - s.pausedTotal
}

func (s *Session) setState(state game.State) {
	s.state = state
	if nil != s.cb.OnStateChange {
		s.cb.OnStateChange(state)
	}
}

// Start begins playback at the caller timestamp now. Starting an already
// running or paused session is a warning-level no-op.
func (s *Session) Start(now time.Duration) {
	switch s.state {
	case game.StateIdle, game.StateReady:
		s.startMark = now
		s.pausedTotal = 0
		s.setState(game.StatePlaying)
	case game.StatePlaying, game.StatePaused:
		log.Println("start ignored: session already running")
	case game.StateFinished:
		log.Println("start ignored: session finished")
	}
}

func (s *Session) Pause(now time.Duration) {
	if s.state != game.StatePlaying {
		return
	}
	s.pauseMark = now
	s.setState(game.StatePaused)
}

func (s *Session) Resume(now time.Duration) {
	if s.state != game.StatePaused {
		return
	}
	s.pausedTotal += now - s.pauseMark
	s.setState(game.StatePlaying)
}

// Stop finishes the session. Repeated calls are no-ops; the finished
// notification fires exactly once, whether ended by Stop or by the chart
// running out.
func (s *Session) Stop() {
	s.finish()
}

func (s *Session) finish() {
	if s.state == game.StateFinished {
		return
	}
	s.setState(game.StateFinished)
	if nil != s.cb.OnFinished {
		s.cb.OnFinished(s.tracker.Stats())
	}
}

// Dispose is pure state teardown: idempotent, safe from any state, and
// silent. The session owns no files, threads, or timers.
func (s *Session) Dispose() {
	s.cb = Callbacks{}
	s.pending = nil
	s.detector.Reset()
	s.arbiter.Reset()
	s.state = game.StateFinished
}

// HandleSample ingests one raw hand observation. Outside Playing it is a
// silent no-op. The completed strike, if any, waits for the next Update so
// both hands of one tick are arbitrated together.
func (s *Session) HandleSample(sample gesture.Sample) {
	if s.state != game.StatePlaying {
		return
	}
	sample.Time = s.GameTime(sample.Time)
	if hit, ok := s.detector.Feed(sample); ok {
		s.pending = append(s.pending, hit)
	}
}

// targetFor maps a gesture onto the drum it plays, the voice mapping the
// charts are authored with.
func targetFor(kind game.GestureKind) string {
	switch kind {
	case game.GestureBoth:
		return "kick"
	case game.GestureRight:
		return "snare"
	case game.GestureLeft:
		return "hihat"
	}
	return ""
}

// Update advances the engine to the caller timestamp now: grows the active
// window, arbitrates pending strikes into at most one gesture event,
// judges it, retires overdue notes as misses, and reports snapshots.
// Outside Playing it is a silent no-op.
func (s *Session) Update(now time.Duration) {
	if s.state != game.StatePlaying {
		return
	}
	gameTime := s.GameTime(now)
	s.gameTime = gameTime

	s.detector.Tick(gameTime)
	s.chart.Advance(gameTime, s.cfg.Lookahead)

	if ev, ok := s.combinePending(); ok {
		s.emit(ev)
	}

	if s.cfg.Autoplay {
		s.autoplay(gameTime)
	}

	for _, j := range s.scorer.Expire(s.chart, gameTime) {
		s.apply(j)
	}

	if nil != s.cb.OnActiveNotes {
		s.cb.OnActiveNotes(s.chart.Snapshot(gameTime, s.cfg.Lookahead))
	}

	if gameTime >= s.chart.Duration {
		s.finish()
	}
}

func (s *Session) combinePending() (game.GestureEvent, bool) {
	if len(s.pending) == 0 {
		return game.GestureEvent{}, false
	}
	at := s.pending[0].Time
	for _, h := range s.pending[1:] {
		if h.Time > at {
			at = h.Time
		}
	}
	ev, ok := s.arbiter.Combine(s.pending, at)
	s.pending = s.pending[:0]
	return ev, ok
}

func (s *Session) emit(ev game.GestureEvent) {
	ev.Target = targetFor(ev.Kind)
	s.hook.Emit(ev.Time, "gesture",
		zap.String("kind", ev.Kind.String()),
		zap.String("target", ev.Target))

	if nil != s.cb.OnGesture {
		s.cb.OnGesture(ev)
	}
	if j, ok := s.scorer.Judge(s.chart, ev); ok {
		s.apply(j)
	}
}

func (s *Session) apply(j game.Judgement) {
	stats := s.tracker.Apply(j)
	s.hook.Emit(s.gameTime, "judgement",
		zap.String("kind", j.Kind.String()),
		zap.Int("note", j.NoteID),
		zap.Int("combo", stats.Combo))

	if nil != s.cb.OnJudgement {
		s.cb.OnJudgement(j, stats)
	}
}

// autoplay fires a synthetic, perfectly timed gesture for every due note.
// It goes through the same emit path as real strikes.
func (s *Session) autoplay(now time.Duration) {
	active, _ := s.chart.Active()
	var due []*game.ActiveNote
	for _, an := range active {
		if !an.Judged && an.Note.Time <= now {
			due = append(due, an)
		}
	}
	for _, an := range due {
		s.emit(game.GestureEvent{Kind: an.Note.Hand, Time: an.Note.Time})
	}
}
