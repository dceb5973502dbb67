package gesture

import (
	"testing"
	"time"

	"github.com/atrika/airdrum/internal/game"
)

func TestSameTickBothHands(t *testing.T) {
	a := NewArbiter(120 * time.Millisecond)
	ev, ok := a.Combine([]Hit{
		{Hand: game.HandLeft, Time: ms(100)},
		{Hand: game.HandRight, Time: ms(100)},
	}, ms(100))
	if !ok || ev.Kind != game.GestureBoth {
		t.Fatalf("simultaneous strikes should combine, got %+v", ev)
	}
}

func TestRetroactiveUpgrade(t *testing.T) {
	a := NewArbiter(120 * time.Millisecond)

	ev, ok := a.Combine([]Hit{{Hand: game.HandLeft, Time: ms(100)}}, ms(100))
	if !ok || ev.Kind != game.GestureLeft {
		t.Fatalf("lone left strike should pass through, got %+v", ev)
	}

	// 105ms later the right hand lands: inside the window, upgrade.
	ev, ok = a.Combine([]Hit{{Hand: game.HandRight, Time: ms(205)}}, ms(205))
	if !ok || ev.Kind != game.GestureBoth {
		t.Fatalf("near-simultaneous strike should upgrade to both, got %+v", ev)
	}

	// A merged hit cannot be claimed twice.
	ev, ok = a.Combine([]Hit{{Hand: game.HandLeft, Time: ms(280)}}, ms(280))
	if !ok || ev.Kind != game.GestureLeft {
		t.Fatalf("the merged right hit must not upgrade a later left, got %+v", ev)
	}
}

func TestWindowExpired(t *testing.T) {
	a := NewArbiter(120 * time.Millisecond)
	a.Combine([]Hit{{Hand: game.HandLeft, Time: ms(100)}}, ms(100))

	ev, ok := a.Combine([]Hit{{Hand: game.HandRight, Time: ms(260)}}, ms(260))
	if !ok || ev.Kind != game.GestureRight {
		t.Fatalf("strikes 160ms apart are two singles, got %+v", ev)
	}
}

func TestNoHitsNoEvent(t *testing.T) {
	a := NewArbiter(120 * time.Millisecond)
	if _, ok := a.Combine(nil, ms(50)); ok {
		t.Fatal("no strikes should produce no event")
	}
}

func TestResetForgetsHistory(t *testing.T) {
	a := NewArbiter(120 * time.Millisecond)
	a.Combine([]Hit{{Hand: game.HandLeft, Time: ms(100)}}, ms(100))
	a.Reset()

	ev, _ := a.Combine([]Hit{{Hand: game.HandRight, Time: ms(150)}}, ms(150))
	if ev.Kind != game.GestureRight {
		t.Fatalf("reset should forget the earlier left strike, got %+v", ev)
	}
}
