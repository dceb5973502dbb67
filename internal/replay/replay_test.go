package replay

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/atrika/airdrum/internal/game"
	"github.com/atrika/airdrum/internal/gesture"
)

func TestRoundTrip(t *testing.T) {
	samples := []gesture.Sample{
		{Hand: game.HandLeft, X: 0.25, Y: 0.5, Confidence: 0.9, Time: 16670 * time.Microsecond},
		{Hand: game.HandRight, X: 0.75, Y: 0.48, Confidence: 0.15, Time: 33340 * time.Microsecond},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, s := range samples {
		if err := w.Write(s); nil != err {
			t.Fatal(err)
		}
	}

	got, err := ReadAll(&buf)
	if nil != err {
		t.Fatal(err)
	}
	if len(got) != len(samples) {
		t.Fatalf("expected %v samples, got %v", len(samples), len(got))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Fatalf("sample %v changed in transit:\n got %+v\nwant %+v", i, got[i], samples[i])
		}
	}
}

func TestBlankLinesTolerated(t *testing.T) {
	body := `{"hand":"left","x":0.1,"y":0.2,"confidence":1,"timeNs":1000000}

{"hand":"right","x":0.3,"y":0.4,"confidence":1,"timeNs":2000000}
`
	got, err := ReadAll(strings.NewReader(body))
	if nil != err {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %v", len(got))
	}
}

func TestMalformedLineFails(t *testing.T) {
	if _, err := ReadAll(strings.NewReader("{not json}\n")); nil == err {
		t.Fatal("corrupt recordings must not replay silently")
	}
	if _, err := ReadAll(strings.NewReader(`{"hand":"tail","timeNs":1}` + "\n")); nil == err {
		t.Fatal("an unknown hand must fail")
	}
}
