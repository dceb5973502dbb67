// Package replay records timestamped hand samples as line-delimited JSON
// and plays them back bit-identically. Because the engine never reads a
// wall clock, re-running a recording reproduces the original judgements
// exactly.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/atrika/airdrum/internal/game"
	"github.com/atrika/airdrum/internal/gesture"
)

// record keeps the timestamp in integer nanoseconds so a round trip loses
// nothing to float formatting.
type record struct {
	Hand       string  `json:"hand"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
	TimeNs     int64   `json:"timeNs"`
}

type Writer struct {
	enc *json.Encoder
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

func (w *Writer) Write(s gesture.Sample) error {
	return w.enc.Encode(record{
		Hand:       s.Hand.String(),
		X:          s.X,
		Y:          s.Y,
		Confidence: s.Confidence,
		TimeNs:     int64(s.Time),
	})
}

func decodeLine(line int, text []byte) (gesture.Sample, error) {
	var rec record
	if err := json.Unmarshal(text, &rec); nil != err {
		return gesture.Sample{}, fmt.Errorf("replay line %v: %w", line, err)
	}
	hand := game.HandLeft
	switch rec.Hand {
	case "left":
	case "right":
		hand = game.HandRight
	default:
		return gesture.Sample{}, fmt.Errorf("replay line %v: unknown hand %q", line, rec.Hand)
	}
	return gesture.Sample{
		Hand:       hand,
		X:          rec.X,
		Y:          rec.Y,
		Confidence: rec.Confidence,
		Time:       time.Duration(rec.TimeNs),
	}, nil
}

// ReadAll loads a whole recording. Blank lines are tolerated, anything
// else malformed is an error; a half-written recording should fail loudly
// rather than replay half a performance.
func ReadAll(r io.Reader) ([]gesture.Sample, error) {
	var samples []gesture.Sample
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		s, err := decodeLine(line, scanner.Bytes())
		if nil != err {
			return nil, err
		}
		samples = append(samples, s)
	}
	if err := scanner.Err(); nil != err {
		return nil, fmt.Errorf("unable to read replay: %w", err)
	}
	return samples, nil
}

// Stream decodes samples as they arrive and sends them on out, closing it
// when the reader ends. Unlike ReadAll, malformed lines in a live stream
// are skipped; a stuttering pose pipeline should not kill the game.
func Stream(r io.Reader, out chan<- gesture.Sample) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		s, err := decodeLine(line, scanner.Bytes())
		if nil != err {
			continue
		}
		out <- s
	}
}
