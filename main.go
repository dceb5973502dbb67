package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atrika/airdrum/internal/config"
	"github.com/atrika/airdrum/internal/game"
	"github.com/atrika/airdrum/internal/gesture"
	"github.com/atrika/airdrum/internal/parser"
	"github.com/atrika/airdrum/internal/replay"
	"github.com/atrika/airdrum/internal/score"
	"github.com/atrika/airdrum/internal/session"
	"github.com/atrika/airdrum/internal/telemetry"
)

const framePeriod = time.Second / 60

func main() {
	config.Init()
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

// drumKit holds the decoded one-shot samples keyed by drum id.
type drumKit map[string]*beep.Buffer

func (k drumKit) play(target string) {
	buf, ok := k[target]
	if !ok {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

func loadDrum(kit drumKit, target, file string, format *beep.Format) {
	f, err := os.Open(file)
	if nil != err {
		log.Println("unable to open drum sample", file, err)
		return
	}
	defer f.Close()
	streamer, sampleFormat, err := wav.Decode(f)
	if nil != err {
		log.Println("unable to decode drum sample", file, err)
		return
	}
	defer streamer.Close()
	if format.SampleRate == 0 {
		*format = sampleFormat
	}
	buf := beep.NewBuffer(sampleFormat)
	buf.Append(streamer)
	kit[target] = buf
}

func run() error {
	logger, err := buildLogger()
	if nil != err {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if nil != err {
		return err
	}

	var songFile, chartFile string
	drumFiles := map[string]string{}
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".mp3":
			songFile = p
		case ".json":
			chartFile = p
		case ".wav":
			name := info.Name()
			drumFiles[name[:len(name)-len(".wav")]] = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if chartFile == "" {
		return errors.New("unable to find a chart .json in the given directory")
	}

	var psr parser.Parser = &parser.DefaultParser{}
	chart, err := psr.Parse(chartFile)
	if nil != err {
		return err
	}

	history, err := score.OpenHistory(*config.HistoryDB)
	if nil != err {
		return err
	}
	defer history.Close()

	columns, _, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		columns = 80
	}

	fmt.Printf("%v [%v]  %v notes  %v\n",
		chart.Title, chart.Difficulty, len(chart.Notes), chart.Duration.Round(time.Second))
	for i, result := range history.Load(chart) {
		fmt.Printf("%2v) %8v  %5.1f%%  x%v  (%v)\n", i+1,
			result.Stats.Score, 100*result.Stats.Accuracy, result.Stats.MaxCombo, result.Profile)
	}

	// Audio is feedback only; a missing song or kit never blocks play.
	format := beep.Format{}
	kit := drumKit{}
	for target, file := range drumFiles {
		loadDrum(kit, target, file, &format)
	}
	var song beep.StreamSeekCloser
	if songFile != "" {
		f, err := os.Open(songFile)
		if nil != err {
			return err
		}
		var songFormat beep.Format
		song, songFormat, err = mp3.Decode(f)
		if nil != err {
			return err
		}
		defer song.Close()
		if format.SampleRate == 0 {
			format = songFormat
		}
	}
	if format.SampleRate != 0 {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(framePeriod)); nil != err {
			return fmt.Errorf("unable to init speaker: %w", err)
		}
	}

	var recorder *replay.Writer
	if *config.Record != "" {
		f, err := os.Create(*config.Record)
		if nil != err {
			return fmt.Errorf("unable to create recording: %w", err)
		}
		defer f.Close()
		recorder = replay.NewWriter(f)
	}

	samples := make(chan gesture.Sample, 128)
	if *config.Replay != "" {
		recorded, err := readRecording(*config.Replay)
		if nil != err {
			return err
		}
		go func() {
			defer close(samples)
			for _, s := range recorded {
				samples <- s
			}
		}()
	} else if *config.Autoplay {
		close(samples)
	} else {
		go replay.Stream(os.Stdin, samples)
	}

	hook := telemetry.NewHook(logger, time.Second, 10)

	statsLine := func(stats game.Stats) string {
		line := fmt.Sprintf("  %8v  x%-3v  %5.1f%%  P:%v G:%v M:%v",
			stats.Score, stats.Combo, 100*stats.Accuracy, stats.Perfect, stats.Good, stats.Miss)
		if len(line) > columns {
			line = line[:columns]
		}
		return line
	}

	done := make(chan game.Stats, 1)
	callbacks := session.Callbacks{
		OnGesture: func(ev game.GestureEvent) {
			kit.play(ev.Target)
		},
		OnJudgement: func(j game.Judgement, stats game.Stats) {
			fmt.Printf("%8v %-7v %v\n", j.Error.Round(time.Millisecond), j.Kind, statsLine(stats))
		},
		OnStateChange: func(state game.State) {
			logger.Info("state", zap.Stringer("state", state))
		},
		OnFinished: func(stats game.Stats) {
			done <- stats
		},
	}

	sess, err := session.New(chart, cfg, callbacks, hook)
	if nil != err {
		return err
	}

	keyChannel, err := keyboard.GetKeys(16)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()

	time.Sleep(*config.Delay)
	if nil != song {
		speaker.Play(song)
	}

	start := time.Now()
	sess.Start(0)

	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	var buffered []gesture.Sample
	for {
		select {
		case stats := <-done:
			fmt.Printf("\n%v\n", statsLine(stats))
			result := score.Result{Profile: cfg.Profile.Name, Stats: stats, ReplayPath: *config.Record}
			if err := history.Save(chart, result); nil != err {
				log.Println("unable to save result:", err)
			}
			return nil

		case key := <-keyChannel:
			now := time.Since(start)
			switch {
			case key.Key == keyboard.KeyEsc:
				sess.Stop()
			case key.Rune == ' ' || key.Key == keyboard.KeySpace:
				if sess.State() == game.StatePaused {
					sess.Resume(now)
				} else {
					sess.Pause(now)
				}
			}

		case <-ticker.C:
			now := time.Since(start)
		drain:
			for {
				select {
				case s, ok := <-samples:
					if !ok {
						break drain
					}
					buffered = append(buffered, s)
				default:
					break drain
				}
			}
			kept := buffered[:0]
			for _, s := range buffered {
				if s.Time > now {
					kept = append(kept, s)
					continue
				}
				if nil != recorder {
					if err := recorder.Write(s); nil != err {
						log.Println("unable to record sample:", err)
						recorder = nil
					}
				}
				sess.HandleSample(s)
			}
			buffered = kept
			sess.Update(now)
		}
	}
}

func readRecording(file string) ([]gesture.Sample, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, fmt.Errorf("unable to open recording: %w", err)
	}
	defer f.Close()
	return replay.ReadAll(f)
}

func buildLogger() (*zap.Logger, error) {
	if *config.Verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
