package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/atrika/airdrum/internal/score"
	"github.com/atrika/airdrum/internal/session"
)

var (
	Directory   = kingpin.Arg("directory", "Song directory with chart json and audio").Required().ExistingDir()
	ProfileName = kingpin.Flag("profile", "Judgment profile, rhythm or freeplay").Default("freeplay").Short('p').String()
	Replay      = kingpin.Flag("replay", "Replay a recorded sample stream instead of reading stdin").Short('r').String()
	Record      = kingpin.Flag("record", "Record incoming samples to this file").String()
	Autoplay    = kingpin.Flag("autoplay", "Judge every note perfectly on time").Bool()
	HistoryDB   = kingpin.Flag("history", "Session history database").Default("./history.db").String()
	Delay       = kingpin.Flag("delay", "Start delay before playback").Default("1.5s").Short('d').Duration()
	File        = kingpin.Flag("config", "Optional engine override file (yaml)").Short('c').String()
	Verbose     = kingpin.Flag("verbose", "Enable debug telemetry").Short('v').Bool()
)

func Init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}

func setDefaults(v *viper.Viper, cfg session.Config) {
	v.SetDefault("lookahead", cfg.Lookahead)

	v.SetDefault("gesture.confidence_gate", cfg.Gesture.ConfidenceGate)
	v.SetDefault("gesture.position_smoothing", cfg.Gesture.PositionSmoothing)
	v.SetDefault("gesture.median_filter_size", cfg.Gesture.MedianFilterSize)
	v.SetDefault("gesture.max_sample_gap", cfg.Gesture.MaxSampleGap)
	v.SetDefault("gesture.velocity_threshold", cfg.Gesture.VelocityThreshold)
	v.SetDefault("gesture.displacement_threshold", cfg.Gesture.DisplacementThreshold)
	v.SetDefault("gesture.stroke_timeout", cfg.Gesture.StrokeTimeout)
	v.SetDefault("gesture.dead_time", cfg.Gesture.DeadTime)
	v.SetDefault("gesture.dual_hit_window", cfg.Gesture.DualHitWindow)

	v.SetDefault("profile.perfect_window", cfg.Profile.PerfectWindow)
	v.SetDefault("profile.good_window", cfg.Profile.GoodWindow)
	v.SetDefault("profile.miss_window", cfg.Profile.MissWindow)
	v.SetDefault("profile.perfect_value", cfg.Profile.PerfectValue)
	v.SetDefault("profile.good_value", cfg.Profile.GoodValue)
	v.SetDefault("profile.count_unmatched_as_miss", cfg.Profile.CountUnmatchedAsMiss)
}

// Load assembles the engine configuration: the named profile supplies the
// constants, an optional yaml file and AIRDRUM_* environment variables
// override individual values.
func Load() (session.Config, error) {
	cfg := session.DefaultConfig()

	profile, err := score.ProfileByName(*ProfileName)
	if nil != err {
		return cfg, err
	}
	cfg.Profile = profile
	cfg.Autoplay = *Autoplay

	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix("AIRDRUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *File != "" {
		v.SetConfigFile(*File)
		if err := v.ReadInConfig(); nil != err {
			return cfg, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg.Lookahead = v.GetDuration("lookahead")

	cfg.Gesture.ConfidenceGate = v.GetFloat64("gesture.confidence_gate")
	cfg.Gesture.PositionSmoothing = v.GetFloat64("gesture.position_smoothing")
	cfg.Gesture.MedianFilterSize = v.GetInt("gesture.median_filter_size")
	cfg.Gesture.MaxSampleGap = v.GetDuration("gesture.max_sample_gap")
	cfg.Gesture.VelocityThreshold = v.GetFloat64("gesture.velocity_threshold")
	cfg.Gesture.DisplacementThreshold = v.GetFloat64("gesture.displacement_threshold")
	cfg.Gesture.StrokeTimeout = v.GetDuration("gesture.stroke_timeout")
	cfg.Gesture.DeadTime = v.GetDuration("gesture.dead_time")
	cfg.Gesture.DualHitWindow = v.GetDuration("gesture.dual_hit_window")

	cfg.Profile.PerfectWindow = v.GetDuration("profile.perfect_window")
	cfg.Profile.GoodWindow = v.GetDuration("profile.good_window")
	cfg.Profile.MissWindow = v.GetDuration("profile.miss_window")
	cfg.Profile.PerfectValue = v.GetInt64("profile.perfect_value")
	cfg.Profile.GoodValue = v.GetInt64("profile.good_value")
	cfg.Profile.CountUnmatchedAsMiss = v.GetBool("profile.count_unmatched_as_miss")

	if cfg.Gesture.MedianFilterSize < 1 {
		return cfg, fmt.Errorf("median filter size must be at least 1, got %v", cfg.Gesture.MedianFilterSize)
	}
	if cfg.Profile.PerfectWindow > cfg.Profile.GoodWindow || cfg.Profile.GoodWindow > cfg.Profile.MissWindow {
		return cfg, fmt.Errorf("timing windows must nest: perfect <= good <= miss")
	}

	return cfg, nil
}
