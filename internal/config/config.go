package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Face provider
	ProviderType string `envconfig:"PROVIDER_TYPE" default:"insight"`
	InsightURL   string `envconfig:"INSIGHT_URL" default:"http://localhost:5100"`

	// Image quality thresholds. Brightness and contrast bounds are widened
	// toward darker-skin exposure so valid dark-skin faces are not
	// systematically rejected.
	MinBlur         float64 `envconfig:"MIN_BLUR" default:"100"`
	MinBrightness   float64 `envconfig:"MIN_BRIGHTNESS" default:"60"`
	MaxBrightness   float64 `envconfig:"MAX_BRIGHTNESS" default:"200"`
	MinContrast     float64 `envconfig:"MIN_CONTRAST" default:"30"`
	MinFacePct      float64 `envconfig:"MIN_FACE_PCT" default:"0.15"`
	MaxFacePct      float64 `envconfig:"MAX_FACE_PCT" default:"0.70"`
	MaxCenterOffset float64 `envconfig:"MAX_CENTER_OFFSET" default:"0.20"`

	// Head pose tolerance bands, degrees.
	FrontToleranceDeg float64 `envconfig:"POSE_FRONT_TOLERANCE_DEG" default:"20"`
	TurnMinDeg        float64 `envconfig:"POSE_TURN_MIN_DEG" default:"20"`
	TurnMaxDeg        float64 `envconfig:"POSE_TURN_MAX_DEG" default:"50"`
	TiltMinDeg        float64 `envconfig:"POSE_TILT_MIN_DEG" default:"15"`
	TiltMaxDeg        float64 `envconfig:"POSE_TILT_MAX_DEG" default:"40"`

	// Guided capture
	RequiredPoses  []string `envconfig:"REQUIRED_POSES" default:"front,left,right,up,down"`
	HoldFrames     int      `envconfig:"HOLD_FRAMES" default:"1"`
	CountdownTicks int      `envconfig:"COUNTDOWN_TICKS" default:"3"`

	// Recognition. The 0.30 default is deliberately lower than typical to
	// reduce false rejection across diverse skin tones and lighting.
	MatchThreshold   float64 `envconfig:"MATCH_THRESHOLD" default:"0.30"`
	MatchTopK        int     `envconfig:"MATCH_TOP_K" default:"5"`
	AmbiguityEpsilon float64 `envconfig:"AMBIGUITY_EPSILON" default:"0.01"`

	// Attendance
	DuplicateWindow time.Duration `envconfig:"DUPLICATE_WINDOW" default:"1h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects inverted or out-of-range thresholds. Configuration errors
// are fatal at startup, never recoverable at request time.
func (c *Config) Validate() error {
	if c.MinBrightness >= c.MaxBrightness {
		return fmt.Errorf("config: MIN_BRIGHTNESS (%v) must be below MAX_BRIGHTNESS (%v)", c.MinBrightness, c.MaxBrightness)
	}
	if c.MinFacePct <= 0 || c.MaxFacePct > 1 || c.MinFacePct >= c.MaxFacePct {
		return fmt.Errorf("config: face size bounds [%v, %v] must satisfy 0 < min < max <= 1", c.MinFacePct, c.MaxFacePct)
	}
	if c.MinBlur < 0 || c.MinContrast < 0 {
		return fmt.Errorf("config: MIN_BLUR and MIN_CONTRAST must be non-negative")
	}
	if c.MaxCenterOffset <= 0 || c.MaxCenterOffset > 1 {
		return fmt.Errorf("config: MAX_CENTER_OFFSET (%v) must be in (0, 1]", c.MaxCenterOffset)
	}
	if c.TurnMinDeg >= c.TurnMaxDeg {
		return fmt.Errorf("config: POSE_TURN_MIN_DEG (%v) must be below POSE_TURN_MAX_DEG (%v)", c.TurnMinDeg, c.TurnMaxDeg)
	}
	if c.TiltMinDeg >= c.TiltMaxDeg {
		return fmt.Errorf("config: POSE_TILT_MIN_DEG (%v) must be below POSE_TILT_MAX_DEG (%v)", c.TiltMinDeg, c.TiltMaxDeg)
	}
	if c.FrontToleranceDeg <= 0 {
		return fmt.Errorf("config: POSE_FRONT_TOLERANCE_DEG must be positive")
	}
	if c.HoldFrames < 1 {
		return fmt.Errorf("config: HOLD_FRAMES must be at least 1")
	}
	if c.CountdownTicks < 0 {
		return fmt.Errorf("config: COUNTDOWN_TICKS must be non-negative")
	}
	if c.MatchThreshold < -1 || c.MatchThreshold > 1 {
		return fmt.Errorf("config: MATCH_THRESHOLD (%v) must be within [-1, 1]", c.MatchThreshold)
	}
	if c.MatchTopK < 1 {
		return fmt.Errorf("config: MATCH_TOP_K must be at least 1")
	}
	if c.AmbiguityEpsilon < 0 {
		return fmt.Errorf("config: AMBIGUITY_EPSILON must be non-negative")
	}
	if len(c.RequiredPoses) == 0 {
		return fmt.Errorf("config: REQUIRED_POSES must not be empty")
	}
	for _, p := range c.PoseSequence() {
		if !domain.ValidPoseTarget(p) {
			return fmt.Errorf("config: unknown pose %q in REQUIRED_POSES", p)
		}
	}
	return nil
}

// PoseSequence returns the required poses as typed targets, in order.
func (c *Config) PoseSequence() []domain.PoseTarget {
	poses := make([]domain.PoseTarget, len(c.RequiredPoses))
	for i, p := range c.RequiredPoses {
		poses[i] = domain.PoseTarget(p)
	}
	return poses
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
