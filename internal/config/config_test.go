package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

func validConfig() *Config {
	return &Config{
		Port:              3000,
		Environment:       "development",
		DatabaseURL:       "postgres://localhost:5432/attendance",
		ProviderType:      "mock",
		MinBlur:           100,
		MinBrightness:     60,
		MaxBrightness:     200,
		MinContrast:       30,
		MinFacePct:        0.15,
		MaxFacePct:        0.70,
		MaxCenterOffset:   0.20,
		FrontToleranceDeg: 20,
		TurnMinDeg:        20,
		TurnMaxDeg:        50,
		TiltMinDeg:        15,
		TiltMaxDeg:        40,
		RequiredPoses:     []string{"front", "left", "right", "up", "down"},
		HoldFrames:        1,
		CountdownTicks:    3,
		MatchThreshold:    0.30,
		MatchTopK:         5,
		AmbiguityEpsilon:  0.01,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/attendance")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "insight", cfg.ProviderType)
	assert.Equal(t, 100.0, cfg.MinBlur)
	assert.Equal(t, 0.30, cfg.MatchThreshold)
	assert.Equal(t, []domain.PoseTarget{
		domain.PoseFront, domain.PoseLeft, domain.PoseRight, domain.PoseUp, domain.PoseDown,
	}, cfg.PoseSequence())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/attendance")
	t.Setenv("REQUIRED_POSES", "front,left")
	t.Setenv("MATCH_THRESHOLD", "0.45")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []domain.PoseTarget{domain.PoseFront, domain.PoseLeft}, cfg.PoseSequence())
	assert.Equal(t, 0.45, cfg.MatchThreshold)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted brightness bounds", func(c *Config) { c.MinBrightness = 250 }},
		{"inverted face size bounds", func(c *Config) { c.MinFacePct = 0.80 }},
		{"face size above one", func(c *Config) { c.MaxFacePct = 1.5 }},
		{"negative blur floor", func(c *Config) { c.MinBlur = -1 }},
		{"zero center offset", func(c *Config) { c.MaxCenterOffset = 0 }},
		{"inverted turn band", func(c *Config) { c.TurnMinDeg = 60 }},
		{"inverted tilt band", func(c *Config) { c.TiltMinDeg = 45 }},
		{"zero front tolerance", func(c *Config) { c.FrontToleranceDeg = 0 }},
		{"zero hold frames", func(c *Config) { c.HoldFrames = 0 }},
		{"negative countdown", func(c *Config) { c.CountdownTicks = -1 }},
		{"threshold out of range", func(c *Config) { c.MatchThreshold = 1.5 }},
		{"zero top k", func(c *Config) { c.MatchTopK = 0 }},
		{"negative ambiguity epsilon", func(c *Config) { c.AmbiguityEpsilon = -0.01 }},
		{"empty pose list", func(c *Config) { c.RequiredPoses = nil }},
		{"unknown pose", func(c *Config) { c.RequiredPoses = []string{"front", "sideways"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
