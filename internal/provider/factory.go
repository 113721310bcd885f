package provider

import (
	"fmt"
	"time"

	"github.com/abduldattijo/biometricattendance/internal/provider/insight"
	"github.com/abduldattijo/biometricattendance/internal/provider/mock"
)

// Type identifies a supported face analysis backend.
type Type string

const (
	// TypeInsight is the InsightFace HTTP sidecar (production).
	TypeInsight Type = "insight"
	// TypeMock is the deterministic in-process backend (dev/test).
	TypeMock Type = "mock"
)

// Options configure backend construction.
type Options struct {
	InsightURL string
	Timeout    time.Duration
}

// New creates a FaceProvider for the named backend type.
func New(t Type, opts Options) (FaceProvider, error) {
	switch t {
	case TypeInsight, "":
		cfg := insight.DefaultConfig()
		if opts.InsightURL != "" {
			cfg.BaseURL = opts.InsightURL
		}
		if opts.Timeout > 0 {
			cfg.Timeout = opts.Timeout
		}
		return insight.NewProvider(cfg), nil

	case TypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)", t, TypeInsight, TypeMock)
	}
}
