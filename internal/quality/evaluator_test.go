package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

func defaultThresholds() Thresholds {
	return Thresholds{
		MinBlur:         100,
		MinBrightness:   60,
		MaxBrightness:   200,
		MinContrast:     30,
		MinFacePct:      0.15,
		MaxFacePct:      0.70,
		MaxCenterOffset: 0.20,
	}
}

// makeFrame builds a synthetic luma frame from a per-pixel function.
func makeFrame(w, h int, at func(x, y int) uint8) *domain.Frame {
	gray := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray[y*w+x] = at(x, y)
		}
	}
	return &domain.Frame{Width: w, Height: h, Gray: gray}
}

// checkerboard has extreme local contrast: huge Laplacian variance, mean
// near 127.5, stddev near 127.5.
func checkerboard(w, h int) *domain.Frame {
	return makeFrame(w, h, func(x, y int) uint8 {
		if (x+y)%2 == 0 {
			return 0
		}
		return 255
	})
}

func centeredFace(w, h int) domain.FaceObservation {
	bw := float64(w) * 0.4
	bh := float64(h) * 0.4
	return domain.FaceObservation{
		Box: domain.BoundingBox{
			X:      (float64(w) - bw) / 2,
			Y:      (float64(h) - bh) / 2,
			Width:  bw,
			Height: bh,
		},
		Landmarks:  &domain.Landmarks{},
		Confidence: 0.99,
	}
}

func TestEvaluateNoFace(t *testing.T) {
	e := NewEvaluator(defaultThresholds())

	v := e.Evaluate(checkerboard(100, 100), nil)

	assert.False(t, v.Pass)
	require.Len(t, v.Checks, 1)
	assert.Equal(t, domain.CheckFaceCount, v.Checks[0].Name)

	reason, structural := v.Structural()
	assert.True(t, structural)
	assert.Equal(t, domain.ReasonNoFace, reason)
}

func TestEvaluateMultipleFaces(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	faces := []domain.FaceObservation{centeredFace(100, 100), centeredFace(100, 100)}

	v := e.Evaluate(checkerboard(100, 100), faces)

	assert.False(t, v.Pass)
	reason, structural := v.Structural()
	assert.True(t, structural)
	assert.Equal(t, domain.ReasonMultipleFaces, reason)
}

func TestEvaluatePassingFrame(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	frame := checkerboard(100, 100)

	v := e.Evaluate(frame, []domain.FaceObservation{centeredFace(100, 100)})

	assert.True(t, v.Pass)
	assert.Len(t, v.Checks, 7)
	assert.Equal(t, 100.0, v.Score)
	assert.Empty(t, v.FailureMessages())
}

// A horizontal ramp is perfectly exposed but has zero second derivative:
// brightness and contrast pass while blur fails. The verdict must still
// carry every check, not stop at the first failure.
func TestEvaluateBlurryButWellExposed(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	w, h := 100, 100
	frame := makeFrame(w, h, func(x, y int) uint8 {
		return uint8(x * 255 / (w - 1))
	})

	v := e.Evaluate(frame, []domain.FaceObservation{centeredFace(w, h)})

	assert.False(t, v.Pass)
	assert.Len(t, v.Checks, 7)

	blur, ok := v.Check(domain.CheckBlur)
	require.True(t, ok)
	assert.False(t, blur.Pass)
	assert.Equal(t, "BLURRY - hold still", blur.Message)

	brightness, ok := v.Check(domain.CheckBrightness)
	require.True(t, ok)
	assert.True(t, brightness.Pass)

	contrast, ok := v.Check(domain.CheckContrast)
	require.True(t, ok)
	assert.True(t, contrast.Pass)
}

func TestEvaluateDarkFrame(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	frame := makeFrame(100, 100, func(x, y int) uint8 { return 20 })

	v := e.Evaluate(frame, []domain.FaceObservation{centeredFace(100, 100)})

	assert.False(t, v.Pass)
	brightness, ok := v.Check(domain.CheckBrightness)
	require.True(t, ok)
	assert.False(t, brightness.Pass)
	assert.Equal(t, "TOO DARK - add light", brightness.Message)
}

func TestEvaluateBrightFrame(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	frame := makeFrame(100, 100, func(x, y int) uint8 { return 230 })

	v := e.Evaluate(frame, []domain.FaceObservation{centeredFace(100, 100)})

	brightness, ok := v.Check(domain.CheckBrightness)
	require.True(t, ok)
	assert.False(t, brightness.Pass)
	assert.Equal(t, "TOO BRIGHT - reduce light", brightness.Message)
}

func TestEvaluateFaceTooSmall(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	face := domain.FaceObservation{
		Box:       domain.BoundingBox{X: 45, Y: 45, Width: 10, Height: 10},
		Landmarks: &domain.Landmarks{},
	}

	v := e.Evaluate(checkerboard(100, 100), []domain.FaceObservation{face})

	size, ok := v.Check(domain.CheckFaceSize)
	require.True(t, ok)
	assert.False(t, size.Pass)
	assert.Equal(t, "Come CLOSER", size.Message)
}

func TestEvaluateFaceTooLarge(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	face := domain.FaceObservation{
		Box:       domain.BoundingBox{X: 5, Y: 5, Width: 90, Height: 90},
		Landmarks: &domain.Landmarks{},
	}

	v := e.Evaluate(checkerboard(100, 100), []domain.FaceObservation{face})

	size, ok := v.Check(domain.CheckFaceSize)
	require.True(t, ok)
	assert.False(t, size.Pass)
	assert.Equal(t, "Move BACK", size.Message)
}

func TestEvaluateOffCenterFace(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	face := domain.FaceObservation{
		Box:       domain.BoundingBox{X: 0, Y: 0, Width: 40, Height: 40},
		Landmarks: &domain.Landmarks{},
	}

	v := e.Evaluate(checkerboard(100, 100), []domain.FaceObservation{face})

	centering, ok := v.Check(domain.CheckCentering)
	require.True(t, ok)
	assert.False(t, centering.Pass)
	assert.Equal(t, "CENTER your face", centering.Message)
}

func TestEvaluateMissingLandmarks(t *testing.T) {
	e := NewEvaluator(defaultThresholds())
	face := centeredFace(100, 100)
	face.Landmarks = nil

	v := e.Evaluate(checkerboard(100, 100), []domain.FaceObservation{face})

	assert.False(t, v.Pass)
	lm, ok := v.Check(domain.CheckLandmarks)
	require.True(t, ok)
	assert.False(t, lm.Pass)
	assert.Equal(t, "Face features not visible", lm.Message)
}

func TestLaplacianVariance(t *testing.T) {
	flat := makeFrame(50, 50, func(x, y int) uint8 { return 128 })
	assert.Zero(t, LaplacianVariance(flat))

	sharp := checkerboard(50, 50)
	assert.Greater(t, LaplacianVariance(sharp), 100.0)

	tiny := makeFrame(2, 2, func(x, y int) uint8 { return 128 })
	assert.Zero(t, LaplacianVariance(tiny))
}
