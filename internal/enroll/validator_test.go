package enroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abduldattijo/biometricattendance/internal/domain"
	"github.com/abduldattijo/biometricattendance/internal/pose"
	"github.com/abduldattijo/biometricattendance/internal/quality"
)

func newValidator() *Validator {
	return NewValidator(
		quality.NewEvaluator(quality.Thresholds{
			MinBlur:         100,
			MinBrightness:   60,
			MaxBrightness:   200,
			MinContrast:     30,
			MinFacePct:      0.15,
			MaxFacePct:      0.70,
			MaxCenterOffset: 0.20,
		}),
		pose.NewEstimator(pose.BuildBands(pose.DefaultBandConfig())),
	)
}

// sharpFrame is a checkerboard: passes every frame-level quality gate.
func sharpFrame(w, h int) *domain.Frame {
	gray := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 1 {
				gray[y*w+x] = 255
			}
		}
	}
	return &domain.Frame{Width: w, Height: h, Gray: gray}
}

// flatFrame is uniform mid-gray: well exposed but fails blur and contrast.
func flatFrame(w, h int) *domain.Frame {
	gray := make([]uint8, w*h)
	for i := range gray {
		gray[i] = 128
	}
	return &domain.Frame{Width: w, Height: h, Gray: gray}
}

// frontalObservation is a centered face with neutral-geometry landmarks.
func frontalObservation() domain.FaceObservation {
	return domain.FaceObservation{
		Box: domain.BoundingBox{X: 80, Y: 40, Width: 160, Height: 160},
		Landmarks: &domain.Landmarks{
			{X: 120, Y: 100},
			{X: 200, Y: 100},
			{X: 160, Y: 144},
			{X: 130, Y: 180},
			{X: 190, Y: 180},
		},
		Confidence: 0.99,
	}
}

func TestValidateReady(t *testing.T) {
	v := newValidator()

	fv := v.Validate(sharpFrame(320, 240), []domain.FaceObservation{frontalObservation()}, domain.PoseFront)

	assert.True(t, fv.ReadyToCapture)
	assert.True(t, fv.Quality.Pass)
	assert.True(t, fv.Pose.Pass)
	require.NotEmpty(t, fv.Feedback)
	assert.Equal(t, "Look straight at the camera", fv.Feedback[0])
	assert.Equal(t, feedbackReady, fv.Feedback[len(fv.Feedback)-1])
}

func TestValidateNoFace(t *testing.T) {
	v := newValidator()

	fv := v.Validate(sharpFrame(320, 240), nil, domain.PoseFront)

	assert.False(t, fv.ReadyToCapture)
	assert.Equal(t, []string{"Look straight at the camera", feedbackNoFace}, fv.Feedback)
}

func TestValidateMultipleFaces(t *testing.T) {
	v := newValidator()
	faces := []domain.FaceObservation{frontalObservation(), frontalObservation()}

	fv := v.Validate(sharpFrame(320, 240), faces, domain.PoseLeft)

	assert.False(t, fv.ReadyToCapture)
	assert.Equal(t, []string{"Turn your head to the LEFT", feedbackMultipleFaces}, fv.Feedback)
}

// Every failing quality line is surfaced at once, after the instruction.
func TestValidateReportsAllQualityFailures(t *testing.T) {
	v := newValidator()

	fv := v.Validate(flatFrame(320, 240), []domain.FaceObservation{frontalObservation()}, domain.PoseFront)

	assert.False(t, fv.ReadyToCapture)
	assert.False(t, fv.Quality.Pass)
	assert.True(t, fv.Pose.Pass)
	assert.Equal(t, []string{
		"Look straight at the camera",
		"BLURRY - hold still",
		"LOW CONTRAST - adjust lighting",
	}, fv.Feedback)
}

// Quality passes but the head is frontal when a left turn is wanted: the
// feedback carries exactly one directional hint.
func TestValidatePoseHint(t *testing.T) {
	v := newValidator()

	fv := v.Validate(sharpFrame(320, 240), []domain.FaceObservation{frontalObservation()}, domain.PoseLeft)

	assert.False(t, fv.ReadyToCapture)
	assert.True(t, fv.Quality.Pass)
	assert.False(t, fv.Pose.Pass)
	assert.Equal(t, []string{
		"Turn your head to the LEFT",
		"Turn your head more to the LEFT",
	}, fv.Feedback)
}

// Validation holds no state between frames: the same frame, faces and target
// always produce the identical verdict, feedback included.
func TestValidateIsDeterministic(t *testing.T) {
	v := newValidator()
	frame := sharpFrame(320, 240)
	faces := []domain.FaceObservation{frontalObservation()}

	for _, target := range []domain.PoseTarget{domain.PoseFront, domain.PoseLeft} {
		first := v.Validate(frame, faces, target)
		second := v.Validate(frame, faces, target)
		assert.Equal(t, first, second)
	}
}

// Missing landmarks fail both quality and pose, but the pose side has no
// direction to give: only the landmark quality line appears.
func TestValidateUnresolvableLandmarks(t *testing.T) {
	v := newValidator()
	face := frontalObservation()
	face.Landmarks = nil

	fv := v.Validate(sharpFrame(320, 240), []domain.FaceObservation{face}, domain.PoseFront)

	assert.False(t, fv.ReadyToCapture)
	assert.Equal(t, domain.CorrectionNone, fv.Pose.Correction)
	assert.Equal(t, []string{
		"Look straight at the camera",
		"Face features not visible",
	}, fv.Feedback)
}
