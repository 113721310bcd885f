package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecode(t *testing.T) {
	capturedAt := time.Now().UTC()
	data := encodePNG(t, solidImage(320, 240, color.RGBA{R: 255, A: 255}))

	decoded, err := Decode(data, capturedAt)
	require.NoError(t, err)

	assert.Equal(t, 1.0, decoded.Scale)
	assert.Equal(t, 320, decoded.Frame.Width)
	assert.Equal(t, 240, decoded.Frame.Height)
	assert.Equal(t, capturedAt, decoded.Frame.CapturedAt)

	// BT.601: pure red is 0.299 * 255.
	assert.Equal(t, uint8(76), decoded.Frame.At(10, 10))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"), time.Now())
	require.Error(t, err)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrInvalidImage.Code, appErr.Code)
}

func TestDecodeDownscalesWideFrames(t *testing.T) {
	data := encodePNG(t, solidImage(2000, 1000, color.Gray{Y: 128}))

	decoded, err := Decode(data, time.Now())
	require.NoError(t, err)

	assert.Equal(t, MaxFrameWidth, decoded.Frame.Width)
	assert.Equal(t, 640, decoded.Frame.Height)
	assert.InDelta(t, 0.64, decoded.Scale, 1e-9)
}

func TestScaleObservation(t *testing.T) {
	obs := domain.FaceObservation{
		Box:       domain.BoundingBox{X: 100, Y: 200, Width: 400, Height: 400},
		Landmarks: &domain.Landmarks{{X: 150, Y: 250}},
	}

	scaled := ScaleObservation(obs, 0.5)
	assert.Equal(t, domain.BoundingBox{X: 50, Y: 100, Width: 200, Height: 200}, scaled.Box)
	assert.Equal(t, domain.Point{X: 75, Y: 125}, scaled.Landmarks[0])

	// Identity scale returns the observation untouched.
	same := ScaleObservation(obs, 1.0)
	assert.Equal(t, obs, same)
}
