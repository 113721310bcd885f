package mock

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestDetectFacesSingleCenteredFace(t *testing.T) {
	img := encodePNG(t, 640, 480)

	faces, err := New().DetectFaces(context.Background(), img)
	require.NoError(t, err)
	require.Len(t, faces, 1)

	face := faces[0]
	assert.Equal(t, 160.0, face.Box.X)
	assert.Equal(t, 120.0, face.Box.Y)
	assert.Equal(t, 320.0, face.Box.Width)
	assert.Equal(t, 240.0, face.Box.Height)
	require.NotNil(t, face.Landmarks)

	// Frontal geometry: eyes level, nose on the box midline.
	assert.Equal(t, face.Landmarks.LeftEye().Y, face.Landmarks.RightEye().Y)
	assert.Equal(t, face.Box.X+face.Box.Width/2, face.Landmarks.Nose().X)
}

func TestDetectFacesRejectsGarbage(t *testing.T) {
	_, err := New().DetectFaces(context.Background(), []byte("not an image"))
	require.Error(t, err)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrInvalidImage.Code, appErr.Code)
}

func TestExtractEmbeddingDeterministic(t *testing.T) {
	img := encodePNG(t, 64, 64)

	e1, err := New().ExtractEmbedding(context.Background(), img)
	require.NoError(t, err)
	e2, err := New().ExtractEmbedding(context.Background(), img)
	require.NoError(t, err)

	assert.Equal(t, e1, e2)
	assert.Len(t, e1, embeddingDimension)

	var norm float64
	for _, v := range e1 {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 0.0001)
}
