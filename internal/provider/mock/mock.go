// Package mock provides a deterministic face analysis backend for tests and
// local development, no sidecar required.
package mock

import (
	"bytes"
	"context"
	"crypto/sha256"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

const embeddingDimension = 512

// Provider simulates a face analysis backend: every decodable image contains
// exactly one well-framed frontal face, and embeddings are a deterministic
// function of the image bytes so the same image always matches itself.
type Provider struct{}

// New creates a mock provider instance
func New() *Provider {
	return &Provider{}
}

// DetectFaces returns a single centered frontal face sized to the image.
func (p *Provider) DetectFaces(ctx context.Context, img []byte) ([]domain.FaceObservation, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	w := float64(cfg.Width)
	h := float64(cfg.Height)
	box := domain.BoundingBox{
		X:      w * 0.25,
		Y:      h * 0.25,
		Width:  w * 0.5,
		Height: h * 0.5,
	}

	// Plausible frontal landmark geometry inside the box.
	lm := domain.Landmarks{
		{X: box.X + box.Width*0.30, Y: box.Y + box.Height*0.35}, // left eye
		{X: box.X + box.Width*0.70, Y: box.Y + box.Height*0.35}, // right eye
		{X: box.X + box.Width*0.50, Y: box.Y + box.Height*0.58}, // nose
		{X: box.X + box.Width*0.35, Y: box.Y + box.Height*0.77}, // left mouth
		{X: box.X + box.Width*0.65, Y: box.Y + box.Height*0.77}, // right mouth
	}

	return []domain.FaceObservation{{
		Box:        box,
		Landmarks:  &lm,
		Confidence: 0.99,
	}}, nil
}

// ExtractEmbedding derives a unit embedding from the image hash.
func (p *Provider) ExtractEmbedding(ctx context.Context, img []byte) ([]float64, error) {
	if len(img) == 0 {
		return nil, domain.ErrInvalidImage
	}
	return generateEmbedding(img), nil
}

func generateEmbedding(img []byte) []float64 {
	hash := sha256.Sum256(img)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}
