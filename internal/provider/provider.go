// Package provider defines the pluggable face analysis backend: detection
// with landmarks and embedding extraction. The decision pipeline consumes
// this interface only, so the backend can be swapped without touching it.
package provider

import (
	"context"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// FaceProvider is the face analysis backend contract.
type FaceProvider interface {
	// DetectFaces detects faces in the encoded image and returns one
	// observation per face, in original-image pixel coordinates.
	DetectFaces(ctx context.Context, image []byte) ([]domain.FaceObservation, error)

	// ExtractEmbedding extracts the identity embedding for the dominant
	// face in the encoded image.
	ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error)
}
