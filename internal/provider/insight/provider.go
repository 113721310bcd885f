package insight

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// landmarkCount is the fixed keypoint count the detector reports per face.
const landmarkCount = 5

// Provider implements the face analysis backend against the InsightFace
// sidecar.
type Provider struct {
	client *Client
}

// NewProvider creates a new InsightFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// DetectFaces detects faces with landmarks in the image
func (p *Provider) DetectFaces(ctx context.Context, image []byte) ([]domain.FaceObservation, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Detect(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	faces := make([]domain.FaceObservation, 0, len(resp.Faces))
	for _, f := range resp.Faces {
		obs := domain.FaceObservation{
			Box: domain.BoundingBox{
				X:      f.BBox[0],
				Y:      f.BBox[1],
				Width:  f.BBox[2] - f.BBox[0],
				Height: f.BBox[3] - f.BBox[1],
			},
			Confidence: f.DetScore,
		}
		if len(f.KPS) == landmarkCount {
			var lm domain.Landmarks
			for i, kp := range f.KPS {
				lm[i] = domain.Point{X: kp[0], Y: kp[1]}
			}
			obs.Landmarks = &lm
		}
		faces = append(faces, obs)
	}

	return faces, nil
}

// ExtractEmbedding extracts the identity embedding of the highest-scoring
// face in the image.
func (p *Provider) ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Embed(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("extract embedding: %w", err)
	}

	if len(resp.Faces) == 0 {
		return nil, ErrNoFaceInResponse
	}

	best := resp.Faces[0]
	for _, f := range resp.Faces[1:] {
		if f.DetScore > best.DetScore {
			best = f
		}
	}

	return best.Embedding, nil
}
