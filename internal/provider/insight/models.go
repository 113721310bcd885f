package insight

// DetectRequest for POST /detect
type DetectRequest struct {
	Img string `json:"img"` // base64 encoded image
}

// DetectResponse from POST /detect
type DetectResponse struct {
	Faces []DetectedFace `json:"faces"`
}

// DetectedFace mirrors the analysis service's per-face output: bounding box
// as [x1, y1, x2, y2], five keypoints as [x, y] pairs in the order left eye,
// right eye, nose, left mouth corner, right mouth corner, and the detector
// confidence score.
type DetectedFace struct {
	BBox     [4]float64   `json:"bbox"`
	KPS      [][2]float64 `json:"kps"`
	DetScore float64      `json:"det_score"`
}

// EmbedRequest for POST /embed
type EmbedRequest struct {
	Img string `json:"img"`
}

// EmbedResponse from POST /embed
type EmbedResponse struct {
	Faces []EmbeddedFace `json:"faces"`
}

// EmbeddedFace carries the L2-normalized identity embedding for one face.
type EmbeddedFace struct {
	BBox      [4]float64 `json:"bbox"`
	DetScore  float64    `json:"det_score"`
	Embedding []float64  `json:"embedding"`
}
