package insight

import "errors"

var (
	ErrInsightUnavailable = errors.New("insightface service unavailable")
	ErrInvalidResponse    = errors.New("invalid response from insightface")
	ErrNoFaceInResponse   = errors.New("no face data in insightface response")
)
