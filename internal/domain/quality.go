package domain

// Quality check names, in report order.
const (
	CheckFaceCount  = "face_count"
	CheckBlur       = "blur"
	CheckBrightness = "brightness"
	CheckContrast   = "contrast"
	CheckFaceSize   = "face_size"
	CheckCentering  = "centering"
	CheckLandmarks  = "landmarks"
)

// Structural reason codes for the face-count precondition.
const (
	ReasonNoFace        = "no_face"
	ReasonMultipleFaces = "multiple_faces"
)

// QualityCheck is the outcome of a single quality criterion.
type QualityCheck struct {
	Name    string  `json:"name"`
	Pass    bool    `json:"pass"`
	Value   float64 `json:"value"`
	Message string  `json:"message,omitempty"`
}

// QualityVerdict reports every quality check run against a frame.
// Pass is the conjunction of the individual check passes.
type QualityVerdict struct {
	Pass   bool           `json:"pass"`
	Checks []QualityCheck `json:"checks"`
	// Score is the share of passed checks, 0-100.
	Score float64 `json:"score"`
}

// Check returns the named check, if present.
func (v QualityVerdict) Check(name string) (QualityCheck, bool) {
	for _, c := range v.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return QualityCheck{}, false
}

// Structural reports whether the verdict is a face-count precondition failure
// and, if so, its reason code.
func (v QualityVerdict) Structural() (string, bool) {
	c, ok := v.Check(CheckFaceCount)
	if !ok || c.Pass {
		return "", false
	}
	return c.Message, true
}

// FailureMessages returns the messages of all failing checks, in check order.
func (v QualityVerdict) FailureMessages() []string {
	var msgs []string
	for _, c := range v.Checks {
		if !c.Pass && c.Message != "" {
			msgs = append(msgs, c.Message)
		}
	}
	return msgs
}
