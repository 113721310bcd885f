// Package quality scores a single frame against objective image-quality
// criteria: sharpness, exposure, contrast, face geometry and single-face
// presence. The thresholds are calibrated so darker-skin faces in ordinary
// indoor lighting are not systematically rejected.
package quality

import (
	"math"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// Thresholds are the quality gate bounds. See config for defaults and the
// startup validation that keeps them sane.
type Thresholds struct {
	MinBlur         float64 // minimum Laplacian variance, higher = sharper
	MinBrightness   float64 // minimum mean luma
	MaxBrightness   float64 // maximum mean luma
	MinContrast     float64 // minimum luma standard deviation
	MinFacePct      float64 // minimum face area / frame area
	MaxFacePct      float64 // maximum face area / frame area
	MaxCenterOffset float64 // maximum normalized face-center offset
}

// Evaluator runs the quality checks. It is stateless; Evaluate is a pure
// function of its inputs.
type Evaluator struct {
	t Thresholds
}

func NewEvaluator(t Thresholds) *Evaluator {
	return &Evaluator{t: t}
}

// Evaluate scores a frame given the faces the provider observed in it.
//
// Exactly one face is a structural precondition: zero or multiple faces is a
// terminal verdict with a distinct reason code and no further checks, since
// blur/brightness/contrast over an undefined face region would be meaningless.
// Once a single face is established every check runs even after one fails, so
// the verdict always carries the complete diagnostic set.
func (e *Evaluator) Evaluate(frame *domain.Frame, faces []domain.FaceObservation) domain.QualityVerdict {
	if len(faces) != 1 {
		reason := domain.ReasonNoFace
		if len(faces) > 1 {
			reason = domain.ReasonMultipleFaces
		}
		return domain.QualityVerdict{
			Pass: false,
			Checks: []domain.QualityCheck{{
				Name:    domain.CheckFaceCount,
				Pass:    false,
				Value:   float64(len(faces)),
				Message: reason,
			}},
		}
	}

	face := faces[0]
	checks := []domain.QualityCheck{
		{Name: domain.CheckFaceCount, Pass: true, Value: 1},
		e.checkBlur(frame),
		e.checkBrightness(frame),
		e.checkContrast(frame),
		e.checkFaceSize(frame, face.Box),
		e.checkCentering(frame, face.Box),
		e.checkLandmarks(face),
	}

	pass := true
	passed := 0
	for _, c := range checks {
		if c.Pass {
			passed++
		} else {
			pass = false
		}
	}

	return domain.QualityVerdict{
		Pass:   pass,
		Checks: checks,
		Score:  float64(passed) / float64(len(checks)) * 100,
	}
}

// checkBlur measures sharpness as the variance of the 4-neighbor Laplacian
// over the frame interior. Motion and defocus blur flatten the response.
func (e *Evaluator) checkBlur(frame *domain.Frame) domain.QualityCheck {
	score := LaplacianVariance(frame)
	c := domain.QualityCheck{
		Name:  domain.CheckBlur,
		Pass:  score >= e.t.MinBlur,
		Value: score,
	}
	if !c.Pass {
		c.Message = "BLURRY - hold still"
	}
	return c
}

func (e *Evaluator) checkBrightness(frame *domain.Frame) domain.QualityCheck {
	mean, _ := lumaStats(frame)
	c := domain.QualityCheck{
		Name:  domain.CheckBrightness,
		Pass:  mean >= e.t.MinBrightness && mean <= e.t.MaxBrightness,
		Value: mean,
	}
	if !c.Pass {
		if mean < e.t.MinBrightness {
			c.Message = "TOO DARK - add light"
		} else {
			c.Message = "TOO BRIGHT - reduce light"
		}
	}
	return c
}

func (e *Evaluator) checkContrast(frame *domain.Frame) domain.QualityCheck {
	_, stddev := lumaStats(frame)
	c := domain.QualityCheck{
		Name:  domain.CheckContrast,
		Pass:  stddev >= e.t.MinContrast,
		Value: stddev,
	}
	if !c.Pass {
		c.Message = "LOW CONTRAST - adjust lighting"
	}
	return c
}

func (e *Evaluator) checkFaceSize(frame *domain.Frame, box domain.BoundingBox) domain.QualityCheck {
	frameArea := float64(frame.Width * frame.Height)
	ratio := box.Width * box.Height / frameArea
	c := domain.QualityCheck{
		Name:  domain.CheckFaceSize,
		Pass:  ratio >= e.t.MinFacePct && ratio <= e.t.MaxFacePct,
		Value: ratio,
	}
	if !c.Pass {
		if ratio < e.t.MinFacePct {
			c.Message = "Come CLOSER"
		} else {
			c.Message = "Move BACK"
		}
	}
	return c
}

// checkCentering measures the face-center offset from the frame center as a
// fraction of the frame dimensions, taking the worse of the two axes.
func (e *Evaluator) checkCentering(frame *domain.Frame, box domain.BoundingBox) domain.QualityCheck {
	faceCX := box.X + box.Width/2
	faceCY := box.Y + box.Height/2

	offsetX := math.Abs(faceCX-float64(frame.Width)/2) / float64(frame.Width)
	offsetY := math.Abs(faceCY-float64(frame.Height)/2) / float64(frame.Height)
	offset := math.Max(offsetX, offsetY)

	c := domain.QualityCheck{
		Name:  domain.CheckCentering,
		Pass:  offset <= e.t.MaxCenterOffset,
		Value: offset,
	}
	if !c.Pass {
		c.Message = "CENTER your face"
	}
	return c
}

// checkLandmarks verifies the key facial features were resolved, a cheap
// proxy for occlusion.
func (e *Evaluator) checkLandmarks(face domain.FaceObservation) domain.QualityCheck {
	c := domain.QualityCheck{
		Name: domain.CheckLandmarks,
		Pass: face.Landmarks != nil,
	}
	if c.Pass {
		c.Value = 5
	} else {
		c.Message = "Face features not visible"
	}
	return c
}

// LaplacianVariance returns the variance of the discrete Laplacian
// (kernel 0 1 0 / 1 -4 1 / 0 1 0) over the frame interior.
func LaplacianVariance(frame *domain.Frame) float64 {
	w, h := frame.Width, frame.Height
	if w < 3 || h < 3 {
		return 0
	}

	n := (w - 2) * (h - 2)
	responses := make([]float64, 0, n)
	var sum float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := float64(frame.At(x, y-1)) +
				float64(frame.At(x-1, y)) +
				float64(frame.At(x+1, y)) +
				float64(frame.At(x, y+1)) -
				4*float64(frame.At(x, y))
			responses = append(responses, v)
			sum += v
		}
	}

	mean := sum / float64(n)
	var variance float64
	for _, v := range responses {
		d := v - mean
		variance += d * d
	}
	return variance / float64(n)
}

func lumaStats(frame *domain.Frame) (mean, stddev float64) {
	n := float64(len(frame.Gray))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range frame.Gray {
		sum += float64(v)
	}
	mean = sum / n

	var variance float64
	for _, v := range frame.Gray {
		d := float64(v) - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / n)
}
