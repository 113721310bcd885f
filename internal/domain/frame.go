package domain

import (
	"time"
)

// Frame is a decoded camera frame reduced to 8-bit luma. It is immutable once
// built and owned by whichever component is currently processing it.
type Frame struct {
	Width      int
	Height     int
	Gray       []uint8 // row-major, Width*Height luma values
	CapturedAt time.Time
}

// At returns the luma value at (x, y). Callers must stay in bounds.
func (f *Frame) At(x, y int) uint8 {
	return f.Gray[y*f.Width+x]
}

// Point is a 2D image coordinate in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is the face area in the frame.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Landmarks are the five facial keypoints in InsightFace order:
// left eye, right eye, nose tip, left mouth corner, right mouth corner.
type Landmarks [5]Point

func (l Landmarks) LeftEye() Point    { return l[0] }
func (l Landmarks) RightEye() Point   { return l[1] }
func (l Landmarks) Nose() Point       { return l[2] }
func (l Landmarks) LeftMouth() Point  { return l[3] }
func (l Landmarks) RightMouth() Point { return l[4] }

// FaceObservation is one detected face as reported by the face provider.
type FaceObservation struct {
	Box        BoundingBox `json:"box"`
	Landmarks  *Landmarks  `json:"landmarks,omitempty"`
	Confidence float64     `json:"confidence"`
}
