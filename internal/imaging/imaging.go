package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

// MaxFrameWidth bounds the working resolution. Frames wider than this are
// downscaled before analysis; webcams commonly deliver 640-1280px frames and
// the quality metrics gain nothing from more.
const MaxFrameWidth = 1280

// DecodedFrame is a luma frame plus the scale applied during decoding.
// Scale is new/original width, 1.0 when the frame was left untouched; face
// observations reported against the original image must be rescaled by it
// (see ScaleObservation) before they are compared with the frame.
type DecodedFrame struct {
	Frame *domain.Frame
	Scale float64
}

// Decode turns an encoded image into a luma frame stamped with capturedAt.
func Decode(data []byte, capturedAt time.Time) (*DecodedFrame, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("decode frame: %w", err))
	}

	scale := 1.0
	if img.Bounds().Dx() > MaxFrameWidth {
		scale = float64(MaxFrameWidth) / float64(img.Bounds().Dx())
		img = downscale(img, MaxFrameWidth)
	}

	return &DecodedFrame{
		Frame: FromImage(img, capturedAt),
		Scale: scale,
	}, nil
}

// FromImage converts a decoded image to a luma frame.
func FromImage(img image.Image, capturedAt time.Time) *domain.Frame {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// ITU-R BT.601 luma.
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			gray[y*width+x] = uint8(luma + 0.5)
		}
	}

	return &domain.Frame{
		Width:      width,
		Height:     height,
		Gray:       gray,
		CapturedAt: capturedAt,
	}
}

// ScaleObservation maps a face observation from original-image coordinates
// into the decoded frame's coordinate space.
func ScaleObservation(obs domain.FaceObservation, scale float64) domain.FaceObservation {
	if scale == 1.0 {
		return obs
	}

	obs.Box = domain.BoundingBox{
		X:      obs.Box.X * scale,
		Y:      obs.Box.Y * scale,
		Width:  obs.Box.Width * scale,
		Height: obs.Box.Height * scale,
	}

	if obs.Landmarks != nil {
		var lm domain.Landmarks
		for i, p := range obs.Landmarks {
			lm[i] = domain.Point{X: p.X * scale, Y: p.Y * scale}
		}
		obs.Landmarks = &lm
	}

	return obs
}

func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth := maxWidth
	newHeight := int(float64(height) * float64(maxWidth) / float64(width))

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
