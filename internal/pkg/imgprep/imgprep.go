// Package imgprep shrinks scan photos to the upload target. The client runs
// the same algorithm before submission; the server applies it again as a
// guard when an oversized payload slips through.
package imgprep

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// TargetBytes is the best-effort size ceiling for an encoded scan image.
	TargetBytes = 100 * 1024

	MaxDimension = 1024

	startQuality = 80
	qualityStep  = 10
	minQuality   = 40
	finalQuality = 60
)

// Result is the compressed image plus the parameters that produced it.
type Result struct {
	Data    []byte
	Width   int
	Height  int
	Quality int
}

// Compress decodes the source image, fits it into MaxDimension, then steps
// JPEG quality down toward TargetBytes. If the quality floor is reached while
// still oversized, one geometric downscale proportional to the excess-size
// ratio is applied and the image re-encoded at a fixed quality. Best effort:
// the target can still be exceeded for pathological inputs.
func Compress(data []byte) (*Result, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	quality := startQuality
	buf, err := encodeJPEG(img, quality)
	if err != nil {
		return nil, err
	}

	for buf.Len() > TargetBytes && quality > minQuality {
		quality -= qualityStep
		buf, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
	}

	if buf.Len() > TargetBytes {
		ratio := math.Sqrt(float64(TargetBytes) / float64(buf.Len()))
		width := int(float64(img.Bounds().Dx()) * ratio)
		if width < 1 {
			width = 1
		}
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
		quality = finalQuality
		buf, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		Data:    buf.Bytes(),
		Width:   img.Bounds().Dx(),
		Height:  img.Bounds().Dy(),
		Quality: quality,
	}, nil
}

func encodeJPEG(img image.Image, quality int) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf, nil
}
