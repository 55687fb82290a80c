package pngopt

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/corona10/goimagehash"
)

// ErrVisualMismatch is returned when the rewritten image differs from the input
var ErrVisualMismatch = errors.New("optimized image differs from original")

// verifyEncoded decodes the encoded output and checks it against the
// original image, first by perceptual hash and then pixel by pixel.
func verifyEncoded(original image.Image, encoded []byte) error {
	out, err := decodeBytes(encoded)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	distance, err := PerceptualDistance(original, out)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if distance > 0 {
		return fmt.Errorf("%w: perceptual distance %d", ErrVisualMismatch, distance)
	}

	if !samePixels(original, out) {
		return fmt.Errorf("%w: pixel data changed", ErrVisualMismatch)
	}

	return nil
}

// PerceptualDistance returns the hamming distance between the average
// hashes of two images
func PerceptualDistance(a, b image.Image) (int, error) {
	ha, err := goimagehash.AverageHash(a)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}
	hb, err := goimagehash.AverageHash(b)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}
	return ha.Distance(hb)
}

// samePixels compares two images in non-premultiplied 16-bit space
func samePixels(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ca := color.NRGBA64Model.Convert(a.At(x, y)).(color.NRGBA64)
			cb := color.NRGBA64Model.Convert(b.At(x, y)).(color.NRGBA64)
			if ca != cb {
				if ca.A == 0 && cb.A == 0 {
					continue
				}
				return false
			}
		}
	}
	return true
}
