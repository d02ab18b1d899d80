// Package imageutil provides the pure Go single-channel image handling used
// by the recognition engine: decoding, grayscale conversion, resampling and
// smoothing.
package imageutil

import (
	"image"
	"image/color"
)

// GrayImage wraps image.Gray with convenience methods for pixel access.
// All images handled by glyphcheck are single-channel intensity grids with
// 0 = black ink and 255 = white paper.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new black GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// NewWhiteGrayImage creates a GrayImage filled with white (255).
func NewWhiteGrayImage(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	img.Fill(255)
	return img
}

// GrayImageFromImage converts any image.Image to a GrayImage whose origin is
// (0, 0). Translucent pixels are composited over white before conversion.
func GrayImageFromImage(img image.Image) *GrayImage {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return (&GrayImage{Gray: g}).Clone()
	}
	return ToGrayscale(img)
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.GrayAt(x, y).Y
}

// SetGrayValue sets the grayscale value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Gray.SetGray(x, y, color.Gray{Y: v})
}

// Fill sets every pixel to v.
func (img *GrayImage) Fill(v uint8) {
	for i := range img.Pix {
		img.Pix[i] = v
	}
}

// Clone creates a deep copy of the image.
func (img *GrayImage) Clone() *GrayImage {
	clone := NewGrayImage(img.Width(), img.Height())
	for y := 0; y < clone.Height(); y++ {
		src := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		copy(clone.Pix[y*clone.Stride:y*clone.Stride+clone.Width()], src[:clone.Width()])
	}
	return clone
}

// Crop returns a deep copy of the region r, clipped to the image bounds and
// rebased to (0, 0).
func (img *GrayImage) Crop(r image.Rectangle) *GrayImage {
	r = r.Intersect(img.Bounds())
	sub := img.SubImage(r).(*image.Gray)
	return (&GrayImage{Gray: sub}).Clone()
}

// Floats returns the pixels in row-major order as float64 intensities.
func (img *GrayImage) Floats() []float64 {
	width, height := img.Width(), img.Height()
	out := make([]float64, 0, width*height)
	for y := 0; y < height; y++ {
		row := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		for x := 0; x < width; x++ {
			out = append(out, float64(row[x]))
		}
	}
	return out
}
