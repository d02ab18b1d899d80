package imageutil

import (
	"image"
	"image/color"
)

// ToGrayscale converts an image to grayscale using the standard luminance
// formula Y = 0.299*R + 0.587*G + 0.114*B (BT.601, as OpenCV's
// IMREAD_GRAYSCALE). Pixels are composited over a white background first so
// that transparent glyph sheets read as white paper rather than black.
func ToGrayscale(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			gray.Gray.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: luminance(c)})
		}
	}

	return gray
}

// luminance flattens c over white and returns its 8-bit BT.601 luma.
func luminance(c color.NRGBA64) uint8 {
	a := uint32(c.A)
	r := (uint32(c.R)*a + 0xffff*(0xffff-a)) / 0xffff
	g := (uint32(c.G)*a + 0xffff*(0xffff-a)) / 0xffff
	b := (uint32(c.B)*a + 0xffff*(0xffff-a)) / 0xffff

	// Integer math scaled by 1000 on 8-bit channels
	lum := (299*(r>>8) + 587*(g>>8) + 114*(b>>8) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// Invert returns a copy of img with every intensity v replaced by 255-v.
func Invert(img *GrayImage) *GrayImage {
	out := img.Clone()
	for i, v := range out.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}
