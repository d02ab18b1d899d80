package imageutil

import "math"

// GaussianBlurGray smooths img with the 3x3 binomial Gaussian kernel
// applied passes times. Each pass runs the separable [1 2 1]/4 filter along
// rows and then columns, with edge pixels replicated. Intermediate values
// stay in floating point so repeated passes do not accumulate rounding.
// Zero passes return img itself.
func GaussianBlurGray(img *GrayImage, passes int) *GrayImage {
	if passes <= 0 {
		return img
	}
	w, h := img.Width(), img.Height()
	buf := img.Floats()
	tmp := make([]float64, len(buf))
	for i := 0; i < passes; i++ {
		blurRows(tmp, buf, w, h)
		blurCols(buf, tmp, w, h)
	}

	out := NewGrayImage(w, h)
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := range row {
			row[x] = clampUint8(buf[y*w+x])
		}
	}
	return out
}

func blurRows(dst, src []float64, w, h int) {
	for y := 0; y < h; y++ {
		row := src[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			l := row[clampInt(x-1, 0, w-1)]
			r := row[clampInt(x+1, 0, w-1)]
			dst[y*w+x] = (l + 2*row[x] + r) / 4
		}
	}
}

func blurCols(dst, src []float64, w, h int) {
	for y := 0; y < h; y++ {
		up := clampInt(y-1, 0, h-1) * w
		down := clampInt(y+1, 0, h-1) * w
		mid := y * w
		for x := 0; x < w; x++ {
			dst[mid+x] = (src[up+x] + 2*src[mid+x] + src[down+x]) / 4
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUint8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
