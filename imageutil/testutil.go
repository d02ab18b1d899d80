package imageutil

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"math"
	"math/rand"
)

// CreateSolidGray creates a grayscale image filled with v.
func CreateSolidGray(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	img.Fill(v)
	return img
}

// CreateGradientGray creates a horizontal gradient test image.
func CreateGradientGray(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if width > 1 {
				v = uint8(255 * x / (width - 1))
			}
			img.SetGrayValue(x, y, v)
		}
	}
	return img
}

// CreateCheckerboardGray creates a black and white checkerboard pattern.
func CreateCheckerboardGray(width, height, squareSize int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetGrayValue(x, y, 255)
			}
		}
	}
	return img
}

// CreateNoiseGray creates uniformly random intensities from a fixed seed.
func CreateNoiseGray(width, height int, seed int64) *GrayImage {
	rng := rand.New(rand.NewSource(seed))
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

// CreateStrokeGray draws black axis-aligned bars of the given thickness on a
// white background. Each bar is a rectangle in image coordinates. It stands in
// for a simple hand-drawn glyph such as 中 or 十.
func CreateStrokeGray(width, height int, bars ...image.Rectangle) *GrayImage {
	img := NewWhiteGrayImage(width, height)
	for _, bar := range bars {
		bar = bar.Intersect(img.Bounds())
		for y := bar.Min.Y; y < bar.Max.Y; y++ {
			for x := bar.Min.X; x < bar.Max.X; x++ {
				img.SetGrayValue(x, y, 0)
			}
		}
	}
	return img
}

// CreateCrossGray draws a centered plus sign with the given stroke thickness.
func CreateCrossGray(width, height, thickness int) *GrayImage {
	cx, cy := width/2, height/2
	half := thickness / 2
	return CreateStrokeGray(width, height,
		image.Rect(width/8, cy-half, width-width/8, cy-half+thickness),
		image.Rect(cx-half, height/8, cx-half+thickness, height-height/8),
	)
}

// CalculateMSEGray calculates the Mean Squared Error between two grayscale images.
func CalculateMSEGray(img1, img2 *GrayImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	count := float64(width * height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := float64(img1.GetGray(x, y)) - float64(img2.GetGray(x, y))
			sumSq += d * d
		}
	}

	return sumSq / count
}

// CreatePNGWithDeclaredSize returns a valid 1x1 grayscale PNG whose header
// claims width x height. The file stays tiny while DecodeConfig reports the
// declared size, which exercises pixel limits without allocating.
func CreatePNGWithDeclaredSize(width, height uint32) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1)))
	data := buf.Bytes()

	// 8-byte signature, then the IHDR chunk: length(4) type(4) data(13) crc(4).
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}
