package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// DecodeGray decodes an image stream and converts it to grayscale.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP.
func DecodeGray(r io.Reader) (*GrayImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return GrayImageFromImage(img), nil
}

// ErrTooManyPixels is returned by DecodeGrayLimited when an image header
// declares more pixels than allowed.
var ErrTooManyPixels = errors.New("image dimensions exceed limit")

// DecodeGrayLimited decodes data like DecodeGray, but first reads only the
// image header and rejects images with more than maxPixels pixels, so a
// small file declaring huge dimensions is refused before any pixel buffer
// is allocated. maxPixels <= 0 disables the check.
func DecodeGrayLimited(data []byte, maxPixels int64) (*GrayImage, error) {
	if maxPixels > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image header: %w", err)
		}
		if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
			return nil, fmt.Errorf("%w: %dx%d is more than %d pixels",
				ErrTooManyPixels, cfg.Width, cfg.Height, maxPixels)
		}
	}
	return DecodeGray(bytes.NewReader(data))
}

// LoadGray loads an image from path as single-channel intensity data.
func LoadGray(path string) (*GrayImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return DecodeGray(f)
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

// SaveGrayImage saves a grayscale image as PNG to the specified path.
func SaveGrayImage(img *GrayImage, path string) error {
	return SavePNG(img.Gray, path)
}
