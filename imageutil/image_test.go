package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestNewGrayImage(t *testing.T) {
	img := NewGrayImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestGrayImageGetSetGray(t *testing.T) {
	img := NewGrayImage(10, 10)
	img.SetGrayValue(5, 5, 128)

	if got := img.GetGray(5, 5); got != 128 {
		t.Errorf("Expected 128, got %d", got)
	}
	if got := img.Gray.Pix[5*img.Stride+5]; got != 128 {
		t.Errorf("Expected backing pixel 128, got %d", got)
	}
}

func TestGrayImageClone(t *testing.T) {
	img := NewWhiteGrayImage(10, 10)
	img.SetGrayValue(5, 5, 0)

	clone := img.Clone()
	if clone.GetGray(5, 5) != 0 {
		t.Error("Clone should have same pixel values")
	}

	clone.SetGrayValue(5, 5, 200)
	if img.GetGray(5, 5) != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestGrayImageCrop(t *testing.T) {
	img := CreateGradientGray(100, 20)
	crop := img.Crop(image.Rect(10, 5, 60, 15))

	if crop.Width() != 50 || crop.Height() != 10 {
		t.Fatalf("Expected 50x10, got %dx%d", crop.Width(), crop.Height())
	}
	if crop.Bounds().Min != (image.Point{}) {
		t.Errorf("Expected crop origin at (0,0), got %v", crop.Bounds().Min)
	}
	if crop.GetGray(0, 0) != img.GetGray(10, 5) {
		t.Errorf("Expected crop(0,0)=%d, got %d", img.GetGray(10, 5), crop.GetGray(0, 0))
	}

	crop.SetGrayValue(0, 0, 7)
	if img.GetGray(10, 5) == 7 {
		t.Error("Crop should not alias the source")
	}
}

func TestToGrayscale(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		min  uint8
		max  uint8
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0},
		{"red", color.RGBA{255, 0, 0, 255}, 75, 77},
		{"transparent reads as paper", color.RGBA{0, 0, 0, 0}, 255, 255},
		{"gray preserved", color.Gray{Y: 93}, 93, 93},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 1, 1))
			img.Set(0, 0, tt.c)
			v := ToGrayscale(img).GetGray(0, 0)
			if v < tt.min || v > tt.max {
				t.Errorf("Expected value in [%d,%d], got %d", tt.min, tt.max, v)
			}
		})
	}
}

func TestInvert(t *testing.T) {
	img := CreateSolidGray(3, 3, 10)
	inv := Invert(img)
	if inv.GetGray(1, 1) != 245 {
		t.Errorf("Expected 245, got %d", inv.GetGray(1, 1))
	}
	if img.GetGray(1, 1) != 10 {
		t.Error("Invert should not modify its input")
	}
}

func TestResizeGray(t *testing.T) {
	img := CreateGradientGray(100, 40)

	for _, interp := range []Interpolation{InterpolationLinear, InterpolationArea, InterpolationNearest} {
		resized := ResizeGray(img, 200, 200, interp)
		if resized.Width() != 200 || resized.Height() != 200 {
			t.Errorf("%s: expected 200x200, got %dx%d", interp, resized.Width(), resized.Height())
		}
	}

	tiny := ResizeSquare(NewGrayImage(1, 1), 200, InterpolationLinear)
	if tiny.Width() != 200 || tiny.Height() != 200 {
		t.Errorf("Expected 1x1 to upscale to 200x200, got %dx%d", tiny.Width(), tiny.Height())
	}
}

func TestResizeGrayDeterministic(t *testing.T) {
	img := CreateNoiseGray(97, 131, 7)
	a := ResizeSquare(img, 200, InterpolationLinear)
	b := ResizeSquare(img, 200, InterpolationLinear)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Resizing the same input twice should be bit-identical")
	}
}

func TestParseInterpolation(t *testing.T) {
	for _, name := range []string{"linear", "AREA", " nearest ", ""} {
		if _, err := ParseInterpolation(name); err != nil {
			t.Errorf("Expected %q to parse, got %v", name, err)
		}
	}
	if _, err := ParseInterpolation("lanczos"); err == nil {
		t.Error("Expected unknown interpolation to fail")
	}
}

func TestGaussianBlurGray(t *testing.T) {
	img := CreateSolidGray(10, 10, 90)
	blurred := GaussianBlurGray(img, 3)
	if mse := CalculateMSEGray(img, blurred); mse != 0 {
		t.Errorf("Blurring a flat image should not change it, MSE=%f", mse)
	}

	cross := CreateCrossGray(40, 40, 4)
	if GaussianBlurGray(cross, 0) != cross {
		t.Error("Zero passes should return the input unchanged")
	}
	soft := GaussianBlurGray(cross, 2)
	if CalculateMSEGray(cross, soft) == 0 {
		t.Error("Blurring strokes should soften edges")
	}

	// A single dark pixel spreads with the 1-2-1 binomial weights.
	dot := CreateSolidGray(5, 5, 255)
	dot.SetGrayValue(2, 2, 0)
	spread := GaussianBlurGray(dot, 1)
	expected := map[[2]int]uint8{
		{2, 2}: 191, // 255 - 255*4/16
		{1, 2}: 223, // 255 - 255*2/16
		{1, 1}: 239, // 255 - 255*1/16
		{0, 0}: 255,
	}
	for p, want := range expected {
		if got := spread.GetGray(p[0], p[1]); got != want {
			t.Errorf("Expected %d at %v, got %d", want, p, got)
		}
	}
}

func TestLoadSaveGray(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateCheckerboardGray(64, 64, 8)

	path := filepath.Join(tmpDir, "test.png")
	if err := SaveGrayImage(img, path); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadGray(path)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	if mse := CalculateMSEGray(img, loaded); mse != 0 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}
}

func TestDecodeGrayRejectsGarbage(t *testing.T) {
	if _, err := DecodeGray(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Expected decoding garbage to fail")
	}
}

func TestDecodeGrayFlattensAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{0, 0, 0, 255})
	src.Set(1, 0, color.NRGBA{0, 0, 0, 0})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeGray(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.GetGray(0, 0) != 0 || img.GetGray(1, 0) != 255 {
		t.Errorf("Expected ink=0 and transparent=255, got %d and %d", img.GetGray(0, 0), img.GetGray(1, 0))
	}
}

func TestDecodeGrayLimited(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, CreateCheckerboardGray(40, 30, 5).Gray); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeGrayLimited(buf.Bytes(), 40*30)
	if err != nil {
		t.Fatalf("Expected image at the limit to decode, got %v", err)
	}
	if img.Width() != 40 || img.Height() != 30 {
		t.Errorf("Expected 40x30, got %dx%d", img.Width(), img.Height())
	}

	if _, err := DecodeGrayLimited(buf.Bytes(), 40*30-1); !errors.Is(err, ErrTooManyPixels) {
		t.Errorf("Expected ErrTooManyPixels, got %v", err)
	}
	if _, err := DecodeGrayLimited(buf.Bytes(), 0); err != nil {
		t.Errorf("Expected zero limit to disable the check, got %v", err)
	}
}

func TestDecodeGrayLimitedRejectsDeclaredSize(t *testing.T) {
	data := CreatePNGWithDeclaredSize(40000, 40000)
	if len(data) > 100 {
		t.Fatalf("Expected a tiny file, got %d bytes", len(data))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Width != 40000 || cfg.Height != 40000 {
		t.Fatalf("Expected declared 40000x40000, got %dx%d", cfg.Width, cfg.Height)
	}

	if _, err := DecodeGrayLimited(data, 4096*4096); !errors.Is(err, ErrTooManyPixels) {
		t.Errorf("Expected ErrTooManyPixels, got %v", err)
	}
}
