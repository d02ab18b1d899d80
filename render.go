package glyphcheck

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/glyphcheck/imageutil"
	"golang.org/x/image/font"
)

// glyphFill is the share of the template side the font size occupies.
const glyphFill = 0.8

// LoadFont loads a TrueType font from file
func LoadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return ParseFont(fontBytes)
}

// ParseFont parses TrueType font data.
func ParseFont(data []byte) (*truetype.Font, error) {
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

// RenderTemplate renders r as black ink centered on a white size x size
// square, the same form a drawing takes on the canvas.
//
// The glyph is centered on its ink bounds rather than on the font's
// ascent/descent, since CJK fonts place ideographs differently within the
// em box and a hand drawing is centered on what was drawn.
func RenderTemplate(ttf *truetype.Font, r rune, size int) (*imageutil.GrayImage, error) {
	if size <= 0 {
		return nil, fmt.Errorf("template size must be positive, got %d", size)
	}
	if ttf.Index(r) == 0 {
		return nil, fmt.Errorf("font has no glyph for %q", r)
	}

	fontSize := float64(size) * glyphFill
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	bounds, _, ok := face.GlyphBounds(r)
	if !ok {
		return nil, fmt.Errorf("font has no bounds for %q", r)
	}
	inkW := (bounds.Max.X - bounds.Min.X).Ceil()
	inkH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	originX := (size-inkW)/2 - bounds.Min.X.Floor()
	baselineY := (size-inkH)/2 - bounds.Min.Y.Floor()

	img := imageutil.NewWhiteGrayImage(size, size)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img.Gray)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	if _, err := ctx.DrawString(string(r), freetype.Pt(originX, baselineY)); err != nil {
		return nil, fmt.Errorf("failed to draw %q: %w", r, err)
	}
	return img, nil
}

// RenderTemplates renders each rune in chars into dir as "<rune>.png",
// the layout LoadLibrary reads. Whitespace is ignored. Runes the font cannot
// draw are returned in missing and no file is written for them. If any rune
// cannot name a template file, such as '.' or '/', nothing is written and
// the error wraps ErrInvalidIdentity.
func RenderTemplates(ttf *truetype.Font, chars string, size int, dir string) (written []string, missing []rune, err error) {
	var runes []rune
	seen := make(map[rune]bool)
	for _, r := range chars {
		if seen[r] || unicode.IsSpace(r) {
			continue
		}
		seen[r] = true
		if err := checkTemplateRune(r); err != nil {
			return nil, nil, err
		}
		runes = append(runes, r)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for _, r := range runes {

		img, renderErr := RenderTemplate(ttf, r, size)
		if renderErr != nil {
			missing = append(missing, r)
			continue
		}
		path := filepath.Join(dir, string(r)+DefaultExtension)
		if err := imageutil.SaveGrayImage(img, path); err != nil {
			return written, missing, err
		}
		written = append(written, path)
	}
	return written, missing, nil
}

// checkTemplateRune reports whether "<r>.png" is a plain file name that
// LoadLibrary maps back to r.
func checkTemplateRune(r rune) error {
	name := string(r) + DefaultExtension
	if r == '.' || unicode.IsControl(r) || strings.ContainsRune(`/\`, r) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q cannot name a template file", ErrInvalidIdentity, r)
	}
	id, err := ParseCharacterID(name)
	if err != nil {
		return err
	}
	if id != CharacterID(string(r)) {
		return fmt.Errorf("%w: %q would load as %q", ErrInvalidIdentity, r, id)
	}
	return nil
}
