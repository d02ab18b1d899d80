package glyphcheck

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidIdentity is wrapped by ParseCharacterID when a filename stem does
// not name exactly one character.
var ErrInvalidIdentity = errors.New("invalid character identity")

// CharacterID identifies the character a template depicts. It is the
// filename stem exactly as written, a single grapheme cluster such as "中".
type CharacterID string

// String returns the identity as text.
func (id CharacterID) String() string {
	return string(id)
}

// key returns the NFC form of id. Two identities with the same key are
// canonically equivalent spellings of one character, such as a precomposed
// and a decomposed "é" or a compatibility ideograph and its unified form.
func (id CharacterID) key() string {
	return norm.NFC.String(string(id))
}

// ParseCharacterID derives a CharacterID from a template file name such as
// "templates/中.png". The stem is everything before the first dot and is
// taken verbatim; it must consist of exactly one grapheme cluster.
func ParseCharacterID(filename string) (CharacterID, error) {
	base := filepath.Base(filename)
	stem := base
	if i := strings.IndexByte(base, '.'); i >= 0 {
		stem = base[:i]
	}
	if stem == "" {
		return "", fmt.Errorf("%w: empty stem in %q", ErrInvalidIdentity, base)
	}
	if !utf8.ValidString(stem) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidIdentity, base)
	}
	if n := uniseg.GraphemeClusterCount(stem); n != 1 {
		return "", fmt.Errorf("%w: %q has %d characters, want 1", ErrInvalidIdentity, stem, n)
	}
	return CharacterID(stem), nil
}

// cjkUnifiedIdeographs covers the CJK Unified Ideographs block and its
// extensions A through H. Compatibility ideographs and radicals are excluded.
// Extension I is left out until the standard library's Unicode tables list
// it as Ideographic.
var cjkUnifiedIdeographs = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1}, // Extension A
		{Lo: 0x4e00, Hi: 0x9fff, Stride: 1}, // CJK Unified Ideographs
	},
	R32: []unicode.Range32{
		{Lo: 0x20000, Hi: 0x2a6df, Stride: 1}, // Extension B
		{Lo: 0x2a700, Hi: 0x2b73f, Stride: 1}, // Extension C
		{Lo: 0x2b740, Hi: 0x2b81f, Stride: 1}, // Extension D
		{Lo: 0x2b820, Hi: 0x2ceaf, Stride: 1}, // Extension E
		{Lo: 0x2ceb0, Hi: 0x2ebef, Stride: 1}, // Extension F
		{Lo: 0x30000, Hi: 0x3134f, Stride: 1}, // Extension G
		{Lo: 0x31350, Hi: 0x323af, Stride: 1}, // Extension H
	},
}

// IsRecognizedScript reports whether id is a single assigned CJK Unified
// Ideograph. Empty, multi-rune and malformed identities report false.
func IsRecognizedScript(id CharacterID) bool {
	s := string(id)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return false
	}
	return unicode.Is(cjkUnifiedIdeographs, r) && unicode.Is(unicode.Ideographic, r)
}
