package glyphcheck

import (
	"errors"
	"testing"
)

func TestParseCharacterID(t *testing.T) {
	tests := []struct {
		filename string
		want     CharacterID
	}{
		{"中.png", "中"},
		{"templates/國.png", "國"},
		{"A.png", "A"},
		{"e\u0301.png", "e\u0301"}, // decomposed stems are kept as written
		{"\uf900.png", "\uf900"},   // compatibility ideograph is not rewritten
		{"👍🏽.png", "👍🏽"},
		{"中.template.png", "中"},
	}

	for _, tt := range tests {
		got, err := ParseCharacterID(tt.filename)
		if err != nil {
			t.Errorf("ParseCharacterID(%q) returned error: %v", tt.filename, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCharacterID(%q): expected %q, got %q", tt.filename, tt.want, got)
		}
	}
}

func TestCompatibilityIdeographTemplateNotRecognized(t *testing.T) {
	id, err := ParseCharacterID("\uf900.png")
	if err != nil {
		t.Fatalf("ParseCharacterID returned error: %v", err)
	}
	if id != "\uf900" {
		t.Fatalf("Expected U+F900 to be kept, got %U", []rune(string(id)))
	}
	if IsRecognizedScript(id) {
		t.Error("Expected a compatibility ideograph identity to fail the script check")
	}

	v := Decide(MatchResult{ID: id, Found: true, Score: 0.99}, DefaultThreshold)
	if v.Pass {
		t.Errorf("Expected INCORRECT for %s, got %s", id, v)
	}
}

func TestCharacterIDKey(t *testing.T) {
	if CharacterID("e\u0301").key() != CharacterID("\u00e9").key() {
		t.Error("Expected decomposed and precomposed forms to share a key")
	}
	if CharacterID("中").key() == CharacterID("國").key() {
		t.Error("Expected distinct characters to have distinct keys")
	}
}

func TestParseCharacterIDRejectsInvalid(t *testing.T) {
	for _, filename := range []string{".png", "ab.png", "中文.png", "\xff.png", ""} {
		_, err := ParseCharacterID(filename)
		if !errors.Is(err, ErrInvalidIdentity) {
			t.Errorf("ParseCharacterID(%q): expected ErrInvalidIdentity, got %v", filename, err)
		}
	}
}

func TestIsRecognizedScript(t *testing.T) {
	tests := []struct {
		id   CharacterID
		want bool
	}{
		{"中", true},
		{"國", true},
		{"㐀", true},           // Extension A
		{"\U00020000", true},  // Extension B
		{"\U0002ebf0", false}, // Extension I
		{"A", false},
		{"é", false},
		{"あ", false},      // Hiragana
		{"\uf900", false}, // CJK compatibility ideograph
		{"\u2e80", false}, // CJK radical
		{"〇", false},      // ideographic number zero, not a unified ideograph
		{"", false},
		{"中中", false},
		{"\xff", false},
		{"�", false},
	}

	for _, tt := range tests {
		if got := IsRecognizedScript(tt.id); got != tt.want {
			t.Errorf("IsRecognizedScript(%q): expected %v, got %v", tt.id, tt.want, got)
		}
	}
}
