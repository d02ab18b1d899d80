package glyphcheck

import (
	"image"
	"math"
	"sync"
	"testing"

	"github.com/wbrown/glyphcheck/imageutil"
)

func TestNormalizeResolution(t *testing.T) {
	n := Normalizer{Resolution: DefaultResolution}
	sizes := []image.Point{{1, 1}, {3, 500}, {400, 400}, {640, 480}, {200, 200}}

	for _, size := range sizes {
		out := n.Normalize(imageutil.CreateNoiseGray(size.X, size.Y, 3))
		if out.Width() != DefaultResolution || out.Height() != DefaultResolution {
			t.Errorf("Normalize(%v): expected %dx%d, got %dx%d",
				size, DefaultResolution, DefaultResolution, out.Width(), out.Height())
		}
	}
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	raw := zhongBitmap(200)
	out := Normalizer{Resolution: 200}.Normalize(raw)
	out.SetGrayValue(0, 0, 17)
	if raw.GetGray(0, 0) == 17 {
		t.Error("Normalize should return a private copy")
	}
}

func TestBestMatchEmptyLibrary(t *testing.T) {
	e := DefaultEngine()
	lib := NewLibrary(LoadOptions{}, nil)

	m := e.BestMatch(zhongBitmap(200), lib)
	if m.Found || m.ID != "" {
		t.Errorf("Expected no match, got %+v", m)
	}
	if m.Score >= -1 {
		t.Errorf("Expected sentinel score below every threshold, got %v", m.Score)
	}

	v := e.Analyze(zhongBitmap(200), lib)
	if v.Pass {
		t.Error("Empty library must never pass")
	}
	if v.Banner() != BannerIncorrect {
		t.Errorf("Expected %s, got %s", BannerIncorrect, v.Banner())
	}
}

func TestBestMatchPicksHighest(t *testing.T) {
	lib := NewLibrary(LoadOptions{}, map[CharacterID]*imageutil.GrayImage{
		"中": zhongBitmap(200),
		"A": latinABitmap(200),
		"十": imageutil.CreateCrossGray(200, 200, 20),
	})

	m := DefaultEngine().BestMatch(zhongBitmap(200), lib)
	if m.ID != "中" {
		t.Errorf("Expected 中, got %q (score %v)", m.ID, m.Score)
	}
}

func TestBestMatchTieBreaksByIdentity(t *testing.T) {
	glyph := zhongBitmap(200)
	lib := NewLibrary(LoadOptions{}, map[CharacterID]*imageutil.GrayImage{
		"七": glyph,
		"丁": glyph,
		"丈": glyph,
	})

	for i := 0; i < 10; i++ {
		m := DefaultEngine().BestMatch(glyph, lib)
		if m.ID != "丁" {
			t.Fatalf("Expected the smallest identity 丁 to win ties, got %q", m.ID)
		}
	}
}

func TestDecideBoundary(t *testing.T) {
	const threshold = 0.20

	at := Decide(MatchResult{ID: "中", Found: true, Score: threshold}, threshold)
	if at.Pass {
		t.Error("Score equal to threshold must fail")
	}

	above := Decide(MatchResult{ID: "中", Found: true, Score: math.Nextafter(threshold, 1)}, threshold)
	if !above.Pass {
		t.Error("Score just above threshold must pass for a CJK ideograph")
	}

	latin := Decide(MatchResult{ID: "A", Found: true, Score: 0.99}, threshold)
	if latin.Pass || latin.Recognized {
		t.Errorf("Latin identity must fail the script check, got %+v", latin)
	}

	none := Decide(MatchResult{Score: NoMatchScore}, -1)
	if none.Pass {
		t.Error("A missing match must fail even at the lowest threshold")
	}
}

func TestAnalyzeScenarios(t *testing.T) {
	zhong := zhongBitmap(200)
	latin := latinABitmap(200)

	tests := []struct {
		name      string
		library   map[CharacterID]*imageutil.GrayImage
		input     *imageutil.GrayImage
		wantID    CharacterID
		wantPass  bool
		wantScore func(float64) bool
	}{
		{
			name:      "identical ideograph passes",
			library:   map[CharacterID]*imageutil.GrayImage{"中": zhong},
			input:     zhong.Clone(),
			wantID:    "中",
			wantPass:  true,
			wantScore: func(s float64) bool { return math.Abs(s-1) < 1e-9 },
		},
		{
			name:      "identical latin letter fails script check",
			library:   map[CharacterID]*imageutil.GrayImage{"A": latin},
			input:     latin.Clone(),
			wantID:    "A",
			wantPass:  false,
			wantScore: func(s float64) bool { return math.Abs(s-1) < 1e-9 },
		},
		{
			name:      "blank canvas fails",
			library:   map[CharacterID]*imageutil.GrayImage{"中": zhong},
			input:     imageutil.CreateSolidGray(400, 400, 255),
			wantID:    "中",
			wantPass:  false,
			wantScore: func(s float64) bool { return s <= DefaultThreshold },
		},
		{
			name:      "noise fails",
			library:   map[CharacterID]*imageutil.GrayImage{"中": zhong},
			input:     imageutil.CreateNoiseGray(200, 200, 42),
			wantID:    "中",
			wantPass:  false,
			wantScore: func(s float64) bool { return s <= DefaultThreshold },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := NewLibrary(LoadOptions{}, tt.library)
			v := Analyze(tt.input, lib, DefaultThreshold)

			if v.ID != tt.wantID {
				t.Errorf("Expected character %q, got %q", tt.wantID, v.ID)
			}
			if v.Pass != tt.wantPass {
				t.Errorf("Expected pass=%v, got %v (score %v)", tt.wantPass, v.Pass, v.Score)
			}
			if !tt.wantScore(v.Score) {
				t.Errorf("Unexpected score %v", v.Score)
			}
		})
	}
}

func TestAnalyzeScaledDrawing(t *testing.T) {
	lib := NewLibrary(LoadOptions{}, map[CharacterID]*imageutil.GrayImage{
		"中": zhongBitmap(200),
		"A": latinABitmap(200),
	})

	// A 400x400 canvas drawing of the same shape is scaled down to match.
	v := Analyze(zhongBitmap(400), lib, DefaultThreshold)
	if v.ID != "中" || !v.Pass {
		t.Errorf("Expected a passing 中, got %s", v)
	}
}

func TestAnalyzeEmptyBitmap(t *testing.T) {
	lib := NewLibrary(LoadOptions{}, map[CharacterID]*imageutil.GrayImage{"中": zhongBitmap(200)})

	for _, raw := range []*imageutil.GrayImage{nil, imageutil.NewGrayImage(0, 0)} {
		v := DefaultEngine().Analyze(raw, lib)
		if v.Pass || v.Found {
			t.Errorf("Expected an empty bitmap to fail without a match, got %+v", v)
		}
	}
}

func TestAnalyzeWithBlur(t *testing.T) {
	opts := LoadOptions{Normalizer: Normalizer{Resolution: 100, BlurPasses: 2}}
	lib := NewLibrary(opts, map[CharacterID]*imageutil.GrayImage{"中": zhongBitmap(200)})

	v := DefaultEngine().Analyze(zhongBitmap(200), lib)
	if !v.Pass || math.Abs(v.Score-1) > 1e-9 {
		t.Errorf("Expected blurred identical drawing to pass with score 1, got %s", v)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	lib := NewLibrary(LoadOptions{}, map[CharacterID]*imageutil.GrayImage{
		"中": zhongBitmap(200),
		"A": latinABitmap(200),
	})
	input := imageutil.CreateNoiseGray(321, 123, 9)

	first := Analyze(input, lib, DefaultThreshold)
	for i := 0; i < 5; i++ {
		if got := Analyze(input, lib, DefaultThreshold); got != first {
			t.Fatalf("Expected identical verdicts, got %+v and %+v", first, got)
		}
	}
}

func TestAnalyzeConcurrentSharedLibrary(t *testing.T) {
	lib := NewLibrary(LoadOptions{}, map[CharacterID]*imageutil.GrayImage{
		"中": zhongBitmap(200),
		"A": latinABitmap(200),
	})
	e := DefaultEngine()

	var wg sync.WaitGroup
	results := make([]Verdict, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Analyze(zhongBitmap(200), lib)
		}(i)
	}
	wg.Wait()

	for i, v := range results {
		if v.ID != "中" || !v.Pass {
			t.Errorf("Goroutine %d: expected passing 中, got %s", i, v)
		}
	}
}

func TestNewEngine(t *testing.T) {
	if _, err := NewEngine(MetricCCoeffNormed, 1.5); err == nil {
		t.Error("Expected threshold above 1 to be rejected")
	}
	if _, err := NewEngine(MetricCCoeffNormed, math.NaN()); err == nil {
		t.Error("Expected NaN threshold to be rejected")
	}
	if _, err := NewEngine("bogus", 0.2); err == nil {
		t.Error("Expected unknown metric to be rejected")
	}

	e, err := NewEngine(MetricPHash, 0.5)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if e.Threshold != 0.5 {
		t.Errorf("Expected threshold 0.5, got %v", e.Threshold)
	}
}
