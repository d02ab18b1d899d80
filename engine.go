package glyphcheck

import (
	"fmt"
	"math"

	"github.com/wbrown/glyphcheck/imageutil"
)

const (
	// DefaultThreshold is the similarity a drawing must strictly exceed to
	// pass. It is a tuning knob: lower it to accept sloppier drawings, raise
	// it to demand closer copies.
	DefaultThreshold = 0.20

	// NoMatchScore is reported when the library is empty. It lies below every
	// valid threshold, so such a result always fails.
	NoMatchScore = -2.0
)

// Normalizer brings bitmaps of any size to the comparison resolution.
type Normalizer struct {
	Resolution    int
	Interpolation imageutil.Interpolation
	// BlurPasses applies the 3x3 Gaussian kernel this many times after
	// resizing. Zero disables smoothing.
	BlurPasses int
}

// Normalize returns a new Resolution x Resolution copy of raw. The aspect
// ratio is not preserved. raw is never modified.
func (n Normalizer) Normalize(raw *imageutil.GrayImage) *imageutil.GrayImage {
	size := n.Resolution
	if size <= 0 {
		size = DefaultResolution
	}
	out := imageutil.ResizeSquare(raw, size, n.Interpolation)
	return imageutil.GaussianBlurGray(out, n.BlurPasses)
}

// MatchResult is the best scoring template for one probe. Found is false
// only when the library was empty.
type MatchResult struct {
	ID    CharacterID
	Found bool
	Score float64
}

// Engine scores drawings against a Library and applies the pass policy.
// An Engine holds no per-call state and may be shared between goroutines.
type Engine struct {
	Threshold float64
	Scorer    Scorer
}

// NewEngine returns an engine using the named metric and threshold.
func NewEngine(metric string, threshold float64) (*Engine, error) {
	if math.IsNaN(threshold) || threshold < -1 || threshold > 1 {
		return nil, fmt.Errorf("threshold %v outside [-1, 1]", threshold)
	}
	scorer, err := NewScorer(metric)
	if err != nil {
		return nil, err
	}
	return &Engine{Threshold: threshold, Scorer: scorer}, nil
}

// DefaultEngine returns an engine with the default metric and threshold.
func DefaultEngine() *Engine {
	return &Engine{Threshold: DefaultThreshold, Scorer: ScorerFunc(CCoeffNormed)}
}

func (e *Engine) scorer() Scorer {
	if e.Scorer == nil {
		return ScorerFunc(CCoeffNormed)
	}
	return e.Scorer
}

// Score compares two bitmaps with the engine's metric.
func (e *Engine) Score(probe, template *imageutil.GrayImage) float64 {
	return e.scorer().Score(probe, template)
}

// BestMatch scores probe against every template and keeps the strictly
// highest. Templates are visited in identity order, so among equal scores
// the smallest identity wins.
func (e *Engine) BestMatch(probe *imageutil.GrayImage, lib *Library) MatchResult {
	best := MatchResult{Score: NoMatchScore}
	scorer := e.scorer()
	for _, t := range lib.Entries() {
		score := scorer.Score(probe, t.Bitmap)
		if score > best.Score {
			best = MatchResult{ID: t.ID, Found: true, Score: score}
		}
	}
	return best
}

// Decide applies the engine's threshold to m.
func (e *Engine) Decide(m MatchResult) Verdict {
	return Decide(m, e.Threshold)
}

// Analyze normalizes raw with the library's normalizer, finds the best
// template and decides the verdict. It always returns a well-formed Verdict:
// an empty library, an empty bitmap or an unrecognized identity all yield a
// failing verdict rather than an error.
func (e *Engine) Analyze(raw *imageutil.GrayImage, lib *Library) Verdict {
	if raw == nil || raw.Bounds().Empty() {
		return e.Decide(MatchResult{Score: NoMatchScore})
	}
	probe := lib.Normalizer().Normalize(raw)
	return e.Decide(e.BestMatch(probe, lib))
}

// Analyze is the engine entry point for callers that only carry a threshold:
// it scores with the default metric.
func Analyze(raw *imageutil.GrayImage, lib *Library, threshold float64) Verdict {
	e := DefaultEngine()
	e.Threshold = threshold
	return e.Analyze(raw, lib)
}

// Decide turns a match into a verdict. A drawing passes only if its score is
// strictly greater than threshold and the matched identity is a CJK unified
// ideograph; a score equal to threshold fails.
func Decide(m MatchResult, threshold float64) Verdict {
	recognized := m.Found && IsRecognizedScript(m.ID)
	return Verdict{
		ID:         m.ID,
		Found:      m.Found,
		Score:      m.Score,
		Threshold:  threshold,
		Recognized: recognized,
		Pass:       recognized && m.Score > threshold,
	}
}
