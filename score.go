package glyphcheck

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/wbrown/glyphcheck/imageutil"
)

// Metric names accepted by NewScorer.
const (
	MetricCCoeffNormed = "ccoeff_normed"
	MetricPHash        = "phash"
	MetricDHash        = "dhash"

	DefaultMetric = MetricCCoeffNormed
)

// Scorer compares two bitmaps of identical size and returns a similarity in
// [-1, 1], higher meaning more alike. Implementations must be deterministic
// and safe for concurrent use.
type Scorer interface {
	Score(probe, template *imageutil.GrayImage) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(probe, template *imageutil.GrayImage) float64

// Score calls f(probe, template).
func (f ScorerFunc) Score(probe, template *imageutil.GrayImage) float64 {
	return f(probe, template)
}

var (
	scorersMu sync.RWMutex
	scorers   = map[string]func() Scorer{
		MetricCCoeffNormed: func() Scorer { return ScorerFunc(CCoeffNormed) },
		MetricPHash:        func() Scorer { return hashScorer{kind: MetricPHash} },
		MetricDHash:        func() Scorer { return hashScorer{kind: MetricDHash} },
	}
)

// RegisterScorer makes an additional metric available to NewScorer.
// Registering an existing name replaces it.
func RegisterScorer(name string, factory func() Scorer) {
	scorersMu.Lock()
	defer scorersMu.Unlock()
	scorers[name] = factory
}

// NewScorer returns the scorer registered under name.
func NewScorer(name string) (Scorer, error) {
	if name == "" {
		name = DefaultMetric
	}
	scorersMu.RLock()
	factory, ok := scorers[name]
	scorersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownMetric, name, Metrics())
	}
	return factory(), nil
}

// Metrics lists the registered metric names in sorted order.
func Metrics() []string {
	scorersMu.RLock()
	defer scorersMu.RUnlock()
	names := make([]string, 0, len(scorers))
	for name := range scorers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CCoeffNormed computes the normalized correlation coefficient between two
// equally sized bitmaps treated as flat intensity vectors. This is the
// single-position case of OpenCV's TM_CCOEFF_NORMED: both images are
// mean-centered and the result is their Pearson correlation.
//
// Bitmaps of different sizes score -1. If either bitmap has zero variance
// (a blank canvas, a solid template) there is no shape to correlate and the
// score is 0.
func CCoeffNormed(probe, template *imageutil.GrayImage) float64 {
	if probe.Width() != template.Width() || probe.Height() != template.Height() {
		return -1
	}
	a := probe.Floats()
	b := template.Floats()
	if len(a) == 0 {
		return 0
	}

	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	n := float64(len(a))
	meanA, meanB := sumA/n, sumB/n

	var num, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		num += da * db
		varA += da * da
		varB += db * db
	}

	den := math.Sqrt(varA * varB)
	if den == 0 {
		return 0
	}
	return clampScore(num / den)
}

func clampScore(s float64) float64 {
	switch {
	case math.IsNaN(s):
		return 0
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}
