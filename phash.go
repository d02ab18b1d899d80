package glyphcheck

import (
	"github.com/corona10/goimagehash"
	"github.com/wbrown/glyphcheck/imageutil"
)

// hashBits is the length of the 64-bit perceptual and difference hashes.
const hashBits = 64

// hashScorer compares bitmaps by the Hamming distance of their image hashes,
// mapped linearly so that identical hashes score 1 and fully inverted hashes
// score -1. It is coarser than CCoeffNormed but tolerant of stroke jitter.
type hashScorer struct {
	kind string
}

func (h hashScorer) hash(img *imageutil.GrayImage) (*goimagehash.ImageHash, error) {
	if h.kind == MetricDHash {
		return goimagehash.DifferenceHash(img.Gray)
	}
	return goimagehash.PerceptionHash(img.Gray)
}

func (h hashScorer) Score(probe, template *imageutil.GrayImage) float64 {
	a, err := h.hash(probe)
	if err != nil {
		return -1
	}
	b, err := h.hash(template)
	if err != nil {
		return -1
	}
	d, err := a.Distance(b)
	if err != nil {
		return -1
	}
	return clampScore(1 - 2*float64(d)/hashBits)
}
