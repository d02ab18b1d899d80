//go:build gocv

// Package gocvmatch scores bitmaps with OpenCV's template matcher. It is the
// reference the pure Go correlation in glyphcheck is checked against, and can
// be selected as the "opencv" metric in builds with the gocv tag.
//
// Requires OpenCV to be installed. Build with: go build -tags gocv
package gocvmatch

import (
	"gocv.io/x/gocv"

	"github.com/wbrown/glyphcheck"
	"github.com/wbrown/glyphcheck/imageutil"
)

// Metric is the name the scorer registers under.
const Metric = "opencv"

func init() {
	glyphcheck.RegisterScorer(Metric, func() glyphcheck.Scorer { return Scorer{} })
}

// Scorer runs gocv.MatchTemplate with TmCcoeffNormed. Both bitmaps have the
// same size, so the result matrix holds a single coefficient.
type Scorer struct{}

// Score implements glyphcheck.Scorer.
func (Scorer) Score(probe, template *imageutil.GrayImage) float64 {
	if probe.Width() != template.Width() || probe.Height() != template.Height() {
		return -1
	}
	// OpenCV reports 1 for a flat template and 0 for a flat image; a flat
	// bitmap on either side carries no shape, so both score 0 here.
	if flat(probe) || flat(template) {
		return 0
	}

	img, err := grayToMat(probe)
	if err != nil {
		return -1
	}
	defer img.Close()

	tmpl, err := grayToMat(template)
	if err != nil {
		return -1
	}
	defer tmpl.Close()

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(img, tmpl, &result, gocv.TmCcoeffNormed, mask)
	if result.Empty() {
		return -1
	}

	score := float64(result.GetFloatAt(0, 0))
	switch {
	case score > 1:
		return 1
	case score < -1:
		return -1
	}
	return score
}

// grayToMat copies a GrayImage into a CV_8U matrix.
func grayToMat(img *imageutil.GrayImage) (gocv.Mat, error) {
	return gocv.ImageGrayToMatGray(img.Clone().Gray)
}

func flat(img *imageutil.GrayImage) bool {
	if len(img.Pix) == 0 {
		return true
	}
	first := img.Pix[0]
	for _, v := range img.Pix {
		if v != first {
			return false
		}
	}
	return true
}
