// Package canvas is a headless drawing surface. It turns pointer strokes into
// the grayscale bitmap the recognition engine consumes: black ink on white
// paper, with a control strip below the drawing area that strokes cannot
// enter.
package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/wbrown/glyphcheck/imageutil"
	"golang.org/x/image/vector"
)

// capSegments is the number of polygon edges used to approximate a round
// stroke cap.
const capSegments = 24

// Options describes the canvas geometry.
type Options struct {
	Width  int
	Height int
	// DrawHeight is the height of the drawing area, which starts at the top
	// of the canvas and spans its full width.
	DrawHeight int
	// InkLimit is the first row of the control strip. Pointer moves at or
	// below it are ignored.
	InkLimit int
	// StrokeWidth is the pen diameter in pixels.
	StrokeWidth float64
}

// DefaultOptions returns the 400x450 canvas with a 400x400 drawing area and
// a 15 pixel pen.
func DefaultOptions() Options {
	return Options{
		Width:       400,
		Height:      450,
		DrawHeight:  400,
		InkLimit:    410,
		StrokeWidth: 15,
	}
}

// Validate checks that the geometry is usable.
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("canvas size %dx%d must be positive", o.Width, o.Height)
	case o.DrawHeight <= 0 || o.DrawHeight > o.Height:
		return fmt.Errorf("draw height %d must be in (0, %d]", o.DrawHeight, o.Height)
	case o.InkLimit < o.DrawHeight || o.InkLimit > o.Height:
		return fmt.Errorf("ink limit %d must be in [%d, %d]", o.InkLimit, o.DrawHeight, o.Height)
	case o.StrokeWidth < 1:
		return fmt.Errorf("stroke width %v must be at least 1", o.StrokeWidth)
	}
	return nil
}

// Canvas accumulates strokes. It is not safe for concurrent use; each
// drawing session owns one.
type Canvas struct {
	opts Options
	img  *imageutil.GrayImage
	z    *vector.Rasterizer
}

// New returns a blank canvas.
func New(opts Options) (*Canvas, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Canvas{
		opts: opts,
		img:  imageutil.NewWhiteGrayImage(opts.Width, opts.Height),
		z:    vector.NewRasterizer(opts.Width, opts.Height),
	}, nil
}

// Options returns the canvas geometry.
func (c *Canvas) Options() Options {
	return c.opts
}

// Stroke replays one pen-down/move/up sequence. The first point is where the
// pen goes down; every following point inside the drawable rows is joined to
// the previous accepted point with a line.
func (c *Canvas) Stroke(points []image.Point) {
	if len(points) == 0 {
		return
	}
	last := points[0]
	for _, p := range points[1:] {
		if p.Y >= c.opts.InkLimit {
			continue
		}
		c.Line(last, p)
		last = p
	}
}

// Line draws a segment with round caps using the canvas pen.
func (c *Canvas) Line(a, b image.Point) {
	r := float32(c.opts.StrokeWidth / 2)
	ax, ay := float32(a.X)+0.5, float32(a.Y)+0.5
	bx, by := float32(b.X)+0.5, float32(b.Y)+0.5

	c.disc(ax, ay, r)
	if a == b {
		return
	}
	c.disc(bx, by, r)

	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	nx, ny := -dy/l*r, dx/l*r

	c.z.Reset(c.opts.Width, c.opts.Height)
	c.z.MoveTo(ax+nx, ay+ny)
	c.z.LineTo(bx+nx, by+ny)
	c.z.LineTo(bx-nx, by-ny)
	c.z.LineTo(ax-nx, ay-ny)
	c.z.ClosePath()
	c.ink()
}

func (c *Canvas) disc(cx, cy, r float32) {
	c.z.Reset(c.opts.Width, c.opts.Height)
	for i := 0; i < capSegments; i++ {
		theta := 2 * math.Pi * float64(i) / capSegments
		x := cx + r*float32(math.Cos(theta))
		y := cy + r*float32(math.Sin(theta))
		if i == 0 {
			c.z.MoveTo(x, y)
		} else {
			c.z.LineTo(x, y)
		}
	}
	c.z.ClosePath()
	c.ink()
}

func (c *Canvas) ink() {
	c.z.DrawOp = draw.Over
	c.z.Draw(c.img.Gray, c.img.Bounds(), image.Black, image.Point{})
}

// Region returns a private copy of the drawing area, the bitmap handed to
// the recognition engine.
func (c *Canvas) Region() *imageutil.GrayImage {
	return c.img.Crop(image.Rect(0, 0, c.opts.Width, c.opts.DrawHeight))
}

// Image returns a copy of the whole canvas including the control strip.
func (c *Canvas) Image() *imageutil.GrayImage {
	return c.img.Clone()
}

// Clear resets the canvas to white paper.
func (c *Canvas) Clear() {
	c.img.Fill(255)
}
