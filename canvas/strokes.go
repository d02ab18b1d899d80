package canvas

import (
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a recorded drawing: a list of strokes, each a list of [x, y]
// pointer positions.
//
//	strokes:
//	  - [[100, 120], [100, 280]]
//	  - [[60, 200], [340, 200]]
type Script struct {
	Strokes [][][]int `yaml:"strokes"`
}

// ParseStrokes decodes a YAML stroke script.
func ParseStrokes(data []byte) ([][]image.Point, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse strokes: %w", err)
	}

	strokes := make([][]image.Point, 0, len(script.Strokes))
	for i, raw := range script.Strokes {
		stroke := make([]image.Point, 0, len(raw))
		for j, xy := range raw {
			if len(xy) != 2 {
				return nil, fmt.Errorf("stroke %d point %d: want [x, y], got %v", i, j, xy)
			}
			stroke = append(stroke, image.Point{X: xy[0], Y: xy[1]})
		}
		strokes = append(strokes, stroke)
	}
	return strokes, nil
}

// LoadStrokes reads a YAML stroke script from path.
func LoadStrokes(path string) ([][]image.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strokes: %w", err)
	}
	return ParseStrokes(data)
}

// Replay draws every stroke onto c in order.
func (c *Canvas) Replay(strokes [][]image.Point) {
	for _, s := range strokes {
		c.Stroke(s)
	}
}
