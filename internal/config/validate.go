package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wbrown/glyphcheck"
	"github.com/wbrown/glyphcheck/imageutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTemplates(); err != nil {
		return err
	}
	if err := c.validateRecognition(); err != nil {
		return err
	}
	if err := c.validateCanvas(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTemplates() error {
	if strings.TrimSpace(c.Templates.Dir) == "" {
		return errors.New("templates.dir must be set")
	}
	if len(c.Templates.Extensions) == 0 {
		return errors.New("templates.extensions must list at least one extension")
	}
	return nil
}

func (c *Config) validateRecognition() error {
	r := c.Recognition
	if math.IsNaN(r.Threshold) || r.Threshold < -1 || r.Threshold > 1 {
		return fmt.Errorf("recognition.threshold must be between -1 and 1, got %v", r.Threshold)
	}
	if r.Resolution < 8 {
		return fmt.Errorf("recognition.resolution must be at least 8, got %d", r.Resolution)
	}
	if _, err := glyphcheck.NewScorer(r.Metric); err != nil {
		return fmt.Errorf("recognition.metric: %w", err)
	}
	if _, err := imageutil.ParseInterpolation(r.Interpolation); err != nil {
		return fmt.Errorf("recognition.interpolation: %w", err)
	}
	if r.BlurPasses < 0 {
		return errors.New("recognition.blur_passes must not be negative")
	}
	return nil
}

func (c *Config) validateCanvas() error {
	v := c.Canvas
	if v.Width <= 0 || v.Height <= 0 {
		return errors.New("canvas.width and canvas.height must be positive")
	}
	if v.DrawHeight <= 0 || v.DrawHeight > v.Height {
		return errors.New("canvas.draw_height must be positive and no larger than canvas.height")
	}
	if v.InkLimit < v.DrawHeight || v.InkLimit > v.Height {
		return errors.New("canvas.ink_limit must lie between canvas.draw_height and canvas.height")
	}
	if v.StrokeWidth < 1 {
		return errors.New("canvas.stroke_width must be at least 1")
	}
	return nil
}

func (c *Config) validateServer() error {
	if strings.TrimSpace(c.Server.Bind) == "" {
		return errors.New("server.bind must be set")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return errors.New("server.max_upload_bytes must be positive")
	}
	if c.Server.MaxPixels <= 0 {
		return errors.New("server.max_pixels must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
