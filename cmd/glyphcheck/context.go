package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/wbrown/glyphcheck"
	"github.com/wbrown/glyphcheck/canvas"
	"github.com/wbrown/glyphcheck/imageutil"
	"github.com/wbrown/glyphcheck/internal/config"
	"github.com/wbrown/glyphcheck/internal/logging"
)

type globalFlags struct {
	config    string
	templates string
	threshold float64
	metric    string
	logLevel  string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies flag overrides.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		c.configPath = path

		pf := cmd.Flags()
		if pf.Changed("templates") {
			dir, err := config.ExpandPath(c.flags.templates)
			if err != nil {
				c.configErr = err
				return
			}
			cfg.Templates.Dir = dir
		}
		if pf.Changed("threshold") {
			cfg.Recognition.Threshold = c.flags.threshold
		}
		if pf.Changed("metric") {
			cfg.Recognition.Metric = strings.ToLower(strings.TrimSpace(c.flags.metric))
		}
		if pf.Changed("log-level") {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(c.flags.logLevel))
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) *slog.Logger {
	logger, err := logging.NewFromConfig(c.config, w)
	if err != nil {
		return logging.Discard()
	}
	return logger
}

func (c *commandContext) normalizer() (glyphcheck.Normalizer, error) {
	interp, err := imageutil.ParseInterpolation(c.config.Recognition.Interpolation)
	if err != nil {
		return glyphcheck.Normalizer{}, err
	}
	return glyphcheck.Normalizer{
		Resolution:    c.config.Recognition.Resolution,
		Interpolation: interp,
		BlurPasses:    c.config.Recognition.BlurPasses,
	}, nil
}

// loadLibrary reads the configured template directory. An unreadable
// directory is reported as an error; individual bad files are only logged.
func (c *commandContext) loadLibrary(ctx context.Context, logger *slog.Logger) (*glyphcheck.Library, error) {
	norm, err := c.normalizer()
	if err != nil {
		return nil, err
	}
	lib, err := glyphcheck.LoadLibrary(ctx, c.config.Templates.Dir, glyphcheck.LoadOptions{
		Extensions: c.config.Templates.Extensions,
		Normalizer: norm,
		Logger:     logger,
	})
	if err != nil {
		return lib, err
	}
	if lib.Len() == 0 {
		return lib, fmt.Errorf("%w in %s", glyphcheck.ErrNoTemplates, c.config.Templates.Dir)
	}
	return lib, nil
}

func (c *commandContext) engine() (*glyphcheck.Engine, error) {
	return glyphcheck.NewEngine(c.config.Recognition.Metric, c.config.Recognition.Threshold)
}

func (c *commandContext) canvasOptions() canvas.Options {
	v := c.config.Canvas
	return canvas.Options{
		Width:       v.Width,
		Height:      v.Height,
		DrawHeight:  v.DrawHeight,
		InkLimit:    v.InkLimit,
		StrokeWidth: v.StrokeWidth,
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
