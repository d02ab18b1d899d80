package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Templates describes where reference images are read from.
type Templates struct {
	Dir        string   `toml:"dir"`
	Extensions []string `toml:"extensions"`
}

// Recognition contains the tunable knobs of the recognition engine.
type Recognition struct {
	// Threshold is the similarity a drawing must strictly exceed. Default: 0.20
	Threshold float64 `toml:"threshold"`
	// Resolution is the side of the square all bitmaps are compared at. Default: 200
	Resolution    int    `toml:"resolution"`
	Metric        string `toml:"metric"`
	Interpolation string `toml:"interpolation"`
	BlurPasses    int    `toml:"blur_passes"`
}

// Canvas contains the drawing surface geometry.
type Canvas struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	DrawHeight  int     `toml:"draw_height"`
	InkLimit    int     `toml:"ink_limit"`
	StrokeWidth float64 `toml:"stroke_width"`
}

// Server contains the HTTP surface settings.
type Server struct {
	Bind           string `toml:"bind"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`
	MaxPixels      int64  `toml:"max_pixels"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for glyphcheck.
type Config struct {
	Templates   Templates   `toml:"templates"`
	Recognition Recognition `toml:"recognition"`
	Canvas      Canvas      `toml:"canvas"`
	Server      Server      `toml:"server"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/glyphcheck/config.toml")
}

// Load locates, parses, and validates a configuration file. An empty path
// selects the default location. A missing file is not an error: defaults
// apply and exists reports false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved := path
	if resolved == "" {
		var err error
		resolved, err = DefaultConfigPath()
		if err != nil {
			return nil, "", false, err
		}
	} else {
		var err error
		resolved, err = ExpandPath(resolved)
		if err != nil {
			return nil, "", false, err
		}
	}

	exists := false
	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		exists = true
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, resolved, true, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == "":
	default:
		return nil, resolved, false, fmt.Errorf("read config %s: %w", resolved, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, resolved, exists, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, resolved, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolved, exists, err
	}
	return &cfg, resolved, exists, nil
}

// SampleConfig returns a commented configuration file with default values.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to path, replacing any
// existing file.
func CreateSample(path string) error {
	resolved, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", resolved, err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

func (c *Config) applyEnv() error {
	if dir := strings.TrimSpace(os.Getenv("GLYPHCHECK_TEMPLATES_DIR")); dir != "" {
		c.Templates.Dir = dir
	}
	if raw := strings.TrimSpace(os.Getenv("GLYPHCHECK_THRESHOLD")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("GLYPHCHECK_THRESHOLD: %w", err)
		}
		c.Recognition.Threshold = v
	}
	return nil
}

func (c *Config) normalize() error {
	dir, err := ExpandPath(c.Templates.Dir)
	if err != nil {
		return err
	}
	c.Templates.Dir = dir

	exts := make([]string, 0, len(c.Templates.Extensions))
	for _, ext := range c.Templates.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Templates.Extensions = exts

	c.Recognition.Metric = strings.ToLower(strings.TrimSpace(c.Recognition.Metric))
	c.Recognition.Interpolation = strings.ToLower(strings.TrimSpace(c.Recognition.Interpolation))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// ExpandPath expands a leading ~ and cleans the path.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
