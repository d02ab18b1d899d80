package config

const (
	defaultTemplatesDir      = "templates"
	defaultTemplateExtension = ".png"
	defaultThreshold         = 0.20
	defaultResolution        = 200
	defaultMetric            = "ccoeff_normed"
	defaultInterpolation     = "linear"
	defaultCanvasWidth       = 400
	defaultCanvasHeight      = 450
	defaultCanvasDrawHeight  = 400
	defaultCanvasInkLimit    = 410
	defaultStrokeWidth       = 15
	defaultServerBind        = "127.0.0.1:7480"
	defaultMaxUploadBytes    = 4 << 20
	defaultMaxPixels         = 4096 * 4096
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Templates: Templates{
			Dir:        defaultTemplatesDir,
			Extensions: []string{defaultTemplateExtension},
		},
		Recognition: Recognition{
			Threshold:     defaultThreshold,
			Resolution:    defaultResolution,
			Metric:        defaultMetric,
			Interpolation: defaultInterpolation,
		},
		Canvas: Canvas{
			Width:       defaultCanvasWidth,
			Height:      defaultCanvasHeight,
			DrawHeight:  defaultCanvasDrawHeight,
			InkLimit:    defaultCanvasInkLimit,
			StrokeWidth: defaultStrokeWidth,
		},
		Server: Server{
			Bind:           defaultServerBind,
			MaxUploadBytes: defaultMaxUploadBytes,
			MaxPixels:      defaultMaxPixels,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
