// Package config loads glyphcheck's TOML configuration.
//
// Values are resolved in order: repository defaults, the config file
// (~/.config/glyphcheck/config.toml unless a path is given), then the
// GLYPHCHECK_TEMPLATES_DIR and GLYPHCHECK_THRESHOLD environment variables.
// Command-line flags are applied on top by the CLI.
package config
