// Command glyphcheck checks hand-drawn characters against a directory of
// reference images.
//
// Usage:
//
//	glyphcheck check drawing.png           # score an image of the drawing area
//	glyphcheck draw strokes.yaml           # replay pen strokes on the canvas, then score
//	glyphcheck serve                       # expose POST /analyze over HTTP
//	glyphcheck templates list              # show loaded reference characters
//	glyphcheck templates render --font f.ttf --chars 中人大 --out templates
//	glyphcheck config init                 # write ~/.config/glyphcheck/config.toml
//
// Global flags --templates, --threshold and --metric override the
// configuration file.
package main
