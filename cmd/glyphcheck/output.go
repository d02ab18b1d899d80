package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/wbrown/glyphcheck"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// formatVerdict renders one line per verdict, e.g.
// "✔ CORRECT (character 中, similarity 0.87)". Terminals get color.
func formatVerdict(label string, v glyphcheck.Verdict, colorize bool) string {
	mark := "✘"
	color := ansiRed
	if v.Pass {
		mark = "✔"
		color = ansiGreen
	}
	line := fmt.Sprintf("%s %s", mark, v)
	if colorize {
		line = color + line + ansiReset
	}
	if label != "" {
		return fmt.Sprintf("%s: %s", label, line)
	}
	return line
}

type labeledVerdict struct {
	Source  string             `json:"source"`
	Verdict glyphcheck.Verdict `json:"verdict"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
