//go:build gocv

package main

import (
	_ "github.com/wbrown/glyphcheck/gocvmatch" // Register the opencv metric
)
