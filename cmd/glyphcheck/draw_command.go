package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wbrown/glyphcheck/canvas"
	"github.com/wbrown/glyphcheck/imageutil"
)

func newDrawCommand(ctx *commandContext) *cobra.Command {
	var savePath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "draw <strokes.yaml>",
		Short: "Replay recorded pen strokes on the canvas and score the drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.logger(cmd.ErrOrStderr())
			lib, err := ctx.loadLibrary(cmd.Context(), logger)
			if err != nil {
				return err
			}
			engine, err := ctx.engine()
			if err != nil {
				return err
			}

			strokes, err := canvas.LoadStrokes(args[0])
			if err != nil {
				return err
			}
			c, err := canvas.New(ctx.canvasOptions())
			if err != nil {
				return err
			}
			c.Replay(strokes)

			region := c.Region()
			if path := strings.TrimSpace(savePath); path != "" {
				if err := imageutil.SaveGrayImage(region, path); err != nil {
					return fmt.Errorf("save drawing: %w", err)
				}
				logger.Info("saved drawing", "path", path)
			}

			v := engine.Analyze(region, lib)
			c.Clear()

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, labeledVerdict{Source: args[0], Verdict: v}); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, formatVerdict("", v, shouldColorize(out)))
			}
			if !v.Pass {
				return errVerdictsFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "Write the drawing area to this PNG file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the verdict as JSON")
	return cmd
}
