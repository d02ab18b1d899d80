package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wbrown/glyphcheck/imageutil"
)

// errVerdictsFailed makes the process exit non-zero after the verdicts have
// already been printed.
var errVerdictsFailed = errors.New("one or more drawings were not recognized")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <image>...",
		Short: "Score images of the drawing area against the templates",
		Args:  cobra.MinimumNArgs(1),
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

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := make([]labeledVerdict, 0, len(args))
			failed := 0
			for _, path := range args {
				raw, err := imageutil.LoadGray(path)
				if err != nil {
					return fmt.Errorf("read drawing %s: %w", path, err)
				}
				v := engine.Analyze(raw, lib)
				logger.Debug("analyzed drawing", "path", path, "character", v.ID, "score", v.Score)
				if !v.Pass {
					failed++
				}
				if asJSON {
					results = append(results, labeledVerdict{Source: path, Verdict: v})
					continue
				}
				label := ""
				if len(args) > 1 {
					label = filepath.Base(path)
				}
				fmt.Fprintln(out, formatVerdict(label, v, colorize))
			}

			if asJSON {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			}
			if failed > 0 {
				return errVerdictsFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print verdicts as JSON")
	return cmd
}
