package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wbrown/glyphcheck"
	"github.com/wbrown/glyphcheck/internal/config"
)

func newTemplatesCommand(ctx *commandContext) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect and generate reference templates",
	}

	templatesCmd.AddCommand(newTemplatesListCommand(ctx))
	templatesCmd.AddCommand(newTemplatesRenderCommand(ctx))

	return templatesCmd
}

func newTemplatesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the characters found in the template directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.logger(cmd.ErrOrStderr())
			lib, err := ctx.loadLibrary(cmd.Context(), logger)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, lib.Len())
			for i, t := range lib.Entries() {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					t.ID.String(),
					fmt.Sprintf("U+%04X", []rune(t.ID.String())[0]),
					yesNo(glyphcheck.IsRecognizedScript(t.ID)),
					t.Source,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"#", "Character", "Code point", "CJK", "Source"}, rows, 1))
			fmt.Fprintf(out, "%d templates at %dx%d from %s\n", lib.Len(), lib.Resolution(), lib.Resolution(), ctx.config.Templates.Dir)

			if skipped := lib.Skipped(); len(skipped) > 0 {
				rows := make([][]string, 0, len(skipped))
				for _, d := range skipped {
					rows = append(rows, []string{d.Path, d.Err.Error()})
				}
				fmt.Fprintln(out, renderTable([]string{"Skipped", "Reason"}, rows))
			}
			return nil
		},
	}
}

func newTemplatesRenderCommand(ctx *commandContext) *cobra.Command {
	var fontPath string
	var chars string
	var outDir string
	var size int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render template images for characters from a TrueType font",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(fontPath) == "" {
				return fmt.Errorf("--font is required")
			}
			if strings.TrimSpace(chars) == "" {
				return fmt.Errorf("--chars is required")
			}
			dir := strings.TrimSpace(outDir)
			if dir == "" {
				dir = ctx.config.Templates.Dir
			} else {
				expanded, err := config.ExpandPath(dir)
				if err != nil {
					return err
				}
				dir = expanded
			}
			if size <= 0 {
				size = ctx.config.Recognition.Resolution
			}

			ttf, err := glyphcheck.LoadFont(fontPath)
			if err != nil {
				return err
			}
			written, missing, err := glyphcheck.RenderTemplates(ttf, chars, size, dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d templates to %s\n", len(written), dir)
			if len(missing) > 0 {
				fmt.Fprintf(out, "Font has no glyph for: %s\n", string(missing))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fontPath, "font", "", "TrueType font file")
	cmd.Flags().StringVar(&chars, "chars", "", "Characters to render")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (defaults to the template directory)")
	cmd.Flags().IntVar(&size, "size", 0, "Image size in pixels (defaults to the comparison resolution)")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
