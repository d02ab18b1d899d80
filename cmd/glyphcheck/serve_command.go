package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wbrown/glyphcheck/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recognition engine over HTTP",
		Args:  cobra.NoArgs,
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

			addr := ctx.config.Server.Bind
			if b := strings.TrimSpace(bind); b != "" {
				addr = b
			}
			srv := server.New(server.Options{
				Library:        lib,
				Engine:         engine,
				MaxUploadBytes: ctx.config.Server.MaxUploadBytes,
				MaxPixels:      ctx.config.Server.MaxPixels,
				Logger:         logger,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides config)")
	return cmd
}
