package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-projectform/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Serve the project page over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			orch, fm, err := a.pipeline(ctx)
			if err != nil {
				return err
			}
			srv, err := server.New(a.cfg, orch, fm, a.logger)
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "port to serve on")
	cmd.Flags().String("host", "localhost", "host to bind to")
	cmd.Flags().Bool("csrf", true, "require a CSRF token on submit")
	a.mustBindFlags(cmd.Flags(), map[string]string{
		"server.port": "port",
		"server.host": "host",
		"server.csrf": "csrf",
	})
	return cmd
}
