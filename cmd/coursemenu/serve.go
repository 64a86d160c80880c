package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/mchmarny/coursemenu/pkg/menu"
	"github.com/mchmarny/coursemenu/pkg/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port        int
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the course catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// fail fast, nothing is served from a partial catalog
			c, err := loadCatalog(catalogPath)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			slog.Info("starting coursemenu", "commit", commit, "date", date, "catalog", catalogPath)

			return menu.New(c, version).Run(ctx, server.WithPort(port))
		},
	}

	cmd.Flags().IntVar(&port, "port", envIntOrDefault(envVarPort, server.DefaultPort), "port to listen on")
	cmd.Flags().StringVar(&catalogPath, "catalog", envOrDefault(envVarCatalog, ""), "catalog document to serve instead of the built-in one")

	return cmd
}
