package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docmap/internal/api"
	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/inspect"
	"github.com/dgallion1/docmap/internal/pipeline"
	"github.com/dgallion1/docmap/internal/render"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve documentation trees over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

			cfg := config.Load()
			if projectDir != "" {
				cfg.ProjectDir = projectDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			loader, err := inspect.Load(cfg.ProjectDir, log)
			if err != nil {
				return err
			}

			builder := doctree.NewBuilder(loader, doctree.NewCache(cfg.CacheSize), log)
			conv := render.NewConverter()

			orch := pipeline.NewOrchestrator(cfg, conv, log)
			orch.Start(ctx)

			srv := api.NewServer(builder, loader, orch, conv, log, cfg)

			httpServer := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown.
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				log.Info("shutting down...")

				orch.Stop()

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			log.Info("starting docmap", "port", cfg.Port, "project", cfg.ProjectDir)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
