package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/pipeline"
	"github.com/dgallion1/docmap/internal/render"
)

func buildCmd() *cobra.Command {
	var siteFile string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static documentation site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliLogger()
			cfg := config.Load()
			if projectDir != "" {
				cfg.ProjectDir = projectDir
			}
			if siteFile == "" {
				siteFile = cfg.SiteFile
			}

			job := pipeline.NewJob(cfg.ProjectDir, siteFile, outputDir)
			worker := pipeline.NewWorker(render.NewConverter(), log, cfg.CacheSize, cfg.MaxDepth, cfg.MaxConcurrentPages)
			worker.Process(context.Background(), job)

			snap := job.Snapshot()
			for _, e := range snap.Progress.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), "error:", e)
			}
			fmt.Printf("%s: %d/%d pages rendered to %s\n",
				snap.Status, snap.Progress.PagesRendered, snap.Progress.TotalPages, outputDir)

			if snap.Status != pipeline.StatusCompleted {
				return fmt.Errorf("build %s", snap.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&siteFile, "site", "s", "", "site file (default from DOCMAP_SITE_FILE)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "site", "output directory")

	return cmd
}
