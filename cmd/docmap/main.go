package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	projectDir string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "docmap",
		Short: "Documentation tree builder for Go projects",
		Long: `docmap builds navigable documentation trees from a project's
symbols and renders them as Markdown-backed HTML pages. Trees can be
printed, served over HTTP, exported to SQLite or built into a static
site from a docmap.yaml file.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "project directory (default from DOCMAP_PROJECT_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(pageCmd())
	rootCmd.AddCommand(treeCmd())
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliLogger logs human-readable output to stderr so command results on
// stdout stay clean.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
