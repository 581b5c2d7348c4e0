package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/inspect"
	"github.com/dgallion1/docmap/internal/storage"
)

func exportCmd() *cobra.Command {
	var depth int
	var dbPath string

	cmd := &cobra.Command{
		Use:   "export <symbol>...",
		Short: "Export documentation trees to a SQLite database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliLogger()
			cfg := config.Load()
			if projectDir != "" {
				cfg.ProjectDir = projectDir
			}
			if dbPath == "" {
				dbPath = cfg.DBPath
			}

			loader, err := inspect.Load(cfg.ProjectDir, log)
			if err != nil {
				return err
			}
			builder := doctree.NewBuilder(loader, doctree.NewCache(cfg.CacheSize), log)

			db, err := storage.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			total := int64(0)
			for _, symbol := range args {
				tree, err := builder.Build(symbol, depth)
				if err != nil {
					return err
				}
				count, err := db.InsertTree(tree)
				if err != nil {
					return fmt.Errorf("export %s: %w", symbol, err)
				}
				fmt.Printf("%s: %d nodes\n", symbol, count)
				total += count
			}

			fmt.Printf("exported %d nodes to %s\n", total, dbPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", doctree.Unlimited, "member depth limit, -1 for unlimited")
	cmd.Flags().StringVarP(&dbPath, "db", "d", "", "database path (default from DOCMAP_DB_PATH)")

	return cmd
}
