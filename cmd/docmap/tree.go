package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/display"
	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/inspect"
)

func treeCmd() *cobra.Command {
	var depth int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree <symbol>",
		Short: "Print the documentation tree for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliLogger()
			cfg := config.Load()
			if projectDir != "" {
				cfg.ProjectDir = projectDir
			}

			loader, err := inspect.Load(cfg.ProjectDir, log)
			if err != nil {
				return err
			}
			builder := doctree.NewBuilder(loader, doctree.NewCache(cfg.CacheSize), log)

			tree, err := builder.Build(args[0], depth)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(tree)
			}

			fmt.Print(display.FormatTree(tree))
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", doctree.Unlimited, "member depth limit, -1 for unlimited")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the tree as JSON")

	return cmd
}
