package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/inspect"
	"github.com/dgallion1/docmap/internal/render"
)

func pageCmd() *cobra.Command {
	var depth int
	var headingLevel int
	var headless bool
	var markdown bool
	var outFile string

	cmd := &cobra.Command{
		Use:   "page <symbol>",
		Short: "Render the documentation page for a symbol",
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

			opts := render.Options{HeadingLevel: headingLevel, Headless: headless}
			var out string
			if markdown {
				out = render.ToMarkdown(tree, opts)
			} else {
				out, err = render.Page(tree, render.NewConverter(), opts)
				if err != nil {
					return err
				}
			}

			if outFile != "" {
				return os.WriteFile(outFile, []byte(out+"\n"), 0o644)
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", doctree.Unlimited, "member depth limit, -1 for unlimited")
	cmd.Flags().IntVar(&headingLevel, "heading-level", 1, "heading level for the root object, 0 disables")
	cmd.Flags().BoolVar(&headless, "headless", false, "omit the root object heading")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "emit intermediate Markdown instead of HTML")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")

	return cmd
}
