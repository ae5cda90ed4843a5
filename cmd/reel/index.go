package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reel"
)

func indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Print the flattened story index of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			ix := reel.NewIndex(cat.Categories)
			printIndex(os.Stdout, ix, reel.NewImageResolver(0), cfg.FormFactor)
			return nil
		},
	}
}

func printIndex(out io.Writer, ix *reel.Index, images *reel.ImageResolver, ff reel.FormFactor) {
	if ix.Len() == 0 {
		fmt.Fprintln(out, "No entries.")
		return
	}
	for i := 0; i < ix.Len(); i++ {
		e, _ := ix.EntryAt(i)
		indent := ""
		if e.Kind == reel.EntryStory {
			indent = "  "
		}
		fmt.Fprintf(out, "%3d %s%s %q", i, indent, e.Key(), e.Name())
		if img := images.Resolve(e, ff); img != "" {
			fmt.Fprintf(out, " [%s]", img)
		}
		fmt.Fprintln(out)
	}
}
