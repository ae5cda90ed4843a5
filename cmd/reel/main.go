package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "reel",
		Short: "Stories-style carousel engine: interactive viewer and scripted replays",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	root.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "stories.yaml", "catalog file (YAML or JSON)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "engine config file (YAML); defaults apply when empty")
	root.PersistentFlags().StringVar(&country, "country", "", "only show stories available in this country")
	root.AddCommand(runCmd())
	root.AddCommand(indexCmd())
	root.AddCommand(replayCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
