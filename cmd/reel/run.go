package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/reel/display"
)

func runCmd() *cobra.Command {
	var (
		width, height int
		screenshots   string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open an interactive window over the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			// The catalog arrives like a completed fetch: after the engine
			// is already running.
			s.engine.QueueSource(s.catalog.Categories)
			return display.Run(s.engine, display.RunConfig{
				Title:         "reel",
				Width:         width,
				Height:        height,
				ScreenshotDir: screenshots,
				Logger:        s.logger,
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 480, "window width")
	cmd.Flags().IntVar(&height, "height", 800, "window height")
	cmd.Flags().StringVar(&screenshots, "screenshots", "screenshots", "directory for screenshots taken with P")
	return cmd
}
