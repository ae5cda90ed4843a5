package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reel"
)

// maxReplayFrames bounds a replay whose script never finishes.
const maxReplayFrames = 100000

func replayCmd() *cobra.Command {
	var (
		scriptPath string
		tps        int
		tail       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run a scripted session headlessly and print every event",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(scriptPath)
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}
			runner, err := reel.LoadTestScript(data)
			if err != nil {
				return err
			}
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.engine.Close()
			s.engine.SetSource(s.catalog.Categories)
			layoutSurfaces(s.engine)
			return replay(os.Stdout, s.engine, runner, tps, tail)
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "test script (JSON or YAML)")
	cmd.Flags().IntVar(&tps, "tps", 60, "simulated frames per second")
	cmd.Flags().DurationVar(&tail, "tail", 0, "keep running this long after the script finishes")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

// layoutSurfaces registers a fixed 480x800 layout: a strip of 80px icons, the
// expanded list rows, and a full-screen viewer.
func layoutSurfaces(e *reel.Engine) {
	n := e.Index().Len()
	strip := &reel.Viewport{
		Bounds:       reel.HitRect{Width: 480, Height: 110},
		ContentWidth: float64(12 + n*92),
	}
	for i := 0; i < n; i++ {
		e.AddSurface(&reel.Surface{
			ID:       fmt.Sprintf("strip/%d", i),
			Region:   reel.RegionStrip,
			Bounds:   reel.HitRect{X: float64(12 + i*92), Y: 12, Width: 80, Height: 80},
			Entry:    i,
			Viewport: strip,
		})
		e.AddSurface(&reel.Surface{
			ID:     fmt.Sprintf("list/%d", i),
			Region: reel.RegionList,
			Bounds: reel.HitRect{X: 24, Y: float64(150 + i*24), Width: 432, Height: 22},
			Entry:  i,
		})
	}
	e.AddSurface(&reel.Surface{
		ID:     "viewer",
		Region: reel.RegionViewer,
		Bounds: reel.HitRect{Width: 480, Height: 800},
		Entry:  reel.CursorEmpty,
	})
}

func replay(out io.Writer, e *reel.Engine, runner *reel.TestRunner, tps int, tail time.Duration) error {
	if tps <= 0 {
		return fmt.Errorf("tps must be positive")
	}
	frame := time.Second / time.Duration(tps)
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start

	printEvent := func(ev reel.Event) {
		elapsed := now.Sub(start).Round(time.Millisecond)
		switch ev.Type {
		case reel.EventGesture:
			fmt.Fprintf(out, "%8s %-14s %s %s target=%s\n", elapsed, ev.Type, ev.Gesture.Kind, ev.Gesture.Direction, ev.Gesture.Target)
		case reel.EventViewerClosed:
			fmt.Fprintf(out, "%8s %-14s %s reason=%s\n", elapsed, ev.Type, ev.Key, ev.Reason)
		default:
			fmt.Fprintf(out, "%8s %-14s %s cursor=%d\n", elapsed, ev.Type, ev.Key, ev.Cursor)
		}
	}
	e.OnGesture(printEvent)
	e.OnStorySelected(printEvent)
	e.OnViewerClosed(printEvent)
	e.OnCursorChanged(printEvent)

	e.SetTestRunner(runner)
	for i := 0; i < maxReplayFrames && !runner.Done(); i++ {
		e.Update(now)
		now = now.Add(frame)
	}
	if !runner.Done() {
		return fmt.Errorf("script did not finish within %d frames", maxReplayFrames)
	}
	for end := now.Add(tail); now.Before(end); now = now.Add(frame) {
		e.Update(now)
	}
	return nil
}
