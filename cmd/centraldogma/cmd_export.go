package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/centraldogma/internal/export"
)

func newExportCmd(e *env) *cobra.Command {
	var (
		partsCSV   string
		out        string
		fps        int
		background string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a whole simulation run as an animated GIF",
		Long: `Runs all ten stages on a simulated clock and writes every frame to an
animated GIF.

Example:
  centraldogma export --parts egfp,mrfp1 -o run.gif`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := resolveParts(e.parts, partsCSV)
			if err != nil {
				return err
			}
			if len(parts) == 0 {
				return errors.New("--parts is required")
			}
			if fps <= 0 {
				fps = e.cfg.Animation.FrameRate
			}
			fps = min(fps, export.MaxFrameRate)
			if out == "" {
				out = filepath.Join(e.cfg.Export.Dir, "centraldogma.gif")
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			stats, err := export.GIF(cmd.Context(), f, parts, export.GIFOptions{
				StageDuration: e.cfg.Animation.StageDuration,
				FrameRate:     fps,
				Scale:         e.cfg.Canvas.Scale,
				Background:    background,
				Logger:        e.log.Named("export"),
			})
			if err != nil {
				f.Close()
				os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %d stages\n", out, stats.Frames, stats.Stages)
			return nil
		},
	}
	cmd.Flags().StringVar(&partsCSV, "parts", "", "comma-separated parts (required)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output GIF path")
	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second (default config frame rate, at most 50)")
	cmd.Flags().StringVar(&background, "background", export.DefaultBackground, "background colour")
	return cmd
}
