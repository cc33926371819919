package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/frameloop"
	"github.com/jask/centraldogma/internal/render"
	"github.com/jask/centraldogma/internal/sequencer"
)

func newPlayCmd(e *env) *cobra.Command {
	var partsCSV string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the simulation in plain text mode",
		Long: `Runs the simulation in real time without the interactive interface,
printing each stage as it begins. Interrupt to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := resolveParts(e.parts, partsCSV)
			if err != nil {
				return err
			}
			if len(parts) == 0 {
				return fmt.Errorf("--parts is required")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			seq := sequencer.New(
				sequencer.WithStageDuration(e.cfg.Animation.StageDuration),
				sequencer.WithLogger(e.log.Named("sequencer")),
				sequencer.WithObserver(sequencer.Hooks{
					OnStageComplete: func(stage int) {
						if next, ok := catalog.StageAt(stage + 1); ok {
							printStage(out, next)
						}
					},
					OnSimulationComplete: func(parts []catalog.Part) {
						fmt.Fprintf(out, "Simulation Complete! %s\n", catalog.ExpressedMessage(parts))
					},
				}),
			)
			// The recorder stands in for a canvas; play only reports progress.
			surface := render.NewRecorder()

			first, _ := catalog.StageAt(0)
			seq.Start(parts)
			printStage(out, first)

			ticker := frameloop.NewTicker(e.cfg.Animation.FrameRate)
			ticker.Start(ctx, func(time.Time) bool {
				seq.Tick(surface)
				return seq.Phase() != sequencer.Idle
			})
			_ = ticker.Wait(ctx)
			ticker.Stop()
			if ctx.Err() != nil && seq.Phase() != sequencer.Idle {
				seq.Reset()
				fmt.Fprintln(out, "Simulation Reset")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&partsCSV, "parts", "", "comma-separated parts (required)")
	return cmd
}

func printStage(w io.Writer, s catalog.Stage) {
	fmt.Fprintf(w, "Step %d/%d: %s - %s\n", s.Index+1, catalog.StageCount, s.Title, s.Description)
}
