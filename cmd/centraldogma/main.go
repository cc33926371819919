// Command centraldogma animates the Central Dogma of molecular biology for a
// chosen set of coding sequences.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/config"
	"github.com/jask/centraldogma/internal/database"
	"github.com/jask/centraldogma/internal/logging"
	"github.com/jask/centraldogma/internal/tui"
)

// env is the state every subcommand shares once the root pre-run has loaded
// configuration and the parts registry.
type env struct {
	configPath string
	cfg        config.Config
	log        *zap.Logger
	parts      []catalog.Part
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "centraldogma",
		Short: "Animate DNA → RNA → protein for your plasmid",
		Long: `centraldogma walks through the ten stages of gene expression, from the
DNA double helix to a folded, glowing fluorescent protein.

Run without arguments to start the interactive simulator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := tui.New(e.cfg, e.parts, e.log.Named("tui"))
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default $CENTRALDOGMA_CONFIG or ~/.config/centraldogma/config.toml)")

	root.AddCommand(
		newPartsCmd(e),
		newRenderCmd(e),
		newExportCmd(e),
		newPlayCmd(e),
	)
	return root
}

func (e *env) load(ctx context.Context) error {
	path := e.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	parts, err := database.LoadRegistry(ctx, cfg.Database.Path, cfg.CatalogParts())
	if err != nil {
		return fmt.Errorf("parts registry: %w", err)
	}
	logger.Debug("registry loaded", zap.String("db", cfg.Database.Path), zap.Int("parts", len(parts)))
	e.cfg, e.log, e.parts = cfg, logger, parts
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
