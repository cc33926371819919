// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/centraldogma/internal/config"
)

// New returns a JSON logger appending to cfg.Path. An empty path disables
// logging.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}

	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		l, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{cfg.Path}
	zc.ErrorOutputPaths = []string{cfg.Path}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
