package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/database/repository"
)

// LoadRegistry migrates and seeds the parts registry at path with parts, then
// returns the registry contents in display order.
func LoadRegistry(ctx context.Context, path string, parts []catalog.Part) ([]catalog.Part, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		return nil, err
	}
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := SeedDefaults(ctx, db, parts); err != nil {
		return nil, err
	}
	list, err := repository.NewPartRepo(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return list, nil
}
