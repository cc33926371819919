package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/database/repository"
)

// SeedDefaults upserts the catalog parts in order. It is idempotent and safe
// to run on every startup; configured parts replace earlier rows with the
// same id.
func SeedDefaults(ctx context.Context, db *sql.DB, parts []catalog.Part) error {
	repo := repository.NewPartRepo(db)
	for idx, p := range parts {
		if err := repo.Upsert(ctx, p, idx); err != nil {
			return fmt.Errorf("seed %s: %w", p.ID, err)
		}
	}
	return nil
}
