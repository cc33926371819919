package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/centraldogma/internal/catalog"
)

// PartRepo handles the parts registry.
type PartRepo struct {
	db *sql.DB
}

func NewPartRepo(db *sql.DB) *PartRepo {
	return &PartRepo{db: db}
}

func (r *PartRepo) Upsert(ctx context.Context, p catalog.Part, sortOrder int) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO parts(id, short_name, full_name, color, description, sort_order)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 short_name=excluded.short_name,
	 full_name=excluded.full_name,
	 color=excluded.color,
	 description=excluded.description,
	 sort_order=excluded.sort_order,
	 updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.ShortName, p.FullName, p.ColorHex, p.Description, sortOrder)
	return err
}

func (r *PartRepo) List(ctx context.Context) ([]catalog.Part, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, short_name, full_name, color, description FROM parts ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []catalog.Part
	for rows.Next() {
		var p catalog.Part
		if err := rows.Scan(&p.ID, &p.ShortName, &p.FullName, &p.ColorHex, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PartRepo) Get(ctx context.Context, id string) (catalog.Part, error) {
	var p catalog.Part
	err := r.db.QueryRowContext(ctx, `SELECT id, short_name, full_name, color, description FROM parts WHERE id = ?`, id).
		Scan(&p.ID, &p.ShortName, &p.FullName, &p.ColorHex, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Part{}, fmt.Errorf("%s: %w", id, catalog.ErrUnknownPart)
	}
	return p, err
}

func (r *PartRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM parts WHERE id = ?`, id)
	return err
}
