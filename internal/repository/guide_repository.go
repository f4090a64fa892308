package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tour-operations/internal/model"
)

// GuideRepo reads the guide directory.  Guides are managed by a
// separate staffing system; this service only needs the read side.
type GuideRepo struct {
	db *sql.DB
}

// NewGuideRepo returns a new GuideRepo bound to the given database.
func NewGuideRepo(db *sql.DB) *GuideRepo { return &GuideRepo{db: db} }

// List returns every guide ordered by name.
func (r *GuideRepo) List(ctx context.Context) ([]model.Guide, error) {
	const q = `SELECT id, name, guide_type, COALESCE(birthday, '') FROM guides ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guides := make([]model.Guide, 0)
	for rows.Next() {
		var g model.Guide
		if err := rows.Scan(&g.ID, &g.Name, &g.GuideType, &g.Birthday); err != nil {
			return nil, err
		}
		guides = append(guides, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guides, nil
}

// GetByID returns a single guide or ErrNotFound.
func (r *GuideRepo) GetByID(ctx context.Context, id string) (*model.Guide, error) {
	const q = `SELECT id, name, guide_type, COALESCE(birthday, '') FROM guides WHERE id = ?`
	var g model.Guide
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name, &g.GuideType, &g.Birthday)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
