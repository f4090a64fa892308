package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/tour-operations/internal/model"
)

// TourRepo provides CRUD operations for tours and assembles a tour
// together with its groups and participants.  Guide slots store both
// a denormalized display name and a nullable foreign key; legacy
// rows may carry only the name.  All timestamp fields are assumed to
// be stored in UTC.
type TourRepo struct {
	db *sql.DB
}

// NewTourRepo returns a new TourRepo bound to the given database.
func NewTourRepo(db *sql.DB) *TourRepo { return &TourRepo{db: db} }

// DB exposes the underlying handle for callers that need to open a
// transaction spanning several repositories.
func (r *TourRepo) DB() *sql.DB { return r.db }

// Create inserts a new tour.  A missing ID is generated.  Groups are
// not written here; use GroupRepo to add them.
func (r *TourRepo) Create(ctx context.Context, t *model.Tour) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `INSERT INTO tours
	           (id, tour_date, location, tour_type, start_time, reference_code,
	            guide1, guide2, guide3, guide1_id, guide2_id, guide3_id, high_season)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.Date, t.Location, t.TourType, t.StartTime, t.ReferenceCode,
		t.Guide1, t.Guide2, t.Guide3, t.Guide1ID, t.Guide2ID, t.Guide3ID, t.HighSeason,
	)
	return err
}

// GetByID returns a tour with its groups (position order) and every
// group's participants.  When the tour does not exist, ErrNotFound
// is returned.
func (r *TourRepo) GetByID(ctx context.Context, tourID string) (*model.Tour, error) {
	const q = `SELECT id, tour_date, location, tour_type, start_time, reference_code,
	                  guide1, guide2, guide3, guide1_id, guide2_id, guide3_id,
	                  high_season, created_at, updated_at
	           FROM tours WHERE id = ?`
	var t model.Tour
	var g1id, g2id, g3id sql.NullString
	err := r.db.QueryRowContext(ctx, q, tourID).Scan(
		&t.ID, &t.Date, &t.Location, &t.TourType, &t.StartTime, &t.ReferenceCode,
		&t.Guide1, &t.Guide2, &t.Guide3, &g1id, &g2id, &g3id,
		&t.HighSeason, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Guide1ID = nullableString(g1id)
	t.Guide2ID = nullableString(g2id)
	t.Guide3ID = nullableString(g3id)

	groups, err := r.loadGroups(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Groups = groups
	return &t, nil
}

// loadGroups fetches a tour's groups in position order and populates
// each group's participants with a single IN query.
func (r *TourRepo) loadGroups(ctx context.Context, tourID string) ([]model.Group, error) {
	const q = `SELECT id, tour_id, name, entry_time, guide_id, size, child_count
	           FROM tour_groups WHERE tour_id = ? ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, q, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]model.Group, 0)
	index := make(map[string]int)
	for rows.Next() {
		var g model.Group
		var guideID sql.NullString
		if err := rows.Scan(&g.ID, &g.TourID, &g.Name, &g.EntryTime, &guideID, &g.Size, &g.ChildCount); err != nil {
			return nil, err
		}
		g.GuideID = nullableString(guideID)
		g.Participants = []model.Participant{}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}

	// Populate participants for all groups in a single query.
	ids := make([]interface{}, 0, len(groups))
	placeholders := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
		placeholders = append(placeholders, "?")
	}
	pq := `SELECT id, group_id, display_name, head_count, child_count, booking_ref
	       FROM participants
	       WHERE group_id IN (` + strings.Join(placeholders, ",") + `)
	       ORDER BY group_id, display_name, id`
	prows, err := r.db.QueryContext(ctx, pq, ids...)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var p model.Participant
		if err := prows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Count, &p.ChildCount, &p.BookingRef); err != nil {
			return nil, err
		}
		idx, ok := index[p.GroupID]
		if !ok {
			continue
		}
		groups[idx].Participants = append(groups[idx].Participants, p)
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListByDate returns the tour rows scheduled for a date, ordered by
// start time.  Groups are not loaded; callers that need the full
// tour use GetByID.
func (r *TourRepo) ListByDate(ctx context.Context, date string) ([]model.Tour, error) {
	const q = `SELECT id, tour_date, location, tour_type, start_time, reference_code,
	                  guide1, guide2, guide3, guide1_id, guide2_id, guide3_id,
	                  high_season, created_at, updated_at
	           FROM tours WHERE tour_date = ? ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tours := make([]model.Tour, 0)
	for rows.Next() {
		var t model.Tour
		var g1id, g2id, g3id sql.NullString
		if err := rows.Scan(
			&t.ID, &t.Date, &t.Location, &t.TourType, &t.StartTime, &t.ReferenceCode,
			&t.Guide1, &t.Guide2, &t.Guide3, &g1id, &g2id, &g3id,
			&t.HighSeason, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Guide1ID = nullableString(g1id)
		t.Guide2ID = nullableString(g2id)
		t.Guide3ID = nullableString(g3id)
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tours, nil
}

// UpdateGuideSlots writes all three guide slots (names and foreign
// keys) in one statement.  The sweep uses this to backfill slots
// from group assignments.
func (r *TourRepo) UpdateGuideSlots(ctx context.Context, tourID string, ids [3]*string, names [3]string) error {
	const q = `UPDATE tours
	           SET guide1 = ?, guide2 = ?, guide3 = ?,
	               guide1_id = ?, guide2_id = ?, guide3_id = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, names[0], names[1], names[2], ids[0], ids[1], ids[2], tourID)
	if err != nil {
		return err
	}
	return requireExisting(ctx, r.db, "tours", tourID, res)
}

// SetHighSeason toggles the season flag.
func (r *TourRepo) SetHighSeason(ctx context.Context, tourID string, high bool) error {
	const q = `UPDATE tours SET high_season = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, high, tourID)
	if err != nil {
		return err
	}
	return requireExisting(ctx, r.db, "tours", tourID, res)
}

// SyncAllGroups invokes the server-side aggregate procedure that
// re-derives size and child_count for every group of a tour in a
// single round trip.  Privilege errors surface unchanged so callers
// can detect them and fall back to the manual path.
func (r *TourRepo) SyncAllGroups(ctx context.Context, tourID string) error {
	const q = `CALL sync_all_tour_groups(?)`
	_, err := r.db.ExecContext(ctx, q, tourID)
	return err
}

// Delete removes a tour.  Tours that still have groups produce
// ErrConflict; the dashboard deletes groups (and their participants)
// first so nothing is orphaned silently.
func (r *TourRepo) Delete(ctx context.Context, tourID string) error {
	var count int
	const checkQ = `SELECT COUNT(*) FROM tour_groups WHERE tour_id = ?`
	if err := r.db.QueryRowContext(ctx, checkQ, tourID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM tours WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, tourID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullableString converts a NullString into a *string.
func nullableString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// requireExisting distinguishes "row absent" from "row unchanged"
// after an UPDATE that affected nothing.  MySQL reports zero
// affected rows for both, so a cheap existence probe decides.
func requireExisting(ctx context.Context, db *sql.DB, table, id string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil || n > 0 {
		return nil
	}
	var one int
	q := `SELECT 1 FROM ` + table + ` WHERE id = ?`
	if err := db.QueryRowContext(ctx, q, id).Scan(&one); err == sql.ErrNoRows {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}
