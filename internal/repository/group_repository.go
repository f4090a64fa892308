package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/tour-operations/internal/model"
)

// GroupRepo provides CRUD operations for tour groups.  It carries
// both write paths the orchestrator tries when assigning a guide: a
// targeted prepared update and a lower-level raw statement executed
// on a dedicated connection.
type GroupRepo struct {
	db *sql.DB
}

// NewGroupRepo returns a new GroupRepo bound to the given database.
func NewGroupRepo(db *sql.DB) *GroupRepo { return &GroupRepo{db: db} }

// Create inserts a group at the given position.  A missing ID is
// generated.  Size and child count start from whatever the caller
// derived; the sync paths keep them current afterwards.
func (r *GroupRepo) Create(ctx context.Context, g *model.Group, position int) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	const q = `INSERT INTO tour_groups (id, tour_id, name, entry_time, guide_id, size, child_count, position)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, g.ID, g.TourID, g.Name, g.EntryTime, g.GuideID, g.Size, g.ChildCount, position)
	return err
}

// GetByID returns a single group with its participants.  ErrNotFound
// is returned when the group does not exist.
func (r *GroupRepo) GetByID(ctx context.Context, groupID string) (*model.Group, error) {
	const q = `SELECT id, tour_id, name, entry_time, guide_id, size, child_count
	           FROM tour_groups WHERE id = ?`
	var g model.Group
	var guideID sql.NullString
	err := r.db.QueryRowContext(ctx, q, groupID).Scan(
		&g.ID, &g.TourID, &g.Name, &g.EntryTime, &guideID, &g.Size, &g.ChildCount,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	g.GuideID = nullableString(guideID)

	const pq = `SELECT id, group_id, display_name, head_count, child_count, booking_ref
	            FROM participants WHERE group_id = ? ORDER BY display_name, id`
	rows, err := r.db.QueryContext(ctx, pq, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	g.Participants = []model.Participant{}
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Count, &p.ChildCount, &p.BookingRef); err != nil {
			return nil, err
		}
		g.Participants = append(g.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Update writes every mutable field of a group in one statement.
// The manual count fallback reads the current row first and merges
// its recomputed counts into it, then calls Update, so concurrent
// edits to name, guide or entry time are not clobbered by a blind
// counts-only overwrite.
func (r *GroupRepo) Update(ctx context.Context, g model.Group) error {
	const q = `UPDATE tour_groups
	           SET name = ?, entry_time = ?, guide_id = ?, size = ?, child_count = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, g.Name, g.EntryTime, g.GuideID, g.Size, g.ChildCount, g.ID)
	if err != nil {
		return err
	}
	return requireExisting(ctx, r.db, "tour_groups", g.ID, res)
}

// AssignGuideDirect is the preferred guide-assignment write: a single
// targeted update of the guide foreign key and the group's display
// name.
func (r *GroupRepo) AssignGuideDirect(ctx context.Context, groupID string, guideID *string, name string) error {
	const q = `UPDATE tour_groups SET guide_id = ?, name = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, guideID, name, groupID)
	if err != nil {
		return err
	}
	return requireExisting(ctx, r.db, "tour_groups", groupID, res)
}

// AssignGuideRaw performs the same write through a dedicated
// connection with an unprepared statement.  It exists as a second
// chance when the pooled prepared path fails in ways a fresh
// connection avoids (stale prepared statements, poisoned sessions).
func (r *GroupRepo) AssignGuideRaw(ctx context.Context, groupID string, guideID *string, name string) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	_, err = conn.ExecContext(ctx,
		`UPDATE tour_groups SET guide_id = ?, name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		guideID, name, groupID,
	)
	return err
}

// ClearGuide removes a dangling guide reference from a group.  Used
// by the self-healing path when a group points at a guide that no
// longer exists.
func (r *GroupRepo) ClearGuide(ctx context.Context, groupID string) error {
	const q = `UPDATE tour_groups SET guide_id = NULL WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, groupID)
	return err
}

// Delete removes a group.  Groups with participants still attached
// produce ErrConflict; move or delete the participants first.
func (r *GroupRepo) Delete(ctx context.Context, groupID string) error {
	var count int
	const checkQ = `SELECT COUNT(*) FROM participants WHERE group_id = ?`
	if err := r.db.QueryRowContext(ctx, checkQ, groupID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM tour_groups WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, groupID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
