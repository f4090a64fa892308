package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/tour-operations/internal/model"
)

// ParticipantRepo provides CRUD operations for participants.  A
// participant is a booking unit: one row may cover a whole family.
type ParticipantRepo struct {
	db *sql.DB
}

// NewParticipantRepo returns a new ParticipantRepo bound to the
// given database.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo { return &ParticipantRepo{db: db} }

// Create inserts a participant.  A missing ID is generated.
func (r *ParticipantRepo) Create(ctx context.Context, p *model.Participant) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	const q = `INSERT INTO participants (id, group_id, display_name, head_count, child_count, booking_ref)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.GroupID, p.Name, p.Count, p.ChildCount, p.BookingRef)
	return err
}

// GetByID returns a participant or ErrNotFound.
func (r *ParticipantRepo) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	const q = `SELECT id, group_id, display_name, head_count, child_count, booking_ref
	           FROM participants WHERE id = ?`
	var p model.Participant
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.GroupID, &p.Name, &p.Count, &p.ChildCount, &p.BookingRef)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update rewrites a participant's mutable fields.
func (r *ParticipantRepo) Update(ctx context.Context, p model.Participant) error {
	const q = `UPDATE participants
	           SET display_name = ?, head_count = ?, child_count = ?, booking_ref = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Count, p.ChildCount, p.BookingRef, p.ID)
	if err != nil {
		return err
	}
	return requireExisting(ctx, r.db, "participants", p.ID, res)
}

// Move reassigns a participant to another group.  The caller is
// responsible for re-syncing both groups' counts afterwards.
func (r *ParticipantRepo) Move(ctx context.Context, participantID, toGroupID string) error {
	const q = `UPDATE participants SET group_id = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, toGroupID, participantID)
	if err != nil {
		return err
	}
	return requireExisting(ctx, r.db, "participants", participantID, res)
}

// Delete removes a participant (a cancelled booking).
func (r *ParticipantRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM participants WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
