package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/tour-operations/internal/model"
)

// TicketRequirementRepo persists the cached ticket requirement
// aggregate per tour.  The table is a read-through cache, never the
// source of truth; Upsert overwrites whatever was there.
type TicketRequirementRepo struct {
	db *sql.DB
}

// NewTicketRequirementRepo returns a new repo bound to the given
// database.
func NewTicketRequirementRepo(db *sql.DB) *TicketRequirementRepo {
	return &TicketRequirementRepo{db: db}
}

// Upsert looks up the existing record for the tour, updates it when
// found and inserts otherwise.  UpdatedAt is stamped here.
func (r *TicketRequirementRepo) Upsert(ctx context.Context, req model.TicketRequirement) error {
	req.UpdatedAt = time.Now().UTC()

	const checkQ = `SELECT tour_id FROM ticket_requirements WHERE tour_id = ?`
	var existing string
	err := r.db.QueryRowContext(ctx, checkQ, req.TourID).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		const ins = `INSERT INTO ticket_requirements
		             (tour_id, participant_adults, participant_children,
		              guide_adult_tickets, guide_child_tickets, total, updated_at)
		             VALUES (?, ?, ?, ?, ?, ?, ?)`
		_, err = r.db.ExecContext(ctx, ins,
			req.TourID, req.ParticipantAdults, req.ParticipantChildren,
			req.GuideAdultTickets, req.GuideChildTickets, req.Total, req.UpdatedAt,
		)
		return err
	case err != nil:
		return err
	}

	const upd = `UPDATE ticket_requirements
	             SET participant_adults = ?, participant_children = ?,
	                 guide_adult_tickets = ?, guide_child_tickets = ?,
	                 total = ?, updated_at = ?
	             WHERE tour_id = ?`
	_, err = r.db.ExecContext(ctx, upd,
		req.ParticipantAdults, req.ParticipantChildren,
		req.GuideAdultTickets, req.GuideChildTickets,
		req.Total, req.UpdatedAt, req.TourID,
	)
	return err
}

// GetByTour returns the cached aggregate for a tour or ErrNotFound.
func (r *TicketRequirementRepo) GetByTour(ctx context.Context, tourID string) (*model.TicketRequirement, error) {
	const q = `SELECT tour_id, participant_adults, participant_children,
	                  guide_adult_tickets, guide_child_tickets, total, updated_at
	           FROM ticket_requirements WHERE tour_id = ?`
	var req model.TicketRequirement
	err := r.db.QueryRowContext(ctx, q, tourID).Scan(
		&req.TourID, &req.ParticipantAdults, &req.ParticipantChildren,
		&req.GuideAdultTickets, &req.GuideChildTickets, &req.Total, &req.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
