package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/tour-operations/internal/model"
)

// TicketBucketRepo manages pools of pre-purchased tickets for
// attractions with limited capacity.  Allocation is compared against
// the computed ticket requirement when scheduling tours.
type TicketBucketRepo struct {
	db *sql.DB
}

// NewTicketBucketRepo returns a new repo bound to the given database.
func NewTicketBucketRepo(db *sql.DB) *TicketBucketRepo { return &TicketBucketRepo{db: db} }

// Create inserts a bucket.  A missing ID is generated.
func (r *TicketBucketRepo) Create(ctx context.Context, b *model.TicketBucket) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	const q = `INSERT INTO ticket_buckets (id, attraction, bucket_date, capacity, allocated)
	           VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.Attraction, b.Date, b.Capacity, b.Allocated)
	return err
}

// ListByDate returns every bucket for a date ordered by attraction.
func (r *TicketBucketRepo) ListByDate(ctx context.Context, date string) ([]model.TicketBucket, error) {
	const q = `SELECT id, attraction, bucket_date, capacity, allocated, created_at, updated_at
	           FROM ticket_buckets WHERE bucket_date = ? ORDER BY attraction, id`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]model.TicketBucket, 0)
	for rows.Next() {
		var b model.TicketBucket
		if err := rows.Scan(&b.ID, &b.Attraction, &b.Date, &b.Capacity, &b.Allocated, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buckets, nil
}

// GetFor returns the bucket for an attraction on a date, or
// ErrNotFound when no pool was bought for that day.
func (r *TicketBucketRepo) GetFor(ctx context.Context, attraction, date string) (*model.TicketBucket, error) {
	const q = `SELECT id, attraction, bucket_date, capacity, allocated, created_at, updated_at
	           FROM ticket_buckets WHERE attraction = ? AND bucket_date = ?`
	var b model.TicketBucket
	err := r.db.QueryRowContext(ctx, q, attraction, date).Scan(
		&b.ID, &b.Attraction, &b.Date, &b.Capacity, &b.Allocated, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Allocate adds n tickets to the bucket's allocated count, rejecting
// the write with ErrConflict when it would exceed capacity.  The
// guard lives in the statement so two concurrent allocations cannot
// both slip under the cap.
func (r *TicketBucketRepo) Allocate(ctx context.Context, bucketID string, n int) error {
	const q = `UPDATE ticket_buckets
	           SET allocated = allocated + ?
	           WHERE id = ? AND allocated + ? <= capacity`
	res, err := r.db.ExecContext(ctx, q, n, bucketID, n)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the bucket is missing or the pool is exhausted.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM ticket_buckets WHERE id = ?`, bucketID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// Release returns n tickets to the bucket, clamping at zero.
func (r *TicketBucketRepo) Release(ctx context.Context, bucketID string, n int) error {
	const q = `UPDATE ticket_buckets
	           SET allocated = CASE WHEN allocated > ? THEN allocated - ? ELSE 0 END
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, n, n, bucketID)
	if err != nil {
		return err
	}
	return requireExisting(ctx, r.db, "ticket_buckets", bucketID, res)
}
