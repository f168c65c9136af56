package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// ConfirmedIDsPastSlot finds confirmed reservations whose seating instant
// (date + slot) is already behind now.
func (r *JobRepository) ConfirmedIDsPastSlot(ctx context.Context, now time.Time) ([]string, error) {
	const query = `
SELECT id FROM reservations
WHERE status = 'confirmed' AND (date + slot::time) < $1`

	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("query confirmed reservations past slot: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan reservation id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation ids: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) UpdateReservationStatuses(ctx context.Context, ids []string, newStatus string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const stmt = `UPDATE reservations SET status = $1, updated_at = now() WHERE id = ANY($2::uuid[])`
	result, err := r.DB.ExecContext(ctx, stmt, newStatus, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("update reservation statuses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}
