package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"mesalibre/internal/db"
	"mesalibre/internal/entities"
)

type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(database *sql.DB) *AdminRepository {
	return &AdminRepository{DB: database}
}

// ListReservations returns the ledger filtered by optional date (YYYY-MM-DD)
// and status, ordered by date then slot, with the unfiltered total for
// pagination.
func (r *AdminRepository) ListReservations(ctx context.Context, date, status string, limit, offset int) ([]db.Reservation, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	idx := 1

	if date != "" {
		where += " AND date = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if status != "" {
		where += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM reservations" + where
	if err := chooseQuerier(ctx, r.DB).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	query := `
SELECT id, date, slot, party_size, name, email, phone, status, created_at, updated_at
FROM reservations` + where +
		" ORDER BY date ASC, slot ASC LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := chooseQuerier(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		err := rows.Scan(
			&res.ID, &res.Date, &res.Slot, &res.PartySize,
			&res.Name, &res.Email, &res.Phone, &res.Status,
			&res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, total, nil
}

// CancelReservation flips a confirmed reservation to cancelled. The freed
// seats become available immediately because occupancy only counts confirmed
// rows.
func (r *AdminRepository) CancelReservation(ctx context.Context, id string) error {
	const stmt = `
UPDATE reservations SET status = 'cancelled', updated_at = now()
WHERE id = $1 AND status = 'confirmed'`

	result, err := chooseQuerier(ctx, r.DB).ExecContext(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return entities.ErrReservationNotFound
		}
		return fmt.Errorf("cancel reservation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing changed: either the id is unknown or the row is not confirmed.
	var status string
	err = chooseQuerier(ctx, r.DB).QueryRowContext(ctx,
		`SELECT status FROM reservations WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrReservationNotFound
		}
		return fmt.Errorf("cancel reservation: %w", err)
	}
	return entities.ErrReservationNotCancellable
}
