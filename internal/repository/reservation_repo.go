package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mesalibre/internal/db"
	"mesalibre/internal/entities"
	"mesalibre/internal/utils"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.DB, fn)
}

// LockSlot serializes admissions on a single (date, slot) key for the rest of
// the current transaction. Unrelated keys hash to different advisory locks,
// so they never block each other. Must be called inside WithTx.
func (r *ReservationRepository) LockSlot(ctx context.Context, date time.Time, slot string) error {
	key := date.Format(utils.DateLayout) + "|" + slot
	if _, err := chooseQuerier(ctx, r.DB).ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1)::bigint)`, key); err != nil {
		return fmt.Errorf("lock slot %s: %w", key, err)
	}
	return nil
}

// SumConfirmed computes occupancy(date, slot): the seats taken by confirmed
// reservations only. Cancelled and completed rows free their capacity by
// falling out of this sum.
func (r *ReservationRepository) SumConfirmed(ctx context.Context, date time.Time, slot string) (int, error) {
	const query = `
SELECT COALESCE(SUM(party_size), 0)
FROM reservations
WHERE date = $1 AND slot = $2 AND status = 'confirmed'`

	var total int
	if err := chooseQuerier(ctx, r.DB).QueryRowContext(ctx, query, date, slot).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum confirmed: %w", err)
	}
	return total, nil
}

// SlotOccupancies returns occupancy per slot for one date. Slots with no
// confirmed reservations are simply absent from the map.
func (r *ReservationRepository) SlotOccupancies(ctx context.Context, date time.Time) (map[string]int, error) {
	const query = `
SELECT slot, SUM(party_size)
FROM reservations
WHERE date = $1 AND status = 'confirmed'
GROUP BY slot`

	rows, err := chooseQuerier(ctx, r.DB).QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("slot occupancies: %w", err)
	}
	defer rows.Close()

	occupancies := make(map[string]int)
	for rows.Next() {
		var slot string
		var taken int
		if err := rows.Scan(&slot, &taken); err != nil {
			return nil, fmt.Errorf("scan slot occupancy: %w", err)
		}
		occupancies[slot] = taken
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("slot occupancies: %w", err)
	}
	return occupancies, nil
}

// RangeOccupancies returns occupancy per slot for every date in [from, to],
// keyed by YYYY-MM-DD. One query backs the whole calendar grid.
func (r *ReservationRepository) RangeOccupancies(ctx context.Context, from, to time.Time) (map[string]map[string]int, error) {
	const query = `
SELECT date, slot, SUM(party_size)
FROM reservations
WHERE date BETWEEN $1 AND $2 AND status = 'confirmed'
GROUP BY date, slot`

	rows, err := chooseQuerier(ctx, r.DB).QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("range occupancies: %w", err)
	}
	defer rows.Close()

	occupancies := make(map[string]map[string]int)
	for rows.Next() {
		var date time.Time
		var slot string
		var taken int
		if err := rows.Scan(&date, &slot, &taken); err != nil {
			return nil, fmt.Errorf("scan range occupancy: %w", err)
		}
		day := date.Format(utils.DateLayout)
		if occupancies[day] == nil {
			occupancies[day] = make(map[string]int)
		}
		occupancies[day][slot] = taken
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("range occupancies: %w", err)
	}
	return occupancies, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *db.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, date, slot, party_size, name, email, phone, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at`

	err := chooseQuerier(ctx, r.DB).QueryRowContext(ctx, stmt,
		res.ID,
		res.Date,
		res.Slot,
		res.PartySize,
		res.Name,
		res.Email,
		res.Phone,
		res.Status,
		res.CreatedAt,
		res.UpdatedAt,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*db.Reservation, error) {
	const query = `
SELECT id, date, slot, party_size, name, email, phone, status, created_at, updated_at
FROM reservations
WHERE id = $1`

	return r.scanOne(chooseQuerier(ctx, r.DB).QueryRowContext(ctx, query, id))
}

// GetByIDAndEmail is the guest self-service lookup; requiring the matching
// email keeps reservation ids from being enumerable into contact details.
func (r *ReservationRepository) GetByIDAndEmail(ctx context.Context, id, email string) (*db.Reservation, error) {
	const query = `
SELECT id, date, slot, party_size, name, email, phone, status, created_at, updated_at
FROM reservations
WHERE id = $1 AND email = $2`

	return r.scanOne(chooseQuerier(ctx, r.DB).QueryRowContext(ctx, query, id, email))
}

func (r *ReservationRepository) scanOne(row *sql.Row) (*db.Reservation, error) {
	var res db.Reservation
	err := row.Scan(
		&res.ID, &res.Date, &res.Slot, &res.PartySize,
		&res.Name, &res.Email, &res.Phone, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, entities.ErrReservationNotFound
		}
		return nil, fmt.Errorf("query reservation: %w", err)
	}
	return &res, nil
}
