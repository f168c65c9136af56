package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"mesalibre/internal/db"
	"mesalibre/internal/entities"
)

type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(database *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: database}
}

// Get reads the singleton configuration row. When called inside a
// transaction context it reads through that transaction, which is how the
// admission protocol gets a fresh value instead of a cached one.
func (r *SettingsRepository) Get(ctx context.Context) (db.Settings, error) {
	const query = `SELECT max_capacity, available_slots, updated_at FROM settings WHERE id = 1`

	var s db.Settings
	err := chooseQuerier(ctx, r.DB).QueryRowContext(ctx, query).
		Scan(&s.MaxCapacity, pq.Array(&s.AvailableSlots), &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return db.Settings{}, entities.ErrSettingsNotFound
		}
		return db.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, maxCapacity int, slots []string) error {
	const stmt = `UPDATE settings SET max_capacity = $1, available_slots = $2, updated_at = now() WHERE id = 1`

	result, err := chooseQuerier(ctx, r.DB).ExecContext(ctx, stmt, maxCapacity, pq.Array(slots))
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if affected == 0 {
		return entities.ErrSettingsNotFound
	}
	return nil
}
