package db

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	max_capacity INTEGER NOT NULL CHECK (max_capacity > 0),
	available_slots TEXT[] NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reservations (
	id UUID PRIMARY KEY,
	date DATE NOT NULL,
	slot TEXT NOT NULL,
	party_size INTEGER NOT NULL CHECK (party_size >= 1),
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('confirmed', 'cancelled', 'completed')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reservations_date_slot_status ON reservations(date, slot, status);

CREATE TABLE IF NOT EXISTS admins (
	id SERIAL PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// seedSettingsSQL inserts the default configuration once: 40 covers and the
// usual lunch/dinner services. Admins change it through the settings endpoint.
const seedSettingsSQL = `
INSERT INTO settings (id, max_capacity, available_slots)
VALUES (1, 40, ARRAY['12:00', '13:30', '20:00', '21:30'])
ON CONFLICT (id) DO NOTHING;
`

const migrationLockID int64 = 511230917

// Migrate creates the schema and seed data. Safe to run on every startup;
// a session advisory lock keeps concurrent instances from racing each other,
// so everything runs on one pinned connection.
func Migrate(ctx context.Context, database *sql.DB) error {
	conn, err := database.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire migration conn: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationLockID); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationLockID)
	}()

	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := conn.ExecContext(ctx, seedSettingsSQL); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
