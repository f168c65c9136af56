package db

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Settings is the singleton capacity configuration (row id = 1).
type Settings struct {
	MaxCapacity    int
	AvailableSlots []string
	UpdatedAt      time.Time
}

// Reservation is one row of the booking ledger. Rows are never deleted;
// status transitions are the only mutation after insert.
type Reservation struct {
	ID        string
	Date      time.Time // calendar day, midnight UTC
	Slot      string    // canonical HH:MM
	PartySize int
	Name      string
	Email     string
	Phone     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
