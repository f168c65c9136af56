package service

import (
	"context"

	"mesalibre/internal/db"
	"mesalibre/internal/entities"
	"mesalibre/internal/utils"
)

// AdminStore covers the administrative ledger operations.
type AdminStore interface {
	ListReservations(ctx context.Context, date, status string, limit, offset int) ([]db.Reservation, int64, error)
	CancelReservation(ctx context.Context, id string) error
}

type AdminService struct {
	adminRepo AdminStore
	settings  SettingsStore
}

func NewAdminService(adminRepo AdminStore, settings SettingsStore) *AdminService {
	return &AdminService{adminRepo: adminRepo, settings: settings}
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func (s *AdminService) ListReservations(ctx context.Context, date, status string, limit, offset int) (*entities.ReservationsList, error) {
	if date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			return nil, &entities.InvalidRequestError{Field: "date", Reason: "expected YYYY-MM-DD"}
		}
	}
	switch status {
	case "", db.StatusConfirmed, db.StatusCancelled, db.StatusCompleted:
	default:
		return nil, &entities.InvalidRequestError{Field: "status", Reason: "unknown status"}
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	reservations, total, err := s.adminRepo.ListReservations(ctx, date, status, limit, offset)
	if err != nil {
		return nil, err
	}

	list := &entities.ReservationsList{
		Total:        total,
		Limit:        limit,
		Offset:       offset,
		Reservations: make([]entities.ReservationResponse, 0, len(reservations)),
	}
	for i := range reservations {
		list.Reservations = append(list.Reservations, ToReservationResponse(&reservations[i]))
	}
	return list, nil
}

// CancelReservation performs the confirmed -> cancelled transition. The row
// stays in the ledger as history; its seats free up immediately.
func (s *AdminService) CancelReservation(ctx context.Context, id string) error {
	return s.adminRepo.CancelReservation(ctx, id)
}

func (s *AdminService) GetSettings(ctx context.Context) (db.Settings, error) {
	return s.settings.Get(ctx)
}

// UpdateSettings replaces the capacity configuration. Existing confirmed
// reservations are never touched, even when capacity drops below a slot's
// current occupancy or a slot disappears from the offer; they simply keep
// blocking admissions for their key until they free up.
func (s *AdminService) UpdateSettings(ctx context.Context, maxCapacity int, slots []string) (db.Settings, error) {
	if maxCapacity < 1 {
		return db.Settings{}, &entities.InvalidRequestError{Field: "max_capacity", Reason: "must be positive"}
	}
	if len(slots) == 0 {
		return db.Settings{}, &entities.InvalidRequestError{Field: "available_slots", Reason: "at least one slot required"}
	}
	normalized, err := utils.NormalizeSlots(slots)
	if err != nil {
		return db.Settings{}, &entities.InvalidRequestError{Field: "available_slots", Reason: err.Error()}
	}

	if err := s.settings.Update(ctx, maxCapacity, normalized); err != nil {
		return db.Settings{}, err
	}
	return s.settings.Get(ctx)
}
