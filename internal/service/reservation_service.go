package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mesalibre/internal/clock"
	"mesalibre/internal/db"
	"mesalibre/internal/entities"
	"mesalibre/internal/utils"
)

// ReservationStore is the write side of the ledger used by the admission
// protocol, plus the guest lookup.
type ReservationStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockSlot(ctx context.Context, date time.Time, slot string) error
	SumConfirmed(ctx context.Context, date time.Time, slot string) (int, error)
	Create(ctx context.Context, res *db.Reservation) error
	GetByIDAndEmail(ctx context.Context, id, email string) (*db.Reservation, error)
}

// Notifier delivers the confirmation messages after a successful admission.
type Notifier interface {
	SendReservationEmail(res entities.ReservationResponse, status string)
	SendReservationSMS(res entities.ReservationResponse, status string)
}

type ReservationService struct {
	store    ReservationStore
	settings SettingsStore
	sender   Notifier
	clock    clock.Clock
}

func NewReservationService(store ReservationStore, settings SettingsStore, sender Notifier, clk clock.Clock) *ReservationService {
	return &ReservationService{store: store, settings: settings, sender: sender, clock: clk}
}

// CreateReservation is the admission protocol. The capacity check and the
// insert run in one transaction holding the (date, slot) advisory lock, so
// two parties racing for the last seats serialize and the sum of admitted
// party sizes never exceeds max_capacity. Admissions on other keys proceed
// in parallel.
func (s *ReservationService) CreateReservation(ctx context.Context, req entities.ReservationRequest) (*db.Reservation, error) {
	date, slot, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reservation := &db.Reservation{
		ID:        uuid.NewString(),
		Date:      date,
		Slot:      slot,
		PartySize: req.PartySize,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Status:    db.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.store.LockSlot(txCtx, date, slot); err != nil {
			return err
		}

		// Settings are re-read inside the transaction on every admission.
		// A cached capacity value could admit against a stale limit.
		settings, err := s.settings.Get(txCtx)
		if err != nil {
			return err
		}
		if !slotConfigured(slot, settings.AvailableSlots) {
			return &entities.InvalidRequestError{Field: "slot", Reason: "not offered"}
		}

		occupied, err := s.store.SumConfirmed(txCtx, date, slot)
		if err != nil {
			return err
		}
		remaining := remainingSeats(settings.MaxCapacity, occupied)
		if req.PartySize > remaining {
			return &entities.CapacityExceededError{Remaining: displayRemaining(remaining)}
		}

		return s.store.Create(txCtx, reservation)
	})
	if err != nil {
		return nil, err
	}

	logAdmission(reservation)

	if s.sender != nil {
		resp := ToReservationResponse(reservation)
		s.sender.SendReservationEmail(resp, db.StatusConfirmed)
		s.sender.SendReservationSMS(resp, db.StatusConfirmed)
	}

	return reservation, nil
}

// GetReservation is the guest lookup by id and matching email.
func (s *ReservationService) GetReservation(ctx context.Context, id, email string) (*db.Reservation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &entities.InvalidRequestError{Field: "id", Reason: "required"}
	}
	if strings.TrimSpace(email) == "" {
		return nil, &entities.InvalidRequestError{Field: "email", Reason: "required"}
	}
	return s.store.GetByIDAndEmail(ctx, id, email)
}

func (s *ReservationService) validateRequest(req entities.ReservationRequest) (time.Time, string, error) {
	if req.PartySize < 1 {
		return time.Time{}, "", &entities.InvalidRequestError{Field: "party_size", Reason: "must be at least 1"}
	}
	if strings.TrimSpace(req.Name) == "" {
		return time.Time{}, "", &entities.InvalidRequestError{Field: "name", Reason: "required"}
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return time.Time{}, "", &entities.InvalidRequestError{Field: "email", Reason: "required"}
	}
	if !utils.ValidEmail(email) {
		return time.Time{}, "", &entities.InvalidRequestError{Field: "email", Reason: "not a valid address"}
	}
	if strings.TrimSpace(req.Phone) == "" {
		return time.Time{}, "", &entities.InvalidRequestError{Field: "phone", Reason: "required"}
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, "", &entities.InvalidRequestError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	if date.Before(utils.DateOnly(s.clock.Now())) {
		return time.Time{}, "", &entities.InvalidRequestError{Field: "date", Reason: "already in the past"}
	}

	slot, err := utils.NormalizeSlot(req.Slot)
	if err != nil {
		return time.Time{}, "", &entities.InvalidRequestError{Field: "slot", Reason: "expected HH:MM"}
	}

	return date, slot, nil
}

// ToReservationResponse converts a ledger row to its API shape.
func ToReservationResponse(res *db.Reservation) entities.ReservationResponse {
	return entities.ReservationResponse{
		ID:        res.ID,
		Date:      res.Date.Format(utils.DateLayout),
		Slot:      res.Slot,
		PartySize: res.PartySize,
		Name:      res.Name,
		Email:     res.Email,
		Phone:     res.Phone,
		Status:    res.Status,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

func logAdmission(res *db.Reservation) {
	log.Printf("Reservation %s confirmed: %d guests on %s at %s",
		res.ID, res.PartySize, res.Date.Format(utils.DateLayout), res.Slot)
}
