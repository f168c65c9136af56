package service

import (
	"context"
	"fmt"
	"time"

	"mesalibre/internal/clock"
	"mesalibre/internal/db"
	"mesalibre/internal/entities"
	"mesalibre/internal/utils"
)

// AvailabilityStore is the read side of the reservation ledger.
type AvailabilityStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	SumConfirmed(ctx context.Context, date time.Time, slot string) (int, error)
	SlotOccupancies(ctx context.Context, date time.Time) (map[string]int, error)
	RangeOccupancies(ctx context.Context, from, to time.Time) (map[string]map[string]int, error)
}

// SettingsStore reads and writes the singleton capacity configuration.
type SettingsStore interface {
	Get(ctx context.Context) (db.Settings, error)
	Update(ctx context.Context, maxCapacity int, slots []string) error
}

// AvailabilityService answers the advisory availability questions the wizard
// asks before submitting. Every answer is a snapshot that may be stale by the
// time the guest acts on it; only the admission transaction is authoritative.
type AvailabilityService struct {
	store    AvailabilityStore
	settings SettingsStore
	clock    clock.Clock
}

func NewAvailabilityService(store AvailabilityStore, settings SettingsStore, clk clock.Clock) *AvailabilityService {
	return &AvailabilityService{store: store, settings: settings, clock: clk}
}

const maxRangeDays = 62

// remainingSeats is the unfloored remaining capacity. Callers floor it at
// zero for display; admission decisions compare against the raw value.
func remainingSeats(maxCapacity, occupied int) int {
	return maxCapacity - occupied
}

func displayRemaining(remaining int) int {
	if remaining < 0 {
		return 0
	}
	return remaining
}

func slotConfigured(slot string, configured []string) bool {
	for _, s := range configured {
		if s == slot {
			return true
		}
	}
	return false
}

// CheckSlot is the courtesy pre-submit check: can this party still fit?
func (s *AvailabilityService) CheckSlot(ctx context.Context, date time.Time, slot string, partySize int) (entities.SlotCheck, error) {
	var check entities.SlotCheck

	// Both reads happen in one transaction so the answer reflects a single
	// consistent snapshot. No locks are taken.
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		settings, err := s.settings.Get(txCtx)
		if err != nil {
			return err
		}
		occupied, err := s.store.SumConfirmed(txCtx, date, slot)
		if err != nil {
			return err
		}

		remaining := remainingSeats(settings.MaxCapacity, occupied)
		check.Remaining = displayRemaining(remaining)
		check.Admissible = partySize >= 1 &&
			partySize <= remaining &&
			slotConfigured(slot, settings.AvailableSlots) &&
			!date.Before(utils.DateOnly(s.clock.Now()))
		return nil
	})
	if err != nil {
		return entities.SlotCheck{}, fmt.Errorf("check slot: %w", err)
	}
	return check, nil
}

// ListAvailableSlots returns the slots of a date that can still admit the
// party, ordered ascending (available_slots is kept sorted on write).
func (s *AvailabilityService) ListAvailableSlots(ctx context.Context, date time.Time, partySize int) ([]entities.SlotAvailability, error) {
	if partySize < 1 {
		return []entities.SlotAvailability{}, nil
	}
	if date.Before(utils.DateOnly(s.clock.Now())) {
		return []entities.SlotAvailability{}, nil
	}

	available := []entities.SlotAvailability{}
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		settings, err := s.settings.Get(txCtx)
		if err != nil {
			return err
		}
		occupancies, err := s.store.SlotOccupancies(txCtx, date)
		if err != nil {
			return err
		}

		for _, slot := range settings.AvailableSlots {
			remaining := remainingSeats(settings.MaxCapacity, occupancies[slot])
			if partySize <= remaining {
				available = append(available, entities.SlotAvailability{
					Slot:      slot,
					Remaining: displayRemaining(remaining),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	return available, nil
}

// HasAnyAvailability tells the calendar whether to gray out a date.
func (s *AvailabilityService) HasAnyAvailability(ctx context.Context, date time.Time, partySize int) (bool, error) {
	slots, err := s.ListAvailableSlots(ctx, date, partySize)
	if err != nil {
		return false, err
	}
	return len(slots) > 0, nil
}

// AvailabilityRange answers the calendar grid for a span of dates in one
// round trip. Past dates come back unavailable.
func (s *AvailabilityService) AvailabilityRange(ctx context.Context, from, to time.Time, partySize int) ([]entities.DayAvailability, error) {
	if to.Before(from) {
		return nil, &entities.InvalidRequestError{Field: "to", Reason: "must not be before from"}
	}
	if int(to.Sub(from).Hours()/24)+1 > maxRangeDays {
		return nil, &entities.InvalidRequestError{Field: "to", Reason: fmt.Sprintf("range longer than %d days", maxRangeDays)}
	}

	today := utils.DateOnly(s.clock.Now())
	days := []entities.DayAvailability{}

	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		settings, err := s.settings.Get(txCtx)
		if err != nil {
			return err
		}
		occupancies, err := s.store.RangeOccupancies(txCtx, from, to)
		if err != nil {
			return err
		}

		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			key := day.Format(utils.DateLayout)
			available := false
			if partySize >= 1 && !day.Before(today) {
				for _, slot := range settings.AvailableSlots {
					if partySize <= remainingSeats(settings.MaxCapacity, occupancies[key][slot]) {
						available = true
						break
					}
				}
			}
			days = append(days, entities.DayAvailability{Date: key, Available: available})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("availability range: %w", err)
	}
	return days, nil
}
