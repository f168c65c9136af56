package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"mesalibre/internal/clock"
	"mesalibre/internal/db"
)

// JobStore is what the completion sweep needs from the ledger.
type JobStore interface {
	ConfirmedIDsPastSlot(ctx context.Context, now time.Time) ([]string, error)
	UpdateReservationStatuses(ctx context.Context, ids []string, newStatus string) (int64, error)
}

type JobService struct {
	repo  JobStore
	clock clock.Clock
}

func NewJobService(repo JobStore, clk clock.Clock) *JobService {
	return &JobService{repo: repo, clock: clk}
}

// CompleteFinishedReservations marks confirmed reservations whose seating
// time has passed as completed. Pure status transition; the rows stay in the
// ledger as history.
func (s *JobService) CompleteFinishedReservations(ctx context.Context) error {
	ids, err := s.repo.ConfirmedIDsPastSlot(ctx, s.clock.Now())
	if err != nil {
		return fmt.Errorf("sweep: find finished reservations: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	updated, err := s.repo.UpdateReservationStatuses(ctx, ids, db.StatusCompleted)
	if err != nil {
		return fmt.Errorf("sweep: mark reservations completed: %w", err)
	}
	log.Printf("Sweep: marked %d reservations as completed", updated)
	return nil
}
