package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesalibre/internal/db"
	"mesalibre/internal/entities"
)

type fakeAdminStore struct {
	reservations []db.Reservation
	total        int64
	lastLimit    int
	lastOffset   int
	lastDate     string
	lastStatus   string

	cancelErr error
	cancelled []string
}

func (f *fakeAdminStore) ListReservations(_ context.Context, date, status string, limit, offset int) ([]db.Reservation, int64, error) {
	f.lastDate, f.lastStatus, f.lastLimit, f.lastOffset = date, status, limit, offset
	return f.reservations, f.total, nil
}

func (f *fakeAdminStore) CancelReservation(_ context.Context, id string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func TestAdminService_ListReservations(t *testing.T) {
	t.Run("clamps paging to defaults", func(t *testing.T) {
		store := &fakeAdminStore{total: 3}
		svc := NewAdminService(store, newFakeStore(10, []string{"20:00"}))

		list, err := svc.ListReservations(context.Background(), "", "", 0, -5)
		require.NoError(t, err)
		assert.Equal(t, defaultListLimit, store.lastLimit)
		assert.Equal(t, 0, store.lastOffset)
		assert.Equal(t, int64(3), list.Total)

		_, err = svc.ListReservations(context.Background(), "", "", 10_000, 0)
		require.NoError(t, err)
		assert.Equal(t, defaultListLimit, store.lastLimit)
	})

	t.Run("rejects malformed date filter", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminStore{}, newFakeStore(10, []string{"20:00"}))

		_, err := svc.ListReservations(context.Background(), "junio 20", "", 0, 0)
		var invErr *entities.InvalidRequestError
		require.ErrorAs(t, err, &invErr)
		assert.Equal(t, "date", invErr.Field)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminStore{}, newFakeStore(10, []string{"20:00"}))

		_, err := svc.ListReservations(context.Background(), "", "pending", 0, 0)
		var invErr *entities.InvalidRequestError
		require.ErrorAs(t, err, &invErr)
		assert.Equal(t, "status", invErr.Field)
	})

	t.Run("passes filters through", func(t *testing.T) {
		store := &fakeAdminStore{}
		svc := NewAdminService(store, newFakeStore(10, []string{"20:00"}))

		_, err := svc.ListReservations(context.Background(), "2025-06-20", db.StatusCancelled, 25, 50)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-20", store.lastDate)
		assert.Equal(t, db.StatusCancelled, store.lastStatus)
		assert.Equal(t, 25, store.lastLimit)
		assert.Equal(t, 50, store.lastOffset)
	})
}

func TestAdminService_CancelReservation(t *testing.T) {
	t.Run("delegates to store", func(t *testing.T) {
		store := &fakeAdminStore{}
		svc := NewAdminService(store, newFakeStore(10, []string{"20:00"}))

		require.NoError(t, svc.CancelReservation(context.Background(), "some-id"))
		assert.Equal(t, []string{"some-id"}, store.cancelled)
	})

	t.Run("not cancellable propagates", func(t *testing.T) {
		store := &fakeAdminStore{cancelErr: entities.ErrReservationNotCancellable}
		svc := NewAdminService(store, newFakeStore(10, []string{"20:00"}))

		err := svc.CancelReservation(context.Background(), "some-id")
		assert.ErrorIs(t, err, entities.ErrReservationNotCancellable)
	})
}

func TestAdminService_UpdateSettings(t *testing.T) {
	t.Run("normalizes and persists slots", func(t *testing.T) {
		settings := newFakeStore(10, []string{"20:00"})
		svc := NewAdminService(&fakeAdminStore{}, settings)

		updated, err := svc.UpdateSettings(context.Background(), 30, []string{"21:30", "9:00", "21:30", "12:00"})
		require.NoError(t, err)
		assert.Equal(t, 30, updated.MaxCapacity)
		assert.Equal(t, []string{"09:00", "12:00", "21:30"}, updated.AvailableSlots)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminStore{}, newFakeStore(10, []string{"20:00"}))

		_, err := svc.UpdateSettings(context.Background(), 0, []string{"20:00"})
		var invErr *entities.InvalidRequestError
		require.ErrorAs(t, err, &invErr)
		assert.Equal(t, "max_capacity", invErr.Field)
	})

	t.Run("rejects empty slot list", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminStore{}, newFakeStore(10, []string{"20:00"}))

		_, err := svc.UpdateSettings(context.Background(), 10, nil)
		var invErr *entities.InvalidRequestError
		require.ErrorAs(t, err, &invErr)
		assert.Equal(t, "available_slots", invErr.Field)
	})

	t.Run("rejects malformed slot", func(t *testing.T) {
		svc := NewAdminService(&fakeAdminStore{}, newFakeStore(10, []string{"20:00"}))

		_, err := svc.UpdateSettings(context.Background(), 10, []string{"20:00", "dinner"})
		var invErr *entities.InvalidRequestError
		require.ErrorAs(t, err, &invErr)
		assert.Equal(t, "available_slots", invErr.Field)
	})
}
