package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesalibre/internal/db"
	"mesalibre/internal/entities"
)

type stubAdminManager struct {
	list     *entities.ReservationsList
	settings db.Settings
	err      error

	cancelled   []string
	gotCapacity int
	gotSlots    []string
}

func (s *stubAdminManager) ListReservations(_ context.Context, _, _ string, _, _ int) (*entities.ReservationsList, error) {
	return s.list, s.err
}

func (s *stubAdminManager) CancelReservation(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.cancelled = append(s.cancelled, id)
	return nil
}

func (s *stubAdminManager) GetSettings(_ context.Context) (db.Settings, error) {
	return s.settings, s.err
}

func (s *stubAdminManager) UpdateSettings(_ context.Context, maxCapacity int, slots []string) (db.Settings, error) {
	if s.err != nil {
		return db.Settings{}, s.err
	}
	s.gotCapacity, s.gotSlots = maxCapacity, slots
	return db.Settings{MaxCapacity: maxCapacity, AvailableSlots: slots}, nil
}

func doAdminRequest(t *testing.T, h *AdminHandler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/admin/reservations", h.ListReservations).Methods("GET")
	r.HandleFunc("/admin/reservations/{id}/cancel", h.CancelReservation).Methods("POST")
	r.HandleFunc("/admin/settings", h.GetSettings).Methods("GET")
	r.HandleFunc("/admin/settings", h.UpdateSettings).Methods("PUT")

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAdminListReservations(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := NewAdminHandler(&stubAdminManager{list: &entities.ReservationsList{
			Total: 1,
			Limit: 50,
			Reservations: []entities.ReservationResponse{
				{ID: "res-1", Date: "2025-06-20", Slot: "20:00", Status: db.StatusConfirmed},
			},
		}})
		rec := doAdminRequest(t, h, "GET", "/admin/reservations?date=2025-06-20", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var list entities.ReservationsList
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Equal(t, int64(1), list.Total)
		assert.Len(t, list.Reservations, 1)
	})

	t.Run("invalid filter maps to 422", func(t *testing.T) {
		h := NewAdminHandler(&stubAdminManager{err: &entities.InvalidRequestError{Field: "status", Reason: "unknown status"}})
		rec := doAdminRequest(t, h, "GET", "/admin/reservations?status=pending", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAdminCancelReservation(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		stub := &stubAdminManager{}
		rec := doAdminRequest(t, NewAdminHandler(stub), "POST", "/admin/reservations/res-1/cancel", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"res-1"}, stub.cancelled)
	})

	t.Run("not found", func(t *testing.T) {
		h := NewAdminHandler(&stubAdminManager{err: entities.ErrReservationNotFound})
		rec := doAdminRequest(t, h, "POST", "/admin/reservations/unknown/cancel", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("already cancelled maps to 409", func(t *testing.T) {
		h := NewAdminHandler(&stubAdminManager{err: entities.ErrReservationNotCancellable})
		rec := doAdminRequest(t, h, "POST", "/admin/reservations/res-1/cancel", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAdminSettings(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		h := NewAdminHandler(&stubAdminManager{settings: db.Settings{
			MaxCapacity:    40,
			AvailableSlots: []string{"12:00", "20:00"},
		}})
		rec := doAdminRequest(t, h, "GET", "/admin/settings", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SettingsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 40, resp.MaxCapacity)
		assert.Equal(t, []string{"12:00", "20:00"}, resp.AvailableSlots)
	})

	t.Run("update", func(t *testing.T) {
		stub := &stubAdminManager{}
		rec := doAdminRequest(t, NewAdminHandler(stub), "PUT", "/admin/settings",
			`{"max_capacity":25,"available_slots":["12:00","21:30"]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 25, stub.gotCapacity)
		assert.Equal(t, []string{"12:00", "21:30"}, stub.gotSlots)
	})

	t.Run("update with invalid capacity maps to 422", func(t *testing.T) {
		h := NewAdminHandler(&stubAdminManager{err: &entities.InvalidRequestError{Field: "max_capacity", Reason: "must be positive"}})
		rec := doAdminRequest(t, h, "PUT", "/admin/settings", `{"max_capacity":0,"available_slots":["12:00"]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("update with malformed body", func(t *testing.T) {
		rec := doAdminRequest(t, NewAdminHandler(&stubAdminManager{}), "PUT", "/admin/settings", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
