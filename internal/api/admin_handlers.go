package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mesalibre/internal/db"
	"mesalibre/internal/entities"
)

// AdminManager is what the dashboard needs: the ledger view, cancellation,
// and the capacity configuration.
type AdminManager interface {
	ListReservations(ctx context.Context, date, status string, limit, offset int) (*entities.ReservationsList, error)
	CancelReservation(ctx context.Context, id string) error
	GetSettings(ctx context.Context) (db.Settings, error)
	UpdateSettings(ctx context.Context, maxCapacity int, slots []string) (db.Settings, error)
}

type AdminHandler struct {
	Service AdminManager
}

func NewAdminHandler(svc AdminManager) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// GET /admin/reservations?date=&status=&limit=&offset=
func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	list, err := h.Service.ListReservations(r.Context(), query.Get("date"), query.Get("status"), limit, offset)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /admin/reservations/{id}/cancel
func (h *AdminHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.CancelReservation(r.Context(), id); err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled"})
}

// GET /admin/settings
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{
		MaxCapacity:    settings.MaxCapacity,
		AvailableSlots: settings.AvailableSlots,
	})
}

// PUT /admin/settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	settings, err := h.Service.UpdateSettings(r.Context(), req.MaxCapacity, req.AvailableSlots)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{
		MaxCapacity:    settings.MaxCapacity,
		AvailableSlots: settings.AvailableSlots,
	})
}
