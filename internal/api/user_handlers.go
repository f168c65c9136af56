package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"mesalibre/internal/db"
	"mesalibre/internal/entities"
	apperrors "mesalibre/internal/errors"
	"mesalibre/internal/utils"
)

// AvailabilityChecker is the advisory read side consumed by the wizard.
type AvailabilityChecker interface {
	CheckSlot(ctx context.Context, date time.Time, slot string, partySize int) (entities.SlotCheck, error)
	ListAvailableSlots(ctx context.Context, date time.Time, partySize int) ([]entities.SlotAvailability, error)
	HasAnyAvailability(ctx context.Context, date time.Time, partySize int) (bool, error)
	AvailabilityRange(ctx context.Context, from, to time.Time, partySize int) ([]entities.DayAvailability, error)
}

// ReservationAdmitter is the authoritative admission entry point plus the
// guest lookup.
type ReservationAdmitter interface {
	CreateReservation(ctx context.Context, req entities.ReservationRequest) (*db.Reservation, error)
	GetReservation(ctx context.Context, id, email string) (*db.Reservation, error)
}

type UserReservationHandler struct {
	Availability AvailabilityChecker
	Reservations ReservationAdmitter
}

func NewUserReservationHandler(availability AvailabilityChecker, reservations ReservationAdmitter) *UserReservationHandler {
	return &UserReservationHandler{Availability: availability, Reservations: reservations}
}

// GET /api/availability?date=YYYY-MM-DD&party_size=N
func (h *UserReservationHandler) HasAnyAvailability(w http.ResponseWriter, r *http.Request) {
	date, partySize, ok := dateAndPartySize(w, r)
	if !ok {
		return
	}
	available, err := h.Availability.HasAnyAvailability(r.Context(), date, partySize)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// GET /api/availability/range?from=YYYY-MM-DD&to=YYYY-MM-DD&party_size=N
func (h *UserReservationHandler) AvailabilityRange(w http.ResponseWriter, r *http.Request) {
	from, err := utils.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid from date"})
		return
	}
	to, err := utils.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid to date"})
		return
	}
	partySize, err := strconv.Atoi(r.URL.Query().Get("party_size"))
	if err != nil || partySize < 1 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid party_size"})
		return
	}

	days, err := h.Availability.AvailabilityRange(r.Context(), from, to, partySize)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// GET /api/availability/slots?date=YYYY-MM-DD&party_size=N
func (h *UserReservationHandler) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	date, partySize, ok := dateAndPartySize(w, r)
	if !ok {
		return
	}
	slots, err := h.Availability.ListAvailableSlots(r.Context(), date, partySize)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// POST /api/availability/check — the courtesy pre-submit re-check.
func (h *UserReservationHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	var req CheckSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		return
	}
	slot, err := utils.NormalizeSlot(req.Slot)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid slot"})
		return
	}

	check, err := h.Availability.CheckSlot(r.Context(), date, slot, req.PartySize)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

// POST /api/reservations — the authoritative admission.
func (h *UserReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	reservation, err := h.Reservations.CreateReservation(r.Context(), req)
	if err != nil {
		// The remaining count travels with the rejection so the wizard can
		// tell the guest what would still fit.
		var capErr *entities.CapacityExceededError
		if errors.As(err, &capErr) {
			writeJSON(w, http.StatusConflict, CapacityExceededResponse{
				Error:     capErr.Error(),
				Remaining: capErr.Remaining,
			})
			return
		}
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateReservationResponse{
		ID:      reservation.ID,
		Message: "Reservation confirmed.",
	})
}

// GET /api/reservations/{id}?email=
func (h *UserReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	email := r.URL.Query().Get("email")

	reservation, err := h.Reservations.GetReservation(r.Context(), id, email)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(reservation))
}

func dateAndPartySize(w http.ResponseWriter, r *http.Request) (time.Time, int, bool) {
	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		return time.Time{}, 0, false
	}
	partySize, err := strconv.Atoi(r.URL.Query().Get("party_size"))
	if err != nil || partySize < 1 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid party_size"})
		return time.Time{}, 0, false
	}
	return date, partySize, true
}

func toResponse(res *db.Reservation) entities.ReservationResponse {
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

func writeBusinessError(w http.ResponseWriter, err error) {
	httpErr := apperrors.FromBusinessError(err)
	writeJSON(w, httpErr.Code, ErrorResponse{Error: httpErr.Message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
