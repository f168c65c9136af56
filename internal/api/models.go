package api

// Availability
type CheckSlotRequest struct {
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	PartySize int    `json:"party_size"`
}

// Reservation
type CreateReservationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Settings
type UpdateSettingsRequest struct {
	MaxCapacity    int      `json:"max_capacity"`
	AvailableSlots []string `json:"available_slots"`
}
type SettingsResponse struct {
	MaxCapacity    int      `json:"max_capacity"`
	AvailableSlots []string `json:"available_slots"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CapacityExceededResponse struct {
	Error     string `json:"error"`
	Remaining int    `json:"remaining"`
}
