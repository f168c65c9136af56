package entities

// ReservationRequest is what the wizard submits on the final step.
type ReservationRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Slot      string `json:"slot"` // HH:MM
	PartySize int    `json:"party_size"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
