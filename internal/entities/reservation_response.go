package entities

import "time"

type ReservationResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Slot      string    `json:"slot"`
	PartySize int       `json:"party_size"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
