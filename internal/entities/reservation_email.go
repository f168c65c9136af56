package entities

// ReservationEmailData feeds the confirmation email template.
type ReservationEmailData struct {
	Name            string
	ReservationID   string
	PartySize       int
	DateFormatted   string
	SlotFormatted   string
	Status          string
	CurrentYear     int
	RestaurantName  string
	RestaurantPhone string
}
