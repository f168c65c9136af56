package entities

// SlotAvailability is one bookable slot of a day together with how many seats
// are still free for it.
type SlotAvailability struct {
	Slot      string `json:"slot"`
	Remaining int    `json:"remaining"`
}

// SlotCheck is the advisory pre-submit check for a single (date, slot) pair.
// It can be stale by the time the guest submits; the admission transaction is
// the only authoritative answer.
type SlotCheck struct {
	Admissible bool `json:"admissible"`
	Remaining  int  `json:"remaining"`
}

// DayAvailability backs the calendar grid: whether a date has at least one
// admissible slot for the requested party size.
type DayAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}
