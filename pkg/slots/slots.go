package slots

import (
	"errors"
	"time"
)

// CheckRequest carries the credentials and appointment group for one check
type CheckRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Appd     string `json:"appd"`
}

// ErrMissingFields is returned when a required request field is empty
var ErrMissingFields = errors.New("Missing required fields: username, password, appd")

// Validate checks that all required fields are present
func (r CheckRequest) Validate() error {
	if r.Username == "" || r.Password == "" || r.Appd == "" {
		return ErrMissingFields
	}
	return nil
}

// Slot represents one open appointment slot
type Slot struct {
	Location  string  `json:"location"`
	Consulate string  `json:"consulate"`
	Date      string  `json:"date"`
	Time      *string `json:"time"`
	Available bool    `json:"available"`
}

// Result is the successful outcome of one slot check
type Result struct {
	Slots     []Slot    `json:"slots"`
	Total     int       `json:"totalSlots"`
	CheckedAt time.Time `json:"checkedAt"`
}

// SlotDates extracts the dates from a list of slots
func SlotDates(slots []Slot) []string {
	dates := make([]string, len(slots))
	for i, slot := range slots {
		dates[i] = slot.Date
	}
	return dates
}
