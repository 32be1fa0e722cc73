package model

import "time"

// FareBreakdown carries the independently rounded fare components. Base+Tax
// may differ from Total by one unit because both derived values round on
// their own; the confirmation shows all three as computed.
type FareBreakdown struct {
	Base  int `json:"base"`
	Tax   int `json:"tax"`
	Total int `json:"total"`
}

// BookingConfirmation is the terminal, immutable record of a successful
// submission. Seats is the selection frozen at confirmation time.
type BookingConfirmation struct {
	BookingID     string        `json:"booking_id"`
	TripID        string        `json:"trip_id"`
	ServiceNumber string        `json:"service_number"`
	Origin        string        `json:"origin"`
	Destination   string        `json:"destination"`
	DepartureTime string        `json:"departure_time"`
	Seats         []string      `json:"seats"`
	Fare          FareBreakdown `json:"fare"`
	TotalAmount   int           `json:"total_amount"`
	BookedAt      time.Time     `json:"booked_at"`
}
