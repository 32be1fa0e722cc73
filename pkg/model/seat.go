package model

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatLadies    SeatStatus = "ladies"

	// SeatSelected is a derived overlay: it is never stored in a seat map,
	// only computed against the current selection when rendering a snapshot.
	SeatSelected SeatStatus = "selected"
)

// Seat is one cell of a trip's seat map. ID is row letter + column number
// ("A1"); columns 1-2 sit left of the aisle, 3-4 right.
type Seat struct {
	ID     string     `json:"id"`
	Row    int        `json:"row"`
	Column int        `json:"column"`
	Status SeatStatus `json:"status"`
}
