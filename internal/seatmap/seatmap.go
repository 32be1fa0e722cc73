// Package seatmap produces the deterministic 2+2 seat grid for a trip and
// answers availability questions about it.
package seatmap

import (
	"fmt"

	"busbook/pkg/model"
)

const (
	Rows        = 10
	SeatsPerRow = 4
)

// Pre-seeded availability. The sets are identical for every trip: the mock
// inventory has no per-trip seat state. A real system would key these by trip
// and remaining inventory. "D5" names no grid cell and never matches a seat;
// it is kept verbatim from the seeded data.
var (
	bookedSeatIDs = map[string]struct{}{
		"A1": {}, "A2": {}, "B3": {}, "C4": {}, "D5": {},
		"E2": {}, "F1": {}, "G3": {}, "H4": {},
	}

	ladiesSeatIDs = map[string]struct{}{
		"A3": {}, "A4": {}, "B1": {}, "B2": {},
	}
)

// Generate builds the full grid in row-major order: rows A-J, columns 1-4,
// columns 1-2 left of the aisle and 3-4 right. Calling it twice yields
// identical output; no state carries over between trips.
func Generate() []model.Seat {
	seats := make([]model.Seat, 0, Rows*SeatsPerRow)

	for row := 0; row < Rows; row++ {
		rowLetter := rune('A' + row)
		for col := 1; col <= SeatsPerRow; col++ {
			id := fmt.Sprintf("%c%d", rowLetter, col)

			status := model.SeatAvailable
			if _, ok := bookedSeatIDs[id]; ok {
				status = model.SeatBooked
			} else if _, ok := ladiesSeatIDs[id]; ok {
				status = model.SeatLadies
			}

			seats = append(seats, model.Seat{
				ID:     id,
				Row:    row,
				Column: col,
				Status: status,
			})
		}
	}

	return seats
}

// IsBooked reports whether the identifier belongs to the pre-booked set.
// Booked-ness is the only property that blocks selection.
func IsBooked(id string) bool {
	_, ok := bookedSeatIDs[id]
	return ok
}

// Overlay returns a copy of the seat map with the selection applied as a
// derived status. Booked seats keep their status: a selection can never
// contain one, but the guard stands on its own.
func Overlay(seats []model.Seat, selection *model.Selection) []model.Seat {
	out := make([]model.Seat, len(seats))
	copy(out, seats)

	if selection == nil {
		return out
	}

	for i := range out {
		if out[i].Status == model.SeatBooked {
			continue
		}
		if selection.Contains(out[i].ID) {
			out[i].Status = model.SeatSelected
		}
	}

	return out
}
