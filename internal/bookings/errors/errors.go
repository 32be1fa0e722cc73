package errors

import (
	"errors"
	"fmt"
)

// Passenger validation rules, in the order they are checked.
var (
	ErrEmptyName     = errors.New("name must not be empty")
	ErrMissingGender = errors.New("gender must be male, female or other")
	ErrInvalidAge    = errors.New("age must be a whole number between 1 and 120")
	ErrInvalidMobile = errors.New("mobile number must be exactly 10 digits")
	ErrInvalidEmail  = errors.New("email address is not valid")
)

var (
	ErrNoSeatsSelected    = errors.New("no seats selected")
	ErrSubmissionInFlight = errors.New("a booking submission is already in progress")
)

// RuleName maps a validation sentinel to its stable rule identifier, the
// value surfaced in error details and event payloads.
func RuleName(err error) string {
	switch {
	case errors.Is(err, ErrEmptyName):
		return "EmptyName"
	case errors.Is(err, ErrMissingGender):
		return "MissingGender"
	case errors.Is(err, ErrInvalidAge):
		return "InvalidAge"
	case errors.Is(err, ErrInvalidMobile):
		return "InvalidMobile"
	case errors.Is(err, ErrInvalidEmail):
		return "InvalidEmail"
	case errors.Is(err, ErrNoSeatsSelected):
		return "NoSeatsSelected"
	default:
		return "Unknown"
	}
}

// PassengerError identifies which passenger failed which rule. Position is
// 1-based in seat-selection order.
type PassengerError struct {
	Seat     string
	Position int
	Err      error
}

func (e *PassengerError) Error() string {
	return fmt.Sprintf("passenger %d (seat %s): %v", e.Position, e.Seat, e.Err)
}

func (e *PassengerError) Unwrap() error {
	return e.Err
}
