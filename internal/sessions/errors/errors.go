package errors

import "errors"

var (
	ErrNotFound = errors.New("session not found")

	ErrInvalidStage = errors.New("operation not allowed in current stage")

	ErrTripNotInResults = errors.New("trip is not part of the current search results")

	ErrSeatNotSelected = errors.New("seat is not part of the current selection")
)
