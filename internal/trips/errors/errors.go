package errors

import "errors"

var (
	ErrNotFound = errors.New("trip not found")
)
