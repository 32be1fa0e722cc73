package model

import (
	"sync"
	"time"
)

type Stage string

const (
	StageIdle              Stage = "idle"
	StageSearched          Stage = "searched"
	StageTripSelected      Stage = "trip_selected"
	StageBookingInProgress Stage = "booking_in_progress"
	StageConfirmed         Stage = "confirmed"
)

// Session holds all state for one booking flow: the search results, the
// chosen trip with its seat map, the selection, the passenger drafts keyed
// by seat identifier, and finally the confirmation. Exactly one user action
// runs against a session at a time; callers serialize through Lock/Unlock.
type Session struct {
	ID           string
	Stage        Stage
	Query        *SearchQuery
	Results      []Trip
	Trip         *Trip
	SeatMap      []Seat
	Selection    *Selection
	Drafts       map[string]*PassengerDraft
	Confirmation *BookingConfirmation
	CreatedAt    time.Time
	UpdatedAt    time.Time

	mu sync.Mutex
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Stage:     StageIdle,
		Selection: NewSelection(),
		Drafts:    make(map[string]*PassengerDraft),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch must be called with the session lock held.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}

// LastActive reads UpdatedAt under the session lock, for callers that do
// not already hold it (the store's TTL checks run concurrently with Touch).
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}
