package service

import (
	"busbook/internal/seatmap"
	"busbook/pkg/model"
)

// Snapshot is the session as a client sees it after any operation: the
// current stage plus every piece of state that stage can render. The seat
// map is overlaid with the live selection, and the fare preview always
// reflects the selection using the same arithmetic the booking applies.
type Snapshot struct {
	SessionID     string                           `json:"session_id"`
	Stage         model.Stage                      `json:"stage"`
	Query         *model.SearchQuery               `json:"query,omitempty"`
	Results       []model.Trip                     `json:"results,omitempty"`
	Trip          *model.Trip                      `json:"trip,omitempty"`
	SeatMap       []model.Seat                     `json:"seat_map,omitempty"`
	SelectedSeats []string                         `json:"selected_seats,omitempty"`
	SeatTotal     int                              `json:"seat_total"`
	Fare          *model.FareBreakdown             `json:"fare,omitempty"`
	Drafts        map[string]*model.PassengerDraft `json:"passengers,omitempty"`
	Confirmation  *model.BookingConfirmation       `json:"confirmation,omitempty"`
}

// snapshot must be called with the session lock held.
func (s *sessionService) snapshot(session *model.Session) *Snapshot {
	snap := &Snapshot{
		SessionID:    session.ID,
		Stage:        session.Stage,
		Query:        session.Query,
		Results:      session.Results,
		Trip:         session.Trip,
		Confirmation: session.Confirmation,
	}

	if session.SeatMap != nil {
		snap.SeatMap = seatmap.Overlay(session.SeatMap, session.Selection)
	}

	if session.Selection.Len() > 0 {
		snap.SelectedSeats = session.Selection.Seats()
		snap.SeatTotal = session.Selection.Total(session.Trip)
		if session.Trip != nil {
			fare := s.bookings.Quote(session.Trip, session.Selection.Len())
			snap.Fare = &fare
		}
	}

	if len(session.Drafts) > 0 {
		snap.Drafts = make(map[string]*model.PassengerDraft, len(session.Drafts))
		for seat, draft := range session.Drafts {
			copied := *draft
			snap.Drafts[seat] = &copied
		}
	}

	return snap
}
