package service

import (
	"context"
	"errors"

	bookingerrors "busbook/internal/bookings/errors"
	bookingservice "busbook/internal/bookings/service"
	"busbook/internal/seatmap"
	sessionserrors "busbook/internal/sessions/errors"
	"busbook/internal/sessions/repository"
	tripservice "busbook/internal/trips/service"
	"busbook/pkg/config"
	apperrors "busbook/pkg/errors"
	"busbook/pkg/model"
	"busbook/pkg/sanitizer"

	"github.com/google/uuid"
)

// SessionService sequences one user through Search, Results, Seat Selection,
// Passenger Details and Confirmation, including the back edges between them.
// State flows strictly forward; back-navigation and "book another" reset
// everything downstream of the stage they land on.
type SessionService interface {
	Create(ctx context.Context) (*Snapshot, error)
	Get(ctx context.Context, id string) (*Snapshot, error)
	Search(ctx context.Context, id string, query *model.SearchQuery) (*Snapshot, error)
	SelectTrip(ctx context.Context, id, tripID string) (*Snapshot, error)
	ToggleSeat(ctx context.Context, id, seatID string) (*Snapshot, error)
	ReplaceSeats(ctx context.Context, id string, seatIDs []string) (*Snapshot, error)
	BeginPassengerDetails(ctx context.Context, id string) (*Snapshot, error)
	UpdateDraft(ctx context.Context, id, seatID string, draft *model.PassengerDraft) (*Snapshot, error)
	SubmitBooking(ctx context.Context, id string) (*Snapshot, error)
	Back(ctx context.Context, id string) (*Snapshot, error)
	Reset(ctx context.Context, id string) (*Snapshot, error)
}

type sessionService struct {
	store    repository.SessionStore
	trips    tripservice.TripService
	bookings bookingservice.BookingService
	cfg      *config.Config
}

func NewSessionService(
	store repository.SessionStore,
	trips tripservice.TripService,
	bookings bookingservice.BookingService,
	cfg *config.Config,
) SessionService {
	return &sessionService{
		store:    store,
		trips:    trips,
		bookings: bookings,
		cfg:      cfg,
	}
}

func (s *sessionService) Create(_ context.Context) (*Snapshot, error) {
	session := model.NewSession(uuid.NewString())
	s.store.Put(session)

	s.cfg.Log.Info("Session created", "session_id", session.ID)
	return s.snapshot(session), nil
}

func (s *sessionService) Get(_ context.Context, id string) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()
	return s.snapshot(session), nil
}

// Search runs the resolver and resets every downstream stage: picking a new
// result set invalidates the chosen trip, its seat map, the selection and
// the passenger drafts.
func (s *sessionService) Search(ctx context.Context, id string, query *model.SearchQuery) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	results, err := s.trips.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	session.Query = query
	session.Results = results
	session.Trip = nil
	session.SeatMap = nil
	session.Selection.Clear()
	session.Drafts = make(map[string]*model.PassengerDraft)
	session.Confirmation = nil
	session.Stage = model.StageSearched
	session.Touch()

	s.cfg.Log.Info("Search resolved",
		"session_id", session.ID,
		"kind", query.Kind,
		"results", len(results),
	)
	return s.snapshot(session), nil
}

func (s *sessionService) SelectTrip(_ context.Context, id, tripID string) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.Stage != model.StageSearched && session.Stage != model.StageTripSelected {
		return nil, s.stageError(session, "select a trip")
	}

	var trip *model.Trip
	for i := range session.Results {
		if session.Results[i].ID == tripID {
			trip = &session.Results[i]
			break
		}
	}
	if trip == nil {
		return nil, apperrors.Wrap(sessionserrors.ErrTripNotInResults,
			apperrors.CodeNotFound, "Trip not found in current results", 404)
	}

	// The full grid is regenerated for every chosen trip; nothing carries
	// over from a previously viewed one.
	session.Trip = trip
	session.SeatMap = seatmap.Generate()
	session.Selection.Clear()
	session.Drafts = make(map[string]*model.PassengerDraft)
	session.Stage = model.StageTripSelected
	session.Touch()

	s.cfg.Log.Info("Trip selected",
		"session_id", session.ID,
		"trip_id", trip.ID,
		"service_number", trip.ServiceNumber,
	)
	return s.snapshot(session), nil
}

func (s *sessionService) ToggleSeat(_ context.Context, id, seatID string) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.Stage != model.StageTripSelected {
		return nil, s.stageError(session, "toggle a seat")
	}
	if seatID == "" {
		return nil, apperrors.InvalidInput("Seat identifier cannot be empty")
	}

	session.Selection.Toggle(seatID, seatmap.IsBooked)
	s.pruneDrafts(session)
	session.Touch()

	return s.snapshot(session), nil
}

func (s *sessionService) ReplaceSeats(_ context.Context, id string, seatIDs []string) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.Stage != model.StageTripSelected {
		return nil, s.stageError(session, "replace the selection")
	}

	session.Selection.ReplaceAll(seatIDs, seatmap.IsBooked)
	s.pruneDrafts(session)
	session.Touch()

	return s.snapshot(session), nil
}

// BeginPassengerDetails gates on a non-empty selection, then materializes
// one draft per selected seat. Drafts are keyed by seat identifier, so a
// passenger entered earlier survives seat changes that keep their seat.
func (s *sessionService) BeginPassengerDetails(_ context.Context, id string) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.Stage != model.StageTripSelected {
		return nil, s.stageError(session, "enter passenger details")
	}
	if session.Selection.Len() == 0 {
		return nil, apperrors.Wrap(bookingerrors.ErrNoSeatsSelected,
			apperrors.CodeInvalidInput, "Select at least one seat to continue", 400)
	}

	for _, seat := range session.Selection.Seats() {
		if _, exists := session.Drafts[seat]; !exists {
			session.Drafts[seat] = &model.PassengerDraft{SeatID: seat}
		}
	}
	session.Stage = model.StageBookingInProgress
	session.Touch()

	return s.snapshot(session), nil
}

func (s *sessionService) UpdateDraft(_ context.Context, id, seatID string, draft *model.PassengerDraft) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.Stage != model.StageBookingInProgress {
		return nil, s.stageError(session, "update passenger details")
	}
	if draft == nil {
		return nil, apperrors.InvalidInput("Passenger details cannot be empty")
	}
	if !session.Selection.Contains(seatID) {
		return nil, apperrors.Wrap(sessionserrors.ErrSeatNotSelected,
			apperrors.CodeInvalidInput, "Seat is not part of the current selection", 400)
	}

	// Mirror the form's input filter on mobile numbers; everything else is
	// judged as entered when the booking is submitted.
	session.Drafts[seatID] = &model.PassengerDraft{
		SeatID:   seatID,
		FullName: draft.FullName,
		Gender:   draft.Gender,
		Age:      draft.Age,
		Mobile:   sanitizer.DigitsOnly(draft.Mobile, 10),
		Email:    draft.Email,
	}
	session.Touch()

	return s.snapshot(session), nil
}

// SubmitBooking releases the session lock while the assembler simulates the
// payment round trip: a concurrent second submit must be rejected by the
// assembler's in-flight guard, not queued behind the mutex.
func (s *sessionService) SubmitBooking(ctx context.Context, id string) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	if session.Stage != model.StageBookingInProgress {
		defer session.Unlock()
		return nil, s.stageError(session, "submit the booking")
	}

	trip := session.Trip
	seats := session.Selection.Seats()
	drafts := make(map[string]*model.PassengerDraft, len(session.Drafts))
	for seat, draft := range session.Drafts {
		drafts[seat] = draft
	}
	session.Unlock()

	confirmation, err := s.bookings.Submit(ctx, session.ID, trip, seats, drafts)
	if err != nil {
		// Validation and in-flight failures keep the session where it is;
		// the form is re-presented with the error surfaced.
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	// The user may have navigated away while the submission was pending;
	// a confirmation must not overwrite wherever they went.
	if session.Stage != model.StageBookingInProgress {
		return nil, s.stageError(session, "apply the confirmation")
	}

	session.Confirmation = confirmation
	session.Stage = model.StageConfirmed
	session.Touch()

	return s.snapshot(session), nil
}

func (s *sessionService) Back(_ context.Context, id string) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	switch session.Stage {
	case model.StageTripSelected:
		session.Trip = nil
		session.SeatMap = nil
		session.Selection.Clear()
		session.Drafts = make(map[string]*model.PassengerDraft)
		session.Stage = model.StageSearched

	case model.StageBookingInProgress:
		// Back to seat selection keeps the trip, the selection and the
		// drafts already entered.
		session.Stage = model.StageTripSelected

	default:
		return nil, s.stageError(session, "navigate back")
	}

	session.Touch()
	return s.snapshot(session), nil
}

// Reset is the "book another ticket" action: only a confirmed session can
// take it, and it clears all upstream state back to a fresh Idle flow.
func (s *sessionService) Reset(_ context.Context, id string) (*Snapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.Stage != model.StageConfirmed {
		return nil, s.stageError(session, "start another booking")
	}

	session.Query = nil
	session.Results = nil
	session.Trip = nil
	session.SeatMap = nil
	session.Selection.Clear()
	session.Drafts = make(map[string]*model.PassengerDraft)
	session.Confirmation = nil
	session.Stage = model.StageIdle
	session.Touch()

	s.cfg.Log.Info("Session reset for another booking", "session_id", session.ID)
	return s.snapshot(session), nil
}

func (s *sessionService) lookup(id string) (*model.Session, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Session ID cannot be empty")
	}

	session, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, sessionserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Session", id)
		}
		return nil, apperrors.Internal("Failed to load session", err)
	}
	return session, nil
}

func (s *sessionService) stageError(session *model.Session, action string) error {
	appErr := apperrors.Conflict("Cannot " + action + " at this point of the booking flow")
	appErr.Err = sessionserrors.ErrInvalidStage
	return appErr.WithDetails(map[string]any{"stage": string(session.Stage)})
}

// pruneDrafts drops drafts whose seats left the selection. Seats that stay
// selected keep whatever the user already typed.
func (s *sessionService) pruneDrafts(session *model.Session) {
	for seat := range session.Drafts {
		if !session.Selection.Contains(seat) {
			delete(session.Drafts, seat)
		}
	}
}
