package service

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	bookingserrors "busbook/internal/bookings/errors"
	"busbook/internal/bookings/validator"
	"busbook/pkg/config"
	apperrors "busbook/pkg/errors"
	"busbook/pkg/events"
	"busbook/pkg/model"
)

type BookingService interface {
	// Submit validates the drafts for the selected seats and, on success,
	// mints a confirmation. sessionKey scopes the single in-flight guard:
	// a second Submit for the same key while one is pending is rejected,
	// never queued.
	Submit(ctx context.Context, sessionKey string, trip *model.Trip, seats []string, drafts map[string]*model.PassengerDraft) (*model.BookingConfirmation, error)

	// Quote returns the fare breakdown the passenger form previews before
	// submission, using the same arithmetic Submit applies.
	Quote(trip *model.Trip, seatCount int) model.FareBreakdown
}

type bookingService struct {
	validator *validator.PassengerValidator
	publisher events.Publisher
	cfg       *config.Config

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewBookingService(v *validator.PassengerValidator, publisher events.Publisher, cfg *config.Config) BookingService {
	return &bookingService{
		validator: v,
		publisher: publisher,
		cfg:       cfg,
		inFlight:  make(map[string]struct{}),
	}
}

func (s *bookingService) Submit(ctx context.Context, sessionKey string, trip *model.Trip, seats []string, drafts map[string]*model.PassengerDraft) (*model.BookingConfirmation, error) {
	if trip == nil {
		return nil, apperrors.InvalidInput("No trip selected")
	}
	if len(seats) == 0 {
		return nil, apperrors.Wrap(bookingserrors.ErrNoSeatsSelected,
			apperrors.CodeInvalidInput, "At least one seat must be selected", 400)
	}

	if err := s.acquire(sessionKey); err != nil {
		return nil, err
	}
	defer s.release(sessionKey)

	ordered := make([]*model.PassengerDraft, 0, len(seats))
	for _, seat := range seats {
		draft := drafts[seat]
		if draft == nil {
			draft = &model.PassengerDraft{SeatID: seat}
		}
		ordered = append(ordered, draft)
	}

	if err := s.validator.ValidateAll(ordered); err != nil {
		return nil, s.validationError(err)
	}

	// Stand-in for the payment round trip, cancellable through ctx.
	if err := s.processingDelay(ctx); err != nil {
		return nil, err
	}

	fare := computeFare(trip.FarePerSeat, len(seats), s.cfg.ServiceTaxBps)
	now := time.Now()

	confirmation := &model.BookingConfirmation{
		BookingID:     s.mintBookingID(now),
		TripID:        trip.ID,
		ServiceNumber: trip.ServiceNumber,
		Origin:        trip.Origin,
		Destination:   trip.Destination,
		DepartureTime: trip.DepartureTime,
		Seats:         append([]string(nil), seats...),
		Fare:          fare,
		TotalAmount:   fare.Total,
		BookedAt:      now,
	}

	// Fire-and-forget: the booking stands even if the event never lands.
	if err := s.publisher.BookingConfirmed(ctx, confirmation); err != nil {
		s.cfg.Log.Warn("Failed to publish booking confirmation",
			"booking_id", confirmation.BookingID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Booking confirmed",
		"booking_id", confirmation.BookingID,
		"trip_id", trip.ID,
		"seats", len(seats),
		"total_amount", confirmation.TotalAmount,
	)

	return confirmation, nil
}

func (s *bookingService) Quote(trip *model.Trip, seatCount int) model.FareBreakdown {
	if trip == nil || seatCount <= 0 {
		return model.FareBreakdown{}
	}
	return computeFare(trip.FarePerSeat, seatCount, s.cfg.ServiceTaxBps)
}

func (s *bookingService) acquire(sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionKey]; busy {
		return apperrors.Wrap(bookingserrors.ErrSubmissionInFlight,
			apperrors.CodeConflict, "A booking for this session is already being processed", 409)
	}
	s.inFlight[sessionKey] = struct{}{}
	return nil
}

func (s *bookingService) release(sessionKey string) {
	s.mu.Lock()
	delete(s.inFlight, sessionKey)
	s.mu.Unlock()
}

func (s *bookingService) processingDelay(ctx context.Context) error {
	if s.cfg.BookingDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.cfg.BookingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return apperrors.Wrap(ctx.Err(), apperrors.CodeUnavailable,
			"Booking processing was interrupted", 503)
	}
}

func (s *bookingService) validationError(err error) error {
	details := map[string]any{"error": err.Error()}
	if perr, ok := err.(*bookingserrors.PassengerError); ok {
		details = map[string]any{
			"seat":      perr.Seat,
			"passenger": perr.Position,
			"rule":      bookingserrors.RuleName(perr.Err),
			"error":     perr.Err.Error(),
		}
	}
	appErr := apperrors.Validation("Passenger validation failed", details)
	appErr.Err = err
	return appErr
}

// mintBookingID derives the identifier from the configured prefix and the
// last 8 digits of the millisecond clock. No uniqueness guarantee beyond
// clock granularity; accepted for a mock booking pipeline.
func (s *bookingService) mintBookingID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return s.cfg.BookingPrefix + ms
}

// computeFare rounds tax and total independently from the same base, so
// Base+Tax can differ from Total by one unit. Neither is derived from the
// other.
func computeFare(farePerSeat, seatCount, taxBps int) model.FareBreakdown {
	base := farePerSeat * seatCount
	rate := float64(taxBps) / 10000

	return model.FareBreakdown{
		Base:  base,
		Tax:   int(math.Round(float64(base) * rate)),
		Total: int(math.Round(float64(base) * (1 + rate))),
	}
}
