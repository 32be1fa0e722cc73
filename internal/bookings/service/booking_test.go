package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	bookingserrors "busbook/internal/bookings/errors"
	"busbook/internal/bookings/validator"
	"busbook/pkg/config"
	apperrors "busbook/pkg/errors"
	"busbook/pkg/logger"
	"busbook/pkg/model"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []*model.BookingConfirmation
	err       error
}

func (p *recordingPublisher) BookingConfirmed(_ context.Context, c *model.BookingConfirmation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, c)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func testConfig(delay time.Duration) *config.Config {
	return &config.Config{
		BookingPrefix: "TGSRTC",
		BookingDelay:  delay,
		ServiceTaxBps: 500,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}
}

func newTestService(delay time.Duration) (BookingService, *recordingPublisher) {
	cfg := testConfig(delay)
	publisher := &recordingPublisher{}
	v := validator.NewPassengerValidator(cfg.Log)
	return NewBookingService(v, publisher, cfg), publisher
}

func testTrip() *model.Trip {
	return &model.Trip{
		ID:            "1",
		ServiceNumber: "9001",
		Origin:        "Hyderabad",
		Destination:   "Vijayawada",
		DepartureTime: "22:00",
		FarePerSeat:   850,
	}
}

func draftsFor(seats ...string) map[string]*model.PassengerDraft {
	drafts := make(map[string]*model.PassengerDraft, len(seats))
	for _, seat := range seats {
		drafts[seat] = &model.PassengerDraft{
			SeatID:   seat,
			FullName: "Ravi Kumar",
			Gender:   model.GenderMale,
			Age:      "34",
			Mobile:   "9876543210",
			Email:    "ravi@example.com",
		}
	}
	return drafts
}

func TestSubmitSuccess(t *testing.T) {
	svc, publisher := newTestService(0)
	seats := []string{"A5", "A6"}

	confirmation, err := svc.Submit(context.Background(), "sess-1", testTrip(), seats, draftsFor(seats...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if confirmation.Fare.Base != 1700 {
		t.Errorf("expected base 1700, got %d", confirmation.Fare.Base)
	}
	if confirmation.Fare.Tax != 85 {
		t.Errorf("expected tax 85, got %d", confirmation.Fare.Tax)
	}
	if confirmation.Fare.Total != 1785 {
		t.Errorf("expected total 1785, got %d", confirmation.Fare.Total)
	}
	if confirmation.TotalAmount != 1785 {
		t.Errorf("expected total amount 1785, got %d", confirmation.TotalAmount)
	}

	if len(confirmation.Seats) != 2 || confirmation.Seats[0] != "A5" || confirmation.Seats[1] != "A6" {
		t.Errorf("unexpected frozen seats: %v", confirmation.Seats)
	}
	if confirmation.ServiceNumber != "9001" {
		t.Errorf("expected service number on confirmation, got %s", confirmation.ServiceNumber)
	}

	if publisher.count() != 1 {
		t.Errorf("expected one published event, got %d", publisher.count())
	}
}

func TestSubmitBookingIDFormat(t *testing.T) {
	svc, _ := newTestService(0)
	seats := []string{"B4"}

	confirmation, err := svc.Submit(context.Background(), "sess-1", testTrip(), seats, draftsFor(seats...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pattern := regexp.MustCompile(`^TGSRTC\d{8}$`)
	if !pattern.MatchString(confirmation.BookingID) {
		t.Errorf("booking id %q does not match prefix + 8 digits", confirmation.BookingID)
	}
	if !strings.HasPrefix(confirmation.BookingID, "TGSRTC") {
		t.Errorf("booking id %q missing prefix", confirmation.BookingID)
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	svc, publisher := newTestService(0)
	seats := []string{"A5", "A6"}
	drafts := draftsFor(seats...)
	drafts["A6"].Mobile = "12345"

	confirmation, err := svc.Submit(context.Background(), "sess-1", testTrip(), seats, drafts)
	if confirmation != nil {
		t.Fatalf("expected no confirmation, got %+v", confirmation)
	}
	if !errors.Is(err, bookingserrors.ErrInvalidMobile) {
		t.Fatalf("expected InvalidMobile, got %v", err)
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if appErr.Details["seat"] != "A6" {
		t.Errorf("expected failing seat A6 in details, got %v", appErr.Details["seat"])
	}
	if appErr.Details["rule"] != "InvalidMobile" {
		t.Errorf("expected rule InvalidMobile in details, got %v", appErr.Details["rule"])
	}

	// Drafts stay intact for correction.
	if drafts["A6"].Mobile != "12345" {
		t.Errorf("drafts must not be mutated on rejection")
	}
	if publisher.count() != 0 {
		t.Errorf("no event may be published for a rejected submission")
	}
}

func TestSubmitNoSeats(t *testing.T) {
	svc, _ := newTestService(0)

	_, err := svc.Submit(context.Background(), "sess-1", testTrip(), nil, nil)
	if !errors.Is(err, bookingserrors.ErrNoSeatsSelected) {
		t.Fatalf("expected NoSeatsSelected, got %v", err)
	}
}

func TestSubmitMissingDraftFailsAsEmptyName(t *testing.T) {
	svc, _ := newTestService(0)
	seats := []string{"A5", "A6"}
	drafts := draftsFor("A5") // no draft for A6

	_, err := svc.Submit(context.Background(), "sess-1", testTrip(), seats, drafts)
	if !errors.Is(err, bookingserrors.ErrEmptyName) {
		t.Fatalf("expected EmptyName for the missing draft, got %v", err)
	}
}

func TestSubmitNotReentrant(t *testing.T) {
	svc, publisher := newTestService(100 * time.Millisecond)
	seats := []string{"B4"}
	drafts := draftsFor(seats...)

	started := make(chan struct{})
	firstResult := make(chan error, 1)

	go func() {
		close(started)
		_, err := svc.Submit(context.Background(), "sess-1", testTrip(), seats, drafts)
		firstResult <- err
	}()

	<-started
	time.Sleep(20 * time.Millisecond) // let the first submit enter its delay

	_, err := svc.Submit(context.Background(), "sess-1", testTrip(), seats, drafts)
	if !errors.Is(err, bookingserrors.ErrSubmissionInFlight) {
		t.Fatalf("expected in-flight rejection, got %v", err)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected %s, got %s", apperrors.CodeConflict, appErr.Code)
	}

	if err := <-firstResult; err != nil {
		t.Fatalf("first submit should have succeeded: %v", err)
	}
	if publisher.count() != 1 {
		t.Errorf("expected exactly one confirmation, got %d", publisher.count())
	}
}

func TestSubmitDifferentSessionsDoNotBlock(t *testing.T) {
	svc, _ := newTestService(50 * time.Millisecond)
	seats := []string{"B4"}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, key := range []string{"sess-1", "sess-2"} {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), key, testTrip(), seats, draftsFor(seats...))
		}(i, key)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("submit %d failed: %v", i, err)
		}
	}
}

func TestSubmitCancelledContext(t *testing.T) {
	svc, publisher := newTestService(200 * time.Millisecond)
	seats := []string{"B4"}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Submit(ctx, "sess-1", testTrip(), seats, draftsFor(seats...))
	if err == nil {
		t.Fatalf("expected error on cancelled context")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline, got %v", err)
	}
	if publisher.count() != 0 {
		t.Errorf("no confirmation may be published after cancellation")
	}
}

func TestComputeFare(t *testing.T) {
	tests := []struct {
		name        string
		farePerSeat int
		seats       int
		taxBps      int
		want        model.FareBreakdown
	}{
		{"two garuda seats", 850, 2, 500, model.FareBreakdown{Base: 1700, Tax: 85, Total: 1785}},
		{"single seat", 850, 1, 500, model.FareBreakdown{Base: 850, Tax: 43, Total: 893}},
		{"half rounds away from zero", 450, 1, 500, model.FareBreakdown{Base: 450, Tax: 23, Total: 473}},
		{"zero seats", 850, 0, 500, model.FareBreakdown{Base: 0, Tax: 0, Total: 0}},
		{"no tax", 550, 3, 0, model.FareBreakdown{Base: 1650, Tax: 0, Total: 1650}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeFare(tt.farePerSeat, tt.seats, tt.taxBps); got != tt.want {
				t.Errorf("computeFare(%d, %d, %d) = %+v, want %+v", tt.farePerSeat, tt.seats, tt.taxBps, got, tt.want)
			}
		})
	}
}
