package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	bookingservice "busbook/internal/bookings/service"
	"busbook/internal/bookings/validator"
	sessionrepo "busbook/internal/sessions/repository"
	"busbook/internal/sessions/service"
	triprepo "busbook/internal/trips/repository"
	tripservice "busbook/internal/trips/service"
	"busbook/pkg/config"
	"busbook/pkg/events"
	"busbook/pkg/logger"
)

func newTestRouter(t *testing.T) *httprouter.Router {
	t.Helper()

	cfg := &config.Config{
		BookingPrefix: "TGSRTC",
		BookingDelay:  time.Millisecond,
		ServiceTaxBps: 500,
		SessionTTL:    time.Hour,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Service: "test",
		}),
	}

	store := sessionrepo.NewInMemorySessionStore(cfg.SessionTTL)
	t.Cleanup(store.Stop)

	trips := tripservice.NewTripService(triprepo.NewInMemoryTripRepository(triprepo.SeedTrips()), cfg)
	bookings := bookingservice.NewBookingService(
		validator.NewPassengerValidator(cfg.Log),
		&events.NoopPublisher{},
		cfg,
	)
	sessions := service.NewSessionService(store, trips, bookings, cfg)

	router := httprouter.New()
	NewSessionHandler(sessions, cfg.Log).RegisterRoutes(router)
	NewHealthHandler(cfg.Log).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *httprouter.Router, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func snapshotData(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response missing data envelope: %v", body)
	}
	return data
}

func TestSessionRoutesFullFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	id, _ := snapshotData(t, body)["session_id"].(string)
	if id == "" {
		t.Fatal("missing session_id")
	}
	base := "/api/v1/sessions/" + id

	rec, body = doJSON(t, router, http.MethodPost, base+"/search", map[string]any{
		"kind":        "route",
		"origin":      "Hyderabad",
		"destination": "Vijayawada",
		"date":        "2026-09-01",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d: %s", rec.Code, rec.Body.String())
	}
	data := snapshotData(t, body)
	if results, _ := data["results"].([]any); len(results) != 4 {
		t.Fatalf("results = %v", data["results"])
	}

	rec, body = doJSON(t, router, http.MethodPost, base+"/trip", map[string]any{"trip_id": "1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("trip status = %d: %s", rec.Code, rec.Body.String())
	}
	data = snapshotData(t, body)
	if seatMap, _ := data["seat_map"].([]any); len(seatMap) != 40 {
		t.Fatalf("seat map size = %d, want 40", len(seatMap))
	}

	for _, seat := range []string{"A5", "A6"} {
		rec, body = doJSON(t, router, http.MethodPost, base+"/seats/toggle", map[string]any{"seat_id": seat})
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle %s status = %d: %s", seat, rec.Code, rec.Body.String())
		}
	}
	data = snapshotData(t, body)
	fare, _ := data["fare"].(map[string]any)
	if fare == nil || fare["total"].(float64) != 1785 {
		t.Fatalf("fare = %v, want total 1785", data["fare"])
	}

	rec, _ = doJSON(t, router, http.MethodPost, base+"/passengers", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("passengers status = %d: %s", rec.Code, rec.Body.String())
	}

	for i, seat := range []string{"A5", "A6"} {
		rec, _ = doJSON(t, router, http.MethodPut, base+"/passengers/"+seat, map[string]any{
			"full_name": fmt.Sprintf("Passenger %d", i+1),
			"gender":    "female",
			"age":       "28",
			"mobile":    "9876543210",
			"email":     "rider@example.com",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("draft %s status = %d: %s", seat, rec.Code, rec.Body.String())
		}
	}

	rec, body = doJSON(t, router, http.MethodPost, base+"/booking", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("booking status = %d: %s", rec.Code, rec.Body.String())
	}
	data = snapshotData(t, body)
	confirmation, _ := data["confirmation"].(map[string]any)
	if confirmation == nil || confirmation["booking_id"] == "" {
		t.Fatalf("confirmation = %v", data["confirmation"])
	}

	rec, body = doJSON(t, router, http.MethodPost, base+"/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d: %s", rec.Code, rec.Body.String())
	}
	if stage := snapshotData(t, body)["stage"]; stage != "idle" {
		t.Fatalf("stage after reset = %v", stage)
	}
}

func TestSessionRoutesErrorMapping(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/sessions/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown session status = %d", rec.Code)
	}

	_, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	id, _ := snapshotData(t, body)["session_id"].(string)
	base := "/api/v1/sessions/" + id

	rec, _ = doJSON(t, router, http.MethodPost, base+"/trip", map[string]any{"trip_id": "1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("trip before search status = %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, base+"/search", map[string]any{"kind": "nonsense"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad query kind status = %d", rec.Code)
	}
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/ready"} {
		rec, _ := doJSON(t, router, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}
