package main

import (
	bookingservice "busbook/internal/bookings/service"
	"busbook/internal/bookings/validator"
	"busbook/internal/sessions/handler"
	sessionrepo "busbook/internal/sessions/repository"
	sessionservice "busbook/internal/sessions/service"
	triprepo "busbook/internal/trips/repository"
	tripservice "busbook/internal/trips/service"
	"busbook/pkg/app"
	"busbook/pkg/config"
	"busbook/pkg/events"
)

const ServiceName = "busbook"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting BusBook service")
	sessionService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewSessionHandler(sessionService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) sessionservice.SessionService {
	tripRepo := triprepo.NewInMemoryTripRepository(triprepo.SeedTrips())
	tripService := tripservice.NewTripService(tripRepo, cfg)

	var publisher events.Publisher = &events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.BookingTopic, cfg.Log)
		cfg.Log.Info("Booking events enabled", "topic", cfg.BookingTopic)
	}

	passengerValidator := validator.NewPassengerValidator(cfg.Log)
	bookingService := bookingservice.NewBookingService(passengerValidator, publisher, cfg)

	sessionStore := sessionrepo.NewInMemorySessionStore(cfg.SessionTTL)
	sessionService := sessionservice.NewSessionService(sessionStore, tripService, bookingService, cfg)

	cfg.Log.Info("BusBook service initialized", "trips", len(triprepo.SeedTrips()))
	return sessionService
}
