package service

import (
	"context"
	"errors"
	"strings"

	tripserrors "busbook/internal/trips/errors"
	"busbook/internal/trips/repository"
	"busbook/pkg/config"
	apperrors "busbook/pkg/errors"
	"busbook/pkg/model"
	"busbook/pkg/sanitizer"
)

type TripService interface {
	Search(ctx context.Context, query *model.SearchQuery) ([]model.Trip, error)
	GetByID(ctx context.Context, id string) (*model.Trip, error)
}

type tripService struct {
	repo repository.TripRepository
	cfg  *config.Config
}

func NewTripService(repo repository.TripRepository, cfg *config.Config) TripService {
	return &tripService{repo: repo, cfg: cfg}
}

// Search resolves a query against the catalog. An empty result set is a
// valid outcome for both query kinds: a missed service number is never
// masked behind a fallback trip, and route queries filter by
// origin/destination. The journey date is accepted but does not narrow
// results; catalog entries carry no operating calendar.
func (s *tripService) Search(ctx context.Context, query *model.SearchQuery) ([]model.Trip, error) {
	if query == nil {
		return nil, apperrors.InvalidInput("Search query cannot be empty")
	}

	switch query.Kind {
	case model.QueryKindService:
		serviceNumber := strings.TrimSpace(query.ServiceNumber)
		if serviceNumber == "" {
			return nil, apperrors.InvalidInput("Service number is required")
		}

		trips, err := s.repo.FindByService(ctx, serviceNumber)
		if err != nil {
			return nil, apperrors.Internal("Failed to search by service number", err)
		}

		s.cfg.Log.Debug("Service number search resolved",
			"service_number", serviceNumber,
			"count", len(trips),
		)
		return trips, nil

	case model.QueryKindRoute:
		origin := sanitizer.NormalizeCity(query.Origin)
		destination := sanitizer.NormalizeCity(query.Destination)
		if origin == "" || destination == "" {
			return nil, apperrors.InvalidInput("Origin and destination are required")
		}

		trips, err := s.repo.FindByRoute(ctx, origin, destination)
		if err != nil {
			return nil, apperrors.Internal("Failed to search by route", err)
		}

		s.cfg.Log.Debug("Route search resolved",
			"origin", origin,
			"destination", destination,
			"count", len(trips),
		)
		return trips, nil

	default:
		return nil, apperrors.InvalidInput("Search type must be 'route' or 'service'")
	}
}

func (s *tripService) GetByID(ctx context.Context, id string) (*model.Trip, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Trip ID cannot be empty")
	}

	trip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, tripserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Trip", id)
		}
		return nil, apperrors.Internal("Failed to retrieve trip", err)
	}

	return trip, nil
}
