package repository

import (
	"context"
	"strings"

	tripserrors "busbook/internal/trips/errors"
	"busbook/pkg/model"
)

// TripRepository is the catalog seam. The in-memory implementation serves the
// seeded mock catalog; a real data source would implement the same interface.
type TripRepository interface {
	All(ctx context.Context) ([]model.Trip, error)
	FindByID(ctx context.Context, id string) (*model.Trip, error)
	FindByService(ctx context.Context, serviceNumber string) ([]model.Trip, error)
	FindByRoute(ctx context.Context, origin, destination string) ([]model.Trip, error)
}

type inMemoryTripRepository struct {
	trips []model.Trip
}

func NewInMemoryTripRepository(trips []model.Trip) TripRepository {
	owned := make([]model.Trip, len(trips))
	copy(owned, trips)
	return &inMemoryTripRepository{trips: owned}
}

func (r *inMemoryTripRepository) All(_ context.Context) ([]model.Trip, error) {
	return r.copyAll(), nil
}

func (r *inMemoryTripRepository) FindByID(_ context.Context, id string) (*model.Trip, error) {
	for _, trip := range r.trips {
		if trip.ID == id {
			t := trip
			return &t, nil
		}
	}
	return nil, tripserrors.ErrNotFound
}

func (r *inMemoryTripRepository) FindByService(_ context.Context, serviceNumber string) ([]model.Trip, error) {
	var out []model.Trip
	for _, trip := range r.trips {
		if trip.ServiceNumber == serviceNumber {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (r *inMemoryTripRepository) FindByRoute(_ context.Context, origin, destination string) ([]model.Trip, error) {
	var out []model.Trip
	for _, trip := range r.trips {
		if equalFold(trip.Origin, origin) && equalFold(trip.Destination, destination) {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (r *inMemoryTripRepository) copyAll() []model.Trip {
	out := make([]model.Trip, len(r.trips))
	copy(out, r.trips)
	return out
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
