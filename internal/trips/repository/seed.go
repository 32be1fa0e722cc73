package repository

import "busbook/pkg/model"

// SeedTrips is the static mock catalog. Created once at startup, never
// mutated; injected into the repository so a real source can replace it
// without touching the resolver.
func SeedTrips() []model.Trip {
	return []model.Trip{
		{
			ID:             "1",
			ServiceNumber:  "9001",
			VehicleClass:   "Garuda Plus AC Sleeper",
			Origin:         "Hyderabad",
			Destination:    "Vijayawada",
			DepartureTime:  "22:00",
			ArrivalTime:    "04:30",
			DurationLabel:  "6h 30m",
			FarePerSeat:    850,
			SeatsAvailable: 23,
			Rating:         4.5,
			Amenities:      []string{"AC", "WiFi"},
		},
		{
			ID:             "2",
			ServiceNumber:  "5050",
			VehicleClass:   "Super Luxury AC Seater",
			Origin:         "Hyderabad",
			Destination:    "Vijayawada",
			DepartureTime:  "06:00",
			ArrivalTime:    "12:00",
			DurationLabel:  "6h 00m",
			FarePerSeat:    550,
			SeatsAvailable: 8,
			Rating:         4.2,
			Amenities:      []string{"AC"},
		},
		{
			ID:             "3",
			ServiceNumber:  "7777",
			VehicleClass:   "Rajdhani Express",
			Origin:         "Hyderabad",
			Destination:    "Vijayawada",
			DepartureTime:  "14:30",
			ArrivalTime:    "20:30",
			DurationLabel:  "6h 00m",
			FarePerSeat:    450,
			SeatsAvailable: 15,
			Rating:         4.0,
			Amenities:      []string{"AC"},
		},
		{
			ID:             "4",
			ServiceNumber:  "3030",
			VehicleClass:   "Palle Velugu Non-AC",
			Origin:         "Hyderabad",
			Destination:    "Vijayawada",
			DepartureTime:  "08:00",
			ArrivalTime:    "15:00",
			DurationLabel:  "7h 00m",
			FarePerSeat:    280,
			SeatsAvailable: 32,
			Rating:         3.8,
			Amenities:      []string{},
		},
	}
}
