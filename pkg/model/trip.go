package model

// Trip is one schedulable bus service offering. Catalog entries are created
// once at startup and never mutated.
type Trip struct {
	ID             string   `json:"id" validate:"required"`
	ServiceNumber  string   `json:"service_number" validate:"required"`
	VehicleClass   string   `json:"vehicle_class" validate:"required"`
	Origin         string   `json:"origin" validate:"required"`
	Destination    string   `json:"destination" validate:"required"`
	DepartureTime  string   `json:"departure_time" validate:"required"`
	ArrivalTime    string   `json:"arrival_time" validate:"required"`
	DurationLabel  string   `json:"duration"`
	FarePerSeat    int      `json:"fare_per_seat" validate:"gt=0"`
	SeatsAvailable int      `json:"seats_available" validate:"gte=0"`
	Rating         float64  `json:"rating" validate:"gte=0,lte=5"`
	Amenities      []string `json:"amenities"`
}

const (
	QueryKindRoute   = "route"
	QueryKindService = "service"
)

// SearchQuery is a tagged union: route queries carry origin/destination,
// service queries carry a service number. Constructed on form submit and
// consumed immediately by the resolver.
type SearchQuery struct {
	Kind          string `json:"type" validate:"required,oneof=route service"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	Date          string `json:"date,omitempty"`
	ServiceNumber string `json:"service_number,omitempty"`
}
