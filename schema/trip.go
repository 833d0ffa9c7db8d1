package schema

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for all trip dates
	DateLayout = "2006-01-02"
	// MaxTripDays is the longest trip span a request may cover
	MaxTripDays = 14
	// MaxItineraryDays caps the number of days planned in detail
	MaxItineraryDays = 5
)

// TripRequest is the user's planning request.
type TripRequest struct {
	Base
	// Origin is the departure city, free text (e.g. "Seoul")
	Origin string `json:"origin" jsonschema:"title=origin,description=departure city" validate:"required"`
	// Destination is the destination city, free text (e.g. "Tokyo, Japan")
	Destination string `json:"destination" jsonschema:"title=destination,description=destination city" validate:"required"`
	// DepartureDate in YYYY-MM-DD
	DepartureDate string `json:"departure_date" jsonschema:"title=departure_date" validate:"required"`
	// ReturnDate in YYYY-MM-DD
	ReturnDate string `json:"return_date" jsonschema:"title=return_date" validate:"required"`
	// People is the party size
	People int `json:"people" jsonschema:"title=people" validate:"gte=1"`
	// Budget is the total trip budget in KRW
	Budget float64 `json:"budget" jsonschema:"title=budget,description=total budget in KRW" validate:"gte=0"`
	// TravelStyle is an optional style hint from the user
	TravelStyle string `json:"travel_style,omitempty"`
	// Preferences are optional free-text wishes
	Preferences []string `json:"preferences,omitempty"`
}

// Days returns the inclusive trip span in days.
func (r TripRequest) Days() (int, error) {
	dep, err := time.Parse(DateLayout, r.DepartureDate)
	if err != nil {
		return 0, fmt.Errorf("invalid departure_date %q: %w", r.DepartureDate, err)
	}
	ret, err := time.Parse(DateLayout, r.ReturnDate)
	if err != nil {
		return 0, fmt.Errorf("invalid return_date %q: %w", r.ReturnDate, err)
	}
	if ret.Before(dep) {
		return 0, fmt.Errorf("return_date %s before departure_date %s", r.ReturnDate, r.DepartureDate)
	}
	days := int(ret.Sub(dep).Hours()/24) + 1
	if days > MaxTripDays {
		return 0, fmt.Errorf("trip span %d days exceeds limit of %d", days, MaxTripDays)
	}
	return days, nil
}

// PlanDays returns the number of days planned in detail, capped at MaxItineraryDays.
func (r TripRequest) PlanDays() (int, error) {
	days, err := r.Days()
	if err != nil {
		return 0, err
	}
	if days > MaxItineraryDays {
		return MaxItineraryDays, nil
	}
	return days, nil
}

// CleanCity trims a free-text place down to its city part.
// "Tokyo, Japan" becomes "Tokyo".
func CleanCity(name string) string {
	if idx := strings.IndexByte(name, ','); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}
