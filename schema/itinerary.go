package schema

// NoAccommodation marks a day without lodging, e.g. the return day.
const NoAccommodation = "N/A"

// Transportation is a day's main transport.
type Transportation struct {
	Type       string  `json:"type" jsonschema:"title=type,description=transport kind such as flight or local transit"`
	Details    string  `json:"details" jsonschema:"title=details"`
	Cost       float64 `json:"cost" jsonschema:"title=cost,description=cost in KRW"`
	Airline    string  `json:"airline,omitempty"`
	BookingURL string  `json:"booking_url,omitempty"`
}

// Accommodation is a day's lodging.
type Accommodation struct {
	Name          string  `json:"name" jsonschema:"title=name"`
	Address       string  `json:"address,omitempty"`
	Type          string  `json:"type,omitempty"`
	EstimatedCost float64 `json:"estimated_cost" jsonschema:"title=estimated_cost,description=per-night cost in KRW"`
	BookingURL    string  `json:"booking_url,omitempty"`
}

// Attraction is one sight in a day plan.
type Attraction struct {
	Name          string  `json:"name" jsonschema:"title=name"`
	Description   string  `json:"description,omitempty"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Meal is one meal suggestion in a day plan.
type Meal struct {
	Type          string  `json:"type" jsonschema:"title=type,description=breakfast lunch or dinner"`
	Suggestion    string  `json:"suggestion" jsonschema:"title=suggestion,description=restaurant name with recommended menu"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Day is one planned day.
type Day struct {
	Day            int            `json:"day" jsonschema:"title=day"`
	Date           string         `json:"date" jsonschema:"title=date"`
	Transportation Transportation `json:"transportation"`
	Accommodation  Accommodation  `json:"accommodation"`
	Attractions    []Attraction   `json:"attractions"`
	Meals          []Meal         `json:"meals"`
	DailyCost      float64        `json:"daily_cost"`
}

// SelectedFlight is the flight the planner picked from the candidates.
type SelectedFlight struct {
	Airline    string  `json:"airline"`
	Price      float64 `json:"price"`
	Outbound   string  `json:"outbound"`
	Inbound    string  `json:"inbound"`
	BookingURL string  `json:"booking_url,omitempty"`
}

// SelectedHotel is the hotel the planner picked, normalized by reconciliation.
type SelectedHotel struct {
	Name             string  `json:"name"`
	Address          string  `json:"address,omitempty"`
	Type             string  `json:"type,omitempty"`
	EstimatedCost    float64 `json:"estimated_cost"`
	PerNightCost     float64 `json:"per_night_cost,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	EstimatedCostKRW int     `json:"estimated_cost_krw,omitempty"`
	PerNightCostKRW  int     `json:"per_night_cost_krw,omitempty"`
	BookingURL       string  `json:"booking_url,omitempty"`
}

// BudgetBreakdown is the planner's own cost accounting.
type BudgetBreakdown struct {
	FlightTotal         float64 `json:"flight_total"`
	HotelTotal          float64 `json:"hotel_total"`
	FoodTotal           float64 `json:"food_total"`
	AttractionsTotal    float64 `json:"attractions_total"`
	TransportationTotal float64 `json:"transportation_total"`
	Total               float64 `json:"total"`
}

// Itinerary is the planner output, draft and final alike.
type Itinerary struct {
	Base
	Destination     string          `json:"destination" jsonschema:"title=destination" validate:"required"`
	Days            int             `json:"days" jsonschema:"title=days" validate:"gte=1,lte=5"`
	People          int             `json:"people" jsonschema:"title=people"`
	EstimatedCost   float64         `json:"estimated_cost" jsonschema:"title=estimated_cost,description=total trip cost in KRW"`
	SelectedFlight  *SelectedFlight `json:"selected_flight,omitempty"`
	SelectedHotel   *SelectedHotel  `json:"selected_hotel,omitempty"`
	Itinerary       []Day           `json:"itinerary"`
	BudgetBreakdown BudgetBreakdown `json:"budget_breakdown"`
	// Degraded is set when the model output could not be used as-is
	Degraded       bool   `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}

// StubItinerary returns the minimal itinerary used when drafting fails.
func StubItinerary(req *TripRequest, days int, reason string) *Itinerary {
	return &Itinerary{
		Destination:    req.Destination,
		Days:           days,
		People:         req.People,
		EstimatedCost:  req.Budget,
		Itinerary:      []Day{},
		Degraded:       true,
		DegradedReason: reason,
	}
}
