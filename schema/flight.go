package schema

// FlightQuery is the flight search tool input.
type FlightQuery struct {
	Base
	Origin        string `json:"origin" jsonschema:"title=origin" validate:"required"`
	Destination   string `json:"destination" jsonschema:"title=destination" validate:"required"`
	DepartureDate string `json:"departure_date" jsonschema:"title=departure_date" validate:"required"`
	ReturnDate    string `json:"return_date" jsonschema:"title=return_date" validate:"required"`
	Adults        int    `json:"adults" jsonschema:"title=adults" validate:"gte=1"`
	MaxResults    int    `json:"max_results,omitempty"`
}

// FlightLeg is one direction of a round trip.
type FlightLeg struct {
	DepartureAirport string   `json:"departure_airport"`
	DepartureTime    string   `json:"departure_time"`
	ArrivalAirport   string   `json:"arrival_airport"`
	ArrivalTime      string   `json:"arrival_time"`
	Duration         string   `json:"duration,omitempty"`
	Stops            int      `json:"stops"`
	Layovers         []string `json:"layovers,omitempty"`
}

// FlightPrice is the total round-trip price.
type FlightPrice struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// FlightOffer is one round-trip candidate.
type FlightOffer struct {
	ID       string      `json:"id,omitempty"`
	Airlines []string    `json:"airlines"`
	Outbound FlightLeg   `json:"outbound"`
	Inbound  FlightLeg   `json:"inbound"`
	Price    FlightPrice `json:"price"`
}

// FlightSearchParams echoes the resolved query back to the caller.
type FlightSearchParams struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Adults        int    `json:"adults"`
}

// FlightResult is the flight search tool output.
type FlightResult struct {
	Base
	Result
	Flights      []FlightOffer      `json:"flights,omitempty"`
	SearchParams FlightSearchParams `json:"search_params"`
	// BookingURL is a Google Flights deep link for the whole search
	BookingURL string `json:"booking_url,omitempty"`
}
