package schema

// HotelQuery is the hotel search tool input.
type HotelQuery struct {
	Base
	CityName   string `json:"city_name" jsonschema:"title=city_name" validate:"required"`
	CheckIn    string `json:"check_in" jsonschema:"title=check_in" validate:"required"`
	CheckOut   string `json:"check_out" jsonschema:"title=check_out" validate:"required"`
	Adults     int    `json:"adults" jsonschema:"title=adults" validate:"gte=1"`
	MaxResults int    `json:"max_results,omitempty"`
}

// HotelPrice carries the stay total and the pre-tax base.
type HotelPrice struct {
	Total    float64 `json:"total"`
	Base     float64 `json:"base"`
	Currency string  `json:"currency"`
}

// HotelOffer is one bookable hotel with its cheapest offer.
type HotelOffer struct {
	HotelID   string     `json:"hotel_id"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	Rating    float64    `json:"rating,omitempty"`
	Price     HotelPrice `json:"price"`
	PerNight  float64    `json:"per_night"`
	BoardType string     `json:"board_type,omitempty"`
}

// HotelSearchParams echoes the resolved query back to the caller.
type HotelSearchParams struct {
	CityCode string `json:"city_code"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
}

// HotelResult is the hotel search tool output.
type HotelResult struct {
	Base
	Result
	Hotels       []HotelOffer      `json:"hotels,omitempty"`
	SearchParams HotelSearchParams `json:"search_params"`
}
