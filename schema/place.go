package schema

// PlaceQuery is the place search tool input.
type PlaceQuery struct {
	Base
	Query      string `json:"query" jsonschema:"title=query" validate:"required"`
	MaxResults int    `json:"max_results,omitempty"`
}

// Restaurant is an eatery near an attraction.
type Restaurant struct {
	Name        string  `json:"name"`
	Address     string  `json:"address,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	UserRatings int     `json:"user_ratings,omitempty"`
	PriceLevel  int     `json:"price_level,omitempty"`
	PhotoURL    string  `json:"photo_url,omitempty"`
}

// Place is an attraction with nearby dining options.
type Place struct {
	PlaceID           string       `json:"place_id"`
	Name              string       `json:"name"`
	Address           string       `json:"address,omitempty"`
	Rating            float64      `json:"rating,omitempty"`
	UserRatings       int          `json:"user_ratings,omitempty"`
	Types             []string     `json:"types,omitempty"`
	PhotoURL          string       `json:"photo_url,omitempty"`
	NearbyRestaurants []Restaurant `json:"nearby_restaurants,omitempty"`
}

// PlaceResult is the place search tool output.
type PlaceResult struct {
	Base
	Result
	Places []Place `json:"places,omitempty"`
}
