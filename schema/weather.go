package schema

// WeatherQuery is the weather tool input.
type WeatherQuery struct {
	Base
	City          string `json:"city" jsonschema:"title=city" validate:"required"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
	// Days requests a plain N-day forecast instead of a date range
	Days int `json:"days,omitempty"`
}

// DailyForecast is one forecast day bucketed from 3-hour samples.
type DailyForecast struct {
	Date        string  `json:"date"`
	TempMin     float64 `json:"temp_min"`
	TempAvg     float64 `json:"temp_avg"`
	TempMax     float64 `json:"temp_max"`
	Description string  `json:"description"`
	Main        string  `json:"main,omitempty"`
}

// CurrentWeather is the present conditions snapshot.
type CurrentWeather struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
}

// WeatherResult is the weather tool output.
type WeatherResult struct {
	Base
	Result
	City     string          `json:"city"`
	Current  *CurrentWeather `json:"current,omitempty"`
	Forecast []DailyForecast `json:"forecast,omitempty"`
	// Note explains projected data when the trip is beyond forecast range
	Note string `json:"note,omitempty"`
}
