package schema

// BudgetSummary is recomputed from provider data, independent of the model.
type BudgetSummary struct {
	UserBudget    float64 `json:"user_budget"`
	TotalCost     int     `json:"total_cost"`
	FlightTotal   float64 `json:"flight_total"`
	HotelTotal    float64 `json:"hotel_total"`
	HotelTotalKRW int     `json:"hotel_total_krw"`
	HotelCurrency string  `json:"hotel_currency,omitempty"`
	Diff          int     `json:"diff"`
	IsOver        bool    `json:"is_over"`
	OverRate      float64 `json:"over_rate"`
}
