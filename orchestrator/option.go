package orchestrator

import "go.uber.org/zap"

type Option func(*Orchestrator)

func WithFlights(t FlightSearcher) Option {
	return func(o *Orchestrator) {
		o.flights = t
	}
}

func WithHotels(t HotelSearcher) Option {
	return func(o *Orchestrator) {
		o.hotels = t
	}
}

func WithPlaces(t PlaceSearcher) Option {
	return func(o *Orchestrator) {
		o.places = t
	}
}

func WithWeather(t WeatherProvider) Option {
	return func(o *Orchestrator) {
		o.weather = t
	}
}

func WithStylist(a StyleAnalyzer) Option {
	return func(o *Orchestrator) {
		o.stylist = a
	}
}

func WithPlanner(a Drafter) Option {
	return func(o *Orchestrator) {
		o.planner = a
	}
}

func WithReviewer(a ReviewAnalyzer) Option {
	return func(o *Orchestrator) {
		o.reviewer = a
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}
