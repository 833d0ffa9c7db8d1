package orchestrator

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave/agents/planner"
	"github.com/tripweave/tripweave/agents/reviewer"
	"github.com/tripweave/tripweave/components"
	"github.com/tripweave/tripweave/schema"
)

const orchestratorName = "Orchestrator"

// result caps fed into the drafting prompt
const (
	maxFlightResults = 3
	maxHotelResults  = 5
)

// FlightSearcher finds round-trip flight offers.
type FlightSearcher interface {
	Run(ctx context.Context, input *schema.FlightQuery) (*schema.FlightResult, error)
}

// HotelSearcher finds bookable hotels.
type HotelSearcher interface {
	Run(ctx context.Context, input *schema.HotelQuery) (*schema.HotelResult, error)
}

// PlaceSearcher finds attractions with nearby restaurants.
type PlaceSearcher interface {
	Run(ctx context.Context, input *schema.PlaceQuery) (*schema.PlaceResult, error)
}

// WeatherProvider reports forecasts for the trip window.
type WeatherProvider interface {
	Run(ctx context.Context, input *schema.WeatherQuery) (*schema.WeatherResult, error)
}

// StyleAnalyzer classifies a request into a travel style.
type StyleAnalyzer interface {
	Name() string
	Analyze(req *schema.TripRequest) *schema.StyleAnalysis
}

// Drafter drafts and refines itineraries.
type Drafter interface {
	Name() string
	Draft(ctx context.Context, req *planner.Request) (*schema.Itinerary, *components.ApiResponse)
	Refine(ctx context.Context, req *planner.RefineRequest) (*schema.Itinerary, *components.ApiResponse, error)
}

// ReviewAnalyzer compares hotels on guest reviews.
type ReviewAnalyzer interface {
	Name() string
	Analyze(ctx context.Context, req *reviewer.Request) (*schema.HotelAnalysis, *components.ApiResponse, error)
}

// Orchestrator drives the fixed planning sequence. Provider tools are
// optional and skipped when absent; the planner is required.
type Orchestrator struct {
	flights  FlightSearcher
	hotels   HotelSearcher
	places   PlaceSearcher
	weather  WeatherProvider
	stylist  StyleAnalyzer
	planner  Drafter
	reviewer ReviewAnalyzer
	logger   *zap.Logger
}

func New(opts ...Option) *Orchestrator {
	ret := new(Orchestrator)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	return ret
}

// Result is everything one planning run produced, reconciliation input
// included.
type Result struct {
	Request  *schema.TripRequest    `json:"request"`
	Days     int                    `json:"days"`
	Style    *schema.StyleAnalysis  `json:"style,omitempty"`
	Draft    *schema.Itinerary      `json:"draft,omitempty"`
	Final    *schema.Itinerary      `json:"final"`
	Analysis *schema.HotelAnalysis  `json:"hotel_analysis,omitempty"`
	Flights  []schema.FlightOffer   `json:"flights,omitempty"`
	// FlightBookingURL is the search-level Google Flights deep link
	FlightBookingURL string `json:"flight_booking_url,omitempty"`
	Hotels   []schema.HotelOffer    `json:"hotels,omitempty"`
	Places   []schema.Place         `json:"places,omitempty"`
	Weather  []schema.DailyForecast `json:"weather,omitempty"`
	Budget   *schema.BudgetSummary  `json:"budget_summary,omitempty"`
	Commands []Command              `json:"commands"`
	Usage    components.ApiUsage    `json:"usage"`
}

// Plan runs the planning sequence. Provider failures degrade the run,
// they never abort it; only a missing planner or an invalid date range
// is fatal.
func (o *Orchestrator) Plan(ctx context.Context, req *schema.TripRequest) (*Result, error) {
	if o.planner == nil {
		return nil, fmt.Errorf("orchestrator has no planner configured")
	}
	days, err := req.PlanDays()
	if err != nil {
		return nil, err
	}
	log := NewCommandLog()
	res := &Result{Request: req, Days: days}

	res.Weather = o.stepWeather(ctx, log, req, days)
	res.Flights, res.FlightBookingURL = o.stepFlights(ctx, log, req)
	hotels, hotelsOK := o.stepHotels(ctx, log, req)
	res.Hotels = hotels
	res.Style = o.stepStyle(log, req)
	res.Places = o.stepPlaces(ctx, log, req)
	res.Draft = o.stepDraft(ctx, log, res, req, days)
	if hotelsOK && len(hotels) > 0 {
		res.Analysis = o.stepReview(ctx, log, res, req)
	}
	res.Final = o.stepRefine(ctx, log, res, req)

	res.Commands = log.Commands()
	return res, nil
}

func (o *Orchestrator) stepWeather(ctx context.Context, log *CommandLog, req *schema.TripRequest, days int) []schema.DailyForecast {
	if o.weather == nil {
		return nil
	}
	city := schema.CleanCity(req.Destination)
	cmd := log.Begin(orchestratorName, "WeatherTool", "forecast", map[string]any{
		"city": city, "from": req.DepartureDate, "to": req.ReturnDate,
	})
	out, err := o.weather.Run(ctx, &schema.WeatherQuery{
		City:          city,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
	})
	if err != nil {
		o.logger.Warn("weather lookup failed", zap.String("city", city), zap.Error(err))
		log.Fail(cmd, err)
		return nil
	}
	forecast := out.Forecast
	if len(forecast) < days {
		forecast = o.supplementForecast(ctx, city, forecast, days)
	}
	log.Complete(cmd, fmt.Sprintf("%d forecast days", len(forecast)))
	return forecast
}

// supplementForecast pads a short date-range forecast with a plain
// N-day forecast, merged by date.
func (o *Orchestrator) supplementForecast(ctx context.Context, city string, forecast []schema.DailyForecast, days int) []schema.DailyForecast {
	n := days
	if n > schema.MaxItineraryDays {
		n = schema.MaxItineraryDays
	}
	extra, err := o.weather.Run(ctx, &schema.WeatherQuery{City: city, Days: n})
	if err != nil {
		o.logger.Warn("supplementary forecast failed", zap.String("city", city), zap.Error(err))
		return forecast
	}
	seen := make(map[string]bool, len(forecast))
	for _, day := range forecast {
		seen[day.Date] = true
	}
	for _, day := range extra.Forecast {
		if !seen[day.Date] {
			forecast = append(forecast, day)
			seen[day.Date] = true
		}
	}
	sort.Slice(forecast, func(i, j int) bool { return forecast[i].Date < forecast[j].Date })
	return forecast
}

func (o *Orchestrator) stepFlights(ctx context.Context, log *CommandLog, req *schema.TripRequest) ([]schema.FlightOffer, string) {
	if o.flights == nil {
		return nil, ""
	}
	origin := schema.CleanCity(req.Origin)
	destination := schema.CleanCity(req.Destination)
	cmd := log.Begin(orchestratorName, "FlightSearchTool", "search_flights", map[string]any{
		"origin": origin, "destination": destination,
		"departure_date": req.DepartureDate, "return_date": req.ReturnDate,
		"adults": req.People,
	})
	out, err := o.flights.Run(ctx, &schema.FlightQuery{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.People,
		MaxResults:    maxFlightResults,
	})
	if err != nil {
		o.logger.Warn("flight search failed", zap.String("destination", destination), zap.Error(err))
		log.Fail(cmd, err)
		return nil, ""
	}
	log.Complete(cmd, fmt.Sprintf("%d offers", len(out.Flights)))
	return out.Flights, out.BookingURL
}

func (o *Orchestrator) stepHotels(ctx context.Context, log *CommandLog, req *schema.TripRequest) ([]schema.HotelOffer, bool) {
	if o.hotels == nil {
		return nil, false
	}
	city := schema.CleanCity(req.Destination)
	cmd := log.Begin(orchestratorName, "HotelSearchTool", "search_hotels", map[string]any{
		"city": city, "check_in": req.DepartureDate, "check_out": req.ReturnDate,
		"adults": req.People,
	})
	out, err := o.hotels.Run(ctx, &schema.HotelQuery{
		CityName:   city,
		CheckIn:    req.DepartureDate,
		CheckOut:   req.ReturnDate,
		Adults:     req.People,
		MaxResults: maxHotelResults,
	})
	if err != nil {
		o.logger.Warn("hotel search failed", zap.String("city", city), zap.Error(err))
		log.Fail(cmd, err)
		return nil, false
	}
	log.Complete(cmd, fmt.Sprintf("%d hotels", len(out.Hotels)))
	return out.Hotels, true
}

func (o *Orchestrator) stepStyle(log *CommandLog, req *schema.TripRequest) *schema.StyleAnalysis {
	if o.stylist == nil {
		return nil
	}
	cmd := log.Begin(orchestratorName, o.stylist.Name(), "analyze_style", map[string]any{
		"people": req.People, "budget": req.Budget,
	})
	style := o.stylist.Analyze(req)
	log.Complete(cmd, style.StyleName)
	return style
}

func (o *Orchestrator) stepPlaces(ctx context.Context, log *CommandLog, req *schema.TripRequest) []schema.Place {
	if o.places == nil {
		return nil
	}
	destination := schema.CleanCity(req.Destination)
	query := fmt.Sprintf("tourist attractions in %s", destination)
	cmd := log.Begin(orchestratorName, "PlaceSearchTool", "search_places", map[string]any{
		"query": query,
	})
	out, err := o.places.Run(ctx, &schema.PlaceQuery{Query: query})
	if err != nil {
		o.logger.Warn("place search failed", zap.String("destination", destination), zap.Error(err))
		log.Fail(cmd, err)
		return nil
	}
	log.Complete(cmd, fmt.Sprintf("%d places", len(out.Places)))
	return out.Places
}

func (o *Orchestrator) stepDraft(ctx context.Context, log *CommandLog, res *Result, req *schema.TripRequest, days int) *schema.Itinerary {
	cmd := log.Begin(orchestratorName, o.planner.Name(), "draft_itinerary", map[string]any{
		"destination": req.Destination, "days": days,
	})
	draft, apiResp := o.planner.Draft(ctx, &planner.Request{
		Trip:    req,
		Days:    days,
		Style:   res.Style,
		Flights: res.Flights,
		Hotels:  res.Hotels,
		Places:  res.Places,
		Weather: res.Weather,
	})
	mergeUsage(&res.Usage, apiResp)
	if draft.Degraded {
		log.Warn(cmd, draft.DegradedReason)
	} else {
		log.Complete(cmd, fmt.Sprintf("%d planned days", len(draft.Itinerary)))
	}
	return draft
}

func (o *Orchestrator) stepReview(ctx context.Context, log *CommandLog, res *Result, req *schema.TripRequest) *schema.HotelAnalysis {
	to := "Reviewer"
	if o.reviewer != nil {
		to = o.reviewer.Name()
	}
	cmd := log.Begin(orchestratorName, to, "analyze_hotel_reviews", map[string]any{
		"hotels": len(res.Hotels),
	})
	if o.reviewer == nil {
		log.Fail(cmd, fmt.Errorf("no reviewer configured"))
		return nil
	}
	analysis, apiResp, err := o.reviewer.Analyze(ctx, &reviewer.Request{
		Destination: schema.CleanCity(req.Destination),
		Hotels:      res.Hotels,
	})
	mergeUsage(&res.Usage, apiResp)
	if err != nil {
		o.logger.Warn("hotel review analysis failed", zap.Error(err))
		log.Fail(cmd, err)
		return nil
	}
	log.Complete(cmd, fmt.Sprintf("top pick %s", analysis.TopPick))
	return analysis
}

func (o *Orchestrator) stepRefine(ctx context.Context, log *CommandLog, res *Result, req *schema.TripRequest) *schema.Itinerary {
	cmd := log.Begin(orchestratorName, o.planner.Name(), "refine_itinerary", map[string]any{
		"destination": req.Destination,
	})
	refined, apiResp, err := o.planner.Refine(ctx, &planner.RefineRequest{
		Draft:    res.Draft,
		Analysis: res.Analysis,
		Flights:  res.Flights,
		Hotels:   res.Hotels,
		Places:   res.Places,
		Weather:  res.Weather,
		Budget:   req.Budget,
	})
	mergeUsage(&res.Usage, apiResp)
	if err != nil {
		o.logger.Warn("refinement failed, keeping draft", zap.Error(err))
		log.Warn(cmd, fmt.Sprintf("kept draft: %v", err))
		return res.Draft
	}
	log.Complete(cmd, fmt.Sprintf("%d planned days", len(refined.Itinerary)))
	return refined
}

func mergeUsage(total *components.ApiUsage, apiResp *components.ApiResponse) {
	if apiResp != nil && apiResp.Usage != nil {
		total.Merge(apiResp.Usage)
	}
}
