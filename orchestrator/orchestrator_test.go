package orchestrator

import (
	"context"
	"fmt"
	"testing"

	"github.com/tripweave/tripweave/agents/planner"
	"github.com/tripweave/tripweave/agents/reviewer"
	"github.com/tripweave/tripweave/components"
	"github.com/tripweave/tripweave/schema"
)

type fakeFlights struct {
	offers     []schema.FlightOffer
	bookingURL string
	err        error
}

func (f *fakeFlights) Run(_ context.Context, input *schema.FlightQuery) (*schema.FlightResult, error) {
	if f.err != nil {
		return &schema.FlightResult{Result: schema.Fail(f.err)}, f.err
	}
	return &schema.FlightResult{Result: schema.Ok(), Flights: f.offers, BookingURL: f.bookingURL}, nil
}

type fakeHotels struct {
	hotels []schema.HotelOffer
	err    error
}

func (f *fakeHotels) Run(_ context.Context, input *schema.HotelQuery) (*schema.HotelResult, error) {
	if f.err != nil {
		return &schema.HotelResult{Result: schema.Fail(f.err)}, f.err
	}
	return &schema.HotelResult{Result: schema.Ok(), Hotels: f.hotels}, nil
}

type fakePlaces struct {
	places  []schema.Place
	queries []string
}

func (f *fakePlaces) Run(_ context.Context, input *schema.PlaceQuery) (*schema.PlaceResult, error) {
	f.queries = append(f.queries, input.Query)
	return &schema.PlaceResult{Result: schema.Ok(), Places: f.places}, nil
}

type fakeWeather struct {
	ranged []schema.DailyForecast
	plain  []schema.DailyForecast
}

func (f *fakeWeather) Run(_ context.Context, input *schema.WeatherQuery) (*schema.WeatherResult, error) {
	if input.Days > 0 {
		return &schema.WeatherResult{Result: schema.Ok(), Forecast: f.plain}, nil
	}
	return &schema.WeatherResult{Result: schema.Ok(), Forecast: f.ranged}, nil
}

type fakeStylist struct{}

func (fakeStylist) Name() string { return "Stylist" }

func (fakeStylist) Analyze(req *schema.TripRequest) *schema.StyleAnalysis {
	return &schema.StyleAnalysis{Primary: "cultural", StyleName: "Cultural Explorer"}
}

type fakeDrafter struct {
	draft     *schema.Itinerary
	refined   *schema.Itinerary
	refineErr error

	draftReq  *planner.Request
	refineReq *planner.RefineRequest
}

func (fakeDrafter) Name() string { return "Planner" }

func (f *fakeDrafter) Draft(_ context.Context, req *planner.Request) (*schema.Itinerary, *components.ApiResponse) {
	f.draftReq = req
	return f.draft, &components.ApiResponse{Usage: &components.ApiUsage{InputTokens: 10, OutputTokens: 5}}
}

func (f *fakeDrafter) Refine(_ context.Context, req *planner.RefineRequest) (*schema.Itinerary, *components.ApiResponse, error) {
	f.refineReq = req
	if f.refineErr != nil {
		return nil, nil, f.refineErr
	}
	return f.refined, &components.ApiResponse{Usage: &components.ApiUsage{InputTokens: 20, OutputTokens: 8}}, nil
}

type fakeReviewer struct {
	analysis *schema.HotelAnalysis
	err      error
	called   bool
}

func (fakeReviewer) Name() string { return "Reviewer" }

func (f *fakeReviewer) Analyze(_ context.Context, req *reviewer.Request) (*schema.HotelAnalysis, *components.ApiResponse, error) {
	f.called = true
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.analysis, nil, nil
}

func testTrip() *schema.TripRequest {
	return &schema.TripRequest{
		Origin:        "Seoul",
		Destination:   "Tokyo, Japan",
		DepartureDate: "2026-09-10",
		ReturnDate:    "2026-09-13",
		People:        2,
		Budget:        2000000,
	}
}

func testDraft() *schema.Itinerary {
	return &schema.Itinerary{Destination: "Tokyo", Days: 4, People: 2, Itinerary: make([]schema.Day, 4)}
}

func commandNames(commands []Command) []string {
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name)
	}
	return names
}

func findCommand(commands []Command, name string) *Command {
	for i := range commands {
		if commands[i].Name == name {
			return &commands[i]
		}
	}
	return nil
}

func TestPlanSequence(t *testing.T) {
	drafter := &fakeDrafter{draft: testDraft(), refined: testDraft()}
	rev := &fakeReviewer{analysis: &schema.HotelAnalysis{TopPick: "Asakusa View Hotel"}}
	places := &fakePlaces{places: []schema.Place{{Name: "Senso-ji"}}}
	o := New(
		WithFlights(&fakeFlights{
			offers:     []schema.FlightOffer{{Airlines: []string{"KE"}}},
			bookingURL: "https://www.google.com/travel/flights?q=ICN+NRT",
		}),
		WithHotels(&fakeHotels{hotels: []schema.HotelOffer{{Name: "Asakusa View Hotel"}}}),
		WithPlaces(places),
		WithWeather(&fakeWeather{ranged: []schema.DailyForecast{
			{Date: "2026-09-10"}, {Date: "2026-09-11"}, {Date: "2026-09-12"}, {Date: "2026-09-13"},
		}}),
		WithStylist(fakeStylist{}),
		WithPlanner(drafter),
		WithReviewer(rev),
	)
	res, err := o.Plan(context.Background(), testTrip())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"forecast", "search_flights", "search_hotels", "analyze_style",
		"search_places", "draft_itinerary", "analyze_hotel_reviews", "refine_itinerary",
	}
	got := commandNames(res.Commands)
	if len(got) != len(want) {
		t.Fatalf("expected %d commands, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	for _, cmd := range res.Commands {
		if cmd.Status != StatusCompleted {
			t.Errorf("command %s: expected completed, got %s", cmd.Name, cmd.Status)
		}
		if cmd.CompletedAt.IsZero() {
			t.Errorf("command %s: not resolved", cmd.Name)
		}
	}
	if res.Days != 4 {
		t.Errorf("expected 4 plan days, got %d", res.Days)
	}
	if len(places.queries) != 1 || places.queries[0] != "tourist attractions in Tokyo" {
		t.Errorf("unexpected place query %v", places.queries)
	}
	if drafter.draftReq.Style == nil || len(drafter.draftReq.Places) != 1 {
		t.Error("draft request missing style or places")
	}
	if drafter.refineReq.Analysis == nil {
		t.Error("refine request missing the hotel analysis")
	}
	if res.FlightBookingURL != "https://www.google.com/travel/flights?q=ICN+NRT" {
		t.Errorf("flight booking url not carried: %q", res.FlightBookingURL)
	}
	if res.Usage.InputTokens != 30 || res.Usage.OutputTokens != 13 {
		t.Errorf("usage not accumulated: %+v", res.Usage)
	}
}

func TestPlanSkipsReviewOnHotelFailure(t *testing.T) {
	drafter := &fakeDrafter{draft: testDraft(), refined: testDraft()}
	rev := &fakeReviewer{}
	o := New(
		WithHotels(&fakeHotels{err: fmt.Errorf("amadeus unavailable")}),
		WithStylist(fakeStylist{}),
		WithPlanner(drafter),
		WithReviewer(rev),
	)
	res, err := o.Plan(context.Background(), testTrip())
	if err != nil {
		t.Fatal(err)
	}
	if rev.called {
		t.Error("review step should be skipped when the hotel search fails")
	}
	if cmd := findCommand(res.Commands, "analyze_hotel_reviews"); cmd != nil {
		t.Error("no review command should be recorded")
	}
	if cmd := findCommand(res.Commands, "search_hotels"); cmd == nil || cmd.Status != StatusFailed {
		t.Error("hotel command should be recorded failed")
	}
	if drafter.refineReq.Analysis != nil {
		t.Error("refinement should run without an analysis")
	}
}

func TestPlanRefineFallbackKeepsDraft(t *testing.T) {
	draft := testDraft()
	drafter := &fakeDrafter{draft: draft, refineErr: fmt.Errorf("invalid JSON")}
	o := New(WithStylist(fakeStylist{}), WithPlanner(drafter))
	res, err := o.Plan(context.Background(), testTrip())
	if err != nil {
		t.Fatal(err)
	}
	if res.Final != draft {
		t.Error("final itinerary should be the draft when refinement fails")
	}
	cmd := findCommand(res.Commands, "refine_itinerary")
	if cmd == nil || cmd.Status != StatusWarning {
		t.Fatalf("refine command should be completed_with_warning, got %+v", cmd)
	}
}

func TestPlanReviewerMissingRecordsFailure(t *testing.T) {
	drafter := &fakeDrafter{draft: testDraft(), refined: testDraft()}
	o := New(
		WithHotels(&fakeHotels{hotels: []schema.HotelOffer{{Name: "Asakusa View Hotel"}}}),
		WithStylist(fakeStylist{}),
		WithPlanner(drafter),
	)
	res, err := o.Plan(context.Background(), testTrip())
	if err != nil {
		t.Fatal(err)
	}
	cmd := findCommand(res.Commands, "analyze_hotel_reviews")
	if cmd == nil || cmd.Status != StatusFailed {
		t.Fatalf("missing reviewer should record a failed review command, got %+v", cmd)
	}
	if res.Final == nil {
		t.Error("flow should continue to a final itinerary")
	}
}

func TestPlanRequiresPlanner(t *testing.T) {
	o := New(WithStylist(fakeStylist{}))
	if _, err := o.Plan(context.Background(), testTrip()); err == nil {
		t.Fatal("expected an error without a planner")
	}
}

func TestPlanAbsentToolsSkipCleanly(t *testing.T) {
	drafter := &fakeDrafter{draft: testDraft(), refined: testDraft()}
	o := New(WithStylist(fakeStylist{}), WithPlanner(drafter))
	res, err := o.Plan(context.Background(), testTrip())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"analyze_style", "draft_itinerary", "refine_itinerary"}
	got := commandNames(res.Commands)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPlanSupplementsShortForecast(t *testing.T) {
	drafter := &fakeDrafter{draft: testDraft(), refined: testDraft()}
	weather := &fakeWeather{
		ranged: []schema.DailyForecast{{Date: "2026-09-10"}, {Date: "2026-09-11"}},
		plain: []schema.DailyForecast{
			{Date: "2026-09-11"}, {Date: "2026-09-12"}, {Date: "2026-09-13"},
		},
	}
	o := New(WithWeather(weather), WithStylist(fakeStylist{}), WithPlanner(drafter))
	res, err := o.Plan(context.Background(), testTrip())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Weather) != 4 {
		t.Fatalf("expected 4 merged forecast days, got %d", len(res.Weather))
	}
	for i := 1; i < len(res.Weather); i++ {
		if res.Weather[i].Date <= res.Weather[i-1].Date {
			t.Fatalf("forecast not sorted: %v", res.Weather)
		}
	}
}

func TestPlanInvalidDates(t *testing.T) {
	o := New(WithPlanner(&fakeDrafter{draft: testDraft()}))
	req := testTrip()
	req.ReturnDate = "2026-09-01"
	if _, err := o.Plan(context.Background(), req); err == nil {
		t.Fatal("expected an error for a return date before departure")
	}
}
