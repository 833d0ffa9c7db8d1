package planner

import (
	"context"
	"strings"
	"testing"

	"github.com/tripweave/tripweave/schema"
)

func testRequest() *Request {
	return &Request{
		Trip: &schema.TripRequest{
			Origin:        "Seoul",
			Destination:   "Tokyo",
			DepartureDate: "2026-09-10",
			ReturnDate:    "2026-09-12",
			People:        2,
			Budget:        2000000,
		},
		Days: 3,
		Style: &schema.StyleAnalysis{
			Primary:         "cultural",
			StyleName:       "Cultural Explorer",
			Characteristics: []string{"museums", "historic sites"},
		},
		Flights: []schema.FlightOffer{
			{
				Airlines: []string{"Korean Air"},
				Outbound: schema.FlightLeg{
					DepartureAirport: "ICN", DepartureTime: "2026-09-10T09:30:00",
					ArrivalAirport: "NRT", ArrivalTime: "2026-09-10T12:00:00",
				},
				Inbound: schema.FlightLeg{
					DepartureAirport: "NRT", DepartureTime: "2026-09-12T18:00:00",
					ArrivalAirport: "ICN", ArrivalTime: "2026-09-12T20:40:00",
				},
				Price: schema.FlightPrice{Total: 320, Currency: "USD"},
			},
		},
		Hotels: []schema.HotelOffer{
			{Name: "Asakusa View Hotel", Address: "Nishi-Asakusa", Price: schema.HotelPrice{Total: 300, Currency: "USD"}, PerNight: 100, Rating: 4.2},
		},
		Places: []schema.Place{
			{Name: "Senso-ji", Rating: 4.5, NearbyRestaurants: []schema.Restaurant{{Name: "Tempura Daikokuya", Rating: 4.4}}},
		},
		Weather: []schema.DailyForecast{
			{Date: "2026-09-10", TempMin: 21.3, TempMax: 28.1, Description: "scattered clouds"},
		},
	}
}

func TestTemplateSimilarByDestination(t *testing.T) {
	store, err := NewTemplateStore()
	if err != nil {
		t.Fatal(err)
	}
	got := store.Similar("Tokyo, Japan", 5)
	if len(got) != 1 || got[0].Destination != "Tokyo" {
		t.Fatalf("expected the Tokyo template, got %+v", got)
	}
}

func TestTemplateSimilarByDays(t *testing.T) {
	store, err := NewTemplateStore()
	if err != nil {
		t.Fatal(err)
	}
	got := store.Similar("Paris", 4)
	if len(got) != 2 {
		t.Fatalf("expected both templates within one day of a 4-day trip, got %d", len(got))
	}
}

func TestTemplatePickAlwaysReturns(t *testing.T) {
	store, err := NewTemplateStore()
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		tpl := store.Pick("Nowhere", 99)
		if tpl.Destination == "" {
			t.Fatal("picked an empty template")
		}
	}
}

func TestDraftPromptContent(t *testing.T) {
	store, err := NewTemplateStore()
	if err != nil {
		t.Fatal(err)
	}
	req := testRequest()
	prompt := draftPrompt(req, store.Pick(req.Trip.Destination, req.Days))
	for _, want := range []string{
		"Create a 3-day travel itinerary",
		"Cultural Explorer",
		"Korean Air",
		"ICN 09:30 -> NRT 12:00",
		"direct",
		"Asakusa View Hotel",
		"Senso-ji",
		"Tempura Daikokuya",
		"scattered clouds",
		"320.00 USD (441,600 KRW)",
		"80% of the total budget",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("draft prompt missing %q", want)
		}
	}
}

func TestRefinePromptContent(t *testing.T) {
	req := testRequest()
	refine := &RefineRequest{
		Draft: &schema.Itinerary{
			Destination: "Tokyo",
			Days:        3,
			People:      2,
		},
		Analysis: &schema.HotelAnalysis{TopPick: "Asakusa View Hotel"},
		Flights:  req.Flights,
		Hotels:   req.Hotels,
		Weather:  req.Weather,
		Budget:   2000000,
	}
	prompt := refinePrompt(refine)
	for _, want := range []string{
		"Draft itinerary",
		"\"destination\": \"Tokyo\"",
		"Asakusa View Hotel",
		"Day 1 transportation is the outbound flight",
		"must not exceed 2000000 KRW",
		"at most 5%",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("refine prompt missing %q", want)
		}
	}
}

func TestSystemPromptListsTravelStyles(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	prompt := p.SystemPrompt()
	if !strings.Contains(prompt, "## Travel styles") {
		t.Fatalf("system prompt missing the style catalog section:\n%s", prompt)
	}
	for _, name := range []string{"Family Trip", "Backpacking", "Cultural Exploration", "Luxury"} {
		if !strings.Contains(prompt, name) {
			t.Errorf("system prompt missing style %q", name)
		}
	}
}

func TestDraftFallsBackToStub(t *testing.T) {
	// no client configured, the model output stays empty and invalid
	p, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	req := testRequest()
	itinerary, _ := p.Draft(context.Background(), req)
	if itinerary == nil {
		t.Fatal("draft returned no itinerary")
	}
	if !itinerary.Degraded {
		t.Error("expected a degraded stub")
	}
	if itinerary.Destination != "Tokyo" || itinerary.Days != 3 {
		t.Errorf("stub should carry the request shape, got %s/%d", itinerary.Destination, itinerary.Days)
	}
}

func TestRefineRequiresDraft(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := p.Refine(context.Background(), &RefineRequest{}); err == nil {
		t.Fatal("expected an error without a draft")
	}
}
