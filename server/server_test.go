package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripweave/tripweave/orchestrator"
	"github.com/tripweave/tripweave/schema"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePlanner struct {
	result *orchestrator.Result
	err    error
}

func (f *fakePlanner) Plan(_ context.Context, req *schema.TripRequest) (*orchestrator.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	res.Request = req
	return &res, nil
}

func plannedResult() *orchestrator.Result {
	return &orchestrator.Result{
		Days: 3,
		Final: &schema.Itinerary{
			Destination: "Tokyo", Days: 3, People: 2,
			Itinerary: make([]schema.Day, 3),
		},
		Flights: []schema.FlightOffer{{
			Airlines: []string{"Korean Air"},
			Outbound: schema.FlightLeg{DepartureAirport: "ICN", DepartureTime: "2026-09-10T09:30:00", ArrivalAirport: "NRT", ArrivalTime: "2026-09-10T12:00:00"},
			Inbound:  schema.FlightLeg{DepartureAirport: "NRT", DepartureTime: "2026-09-12T18:00:00", ArrivalAirport: "ICN", ArrivalTime: "2026-09-12T20:40:00"},
			Price:    schema.FlightPrice{Total: 500, Currency: "USD"},
		}},
		FlightBookingURL: "https://www.google.com/travel/flights?q=ICN+NRT",
		Commands:         []orchestrator.Command{{Name: "draft_itinerary", Status: orchestrator.StatusCompleted}},
	}
}

func planBody() string {
	return `{
		"origin": "Seoul",
		"destination": "Tokyo, Japan",
		"departure_date": "2026-09-10",
		"return_date": "2026-09-12",
		"people": 2,
		"budget": 2000000
	}`
}

func postPlan(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestPlanEndpoint(t *testing.T) {
	s := New(&fakePlanner{result: plannedResult()})
	w := postPlan(t, s, planBody())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res PlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.PlanID == "" {
		t.Error("response missing plan id")
	}
	if res.Budget == nil || res.Budget.TotalCost != 690000 {
		t.Errorf("budget summary not reconciled: %+v", res.Budget)
	}
	if res.Final.SelectedFlight == nil {
		t.Error("flight repair did not run")
	} else if res.Final.SelectedFlight.BookingURL != "https://www.google.com/travel/flights?q=ICN+NRT" {
		t.Errorf("flight booking url not reconciled: %q", res.Final.SelectedFlight.BookingURL)
	}
}

func TestPlanEndpointValidation(t *testing.T) {
	s := New(&fakePlanner{result: plannedResult()})
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing destination", `{"origin":"Seoul","departure_date":"2026-09-10","return_date":"2026-09-12","people":2}`},
		{"zero people", `{"origin":"Seoul","destination":"Tokyo","departure_date":"2026-09-10","return_date":"2026-09-12","people":0}`},
		{"return before departure", `{"origin":"Seoul","destination":"Tokyo","departure_date":"2026-09-12","return_date":"2026-09-10","people":2}`},
		{"span too long", `{"origin":"Seoul","destination":"Tokyo","departure_date":"2026-09-01","return_date":"2026-09-30","people":2}`},
	}
	for _, tt := range tests {
		if w := postPlan(t, s, tt.body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, w.Code)
		}
	}
}

func TestPlanEndpointPlannerError(t *testing.T) {
	s := New(&fakePlanner{err: fmt.Errorf("no planner configured")})
	if w := postPlan(t, s, planBody()); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestGetPlanRoundTrip(t *testing.T) {
	s := New(&fakePlanner{result: plannedResult()})
	w := postPlan(t, s, planBody())
	var created PlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/plan/"+created.PlanID, nil)
	got := httptest.NewRecorder()
	s.Handler().ServeHTTP(got, req)
	if got.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", got.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/plan/missing", nil)
	missing := httptest.NewRecorder()
	s.Handler().ServeHTTP(missing, req)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := New(&fakePlanner{result: plannedResult()},
		WithAgents("Stylist", "Planner", "Reviewer"),
		WithTools("FlightSearchTool", "HotelSearchTool"),
	)
	postPlan(t, s, planBody())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var status struct {
		Status        string   `json:"status"`
		Agents        []string `json:"agents"`
		PlansServed   int      `json:"plans_served"`
		CommandsTotal int      `json:"commands_total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "ok" || len(status.Agents) != 3 {
		t.Errorf("unexpected status payload: %+v", status)
	}
	if status.PlansServed != 1 || status.CommandsTotal != 1 {
		t.Errorf("counters not tracked: %+v", status)
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	id := store.Put(&PlanResponse{})
	if _, ok := store.Get(id); !ok {
		t.Fatal("fresh plan should be retrievable")
	}
	time.Sleep(30 * time.Millisecond)
	if _, ok := store.Get(id); ok {
		t.Fatal("expired plan should be gone")
	}
}
