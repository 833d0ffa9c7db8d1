package schema

import "testing"

func TestTripRequestDays(t *testing.T) {
	req := TripRequest{
		Origin:        "Seoul",
		Destination:   "Tokyo, Japan",
		DepartureDate: "2025-11-10",
		ReturnDate:    "2025-11-13",
		People:        2,
		Budget:        2000000,
	}
	days, err := req.Days()
	if err != nil {
		t.Fatalf("Days() error: %v", err)
	}
	if days != 4 {
		t.Errorf("expected 4 days, got %d", days)
	}
}

func TestTripRequestDaysInvalid(t *testing.T) {
	tests := []struct {
		name string
		dep  string
		ret  string
	}{
		{"bad departure", "2025-13-01", "2025-11-13"},
		{"return before departure", "2025-11-13", "2025-11-10"},
		{"span over limit", "2025-11-01", "2025-11-30"},
	}
	for _, tt := range tests {
		req := TripRequest{DepartureDate: tt.dep, ReturnDate: tt.ret}
		if _, err := req.Days(); err == nil {
			t.Errorf("%s: expected error, got none", tt.name)
		}
	}
}

func TestTripRequestPlanDaysCap(t *testing.T) {
	req := TripRequest{DepartureDate: "2025-11-01", ReturnDate: "2025-11-08"}
	days, err := req.PlanDays()
	if err != nil {
		t.Fatalf("PlanDays() error: %v", err)
	}
	if days != MaxItineraryDays {
		t.Errorf("expected cap at %d, got %d", MaxItineraryDays, days)
	}
}

func TestCleanCity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tokyo, Japan", "Tokyo"},
		{"Seoul", "Seoul"},
		{" Osaka , Japan", "Osaka"},
	}
	for _, tt := range tests {
		if got := CleanCity(tt.in); got != tt.want {
			t.Errorf("CleanCity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStringify(t *testing.T) {
	if got := Stringify(String("hello")); got != "hello" {
		t.Errorf("Stringify(String) = %q", got)
	}
	req := TripRequest{Origin: "Seoul", Destination: "Tokyo"}
	got := Stringify(req)
	if got == "" || got[0] != '{' {
		t.Errorf("Stringify(struct) = %q, want JSON object", got)
	}
}
