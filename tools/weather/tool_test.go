package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tripweave/tripweave/schema"
)

func sample(date, hour string, temp, tmin, tmax float64, desc string) map[string]any {
	return map[string]any{
		"dt_txt": date + " " + hour,
		"main":   map[string]any{"temp": temp, "temp_min": tmin, "temp_max": tmax},
		"weather": []any{
			map[string]any{"main": "Clouds", "description": desc},
		},
	}
}

func startWeatherServer(t *testing.T, list []any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"main":    map[string]any{"temp": 12.3, "feels_like": 11.0, "humidity": 60},
			"weather": []any{map[string]any{"main": "Clear", "description": "clear sky"}},
		})
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"list": list})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestWeatherDailyBuckets(t *testing.T) {
	today := time.Now().Format(schema.DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(schema.DateLayout)
	list := []any{
		sample(today, "06:00:00", 8, 6, 9, "light rain"),
		sample(today, "12:00:00", 14, 12, 15, "scattered clouds"),
		sample(today, "18:00:00", 10, 9, 11, "overcast clouds"),
		sample(tomorrow, "12:00:00", 16, 13, 18, "clear sky"),
	}
	srv := startWeatherServer(t, list)
	tool := New(WithApiKey("k"), WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), &Input{City: "Tokyo"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(out.Forecast) != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", len(out.Forecast))
	}
	first := out.Forecast[0]
	if first.Date != today {
		t.Errorf("expected chronological order, first date %s", first.Date)
	}
	if first.TempMin != 6 || first.TempMax != 15 {
		t.Errorf("unexpected min/max %.1f/%.1f", first.TempMin, first.TempMax)
	}
	if first.Description != "scattered clouds" {
		t.Errorf("expected the midday description, got %q", first.Description)
	}
	if out.Current == nil || out.Current.Temp != 12.3 {
		t.Error("expected current conditions")
	}
}

func TestWeatherWindowFilter(t *testing.T) {
	d := func(offset int) string { return time.Now().AddDate(0, 0, offset).Format(schema.DateLayout) }
	list := []any{
		sample(d(0), "12:00:00", 10, 9, 12, "clear sky"),
		sample(d(1), "12:00:00", 11, 9, 13, "clear sky"),
		sample(d(2), "12:00:00", 12, 10, 14, "few clouds"),
		sample(d(3), "12:00:00", 13, 11, 15, "few clouds"),
	}
	srv := startWeatherServer(t, list)
	tool := New(WithApiKey("k"), WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), &Input{City: "Tokyo", DepartureDate: d(1), ReturnDate: d(2)})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(out.Forecast) != 2 {
		t.Fatalf("expected 2 days in window, got %d", len(out.Forecast))
	}
	if out.Note != "" {
		t.Errorf("expected no projection note, got %q", out.Note)
	}
	if out.Forecast[0].Date != d(1) {
		t.Errorf("expected window start %s, got %s", d(1), out.Forecast[0].Date)
	}
}

func TestWeatherProjection(t *testing.T) {
	d := func(offset int) string { return time.Now().AddDate(0, 0, offset).Format(schema.DateLayout) }
	list := []any{
		sample(d(0), "12:00:00", 10, 9, 12, "clear sky"),
		sample(d(1), "12:00:00", 11, 9, 13, "light rain"),
	}
	srv := startWeatherServer(t, list)
	tool := New(WithApiKey("k"), WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), &Input{City: "Tokyo", DepartureDate: d(30), ReturnDate: d(33)})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.Note == "" {
		t.Error("expected a projection note")
	}
	if len(out.Forecast) != 2 {
		t.Fatalf("expected 2 projected days, got %d", len(out.Forecast))
	}
	if out.Forecast[0].Date != d(30) {
		t.Errorf("expected projection onto departure date, got %s", out.Forecast[0].Date)
	}
	if out.Forecast[0].Description != "clear sky" {
		t.Errorf("expected forecast values carried over, got %q", out.Forecast[0].Description)
	}
}

func TestQueryNameTranslation(t *testing.T) {
	if got := queryName("도쿄"); got != "Tokyo" {
		t.Errorf("expected Tokyo, got %q", got)
	}
	if got := queryName("Tokyo"); got != "Tokyo" {
		t.Errorf("expected passthrough, got %q", got)
	}
}
