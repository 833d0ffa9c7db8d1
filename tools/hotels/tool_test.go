package hotels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tripweave/tripweave/tools/amadeus"
)

func startAmadeusServer(t *testing.T, byCity, offers any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "test-token", "expires_in": 1799})
	})
	mux.HandleFunc("/v1/reference-data/locations/hotels/by-city", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(byCity)
	})
	mux.HandleFunc("/v3/shopping/hotel-offers", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(offers)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHotelSearch(t *testing.T) {
	byCity := map[string]any{"data": []any{
		map[string]any{"hotelId": "H1", "name": "Tokyo Grand", "rating": "4", "address": map[string]any{"lines": []string{"1-1 Marunouchi", "Chiyoda"}}},
		map[string]any{"hotelId": "H2", "name": "Shinjuku Stay", "rating": "3", "address": map[string]any{"lines": []string{"2-2 Shinjuku"}}},
	}}
	offers := map[string]any{"data": []any{
		map[string]any{
			"available": true,
			"hotel":     map[string]any{"hotelId": "H1", "name": "Tokyo Grand", "rating": "4"},
			"offers": []any{
				map[string]any{"id": "o1", "boardType": "ROOM_ONLY", "price": map[string]any{"total": "600.00", "base": "540.00", "currency": "USD", "taxes": []any{map[string]any{"amount": "60.00"}}}},
				map[string]any{"id": "o2", "boardType": "BREAKFAST", "price": map[string]any{"total": "720.00", "base": "650.00", "currency": "USD"}},
			},
		},
		map[string]any{
			"available": true,
			"hotel":     map[string]any{"hotelId": "H2", "name": "Shinjuku Stay"},
			"offers": []any{
				map[string]any{"id": "o3", "price": map[string]any{"total": "300.00", "currency": "USD", "taxes": []any{map[string]any{"amount": "30.00"}}}},
			},
		},
	}}
	srv := startAmadeusServer(t, byCity, offers)
	clt := amadeus.NewClient("key", "secret", amadeus.WithBaseURL(srv.URL))
	tool := New(WithClient(clt))
	out, err := tool.Run(context.Background(), &Input{
		CityName: "Tokyo, Japan",
		CheckIn:  "2025-11-10",
		CheckOut: "2025-11-13",
		Adults:   2,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success, got error %q", out.Error)
	}
	if len(out.Hotels) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(out.Hotels))
	}
	first := out.Hotels[0]
	if first.HotelID != "H2" {
		t.Errorf("expected cheapest hotel first, got %s", first.HotelID)
	}
	if first.Price.Base != 270 {
		t.Errorf("expected base from total minus taxes, got %.2f", first.Price.Base)
	}
	if first.PerNight != 100 {
		t.Errorf("expected per-night 100 over 3 nights, got %.2f", first.PerNight)
	}
	if first.Address != "2-2 Shinjuku" {
		t.Errorf("expected address from the city listing, got %q", first.Address)
	}
	second := out.Hotels[1]
	if second.Price.Total != 600 {
		t.Errorf("expected the cheaper of the two offers, got %.2f", second.Price.Total)
	}
	if second.Rating != 4 {
		t.Errorf("expected rating 4, got %.1f", second.Rating)
	}
	if out.SearchParams.CityCode != "TYO" {
		t.Errorf("expected city code TYO, got %s", out.SearchParams.CityCode)
	}
}

func TestHotelSearchUnknownCity(t *testing.T) {
	tool := New()
	out, err := tool.Run(context.Background(), &Input{CityName: "Atlantis", CheckIn: "2025-11-10", CheckOut: "2025-11-13", Adults: 2})
	if err == nil {
		t.Fatal("expected an error for an unknown city")
	}
	if out.Success {
		t.Error("expected a failed envelope")
	}
}

func TestCityCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"seoul", "SEL", true},
		{"Tokyo", "TYO", true},
		{"Osaka, Japan", "OSA", true},
		{"SEL", "SEL", true},
		{"nowhere", "", false},
	}
	for _, tt := range tests {
		got, ok := cityCode(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("cityCode(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStayNights(t *testing.T) {
	if n := stayNights("2025-11-10", "2025-11-13"); n != 3 {
		t.Errorf("expected 3 nights, got %d", n)
	}
	if n := stayNights("2025-11-10", "2025-11-10"); n != 1 {
		t.Errorf("expected floor of 1 night, got %d", n)
	}
	if n := stayNights("bad", "2025-11-13"); n != 1 {
		t.Errorf("expected 1 night on parse failure, got %d", n)
	}
}
