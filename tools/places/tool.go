package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/tripweave/tripweave/schema"
	"github.com/tripweave/tripweave/tools"
)

const (
	// DefaultBaseURL is the Google Places web service root.
	DefaultBaseURL = "https://maps.googleapis.com"

	defaultMaxResults = 5
	// restaurants are fetched for at most this many top places
	restaurantPlaces = 5
	restaurantRadius = 500
	maxRestaurants   = 3
	photoMaxWidth    = 400
)

type Input = schema.PlaceQuery

type Output = schema.PlaceResult

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	language   string
	maxResults int
	httpClient *http.Client
}

// Tool searches attractions and the restaurants around them.
type Tool struct {
	Config
}

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("PlaceSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Searches attractions with nearby restaurant suggestions")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.maxResults == 0 {
		ret.maxResults = defaultMaxResults
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run searches places by free text and attaches nearby restaurants
// to the top results.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.OnStart(ctx, t, input)
	out, err := t.search(ctx, input)
	if err != nil {
		t.OnError(ctx, t, input, err)
		out = &Output{Result: schema.Fail(err)}
		return out, err
	}
	t.OnEnd(ctx, t, input, out)
	return out, nil
}

func (t *Tool) search(ctx context.Context, input *Input) (*Output, error) {
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = t.maxResults
	}
	query := url.Values{}
	query.Set("query", input.Query)
	var resp textSearchResponse
	if err := t.get(ctx, "/maps/api/place/textsearch/json", query, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places textsearch status %s", resp.Status)
	}
	if len(resp.Results) > maxResults {
		resp.Results = resp.Results[:maxResults]
	}
	places := make([]schema.Place, 0, len(resp.Results))
	for idx, raw := range resp.Results {
		place := schema.Place{
			PlaceID:     raw.PlaceID,
			Name:        raw.Name,
			Address:     raw.FormattedAddress,
			Rating:      raw.Rating,
			UserRatings: raw.UserRatingsTotal,
			Types:       raw.Types,
			PhotoURL:    t.photoURL(raw.Photos),
		}
		if idx < restaurantPlaces {
			// a failed restaurant lookup leaves the place without suggestions
			if restaurants, err := t.nearbyRestaurants(ctx, raw.Geometry.Location); err == nil {
				place.NearbyRestaurants = restaurants
			}
		}
		places = append(places, place)
	}
	return &Output{
		Result: schema.Ok(),
		Places: places,
	}, nil
}

func (t *Tool) nearbyRestaurants(ctx context.Context, loc latLng) ([]schema.Restaurant, error) {
	query := url.Values{}
	query.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	query.Set("radius", fmt.Sprintf("%d", restaurantRadius))
	query.Set("type", "restaurant")
	var resp nearbyResponse
	if err := t.get(ctx, "/maps/api/place/nearbysearch/json", query, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places nearbysearch status %s", resp.Status)
	}
	sort.Slice(resp.Results, func(i, j int) bool {
		return resp.Results[i].Rating > resp.Results[j].Rating
	})
	if len(resp.Results) > maxRestaurants {
		resp.Results = resp.Results[:maxRestaurants]
	}
	restaurants := make([]schema.Restaurant, 0, len(resp.Results))
	for _, raw := range resp.Results {
		restaurants = append(restaurants, schema.Restaurant{
			Name:        raw.Name,
			Address:     raw.Vicinity,
			Rating:      raw.Rating,
			UserRatings: raw.UserRatingsTotal,
			PriceLevel:  raw.PriceLevel,
			PhotoURL:    t.photoURL(raw.Photos),
		})
	}
	return restaurants, nil
}

func (t *Tool) photoURL(photos []rawPhoto) string {
	if len(photos) == 0 || photos[0].PhotoReference == "" {
		return ""
	}
	query := url.Values{}
	query.Set("maxwidth", fmt.Sprintf("%d", photoMaxWidth))
	query.Set("photo_reference", photos[0].PhotoReference)
	query.Set("key", t.apiKey)
	return t.baseURL + "/maps/api/place/photo?" + query.Encode()
}

func (t *Tool) get(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("key", t.apiKey)
	if t.language != "" {
		query.Set("language", t.language)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places request %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("places %s decode: %w", path, err)
	}
	return nil
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type rawPhoto struct {
	PhotoReference string `json:"photo_reference"`
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string     `json:"place_id"`
		Name             string     `json:"name"`
		FormattedAddress string     `json:"formatted_address"`
		Rating           float64    `json:"rating"`
		UserRatingsTotal int        `json:"user_ratings_total"`
		Types            []string   `json:"types"`
		Photos           []rawPhoto `json:"photos"`
		Geometry         struct {
			Location latLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string     `json:"name"`
		Vicinity         string     `json:"vicinity"`
		Rating           float64    `json:"rating"`
		UserRatingsTotal int        `json:"user_ratings_total"`
		PriceLevel       int        `json:"price_level"`
		Photos           []rawPhoto `json:"photos"`
	} `json:"results"`
}
