package flights

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tripweave/tripweave/schema"
	"github.com/tripweave/tripweave/tools"
	"github.com/tripweave/tripweave/tools/amadeus"
)

const (
	defaultMaxResults = 3
	// the offers endpoint caps the max parameter at 250
	offersHardCap = 250
)

type Input = schema.FlightQuery

type Output = schema.FlightResult

type Config struct {
	tools.Config
	client     *amadeus.Client
	maxResults int
}

// Tool searches round-trip flight offers through the Amadeus API.
type Tool struct {
	Config

	mu        sync.Mutex
	codeCache map[string]string
}

func New(opts ...Option) *Tool {
	ret := &Tool{
		codeCache: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("FlightSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Searches round-trip flight offers between two cities")
	}
	if ret.maxResults == 0 {
		ret.maxResults = defaultMaxResults
	}
	return ret
}

// Run executes a round-trip flight search.
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
	origin, err := t.resolveCode(ctx, input.Origin)
	if err != nil {
		return nil, fmt.Errorf("resolve origin %q: %w", input.Origin, err)
	}
	dest, err := t.resolveCode(ctx, input.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolve destination %q: %w", input.Destination, err)
	}
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = t.maxResults
	}
	query := url.Values{}
	query.Set("originLocationCode", origin)
	query.Set("destinationLocationCode", dest)
	query.Set("departureDate", input.DepartureDate)
	query.Set("returnDate", input.ReturnDate)
	query.Set("adults", strconv.Itoa(input.Adults))
	query.Set("max", strconv.Itoa(min(maxResults*5, offersHardCap)))
	var resp offersResponse
	if err := t.client.Get(ctx, "/v2/shopping/flight-offers", query, &resp); err != nil {
		return nil, err
	}
	bookingURL := googleFlightsURL(origin, dest, input.DepartureDate, input.ReturnDate)
	offers := make([]schema.FlightOffer, 0, len(resp.Data))
	seen := make(map[string]struct{}, len(resp.Data))
	for _, raw := range resp.Data {
		if len(raw.Itineraries) < 2 {
			continue
		}
		offer := schema.FlightOffer{
			ID:       raw.ID,
			Airlines: raw.ValidatingAirlineCodes,
		}
		parseLeg(&raw.Itineraries[0], &offer.Outbound)
		parseLeg(&raw.Itineraries[1], &offer.Inbound)
		offer.Price.Total, _ = strconv.ParseFloat(raw.Price.Total, 64)
		offer.Price.Currency = raw.Price.Currency
		key := fmt.Sprintf("%s|%s|%.0f", offer.Outbound.DepartureTime, offer.Inbound.DepartureTime, offer.Price.Total)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		offers = append(offers, offer)
	}
	sort.Slice(offers, func(i, j int) bool {
		return offers[i].Price.Total < offers[j].Price.Total
	})
	if len(offers) > maxResults {
		offers = offers[:maxResults]
	}
	return &Output{
		Result:  schema.Ok(),
		Flights: offers,
		SearchParams: schema.FlightSearchParams{
			Origin:        origin,
			Destination:   dest,
			DepartureDate: input.DepartureDate,
			ReturnDate:    input.ReturnDate,
			Adults:        input.Adults,
		},
		BookingURL: bookingURL,
	}, nil
}

// resolveCode turns a free-text city into an IATA code.
// Lookup order: embedded table, cache, 3-letter passthrough,
// cleaned city name, then the Amadeus locations API.
func (t *Tool) resolveCode(ctx context.Context, city string) (string, error) {
	if code, ok := airportCode(city); ok {
		return code, nil
	}
	t.mu.Lock()
	code, cached := t.codeCache[city]
	t.mu.Unlock()
	if cached {
		return code, nil
	}
	trimmed := strings.TrimSpace(city)
	if len(trimmed) == 3 && trimmed == strings.ToUpper(trimmed) {
		return trimmed, nil
	}
	if code, ok := airportCode(schema.CleanCity(city)); ok {
		return code, nil
	}
	code, err := t.lookupCode(ctx, schema.CleanCity(city))
	if err != nil {
		return "", err
	}
	t.mu.Lock()
	t.codeCache[city] = code
	t.mu.Unlock()
	return code, nil
}

func (t *Tool) lookupCode(ctx context.Context, keyword string) (string, error) {
	query := url.Values{}
	query.Set("keyword", keyword)
	query.Set("subType", "AIRPORT,CITY")
	var resp locationsResponse
	if err := t.client.Get(ctx, "/v1/reference-data/locations", query, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no location found for %q", keyword)
	}
	// prefer an airport over a city entry
	for _, loc := range resp.Data {
		if loc.SubType == "AIRPORT" && loc.IataCode != "" {
			return loc.IataCode, nil
		}
	}
	for _, loc := range resp.Data {
		if loc.IataCode != "" {
			return loc.IataCode, nil
		}
	}
	return "", fmt.Errorf("no usable location code for %q", keyword)
}

func parseLeg(src *rawItinerary, dst *schema.FlightLeg) {
	if len(src.Segments) == 0 {
		return
	}
	first := src.Segments[0]
	last := src.Segments[len(src.Segments)-1]
	dst.DepartureAirport = first.Departure.IataCode
	dst.DepartureTime = first.Departure.At
	dst.ArrivalAirport = last.Arrival.IataCode
	dst.ArrivalTime = last.Arrival.At
	dst.Duration = src.Duration
	dst.Stops = len(src.Segments) - 1
	for _, seg := range src.Segments[:len(src.Segments)-1] {
		dst.Layovers = append(dst.Layovers, seg.Arrival.IataCode)
	}
}

func googleFlightsURL(origin, dest, depart, ret string) string {
	q := fmt.Sprintf("flights from %s to %s on %s return on %s", origin, dest, depart, ret)
	return "https://www.google.com/flights?q=" + url.QueryEscape(q)
}

type rawItinerary struct {
	Duration string `json:"duration"`
	Segments []struct {
		Departure struct {
			IataCode string `json:"iataCode"`
			At       string `json:"at"`
		} `json:"departure"`
		Arrival struct {
			IataCode string `json:"iataCode"`
			At       string `json:"at"`
		} `json:"arrival"`
		CarrierCode string `json:"carrierCode"`
	} `json:"segments"`
}

type offersResponse struct {
	Data []struct {
		ID          string         `json:"id"`
		Itineraries []rawItinerary `json:"itineraries"`
		Price       struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	} `json:"data"`
}

type locationsResponse struct {
	Data []struct {
		SubType  string `json:"subType"`
		IataCode string `json:"iataCode"`
	} `json:"data"`
}
