package hotels

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tripweave/tripweave/schema"
	"github.com/tripweave/tripweave/tools"
	"github.com/tripweave/tripweave/tools/amadeus"
)

const (
	defaultMaxResults = 5
	// hotel ids passed to the offers endpoint in one call
	maxHotelIDs    = 20
	searchRadiusKM = 20
)

type Input = schema.HotelQuery

type Output = schema.HotelResult

type Config struct {
	tools.Config
	client     *amadeus.Client
	maxResults int
}

// Tool searches bookable hotels through the Amadeus API.
// It lists hotels by city first, then prices them through the offers endpoint.
type Tool struct {
	Config
}

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("HotelSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Searches bookable hotels with per-stay pricing")
	}
	if ret.maxResults == 0 {
		ret.maxResults = defaultMaxResults
	}
	return ret
}

// Run executes a two-phase hotel search.
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
	code, ok := cityCode(input.CityName)
	if !ok {
		return nil, fmt.Errorf("unknown city %q", input.CityName)
	}
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = t.maxResults
	}
	byCity, err := t.listByCity(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(byCity.Data) == 0 {
		return nil, fmt.Errorf("no hotels listed for city %s", code)
	}
	// keep address and rating from phase one, offers often omit them
	info := make(map[string]cityHotel, len(byCity.Data))
	ids := make([]string, 0, maxHotelIDs)
	for _, h := range byCity.Data {
		if h.HotelID == "" {
			continue
		}
		info[h.HotelID] = h
		if len(ids) < maxHotelIDs {
			ids = append(ids, h.HotelID)
		}
	}
	nights := stayNights(input.CheckIn, input.CheckOut)
	offers, err := t.listOffers(ctx, ids, input)
	if err != nil {
		return nil, err
	}
	hotels := make([]schema.HotelOffer, 0, len(offers.Data))
	for _, raw := range offers.Data {
		if !raw.Available && len(raw.Offers) == 0 {
			continue
		}
		best, ok := cheapestOffer(raw.Offers)
		if !ok {
			continue
		}
		total, _ := strconv.ParseFloat(best.Price.Total, 64)
		base := total - taxesTotal(best.Price.Taxes)
		if v, err := strconv.ParseFloat(best.Price.Base, 64); err == nil && v > 0 {
			base = v
		}
		offer := schema.HotelOffer{
			HotelID: raw.Hotel.HotelID,
			Name:    raw.Hotel.Name,
			Rating:  parseRating(raw.Hotel.Rating),
			Price: schema.HotelPrice{
				Total:    total,
				Base:     base,
				Currency: best.Price.Currency,
			},
			PerNight:  math.Round(total / float64(nights)),
			BoardType: best.BoardType,
		}
		if meta, ok := info[raw.Hotel.HotelID]; ok {
			if offer.Name == "" {
				offer.Name = meta.Name
			}
			offer.Address = strings.Join(meta.Address.Lines, ", ")
			if offer.Rating == 0 {
				offer.Rating = parseRating(meta.Rating)
			}
		}
		hotels = append(hotels, offer)
	}
	sort.Slice(hotels, func(i, j int) bool {
		return hotels[i].Price.Total < hotels[j].Price.Total
	})
	if len(hotels) > maxResults {
		hotels = hotels[:maxResults]
	}
	return &Output{
		Result: schema.Ok(),
		Hotels: hotels,
		SearchParams: schema.HotelSearchParams{
			CityCode: code,
			CheckIn:  input.CheckIn,
			CheckOut: input.CheckOut,
			Adults:   input.Adults,
		},
	}, nil
}

func (t *Tool) listByCity(ctx context.Context, code string) (*byCityResponse, error) {
	query := url.Values{}
	query.Set("cityCode", code)
	query.Set("radius", strconv.Itoa(searchRadiusKM))
	query.Set("radiusUnit", "KM")
	var resp byCityResponse
	if err := t.client.Get(ctx, "/v1/reference-data/locations/hotels/by-city", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (t *Tool) listOffers(ctx context.Context, ids []string, input *Input) (*offersResponse, error) {
	query := url.Values{}
	query.Set("hotelIds", strings.Join(ids, ","))
	query.Set("checkInDate", input.CheckIn)
	query.Set("checkOutDate", input.CheckOut)
	query.Set("adults", strconv.Itoa(input.Adults))
	query.Set("roomQuantity", "1")
	query.Set("bestRateOnly", "true")
	var resp offersResponse
	if err := t.client.Get(ctx, "/v3/shopping/hotel-offers", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func stayNights(checkIn, checkOut string) int {
	in, err1 := time.Parse(schema.DateLayout, checkIn)
	out, err2 := time.Parse(schema.DateLayout, checkOut)
	if err1 != nil || err2 != nil {
		return 1
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

func cheapestOffer(offers []rawOffer) (rawOffer, bool) {
	var (
		best  rawOffer
		found bool
		low   float64
	)
	for _, o := range offers {
		total, err := strconv.ParseFloat(o.Price.Total, 64)
		if err != nil {
			continue
		}
		if !found || total < low {
			best = o
			low = total
			found = true
		}
	}
	return best, found
}

func taxesTotal(taxes []rawTax) float64 {
	var sum float64
	for _, tax := range taxes {
		if v, err := strconv.ParseFloat(tax.Amount, 64); err == nil {
			sum += v
		}
	}
	return sum
}

func parseRating(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

type cityHotel struct {
	HotelID string `json:"hotelId"`
	Name    string `json:"name"`
	Rating  string `json:"rating"`
	Address struct {
		Lines []string `json:"lines"`
	} `json:"address"`
}

type byCityResponse struct {
	Data []cityHotel `json:"data"`
}

type rawTax struct {
	Amount string `json:"amount"`
}

type rawOffer struct {
	ID        string `json:"id"`
	BoardType string `json:"boardType"`
	Price     struct {
		Total    string   `json:"total"`
		Base     string   `json:"base"`
		Currency string   `json:"currency"`
		Taxes    []rawTax `json:"taxes"`
	} `json:"price"`
}

type offersResponse struct {
	Data []struct {
		Available bool `json:"available"`
		Hotel     struct {
			HotelID string `json:"hotelId"`
			Name    string `json:"name"`
			Rating  string `json:"rating"`
		} `json:"hotel"`
		Offers []rawOffer `json:"offers"`
	} `json:"data"`
}
