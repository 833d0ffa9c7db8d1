package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tripweave/tripweave/schema"
	"github.com/tripweave/tripweave/tools"
)

const (
	// DefaultBaseURL is the OpenWeather API root.
	DefaultBaseURL = "https://api.openweathermap.org"

	// MaxForecastDays is the span the 3-hour forecast endpoint covers
	MaxForecastDays = 5
	// forecastSamples requests the full 5 days of 3-hour entries
	forecastSamples = 40
)

type Input = schema.WeatherQuery

type Output = schema.WeatherResult

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
}

// Tool reports current conditions and a bucketed daily forecast.
type Tool struct {
	Config
}

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("WeatherTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Reports daily forecasts for the trip window")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.units == "" {
		ret.units = "metric"
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run fetches weather for the query. With a departure date set it
// covers the trip window, projecting forecast days onto future dates
// when the trip is beyond forecast range. With Days set it returns a
// plain N-day forecast.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.OnStart(ctx, t, input)
	out, err := t.lookup(ctx, input)
	if err != nil {
		t.OnError(ctx, t, input, err)
		out = &Output{Result: schema.Fail(err)}
		return out, err
	}
	t.OnEnd(ctx, t, input, out)
	return out, nil
}

func (t *Tool) lookup(ctx context.Context, input *Input) (*Output, error) {
	city := queryName(schema.CleanCity(input.City))
	current, err := t.current(ctx, city)
	if err != nil {
		return nil, err
	}
	daily, err := t.forecast(ctx, city)
	if err != nil {
		return nil, err
	}
	out := &Output{
		Result:  schema.Ok(),
		City:    city,
		Current: current,
	}
	switch {
	case input.DepartureDate != "":
		forecast, note, err := windowForecast(daily, input.DepartureDate, input.ReturnDate)
		if err != nil {
			return nil, err
		}
		out.Forecast = forecast
		out.Note = note
	case input.Days > 0:
		days := min(input.Days, MaxForecastDays)
		if len(daily) > days {
			daily = daily[:days]
		}
		out.Forecast = daily
	default:
		out.Forecast = daily
	}
	return out, nil
}

func (t *Tool) current(ctx context.Context, city string) (*schema.CurrentWeather, error) {
	var resp currentResponse
	if err := t.get(ctx, "/data/2.5/weather", city, nil, &resp); err != nil {
		return nil, err
	}
	current := &schema.CurrentWeather{
		Temp:      resp.Main.Temp,
		FeelsLike: resp.Main.FeelsLike,
		Humidity:  resp.Main.Humidity,
	}
	if len(resp.Weather) > 0 {
		current.Description = resp.Weather[0].Description
	}
	return current, nil
}

// forecast buckets the 3-hour samples into one entry per date.
func (t *Tool) forecast(ctx context.Context, city string) ([]schema.DailyForecast, error) {
	query := url.Values{}
	query.Set("cnt", fmt.Sprintf("%d", forecastSamples))
	var resp forecastResponse
	if err := t.get(ctx, "/data/2.5/forecast", city, query, &resp); err != nil {
		return nil, err
	}
	type bucket struct {
		minTemp float64
		maxTemp float64
		sum     float64
		count   int
		desc    string
		main    string
		// distance of the chosen description sample from noon
		descGap time.Duration
	}
	buckets := make(map[string]*bucket)
	for _, item := range resp.List {
		ts := strings.SplitN(item.DtTxt, " ", 2)
		if len(ts) != 2 {
			continue
		}
		date := ts[0]
		sample, err := time.Parse("15:04:05", ts[1])
		if err != nil {
			continue
		}
		noon, _ := time.Parse("15:04:05", "12:00:00")
		gap := sample.Sub(noon)
		if gap < 0 {
			gap = -gap
		}
		b, ok := buckets[date]
		if !ok {
			b = &bucket{minTemp: item.Main.TempMin, maxTemp: item.Main.TempMax, descGap: time.Hour * 48}
			buckets[date] = b
		}
		b.minTemp = math.Min(b.minTemp, item.Main.TempMin)
		b.maxTemp = math.Max(b.maxTemp, item.Main.TempMax)
		b.sum += item.Main.Temp
		b.count++
		if len(item.Weather) > 0 && gap < b.descGap {
			b.desc = item.Weather[0].Description
			b.main = item.Weather[0].Main
			b.descGap = gap
		}
	}
	daily := make([]schema.DailyForecast, 0, len(buckets))
	for date, b := range buckets {
		daily = append(daily, schema.DailyForecast{
			Date:        date,
			TempMin:     round1(b.minTemp),
			TempAvg:     round1(b.sum / float64(b.count)),
			TempMax:     round1(b.maxTemp),
			Description: b.desc,
			Main:        b.main,
		})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})
	return daily, nil
}

// windowForecast restricts daily forecasts to the trip window. When the
// departure lies beyond the forecast horizon, forecast days are projected
// onto the trip dates and the output carries an explanatory note.
func windowForecast(daily []schema.DailyForecast, departure, ret string) ([]schema.DailyForecast, string, error) {
	if len(daily) == 0 {
		return nil, "", nil
	}
	dep, err := time.Parse(schema.DateLayout, departure)
	if err != nil {
		return nil, "", fmt.Errorf("invalid departure date %q: %w", departure, err)
	}
	last, err := time.Parse(schema.DateLayout, daily[len(daily)-1].Date)
	if err != nil {
		return nil, "", err
	}
	if !dep.After(last) {
		filtered := make([]schema.DailyForecast, 0, len(daily))
		for _, day := range daily {
			if day.Date < departure {
				continue
			}
			if ret != "" && day.Date > ret {
				continue
			}
			filtered = append(filtered, day)
		}
		return filtered, "", nil
	}
	projected := make([]schema.DailyForecast, 0, len(daily))
	for idx, day := range daily {
		day.Date = dep.AddDate(0, 0, idx).Format(schema.DateLayout)
		if ret != "" && day.Date > ret {
			break
		}
		projected = append(projected, day)
	}
	note := "trip dates are beyond the forecast range, values are projected from the coming days"
	return projected, note, nil
}

func (t *Tool) get(ctx context.Context, path, city string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("q", city)
	query.Set("appid", t.apiKey)
	query.Set("units", t.units)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("weather %s decode: %w", path, err)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type weatherDesc struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []weatherDesc `json:"weather"`
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp    float64 `json:"temp"`
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []weatherDesc `json:"weather"`
	} `json:"list"`
}
