package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tripweave/tripweave/currency"
	"github.com/tripweave/tripweave/schema"
)

const (
	promptFlights     = 3
	promptHotels      = 3
	promptPlaces      = 5
	promptRestaurants = 3
)

const systemPrompt = `You are a meticulous travel planner. You produce complete day-by-day
itineraries as a single JSON object, picking flights and hotels only from
the candidates you are given and keeping every cost in KRW.`

// draftPrompt assembles the itinerary drafting instruction.
func draftPrompt(req *Request, template Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-day travel itinerary as JSON.\n\n", req.Days)
	fmt.Fprintf(&b, "## Request\n")
	fmt.Fprintf(&b, "- origin: %s\n", req.Trip.Origin)
	fmt.Fprintf(&b, "- destination: %s\n", req.Trip.Destination)
	fmt.Fprintf(&b, "- dates: %s to %s\n", req.Trip.DepartureDate, req.Trip.ReturnDate)
	fmt.Fprintf(&b, "- people: %d\n", req.Trip.People)
	fmt.Fprintf(&b, "- total budget: %.0f KRW\n", req.Trip.Budget)
	if len(req.Trip.Preferences) > 0 {
		fmt.Fprintf(&b, "- preferences: %s\n", strings.Join(req.Trip.Preferences, ", "))
	}
	if req.Style != nil {
		fmt.Fprintf(&b, "\n## Travel style\n")
		fmt.Fprintf(&b, "- style: %s\n", req.Style.StyleName)
		if len(req.Style.Characteristics) > 0 {
			fmt.Fprintf(&b, "- characteristics: %s\n", strings.Join(req.Style.Characteristics, ", "))
		}
	}
	writeFlights(&b, req.Flights)
	writeHotels(&b, req.Hotels)
	writePlaces(&b, req.Places)
	writeWeather(&b, req.Weather)
	fmt.Fprintf(&b, "\n## Reference itinerary (%s, %d days, %s)\n%s\n", template.Destination, template.Days, template.Difficulty, template.Example)
	fmt.Fprintf(&b, "\n## Rules\n")
	fmt.Fprintf(&b, "1. Plan exactly %d days, one entry per day with the real date.\n", req.Days)
	fmt.Fprintf(&b, "2. Pick exactly one flight and one hotel from the candidates above.\n")
	fmt.Fprintf(&b, "3. Flight plus hotel must stay within 80%% of the total budget.\n")
	fmt.Fprintf(&b, "4. Plan 3 attractions per day, preferring the listed places.\n")
	fmt.Fprintf(&b, "5. Meal suggestions name a real nearby restaurant with a menu item.\n")
	fmt.Fprintf(&b, "6. All costs are KRW integers for the whole party.\n")
	fmt.Fprintf(&b, "7. Respond with a single JSON object shaped like the reference itinerary, including selected_flight and selected_hotel.\n")
	return b.String()
}

// refinePrompt assembles the refinement instruction from the draft and
// the review analysis.
func refinePrompt(req *RefineRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review and refine this draft itinerary. Respond with the corrected JSON only.\n")
	fmt.Fprintf(&b, "\n## Draft itinerary\n%s\n", stringifyJSON(req.Draft))
	if req.Analysis != nil {
		fmt.Fprintf(&b, "\n## Hotel review analysis\n%s\n", stringifyJSON(req.Analysis))
	}
	writeFlights(&b, req.Flights)
	writeHotels(&b, req.Hotels)
	writePlaces(&b, req.Places)
	writeWeather(&b, req.Weather)
	fmt.Fprintf(&b, "\n## Rules\n")
	fmt.Fprintf(&b, "1. Day 1 transportation is the outbound flight.\n")
	fmt.Fprintf(&b, "2. The last day transportation is the inbound flight and the last day has no accommodation.\n")
	fmt.Fprintf(&b, "3. The full round-trip airfare is charged on day 1.\n")
	fmt.Fprintf(&b, "4. The hotel total is split evenly across the lodging nights.\n")
	fmt.Fprintf(&b, "5. The last day local transport is a small transit estimate between 5,000 and 15,000 KRW.\n")
	fmt.Fprintf(&b, "6. The total cost must not exceed %.0f KRW; a direct flight may exceed it by at most 5%%.\n", req.Budget)
	fmt.Fprintf(&b, "7. Each day's daily_cost equals the exact sum of that day's line items.\n")
	return b.String()
}

func writeFlights(b *strings.Builder, flights []schema.FlightOffer) {
	if len(flights) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## Flight candidates\n")
	for idx, f := range flights {
		if idx >= promptFlights {
			break
		}
		stops := fmt.Sprintf("%d stops", f.Outbound.Stops)
		if f.Outbound.Stops == 0 {
			stops = "direct"
		}
		fmt.Fprintf(b, "%d. %s | out %s %s -> %s %s | in %s %s -> %s %s | %s | %s\n",
			idx+1, strings.Join(f.Airlines, ", "),
			f.Outbound.DepartureAirport, clockTime(f.Outbound.DepartureTime),
			f.Outbound.ArrivalAirport, clockTime(f.Outbound.ArrivalTime),
			f.Inbound.DepartureAirport, clockTime(f.Inbound.DepartureTime),
			f.Inbound.ArrivalAirport, clockTime(f.Inbound.ArrivalTime),
			stops, currency.FormatWithKRW(f.Price.Total, f.Price.Currency))
	}
}

func writeHotels(b *strings.Builder, hotels []schema.HotelOffer) {
	if len(hotels) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## Hotel candidates\n")
	for idx, h := range hotels {
		if idx >= promptHotels {
			break
		}
		fmt.Fprintf(b, "%d. %s | %s | per night %s | stay total %s | rating %.1f",
			idx+1, h.Name, h.Address,
			currency.FormatWithKRW(h.PerNight, h.Price.Currency),
			currency.FormatWithKRW(h.Price.Total, h.Price.Currency),
			h.Rating)
		if h.BoardType != "" {
			fmt.Fprintf(b, " | %s", h.BoardType)
		}
		fmt.Fprintf(b, "\n")
	}
}

func writePlaces(b *strings.Builder, places []schema.Place) {
	if len(places) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## Places\n")
	for idx, p := range places {
		if idx >= promptPlaces {
			break
		}
		fmt.Fprintf(b, "%d. %s (rating %.1f) %s\n", idx+1, p.Name, p.Rating, p.Address)
		for rIdx, r := range p.NearbyRestaurants {
			if rIdx >= promptRestaurants {
				break
			}
			fmt.Fprintf(b, "   - nearby: %s (rating %.1f)\n", r.Name, r.Rating)
		}
	}
}

func writeWeather(b *strings.Builder, forecast []schema.DailyForecast) {
	if len(forecast) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## Weather\n")
	for _, day := range forecast {
		fmt.Fprintf(b, "- %s: %.0f~%.0f°C, %s\n", day.Date, day.TempMin, day.TempMax, day.Description)
	}
}

// clockTime trims an ISO timestamp down to hh:mm.
func clockTime(ts string) string {
	if len(ts) >= 16 {
		return ts[11:16]
	}
	return ts
}

func stringifyJSON(v any) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bs)
}
