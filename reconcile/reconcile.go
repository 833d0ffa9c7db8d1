package reconcile

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tripweave/tripweave/currency"
	"github.com/tripweave/tripweave/schema"
)

// Input is everything reconciliation works from: the model's itinerary
// and the raw provider data it must agree with.
type Input struct {
	Trip             *schema.TripRequest
	Itinerary        *schema.Itinerary
	Flights          []schema.FlightOffer
	Hotels           []schema.HotelOffer
	Places           []schema.Place
	FlightBookingURL string
}

// Reconciler repairs model output against provider ground truth.
// No model calls happen here; every repair is deterministic.
type Reconciler struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{logger: logger}
}

// Apply runs every repair over the itinerary in place and returns the
// independently computed budget summary. A panicking repair is logged
// and skipped, the others still run.
func (r *Reconciler) Apply(in *Input) *schema.BudgetSummary {
	if in.Itinerary == nil {
		return nil
	}
	r.safely("day_count", func() { repairDayCount(in) })
	r.safely("flight", func() { repairFlight(in) })
	r.safely("hotel", func() { repairHotel(in) })
	r.safely("endpoints", func() { repairEndpoints(in) })
	r.safely("restaurants", func() { repairRestaurants(in) })
	r.safely("daily_cost", func() { repairDailyCosts(in) })

	var summary *schema.BudgetSummary
	r.safely("budget", func() { summary = budgetSummary(in) })
	return summary
}

func (r *Reconciler) safely(name string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("reconcile repair panicked",
				zap.String("repair", name),
				zap.Any("panic", rec))
		}
	}()
	fn()
}

// repairDayCount forces the itinerary onto the trip's planned span:
// extra day entries are dropped, missing ones are appended with their
// day number and date so every later repair sees a full day list.
func repairDayCount(in *Input) {
	days, err := in.Trip.PlanDays()
	if err != nil {
		return
	}
	list := in.Itinerary.Itinerary
	if len(list) > days {
		list = list[:days]
	}
	dep, depErr := time.Parse(schema.DateLayout, in.Trip.DepartureDate)
	for len(list) < days {
		day := schema.Day{Day: len(list) + 1}
		if depErr == nil {
			day.Date = dep.AddDate(0, 0, len(list)).Format(schema.DateLayout)
		}
		list = append(list, day)
	}
	in.Itinerary.Itinerary = list
	in.Itinerary.Days = days
}

// repairFlight fills in or rebuilds the selected flight from the
// cheapest raw offer when the model left it out or incomplete.
func repairFlight(in *Input) {
	offer := cheapestFlight(in.Flights)
	if offer == nil {
		return
	}
	sel := in.Itinerary.SelectedFlight
	if sel != nil && sel.Outbound != "" && sel.Inbound != "" {
		return
	}
	if sel == nil {
		sel = new(schema.SelectedFlight)
		in.Itinerary.SelectedFlight = sel
	}
	sel.Airline = strings.Join(offer.Airlines, ", ")
	sel.Price = float64(currency.ToKRW(offer.Price.Total, offer.Price.Currency))
	sel.Outbound = legSummary(&offer.Outbound)
	sel.Inbound = legSummary(&offer.Inbound)
	if sel.BookingURL == "" {
		sel.BookingURL = in.FlightBookingURL
	}
}

// repairHotel normalizes the selected hotel against the raw offers and
// propagates it into every lodging day.
func repairHotel(in *Input) {
	if len(in.Hotels) == 0 {
		return
	}
	offer := matchHotel(in.Itinerary.SelectedHotel, in.Hotels)
	sel := &schema.SelectedHotel{
		Name:             offer.Name,
		Address:          offer.Address,
		Type:             starLabel(offer.Rating),
		EstimatedCost:    offer.Price.Total,
		PerNightCost:     offer.PerNight,
		Currency:         offer.Price.Currency,
		EstimatedCostKRW: currency.ToKRW(offer.Price.Total, offer.Price.Currency),
		PerNightCostKRW:  currency.ToKRW(offer.PerNight, offer.Price.Currency),
		BookingURL:       hotelSearchURL(offer.Name, schema.CleanCity(in.Trip.Destination)),
	}
	in.Itinerary.SelectedHotel = sel
	for i := range in.Itinerary.Itinerary {
		acc := &in.Itinerary.Itinerary[i].Accommodation
		if acc.Name == schema.NoAccommodation {
			continue
		}
		acc.Name = sel.Name
		acc.Address = sel.Address
		acc.Type = sel.Type
		acc.EstimatedCost = float64(sel.PerNightCostKRW)
		acc.BookingURL = sel.BookingURL
	}
}

// matchHotel finds the raw offer the model picked, by name, falling
// back to the cheapest offer.
func matchHotel(sel *schema.SelectedHotel, hotels []schema.HotelOffer) *schema.HotelOffer {
	if sel != nil && sel.Name != "" {
		want := strings.ToLower(sel.Name)
		for i := range hotels {
			have := strings.ToLower(hotels[i].Name)
			if strings.Contains(have, want) || strings.Contains(want, have) {
				return &hotels[i]
			}
		}
	}
	return cheapestHotel(hotels)
}

// repairEndpoints forces the first and last day onto the booked
// flights and strips lodging from the return day.
func repairEndpoints(in *Input) {
	days := in.Itinerary.Itinerary
	if len(days) == 0 {
		return
	}
	sel := in.Itinerary.SelectedFlight
	first := &days[0]
	if sel != nil && sel.Outbound != "" && isAirTravel(first.Transportation.Type) {
		first.Transportation.Type = "flight"
		first.Transportation.Details = "Outbound: " + sel.Outbound
		first.Transportation.Airline = sel.Airline
		first.Transportation.BookingURL = sel.BookingURL
		if sel.Price > 0 {
			first.Transportation.Cost = sel.Price
		}
	}
	if len(days) < 2 {
		return
	}
	last := &days[len(days)-1]
	if sel != nil && sel.Inbound != "" {
		last.Transportation.Type = "flight"
		last.Transportation.Details = "Inbound: " + sel.Inbound
		last.Transportation.Airline = sel.Airline
	}
	last.Accommodation = schema.Accommodation{Name: schema.NoAccommodation}
}

var placeholderMeal = regexp.MustCompile(`(?i)^(restaurant|레스토랑)\s*[A-D]?$`)

// repairRestaurants swaps placeholder meal suggestions for real
// restaurants near the planned attractions, in listing order.
func repairRestaurants(in *Input) {
	type candidate struct {
		restaurant string
		attraction string
	}
	var pool []candidate
	for _, place := range in.Places {
		for _, rst := range place.NearbyRestaurants {
			pool = append(pool, candidate{restaurant: rst.Name, attraction: place.Name})
		}
	}
	if len(pool) == 0 {
		return
	}
	next := 0
	for i := range in.Itinerary.Itinerary {
		meals := in.Itinerary.Itinerary[i].Meals
		for j := range meals {
			if !placeholderMeal.MatchString(strings.TrimSpace(meals[j].Suggestion)) {
				continue
			}
			c := pool[next%len(pool)]
			meals[j].Suggestion = fmt.Sprintf("%s - recommended menu (near %s)", c.restaurant, c.attraction)
			next++
		}
	}
}

// repairDailyCosts raises each day's cost to its line-item sum.
// The model's figure is kept when it is already higher.
func repairDailyCosts(in *Input) {
	for i := range in.Itinerary.Itinerary {
		day := &in.Itinerary.Itinerary[i]
		floor := day.Transportation.Cost + day.Accommodation.EstimatedCost
		for _, a := range day.Attractions {
			floor += a.EstimatedCost
		}
		for _, m := range day.Meals {
			floor += m.EstimatedCost
		}
		if day.DailyCost < floor {
			day.DailyCost = floor
		}
	}
}

// budgetSummary recomputes the trip cost from provider data alone.
func budgetSummary(in *Input) *schema.BudgetSummary {
	summary := &schema.BudgetSummary{UserBudget: in.Trip.Budget}
	var flightKRW int
	if offer := cheapestFlight(in.Flights); offer != nil {
		summary.FlightTotal = offer.Price.Total
		flightKRW = currency.ToKRW(offer.Price.Total, offer.Price.Currency)
	}
	var hotelKRW int
	if sel := in.Itinerary.SelectedHotel; sel != nil && sel.EstimatedCost > 0 {
		summary.HotelTotal = sel.EstimatedCost
		summary.HotelCurrency = sel.Currency
		hotelKRW = currency.ToKRW(sel.EstimatedCost, sel.Currency)
	} else if offer := cheapestHotel(in.Hotels); offer != nil {
		summary.HotelTotal = offer.Price.Total
		summary.HotelCurrency = offer.Price.Currency
		hotelKRW = currency.ToKRW(offer.Price.Total, offer.Price.Currency)
	}
	summary.HotelTotalKRW = hotelKRW
	summary.TotalCost = flightKRW + hotelKRW
	summary.Diff = int(in.Trip.Budget) - summary.TotalCost
	if float64(summary.TotalCost) > in.Trip.Budget && in.Trip.Budget > 0 {
		summary.IsOver = true
		summary.OverRate = math.Round((float64(summary.TotalCost)-in.Trip.Budget)/in.Trip.Budget*1000) / 10
	}
	return summary
}

func cheapestFlight(flights []schema.FlightOffer) *schema.FlightOffer {
	var best *schema.FlightOffer
	for i := range flights {
		if best == nil || flights[i].Price.Total < best.Price.Total {
			best = &flights[i]
		}
	}
	return best
}

func cheapestHotel(hotels []schema.HotelOffer) *schema.HotelOffer {
	var best *schema.HotelOffer
	for i := range hotels {
		if best == nil || hotels[i].Price.Total < best.Price.Total {
			best = &hotels[i]
		}
	}
	return best
}

func legSummary(leg *schema.FlightLeg) string {
	return fmt.Sprintf("%s %s → %s %s",
		leg.DepartureAirport, clockTime(leg.DepartureTime),
		leg.ArrivalAirport, clockTime(leg.ArrivalTime))
}

func clockTime(ts string) string {
	if len(ts) >= 16 {
		return ts[11:16]
	}
	return ts
}

func starLabel(rating float64) string {
	if rating <= 0 {
		return "hotel"
	}
	return fmt.Sprintf("%d-star hotel", int(rating+0.5))
}

func hotelSearchURL(name, city string) string {
	q := url.QueryEscape(name + " " + city)
	return "https://www.google.com/search?q=" + q + "&hl=ko&ibp=htl"
}

func isAirTravel(kind string) bool {
	k := strings.ToLower(kind)
	return k == "" || strings.Contains(k, "flight") || strings.Contains(k, "air") || strings.Contains(k, "항공")
}
