package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"tripagent/catalog"
	"tripagent/metrics"
)

// DefaultMaxHotelPrice is the nightly ceiling used when the caller gives none.
const DefaultMaxHotelPrice = 5000.0

// MaxTripDays bounds the trip length a single plan accepts.
const MaxTripDays = 30

type TripRequest struct {
	Source        string  `json:"source"`
	Destination   string  `json:"destination"`
	Days          int     `json:"days"`
	MaxHotelPrice float64 `json:"max_hotel_price"`
}

type TripPlan struct {
	Request   TripRequest    `json:"request"`
	Flight    catalog.Flight `json:"flight"`
	Hotel     catalog.Hotel  `json:"hotel"`
	Weather   Forecast       `json:"weather"`
	Itinerary []DayPlan      `json:"itinerary"`
	Budget    Budget         `json:"budget"`
	Notes     string         `json:"notes,omitempty"`
}

type Planner struct {
	catalog *catalog.Catalog
	weather *WeatherEstimator
}

func NewPlanner(cat *catalog.Catalog, weather *WeatherEstimator) *Planner {
	return &Planner{catalog: cat, weather: weather}
}

func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return ValidationError{Field: "source", Msg: "is required"}
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ValidationError{Field: "destination", Msg: "is required"}
	}
	if r.Days < 1 {
		return ValidationError{Field: "days", Msg: "must be at least 1"}
	}
	if r.Days > MaxTripDays {
		return ValidationError{Field: "days", Msg: fmt.Sprintf("must be at most %d", MaxTripDays)}
	}
	if r.MaxHotelPrice < 0 {
		return ValidationError{Field: "max_hotel_price", Msg: "must not be negative"}
	}
	return nil
}

// Plan runs one planning pass. It returns ErrNoOffer when either the flight or the
// hotel search comes back empty; weather, itinerary and budget are skipped then.
func (p *Planner) Plan(ctx context.Context, req TripRequest) (*TripPlan, error) {
	if err := req.Validate(); err != nil {
		metrics.PlansTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	flights := p.catalog.SearchFlights(req.Source, req.Destination, catalog.DefaultTopN)
	hotels := p.catalog.FindHotels(req.Destination, req.MaxHotelPrice, catalog.DefaultTopN)
	if len(flights) == 0 || len(hotels) == 0 {
		log.Printf("⚠️  No offer for %s → %s (flights=%d, hotels under %.0f=%d)",
			req.Source, req.Destination, len(flights), req.MaxHotelPrice, len(hotels))
		metrics.PlansTotal.WithLabelValues(metrics.OutcomeNoOffer).Inc()
		return nil, ErrNoOffer
	}

	flight := flights[0]
	hotel := hotels[0]

	places := p.catalog.DiscoverPlaces(req.Destination, req.Days*PlacesPerDay)
	if len(places) == 0 {
		log.Printf("⚠️  No places listed for %s — itinerary will be empty", req.Destination)
	}

	plan := &TripPlan{
		Request:   req,
		Flight:    flight,
		Hotel:     hotel,
		Weather:   p.weather.Estimate(ctx, req.Destination, req.Days),
		Itinerary: BuildItinerary(catalog.PlaceNames(places), req.Days),
		Budget:    EstimateBudget(flight.Price, hotel.PricePerNight, req.Days),
	}

	metrics.PlansTotal.WithLabelValues(metrics.OutcomePlanReady).Inc()
	log.Printf("✅ Planned %d-day trip %s → %s: %s + %s, total %.0f (weather %s)",
		req.Days, req.Source, req.Destination, flight.Airline, hotel.Name, plan.Budget.Total, plan.Weather.Source)
	return plan, nil
}
