package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Plan outcomes.
const (
	OutcomePlanReady = "plan_ready"
	OutcomeNoOffer   = "no_offer"
	OutcomeInvalid   = "invalid"
)

var (
	PlansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripagent_plans_total",
		Help: "Planning attempts by outcome",
	}, []string{"outcome"})

	ForecastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripagent_forecasts_total",
		Help: "Weather forecasts by source (live, estimated, unavailable)",
	}, []string{"source"})

	NotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripagent_travel_notes_total",
		Help: "Travel notes by source (ai, fallback)",
	}, []string{"source"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tripagent_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"method", "route", "status"})
)
