package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogueTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salonbot_dialogue_transitions_total",
			Help: "Total number of dialogue transitions by origin step and outcome",
		},
		[]string{"from_step", "outcome"},
	)

	DialogueInvalidSteps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salonbot_dialogue_invalid_step_total",
			Help: "Sessions found in an unknown step and reset",
		},
	)

	BookingsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salonbot_bookings_completed_total",
			Help: "Bookings confirmed by clients",
		},
	)

	SweptEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salonbot_swept_entries_total",
			Help: "Idle entries removed by the periodic sweeper, by target",
		},
		[]string{"target"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salonbot_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
