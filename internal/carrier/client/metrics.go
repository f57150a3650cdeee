package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CarrierRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carrier_request_duration_seconds",
			Help:    "Duration of carrier PrintLabels requests",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"mode", "outcome"},
	)

	CarrierParcelFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_parcel_failures_total",
			Help: "Total number of parcels rejected by the carrier",
		},
		[]string{"error_code"},
	)
)
