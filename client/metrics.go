package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedEventsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mandi_client",
			Name:      "feed_events_applied_total",
			Help:      "Change events applied to the local entry store.",
		},
		[]string{"kind"},
	)

	feedEventsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mandi_client",
			Name:      "feed_events_skipped_total",
			Help:      "Feed messages dropped because they could not be decoded.",
		},
	)

	feedReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mandi_client",
			Name:      "feed_reconnects_total",
			Help:      "Times the change feed connection was re-established.",
		},
	)

	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mandi_client",
			Name:      "store_mutations_total",
			Help:      "Entry store mutations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
)
