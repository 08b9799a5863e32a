// Package metrics defines all custom Prometheus metrics for the find-a-buddy
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "findabuddy"

// ── Meetup metrics ────────────────────────────────────────────────────────────

// MeetupsCreatedTotal counts meetups created, by topic.
var MeetupsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meetups_created_total",
		Help:      "Total number of meetups created, by topic.",
	},
	[]string{"topic"},
)

// InvitesAcceptedTotal counts invites accepted by their coach.
var InvitesAcceptedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invites_accepted_total",
		Help:      "Total number of meetup invites accepted.",
	},
)

// ReviewsPostedTotal counts reviews, by rating (1-5).
var ReviewsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_posted_total",
		Help:      "Total number of reviews posted, by rating.",
	},
	[]string{"rating"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsPublishedTotal counts broker publishes.
// Labels:
//   - type: the event type (e.g. "meetup.created")
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of meetup events handed to the broker, by type and result.",
	},
	[]string{"type", "result"},
)

// EventsDroppedTotal counts events discarded because a worker queue was full.
var EventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of meetup events dropped before publishing, by type.",
	},
	[]string{"type"},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventPublishDuration measures broker publish latency.
var EventPublishDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_publish_duration_seconds",
		Help:      "Duration of a single event publish to the broker.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)
