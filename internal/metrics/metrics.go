// Package metrics provides Prometheus instrumentation for the chat directory
// service: counters for signups, logins, room resolution and image uploads.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SignupsTotal counts signup attempts, labeled by result: "ok",
	// "rejected", or "error".
	SignupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatdir_signups_total",
		Help: "Total number of signup attempts",
	}, []string{"result"})

	// LoginsTotal counts login attempts, labeled by result.
	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatdir_logins_total",
		Help: "Total number of login attempts",
	}, []string{"result"})

	// RoomsCreatedTotal counts chat rooms created.
	RoomsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chatdir_rooms_created_total",
		Help: "Total number of chat rooms created",
	})

	// RoomsResolvedTotal counts resolve calls that returned an existing room.
	RoomsResolvedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chatdir_rooms_resolved_total",
		Help: "Total number of resolve calls answered by an existing room",
	})

	// ImageUploadsTotal counts profile image uploads, labeled by result.
	ImageUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatdir_image_uploads_total",
		Help: "Total number of profile image uploads",
	}, []string{"result"})

	// RequestDuration records HTTP request latency in seconds per route.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatdir_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"route"})
)

// Register registers all directory metrics with the default registry.
func Register() {
	prometheus.MustRegister(
		SignupsTotal,
		LoginsTotal,
		RoomsCreatedTotal,
		RoomsResolvedTotal,
		ImageUploadsTotal,
		RequestDuration,
	)
}

// Handler returns the HTTP handler exposing the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
