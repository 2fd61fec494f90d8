package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanolink_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nanolink_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Domain metrics
	NotificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanolink_notifications_created_total",
			Help: "Total number of notifications created by type",
		},
		[]string{"type"},
	)

	ConnectionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanolink_connection_transitions_total",
			Help: "Total number of connection state changes by resulting status",
		},
		[]string{"status"},
	)

	MessagesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nanolink_messages_sent_total",
			Help: "Total number of direct messages sent",
		},
	)

	LikesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nanolink_likes_total",
			Help: "Total number of likes by target kind",
		},
		[]string{"target"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(NotificationsCreated)
	prometheus.MustRegister(ConnectionTransitions)
	prometheus.MustRegister(MessagesSent)
	prometheus.MustRegister(LikesTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
