package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	TweetsPosted       *prometheus.CounterVec
	LikeRequests       *prometheus.CounterVec
	FollowRequests     *prometheus.CounterVec
	UnfollowRequests   *prometheus.CounterVec
	MediaUploaded      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics registers the API collectors on a registry of their own so
// several servers (tests) can live in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx) HTTP requests",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx/5xx) HTTP requests",
			},
			[]string{"path", "error_type"},
		),
		TweetsPosted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_tweet",
				Help: "Total number of successfully posted tweets",
			},
			[]string{"path"},
		),
		LikeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_likes",
				Help: "Total number of successfully added or removed likes",
			},
			[]string{"path"},
		),
		FollowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_follows",
				Help: "Total number of successfully sent follow requests",
			},
			[]string{"path"},
		),
		UnfollowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_unfollows",
				Help: "Total number of successfully sent unfollow requests",
			},
			[]string{"path"},
		),
		MediaUploaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_media_upload",
				Help: "Total number of successfully uploaded media files",
			},
			[]string{"path"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.SuccessfulRequests)
	m.registry.MustRegister(m.BadRequests)
	m.registry.MustRegister(m.TweetsPosted)
	m.registry.MustRegister(m.LikeRequests)
	m.registry.MustRegister(m.FollowRequests)
	m.registry.MustRegister(m.UnfollowRequests)
	m.registry.MustRegister(m.MediaUploaded)
	m.registry.MustRegister(m.RequestDuration)
	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
