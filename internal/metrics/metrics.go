package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry groups every collector the service exports.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	MatchScores         *prometheus.HistogramVec
	Notifications       *prometheus.CounterVec
	WSClients           prometheus.Gauge
	CacheLookups        *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		MatchScores: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "match_scores",
				Help:    "Distribution of computed match scores",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
			[]string{"source"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_total",
				Help: "Outbound notifications by channel and result",
			},
			[]string{"channel", "result"},
		),
		WSClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ws_clients",
				Help: "Connected websocket clients",
			},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Cache lookups by namespace and result",
			},
			[]string{"namespace", "result"},
		),
	}

	r.reg.MustRegister(
		r.HTTPRequests,
		r.HTTPRequestDuration,
		r.MatchScores,
		r.Notifications,
		r.WSClients,
		r.CacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

func (r *Registry) ObserveMatch(source string, score int) {
	if r == nil {
		return
	}
	r.MatchScores.WithLabelValues(source).Observe(float64(score))
}

func (r *Registry) NotificationResult(channel, result string) {
	if r == nil {
		return
	}
	r.Notifications.WithLabelValues(channel, result).Inc()
}

func (r *Registry) CacheResult(namespace string, hit bool) {
	if r == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	r.CacheLookups.WithLabelValues(namespace, res).Inc()
}

func (r *Registry) WSConnected() {
	if r == nil {
		return
	}
	r.WSClients.Inc()
}

func (r *Registry) WSDisconnected() {
	if r == nil {
		return
	}
	r.WSClients.Dec()
}
