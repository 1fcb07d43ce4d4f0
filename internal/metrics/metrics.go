// Package metrics holds the dashboard's Prometheus collectors on a private
// registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reservewise"

// Collector wraps the metric vectors. A nil *Collector is valid and records
// nothing, which keeps tests and optional wiring simple.
type Collector struct {
	registry *prometheus.Registry

	RemoteRequests *prometheus.CounterVec
	RemoteDuration *prometheus.HistogramVec
	PageRequests   *prometheus.CounterVec
	RemindersSent  *prometheus.CounterVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		RemoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Calls made to the reservation API, by entity, operation and outcome.",
		}, []string{"entity", "op", "outcome"}),
		RemoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Latency of calls made to the reservation API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "op"}),
		PageRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Dashboard requests by route template, method and status code.",
		}, []string{"route", "method", "code"}),
		RemindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "sent_total",
			Help:      "Reservation reminders by channel and outcome.",
		}, []string{"channel", "outcome"}),
	}
	reg.MustRegister(
		c.RemoteRequests, c.RemoteDuration, c.PageRequests, c.RemindersSent,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveRemote records one API call.
func (c *Collector) ObserveRemote(entity, op string, start time.Time, err error) {
	if c == nil {
		return
	}
	c.RemoteRequests.WithLabelValues(entity, op, outcome(err)).Inc()
	c.RemoteDuration.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
}

func (c *Collector) ObserveReminder(channel string, err error) {
	if c == nil {
		return
	}
	c.RemindersSent.WithLabelValues(channel, outcome(err)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests by mux route template so ids do not explode
// label cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		c.PageRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.code)).Inc()
	})
}
