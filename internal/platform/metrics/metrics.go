package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "taskapi"

// SummarySource provides task counts for the task gauges.
type SummarySource interface {
	Summary(ctx context.Context) (domain.Summary, error)
}

// Metrics owns a private registry and the application's collectors.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	events   *prometheus.CounterVec
	logger   *slog.Logger
}

// New creates a Metrics with Go runtime and process collectors registered.
func New(logger *slog.Logger) *Metrics {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "task_events_total",
			Help:      "Task lifecycle events, by type. Bulk events count every affected task.",
		}, []string{"type"}),
		logger: logger.With("component", "metrics"),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.events,
	)

	// Pre-create event series so dashboards see zeroes before the first event.
	for _, eventType := range events.EventTypes {
		m.events.WithLabelValues(string(eventType))
	}

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

// ObserveHTTPRequest records one completed request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RegisterTaskGauges registers one gauge per task status, computed from
// src.Summary on every scrape.
func (m *Metrics) RegisterTaskGauges(src SummarySource) error {
	read := func(pick func(domain.Summary) int) func() float64 {
		return func() float64 {
			summary, err := src.Summary(context.Background())
			if err != nil {
				m.logger.Warn("failed to read task summary for metrics", "error", err)
				return 0
			}
			return float64(pick(summary))
		}
	}

	gauges := map[domain.TaskStatus]func(domain.Summary) int{
		domain.TaskStatusPending:   func(s domain.Summary) int { return s.Pending },
		domain.TaskStatusCompleted: func(s domain.Summary) int { return s.Completed },
	}

	for status, pick := range gauges {
		gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "tasks",
			Help:        "Tasks currently stored, by status.",
			ConstLabels: prometheus.Labels{"status": string(status)},
		}, read(pick))
		if err := m.registry.Register(gauge); err != nil {
			return err
		}
	}
	return nil
}

// EventHandler returns an events.EventHandler that counts task events.
func (m *Metrics) EventHandler() events.EventHandler {
	return events.HandlerFunc(func(_ context.Context, event *events.TaskEvent) error {
		if event.Count <= 0 {
			return nil
		}
		m.events.WithLabelValues(string(event.Type)).Add(float64(event.Count))
		return nil
	})
}
