package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shadotui"

// Metrics holds the loop's prometheus collectors on a private registry.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	actions       *prometheus.CounterVec
	rawEvents     *prometheus.CounterVec
	renders       *prometheus.CounterVec
	drawLatency   prometheus.Histogram
	cycles        *prometheus.CounterVec
	notifications *prometheus.CounterVec
	queueDepth    prometheus.Gauge
}

// NewMetrics registers the loop collectors plus Go runtime collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "loop",
				Name:      "actions_total",
				Help:      "Actions received by the application loop.",
			},
			[]string{"action"},
		),
		rawEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "input",
				Name:      "raw_events_total",
				Help:      "Raw events emitted by the multiplexer.",
			},
			[]string{"kind"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "frames_total",
				Help:      "Frames drawn by the render driver.",
			},
			[]string{"result"},
		),
		drawLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "draw_seconds",
				Help:      "Time spent drawing one frame.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~200ms
			},
		),
		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "loop",
				Name:      "lifecycle_total",
				Help:      "Lifecycle transitions (suspend, resume, quit).",
			},
			[]string{"transition"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "host",
				Name:      "notifications_total",
				Help:      "Host notifications by kind and delivery result.",
			},
			[]string{"kind", "result"},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "loop",
				Name:      "action_queue_depth",
				Help:      "Actions waiting in the loop queue.",
			},
		),
	}

	m.registry.MustRegister(
		m.actions,
		m.rawEvents,
		m.renders,
		m.drawLatency,
		m.cycles,
		m.notifications,
		m.queueDepth,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the private registry for scraping and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAction(name string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(name).Inc()
}

func (m *Metrics) ObserveRawEvent(kind string) {
	if m == nil {
		return
	}
	m.rawEvents.WithLabelValues(kind).Inc()
}

// ObserveRender records one draw attempt and its duration.
func (m *Metrics) ObserveRender(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.renders.WithLabelValues(result).Inc()
	m.drawLatency.Observe(d.Seconds())
}

func (m *Metrics) ObserveLifecycle(transition string) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(transition).Inc()
}

func (m *Metrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	result := "delivered"
	if err != nil {
		result = "failed"
	}
	m.notifications.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}
