// Package metrics exposes render and request counters in the prometheus
// exposition format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "monster_widget"

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics owns a private prometheus registry so tests and multiple servers
// never collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	subWidgetRenders *prometheus.CounterVec
	sidebarRenders   *prometheus.CounterVec
	sidebarDuration  *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	liveClients      prometheus.Gauge
}

// New builds the collectors. placeholder, when non-nil, reports the next
// placeholder number the Monster counter will hand out.
func New(placeholder func() int64) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		subWidgetRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subwidget_renders_total",
			Help:      "Sub-widgets rendered by the Monster widget, by type and outcome.",
		}, []string{"widget", "outcome"}),
		sidebarRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sidebar_renders_total",
			Help:      "Sidebar renders, by sidebar and outcome.",
		}, []string{"sidebar", "outcome"}),
		sidebarDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sidebar_render_seconds",
			Help:      "Time spent rendering a sidebar.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"sidebar"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		liveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_preview_clients",
			Help:      "Connected live preview websocket clients.",
		}),
	}

	m.registry.MustRegister(
		m.subWidgetRenders,
		m.sidebarRenders,
		m.sidebarDuration,
		m.httpRequests,
		m.httpDuration,
		m.liveClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if placeholder != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "next_placeholder",
			Help:      "Next placeholder number the Monster widget will assign.",
		}, func() float64 { return float64(placeholder()) }))
	}

	return m
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

// SubWidgetRendered implements monster.Observer.
func (m *Metrics) SubWidgetRendered(id widgets.TypeID, err error) {
	m.subWidgetRenders.WithLabelValues(string(id), outcome(err)).Inc()
}

// SidebarRendered implements services.RenderObserver.
func (m *Metrics) SidebarRendered(sidebarID string, duration time.Duration, err error) {
	m.sidebarRenders.WithLabelValues(sidebarID, outcome(err)).Inc()
	m.sidebarDuration.WithLabelValues(sidebarID).Observe(duration.Seconds())
}

func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) ClientConnected()    { m.liveClients.Inc() }
func (m *Metrics) ClientDisconnected() { m.liveClients.Dec() }

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
