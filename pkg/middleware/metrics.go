package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/olton/router"
)

// MetricsConfig configures the Prometheus metrics plugin.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "router").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics plugin.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "router",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus creates a plugin that instruments every navigation on the
// router it is installed on.
//
// Metrics collected:
//   - router_navigations_total: Counter of navigations by pattern and status
//   - router_navigation_duration_seconds: Histogram of navigation duration by pattern
//   - router_route_not_found_total: Counter of navigations that matched no route
//   - router_match_cache_entries: Gauge of cached match results
//
// Labels carry the registered pattern, never the concrete path, so
// cardinality is bounded by the size of the route table.
//
// Example:
//
//	r, err := router.New(
//	    router.WithPlugins(
//	        middleware.Prometheus(
//	            middleware.WithNamespace("myapp"),
//	        ),
//	    ),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) router.Plugin {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &metricsPlugin{cfg: config}
}

type metricsPlugin struct {
	cfg MetricsConfig

	navigations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	notFound    prometheus.Counter
	cacheSize   prometheus.GaugeFunc

	// start is the timestamp of the most recent beforeNavigate.
	// Navigations on one router are serialized, so no locking.
	start time.Time
}

// Install registers the metrics with the configured registry and
// subscribes to the router's event channels.
func (p *metricsPlugin) Install(r *router.Router) error {
	factory := promauto.With(p.cfg.Registry)

	p.navigations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   p.cfg.Namespace,
		Subsystem:   p.cfg.Subsystem,
		Name:        "navigations_total",
		Help:        "Total number of navigations by pattern and status",
		ConstLabels: p.cfg.ConstLabels,
	}, []string{"pattern", "status"})

	p.duration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   p.cfg.Namespace,
		Subsystem:   p.cfg.Subsystem,
		Name:        "navigation_duration_seconds",
		Help:        "Navigation pipeline duration in seconds",
		ConstLabels: p.cfg.ConstLabels,
		Buckets:     p.cfg.Buckets,
	}, []string{"pattern"})

	p.notFound = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   p.cfg.Namespace,
		Subsystem:   p.cfg.Subsystem,
		Name:        "route_not_found_total",
		Help:        "Total number of navigations that matched no route",
		ConstLabels: p.cfg.ConstLabels,
	})

	p.cacheSize = factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   p.cfg.Namespace,
		Subsystem:   p.cfg.Subsystem,
		Name:        "match_cache_entries",
		Help:        "Number of cached match results",
		ConstLabels: p.cfg.ConstLabels,
	}, func() float64 {
		return float64(r.CacheLen())
	})

	r.On(router.EventBeforeNavigate, func(d router.EventData) bool {
		p.start = time.Now()
		return true
	})

	r.On(router.EventAfterNavigate, func(d router.EventData) bool {
		if !p.start.IsZero() {
			p.duration.WithLabelValues(d.Match.Pattern).Observe(time.Since(p.start).Seconds())
			p.start = time.Time{}
		}
		p.navigations.WithLabelValues(d.Match.Pattern, "success").Inc()
		return true
	})

	r.On(router.EventRouteNotFound, func(d router.EventData) bool {
		p.start = time.Time{}
		p.notFound.Inc()
		return true
	})

	r.On(router.EventError, func(d router.EventData) bool {
		pattern := "none"
		if d.Match != nil {
			pattern = d.Match.Pattern
		}
		p.start = time.Time{}
		p.navigations.WithLabelValues(pattern, "error").Inc()
		return true
	})

	return nil
}
