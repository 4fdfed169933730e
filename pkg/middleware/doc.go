// Package middleware provides observability plugins and middleware for
// the navigation engine.
//
// This package includes:
//   - Prometheus metrics plugin
//   - OpenTelemetry tracing plugin
//   - Structured logging middleware
//
// # Prometheus Metrics
//
// The Prometheus plugin counts and times navigations:
//   - router_navigations_total: navigations by pattern and status
//   - router_navigation_duration_seconds: pipeline duration histogram
//   - router_route_not_found_total: unmatched navigations
//   - router_match_cache_entries: current match cache size
//
//	r, err := router.New(
//	    router.WithPlugins(middleware.Prometheus()),
//	)
//
// Then expose metrics on a separate port:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
// # OpenTelemetry Tracing
//
// The OpenTelemetry plugin opens a span per committed navigation and
// closes it when the navigation settles. Spans carry the sanitized path
// and the matched pattern; redirect hops end the pending span with a
// "superseded" event.
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithIncludeParams(true),
//	)
//
// # Logging
//
// Logging is a plain router middleware that records every committed
// navigation through a slog.Logger:
//
//	r, err := router.New()
//	r.Use(middleware.Logging(logger))
package middleware
