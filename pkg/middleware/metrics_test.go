package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/olton/router"
)

func nopHandler(ctx context.Context, params router.Params) error {
	return nil
}

// metricValue sums all sample values for one metric family.
func metricValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return total
}

func TestPrometheusCountsNavigations(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := router.New(
		router.WithRoute("/ok", nopHandler),
		router.WithRoute("/boom", func(ctx context.Context, params router.Params) error {
			return errors.New("boom")
		}),
		router.WithPlugins(Prometheus(WithRegistry(reg))),
	)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	r.Navigate(ctx, "/ok")
	r.Navigate(ctx, "/ok")
	r.Navigate(ctx, "/boom")
	r.Navigate(ctx, "/missing")

	if got := metricValue(t, reg, "router_navigations_total"); got != 3 {
		t.Errorf("navigations_total = %v, want 3", got)
	}
	if got := metricValue(t, reg, "router_route_not_found_total"); got != 1 {
		t.Errorf("route_not_found_total = %v, want 1", got)
	}
	if got := metricValue(t, reg, "router_navigation_duration_seconds"); got != 2 {
		t.Errorf("duration sample count = %v, want 2", got)
	}
}

func TestPrometheusCacheGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := router.New(
		router.WithRoute("/a", nopHandler),
		router.WithRoute("/b", nopHandler),
		router.WithPlugins(Prometheus(WithRegistry(reg))),
	)
	if err != nil {
		t.Fatal(err)
	}

	r.Match("/a")
	r.Match("/b")
	if got := metricValue(t, reg, "router_match_cache_entries"); got != 2 {
		t.Errorf("match_cache_entries = %v, want 2", got)
	}

	r.ClearCache()
	if got := metricValue(t, reg, "router_match_cache_entries"); got != 0 {
		t.Errorf("match_cache_entries after clear = %v, want 0", got)
	}
}

func TestPrometheusNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := router.New(
		router.WithRoute("/ok", nopHandler),
		router.WithPlugins(Prometheus(
			WithRegistry(reg),
			WithNamespace("myapp"),
			WithSubsystem("nav"),
		)),
	)
	if err != nil {
		t.Fatal(err)
	}

	r.Navigate(context.Background(), "/ok")
	if got := metricValue(t, reg, "myapp_nav_navigations_total"); got != 1 {
		t.Errorf("myapp_nav_navigations_total = %v, want 1", got)
	}
}
