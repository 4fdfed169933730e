package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/olton/router"
)

// Default tracer name for navigation traces.
const defaultTracerName = "router"

// OTelConfig configures the OpenTelemetry plugin.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "router").
	TracerName string

	// IncludeParams includes extracted route parameters as span
	// attributes. Parameter values come from user-controlled paths and
	// may contain sensitive information - disabled by default.
	IncludeParams bool

	// AttributeExtractor extracts custom attributes from the match.
	// Called once per traced navigation.
	AttributeExtractor func(m *router.Match) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry plugin.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeParams enables recording route parameters on spans.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(m *router.Match) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates a plugin that traces every navigation.
//
// A span opens when the pipeline dispatches to a destination and closes
// when the navigation settles, with status reflecting the outcome.
// Vetoed navigations and redirect hops are never dispatched, so they
// open no span. A re-entrant navigation issued from a handler ends the
// pending span with a "superseded" event before opening its own.
//
// The tracer comes from the global OpenTelemetry tracer provider.
// Configure it in your main() before installing the plugin:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
//
//	r, err := router.New(
//	    router.WithPlugins(
//	        middleware.OpenTelemetry(
//	            middleware.WithTracerName("my-app"),
//	        ),
//	    ),
//	)
func OpenTelemetry(opts ...OTelOption) router.Plugin {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &otelPlugin{cfg: config}
}

type otelPlugin struct {
	cfg OTelConfig

	// span is the pending navigation span. Navigations on one router
	// are serialized, so no locking.
	span trace.Span
}

// Install wires a span-opening middleware into the pipeline and
// subscribes to the router's terminal event channels.
func (p *otelPlugin) Install(r *router.Router) error {
	r.Use(func(ctx context.Context, m *router.Match) error {
		if p.span != nil {
			p.span.AddEvent("superseded")
			p.span.End()
		}

		attrs := []attribute.KeyValue{
			attribute.String("router.path", m.Path),
			attribute.String("router.pattern", m.Pattern),
		}
		if p.cfg.IncludeParams {
			for name, value := range m.Params {
				attrs = append(attrs, attribute.String("router.param."+name, value))
			}
		}
		if p.cfg.AttributeExtractor != nil {
			attrs = append(attrs, p.cfg.AttributeExtractor(m)...)
		}

		_, span := p.cfg.tracer.Start(
			ctx,
			"navigate "+m.Pattern,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		p.span = span
		return nil
	})

	r.On(router.EventAfterNavigate, func(d router.EventData) bool {
		if p.span != nil {
			p.span.SetStatus(codes.Ok, "")
			p.span.End()
			p.span = nil
		}
		return true
	})

	r.On(router.EventError, func(d router.EventData) bool {
		if p.span != nil {
			p.span.RecordError(d.Err)
			p.span.SetStatus(codes.Error, d.Err.Error())
			p.span.End()
			p.span = nil
		}
		return true
	})

	return nil
}

// Destroy ends a dangling span if the router closes mid-navigation.
func (p *otelPlugin) Destroy(r *router.Router) error {
	if p.span != nil {
		p.span.End()
		p.span = nil
	}
	return nil
}
