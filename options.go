package router

import (
	"log/slog"

	"github.com/olton/router/pkg/routepath"
)

// Defaults applied by New.
const (
	DefaultFallbackPath = "/"
	DefaultNotFoundPath = "/404"
	DefaultErrorPath    = "/error"
	DefaultMaxRedirects = 5
	DefaultCacheLimit   = 50
)

// config holds construction-time settings.
type config struct {
	fallback     string
	notFoundPath string
	errorPath    string
	maxRedirects int
	basePath     string
	cacheLimit   int
	mode         Mode
	swipe        bool
}

func defaultConfig() config {
	return config{
		fallback:     DefaultFallbackPath,
		notFoundPath: DefaultNotFoundPath,
		errorPath:    DefaultErrorPath,
		maxRedirects: DefaultMaxRedirects,
		cacheLimit:   DefaultCacheLimit,
		mode:         ModePath,
	}
}

// options collects registrations that can fail; New applies them after
// the config is settled and reports the first error.
type options struct {
	routes    []routeDef
	redirects []redirectDef
	plugins   []Plugin
}

type routeDef struct {
	pattern string
	handler Handler
}

type redirectDef struct {
	from string
	to   string
}

// Option configures a Router at construction.
type Option func(*Router, *options)

// WithFallback sets the path navigated to when the redirect budget is
// exhausted. Default "/".
func WithFallback(path string) Option {
	return func(r *Router, _ *options) {
		r.cfg.fallback = path
	}
}

// WithNotFoundRoute sets the route invoked on a routeNotFound outcome.
// Default "/404".
func WithNotFoundRoute(pattern string) Option {
	return func(r *Router, _ *options) {
		r.cfg.notFoundPath = pattern
	}
}

// WithErrorRoute sets the route invoked when the pipeline fails.
// Default "/error".
func WithErrorRoute(pattern string) Option {
	return func(r *Router, _ *options) {
		r.cfg.errorPath = pattern
	}
}

// WithMaxRedirects sets the redirect budget per navigation. Default 5.
func WithMaxRedirects(n int) Option {
	return func(r *Router, _ *options) {
		r.cfg.maxRedirects = n
	}
}

// WithBasePath sets a prefix stripped from every path before matching.
func WithBasePath(base string) Option {
	return func(r *Router, _ *options) {
		r.cfg.basePath = base
	}
}

// WithCacheLimit sets the match cache capacity. Default 50; a
// non-positive limit disables caching.
func WithCacheLimit(n int) Option {
	return func(r *Router, _ *options) {
		r.cfg.cacheLimit = n
	}
}

// WithMode selects path-based or hash-based location handling.
func WithMode(mode Mode) Option {
	return func(r *Router, _ *options) {
		r.cfg.mode = mode
	}
}

// WithSwipeNavigation toggles the host's swipe-gesture collaborator.
func WithSwipeNavigation(enabled bool) Option {
	return func(r *Router, _ *options) {
		r.cfg.swipe = enabled
	}
}

// WithLogger injects the router's logger. Each instance owns its logger;
// there is no process-wide debug state.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router, _ *options) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHistory injects the history collaborator. Default is an in-memory
// history.
func WithHistory(h History) Option {
	return func(r *Router, _ *options) {
		r.history = h
	}
}

// WithBlocklist replaces the sanitizer's blocklist policy.
func WithBlocklist(b *routepath.Blocklist) Option {
	return func(r *Router, _ *options) {
		r.blocklist = b
	}
}

// WithRoute registers an initial route. Routes are added in option order.
func WithRoute(pattern string, handler Handler) Option {
	return func(_ *Router, o *options) {
		o.routes = append(o.routes, routeDef{pattern: pattern, handler: handler})
	}
}

// WithRedirect registers an initial redirect.
func WithRedirect(from, to string) Option {
	return func(_ *Router, o *options) {
		o.redirects = append(o.redirects, redirectDef{from: from, to: to})
	}
}

// WithPlugins registers initial plugins, installed in option order.
func WithPlugins(plugins ...Plugin) Option {
	return func(_ *Router, o *options) {
		o.plugins = append(o.plugins, plugins...)
	}
}
