package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olton/router/pkg/routepath"
)

// Handler runs when its route is dispatched. It receives the extracted
// route parameters; an error aborts the rest of the pipeline and is
// funneled through the error channel.
type Handler func(ctx context.Context, params Params) error

// Hook observes a navigation around handler dispatch. Hooks run
// sequentially in registration order; an error aborts the navigation.
type Hook func(ctx context.Context, m *Match) error

// Middleware runs before the beforeEach hooks on every dispatched
// navigation. Middleware run sequentially in registration order, each to
// completion before the next begins, so side effects are visible in
// order.
type Middleware func(ctx context.Context, m *Match) error

// Router maps path patterns to handlers and orchestrates the navigation
// pipeline. It is confined to one goroutine; see the package
// documentation.
type Router struct {
	cfg       config
	logger    *slog.Logger
	history   History
	blocklist *routepath.Blocklist

	routes    []*route
	index     map[string]*route
	redirects map[string]string

	middleware []Middleware
	beforeEach []Hook
	afterEach  []Hook

	bus     *Bus
	cache   *matchCache
	plugins []Plugin

	current       *Match
	redirectCount int
	depth         int
}

// New creates a Router with the given options. Initial routes, redirects,
// and plugins registered through options report their errors here.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		cfg:       defaultConfig(),
		logger:    slog.New(discardHandler{}),
		blocklist: routepath.DefaultBlocklist(),
		index:     make(map[string]*route),
		redirects: make(map[string]string),
		bus:       NewBus(),
	}

	var o options
	for _, opt := range opts {
		opt(r, &o)
	}
	if r.history == nil {
		r.history = NewMemoryHistory()
	}
	r.cache = newMatchCache(r.cfg.cacheLimit)

	for _, def := range o.routes {
		if err := r.Add(def.pattern, def.handler); err != nil {
			return nil, err
		}
	}
	for _, def := range o.redirects {
		if err := r.AddRedirect(def.from, def.to); err != nil {
			return nil, err
		}
	}
	for _, p := range o.plugins {
		if err := r.UsePlugin(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a pattern. Re-adding an existing pattern is rejected with
// ErrRouteExists; Update is the explicit replacement operation. Patterns
// compile once at registration; table mutations invalidate the match
// cache.
func (r *Router) Add(pattern string, handler Handler) error {
	if _, ok := r.index[pattern]; ok {
		return fmt.Errorf("%w: %q", ErrRouteExists, pattern)
	}
	re, names, err := compilePattern(pattern)
	if err != nil {
		return err
	}
	rt := &route{pattern: pattern, handler: handler, re: re, params: names}
	r.routes = append(r.routes, rt)
	r.index[pattern] = rt
	r.cache.clear()
	return nil
}

// Remove unregisters a pattern, reporting whether it existed.
func (r *Router) Remove(pattern string) bool {
	rt, ok := r.index[pattern]
	if !ok {
		return false
	}
	delete(r.index, pattern)
	for i, cur := range r.routes {
		if cur == rt {
			r.routes = append(r.routes[:i], r.routes[i+1:]...)
			break
		}
	}
	r.cache.clear()
	return true
}

// Update replaces the handler of an existing pattern, reporting whether
// the pattern was registered. It never inserts.
func (r *Router) Update(pattern string, handler Handler) bool {
	rt, ok := r.index[pattern]
	if !ok {
		return false
	}
	rt.handler = handler
	r.cache.clear()
	return true
}

// Route describes one route table entry in registration order.
type Route struct {
	Pattern string
	Handler Handler
}

// Routes returns the route table in registration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	for i, rt := range r.routes {
		out[i] = Route{Pattern: rt.pattern, Handler: rt.handler}
	}
	return out
}

// AddRedirect registers a redirect from a source pattern (exact, as
// registered in the route table) to a destination path. A duplicate
// source is rejected with ErrRedirectExists, never overwritten.
func (r *Router) AddRedirect(from, to string) error {
	if _, ok := r.redirects[from]; ok {
		return fmt.Errorf("%w: %q", ErrRedirectExists, from)
	}
	r.redirects[from] = to
	return nil
}

// RemoveRedirect unregisters a redirect source, reporting whether it
// existed.
func (r *Router) RemoveRedirect(from string) bool {
	if _, ok := r.redirects[from]; !ok {
		return false
	}
	delete(r.redirects, from)
	return true
}

// Use appends middleware to the pipeline.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// BeforeEach appends hooks that run after middleware and before the
// handler.
func (r *Router) BeforeEach(hooks ...Hook) {
	r.beforeEach = append(r.beforeEach, hooks...)
}

// AfterEach appends hooks that run after the handler.
func (r *Router) AfterEach(hooks ...Hook) {
	r.afterEach = append(r.afterEach, hooks...)
}

// On subscribes a listener to an event channel.
func (r *Router) On(evt Event, fn Listener) {
	r.bus.On(evt, fn)
}

// Events returns the router's event bus.
func (r *Router) Events() *Bus {
	return r.bus
}

// Match sanitizes a path and resolves it against the route table without
// navigating. The result is cached like any other resolution.
func (r *Router) Match(path string) (*Match, bool) {
	res := routepath.SanitizeWith(path, r.blocklist)
	return r.resolve(r.stripBase(res.Path), res.Query)
}

// TestPath runs a path through the sanitizer without navigating and
// returns the diagnostic result (original, sanitized, blocked, modified).
func (r *Router) TestPath(path string) routepath.Result {
	return routepath.SanitizeWith(path, r.blocklist)
}

// Current returns the match of the last successfully completed
// navigation, or nil before the first one.
func (r *Router) Current() *Match {
	return r.current
}

// ClearCache drops every cached match result.
func (r *Router) ClearCache() {
	r.cache.clear()
}

// CacheLen returns the number of cached match results.
func (r *Router) CacheLen() int {
	return r.cache.len()
}

// ResetRedirectCount zeroes the redirect counter.
func (r *Router) ResetRedirectCount() {
	r.redirectCount = 0
}

// History returns the history collaborator.
func (r *Router) History() History {
	return r.history
}

// Logger returns the router's logger.
func (r *Router) Logger() *slog.Logger {
	return r.logger
}

// Mode returns the configured location mode.
func (r *Router) Mode() Mode {
	return r.cfg.mode
}

// SwipeNavigation reports whether the host's swipe-gesture collaborator
// should drive back/forward navigation.
func (r *Router) SwipeNavigation() bool {
	return r.cfg.swipe
}

// stripBase removes the configured base path prefix before matching.
func (r *Router) stripBase(path string) string {
	base := r.cfg.basePath
	if base == "" || base == "/" {
		return path
	}
	rest, ok := strings.CutPrefix(path, base)
	if !ok {
		return path
	}
	if rest == "" {
		return "/"
	}
	if !strings.HasPrefix(rest, "/") {
		return path
	}
	return rest
}

// discardHandler drops every record. The default logger until WithLogger
// injects a real one.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
