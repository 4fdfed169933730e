package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olton/router/pkg/routepath"
)

// Navigate runs the navigation pipeline for a path without touching
// history. Failures never escape: no-match raises routeNotFound, and
// middleware/hook/handler errors are funneled through the error channel
// and the error route.
func (r *Router) Navigate(ctx context.Context, path string) {
	if r.depth == 0 {
		r.redirectCount = 0
	}
	r.navigate(ctx, path)
}

// NavigateTo mutates history (push, or replace when replace is true) and
// then runs the navigation pipeline. Calls from outside an in-flight
// navigation reset the redirect counter; calls issued by handlers or
// hooks keep consuming it, which is what bounds re-entrant redirect
// chains.
func (r *Router) NavigateTo(ctx context.Context, path string, replace bool) {
	if r.depth == 0 {
		r.redirectCount = 0
	}
	if replace {
		r.history.Replace(path)
	} else {
		r.history.Push(path)
	}
	r.navigate(ctx, path)
}

// navigate is one pass through the pipeline. Redirect hops and re-entrant
// navigations recurse here, each consuming redirect budget.
func (r *Router) navigate(ctx context.Context, raw string) {
	r.depth++
	defer func() { r.depth-- }()

	if r.redirectCount > r.cfg.maxRedirects {
		r.redirectCount = 0
		r.logger.ErrorContext(ctx, "redirect limit exceeded",
			slog.String("path", raw),
			slog.Int("max", r.cfg.maxRedirects))
		r.bus.Emit(EventError, EventData{Path: raw, Err: ErrTooManyRedirects})
		r.history.Replace(r.cfg.fallback)
		r.navigate(ctx, r.cfg.fallback)
		return
	}
	r.redirectCount++

	res := routepath.SanitizeWith(raw, r.blocklist)
	path := r.stripBase(res.Path)
	r.logger.DebugContext(ctx, "navigating",
		slog.String("path", path),
		slog.Bool("sanitized", res.Changed),
		slog.Bool("blocked", res.Blocked))

	m, ok := r.resolve(path, res.Query)
	if !ok {
		// A miss is a first-class outcome, not an error.
		r.redirectCount = 0
		r.bus.Emit(EventRouteNotFound, EventData{Path: path})
		r.invokeRoute(ctx, r.cfg.notFoundPath, Params{"path": path})
		return
	}

	if !r.bus.Emit(EventBeforeNavigate, EventData{Path: path, Match: m}) {
		r.logger.DebugContext(ctx, "navigation vetoed", slog.String("path", path))
		return
	}

	if dest, ok := r.redirects[m.Pattern]; ok {
		// Internal hop: replace history and recurse, consuming one more
		// unit of the redirect budget.
		r.history.Replace(dest)
		r.navigate(ctx, dest)
		return
	}

	// Second increment: committing to a real dispatch costs a unit too,
	// so handler-triggered re-entrant loops stay bounded.
	r.redirectCount++

	if err := r.dispatch(ctx, m); err != nil {
		r.logger.ErrorContext(ctx, "navigation failed",
			slog.String("path", path),
			slog.String("pattern", m.Pattern),
			slog.Any("error", err))
		r.bus.Emit(EventError, EventData{Path: path, Match: m, Err: err})
		r.invokeRoute(ctx, r.cfg.errorPath, Params{"path": path, "error": err.Error()})
		return
	}

	r.current = m
	r.bus.Emit(EventAfterNavigate, EventData{Path: path, Match: m})
}

// dispatch runs middleware, beforeEach hooks, the handler, and afterEach
// hooks, each sequentially to completion. The first error (or recovered
// panic) aborts the rest; there is no retry.
func (r *Router) dispatch(ctx context.Context, m *Match) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during navigation: %v", p)
		}
	}()

	for _, mw := range r.middleware {
		if err := mw(ctx, m); err != nil {
			return err
		}
	}
	for _, h := range r.beforeEach {
		if err := h(ctx, m); err != nil {
			return err
		}
	}
	if err := m.Handler(ctx, m.Params); err != nil {
		return err
	}
	for _, h := range r.afterEach {
		if err := h(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// invokeRoute calls the handler registered for a designated route
// (not-found or error), if any. Its failures are logged only, never
// re-funneled.
func (r *Router) invokeRoute(ctx context.Context, pattern string, params Params) {
	rt, ok := r.index[pattern]
	if !ok {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.ErrorContext(ctx, "panic in designated route",
				slog.String("pattern", pattern),
				slog.Any("panic", p))
		}
	}()
	if err := rt.handler(ctx, params); err != nil {
		r.logger.ErrorContext(ctx, "designated route failed",
			slog.String("pattern", pattern),
			slog.Any("error", err))
	}
}
