package router

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Params is a flat string-to-string map of route or query parameters.
// Numeric-looking values stay strings; no type coercion is applied.
type Params map[string]string

// Match is the resolved outcome of testing a concrete path against the
// route table. It is immutable once constructed and may be shared through
// the match cache.
type Match struct {
	// Path is the concrete sanitized path that matched.
	Path string

	// Pattern is the registered pattern that produced the match.
	Pattern string

	// Handler is the handler registered for Pattern.
	Handler Handler

	// Params are the extracted named parameters.
	Params Params

	// Query are the query parameters (last value wins on duplicates).
	Query Params
}

// route is one route table entry. The matcher regexp is compiled once at
// registration time; matching an un-cached path is a linear scan over
// precompiled patterns in registration order.
type route struct {
	pattern string
	handler Handler
	re      *regexp.Regexp
	params  []string
}

// compilePattern translates a path pattern into an anchored regexp.
// Segments prefixed with ":" become named captures matching any run of
// non-slash characters; all other segments match literally.
func compilePattern(pattern string) (*regexp.Regexp, []string, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, pattern)
	}
	// Sanitized paths never carry a trailing slash, so a pattern ending in
	// one could never match. Reject it instead of registering dead weight.
	if pattern != "/" && strings.HasSuffix(pattern, "/") {
		return nil, nil, fmt.Errorf("%w: %q must not end with /", ErrInvalidPattern, pattern)
	}

	var (
		b     strings.Builder
		names []string
	)
	seen := make(map[string]bool)
	b.WriteString("^")

	if pattern == "/" {
		b.WriteString("/")
	} else {
		for _, seg := range strings.Split(strings.TrimPrefix(pattern, "/"), "/") {
			b.WriteString("/")
			if name, ok := strings.CutPrefix(seg, ":"); ok {
				if name == "" {
					return nil, nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, pattern)
				}
				if seen[name] {
					return nil, nil, fmt.Errorf("%w: %q binds %q twice", ErrDuplicateParam, pattern, name)
				}
				seen[name] = true
				names = append(names, name)
				b.WriteString("([^/]+)")
				continue
			}
			b.WriteString(regexp.QuoteMeta(seg))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	return re, names, nil
}

// resolve matches a sanitized path against the route table, consulting
// the cache first. Cached results include "no match", keyed by the exact
// path plus query string.
func (r *Router) resolve(path, query string) (*Match, bool) {
	key := path
	if query != "" {
		key = path + "?" + query
	}
	if m, ok := r.cache.get(key); ok {
		return m, m != nil
	}

	// First registered pattern wins; registration order is the
	// documented tie-break for overlapping patterns.
	for _, rt := range r.routes {
		vals := rt.re.FindStringSubmatch(path)
		if vals == nil {
			continue
		}
		params := make(Params, len(rt.params))
		for i, name := range rt.params {
			params[name] = vals[i+1]
		}
		m := &Match{
			Path:    path,
			Pattern: rt.pattern,
			Handler: rt.handler,
			Params:  params,
			Query:   parseQuery(query),
		}
		r.cache.put(key, m)
		return m, true
	}

	r.cache.put(key, nil)
	return nil, false
}

// parseQuery parses a query string into a flat map with standard
// form-encoding semantics: "+" means space, the last value wins on
// duplicate keys, and undecodable components are kept raw.
func parseQuery(query string) Params {
	out := make(Params)
	if query == "" {
		return out
	}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if k == "" {
			continue
		}
		if dk, err := url.QueryUnescape(k); err == nil {
			k = dk
		}
		if dv, err := url.QueryUnescape(v); err == nil {
			v = dv
		}
		out[k] = v
	}
	return out
}
