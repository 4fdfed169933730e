// Package router is a client-side navigation engine for single-page
// applications. It maps URL path patterns to handlers, runs an ordered
// middleware/hook pipeline around each navigation, and manages history
// transitions through a pluggable History collaborator.
//
// A navigation flows through a fixed pipeline: the raw path is sanitized
// (see pkg/routepath), resolved against the route table through a bounded
// FIFO match cache, checked against the redirect table, gated by the
// vetoable beforeNavigate event, and then dispatched: middleware, then
// beforeEach hooks, then the matched handler, then afterEach hooks, each
// run to completion before the next begins. Failures never escape to the
// caller; they are funneled through the error event channel and the
// "/error" route when one is registered.
//
//	r, err := router.New(
//		router.WithRoute("/", homeHandler),
//		router.WithRoute("/user/:id", userHandler),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r.NavigateTo(ctx, "/user/42", false)
//
// A Router is confined to a single goroutine. Navigations are assumed to
// be serialized by their triggers (user gestures, programmatic calls);
// handlers and hooks may re-enter the router, and the redirect counter
// bounds such re-entrant chains. Callers that navigate from multiple
// goroutines must serialize access themselves.
package router
