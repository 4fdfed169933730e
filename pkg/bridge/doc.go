// Package bridge exposes a router instance to a browser client over
// HTTP and WebSocket.
//
// The bridge serves three surfaces from one chi mux:
//   - a WebSocket endpoint carrying the navigation protocol
//   - an optional metrics endpoint
//   - the SPA shell for every other path, so deep links load the app
//
// The wire protocol is JSON, one message per frame. Inbound:
//
//	{"type": "navigate", "path": "/user/5", "replace": false}
//	{"type": "back"}
//	{"type": "forward"}
//
// Outbound, one per settled navigation:
//
//	{"type": "navigated", "path": "/user/5", "pattern": "/user/:id", "params": {"id": "5"}}
//	{"type": "notFound", "path": "/missing"}
//	{"type": "error", "path": "/boom", "error": "..."}
//
// One connection is active at a time; a new client displaces the
// previous one. Navigations run on the connection's read goroutine,
// which preserves the router's single-goroutine confinement.
package bridge
