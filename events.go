package router

// Event names the four observation channels of a Router.
type Event string

// Navigation event channels.
const (
	// EventBeforeNavigate fires after a route is matched and before any
	// middleware runs. A listener returning false vetoes the navigation.
	EventBeforeNavigate Event = "beforeNavigate"

	// EventAfterNavigate fires after a navigation completes successfully.
	EventAfterNavigate Event = "afterNavigate"

	// EventRouteNotFound fires when no pattern matches the path.
	EventRouteNotFound Event = "routeNotFound"

	// EventError fires when the pipeline fails: a middleware, hook, or
	// handler error, or an exhausted redirect budget.
	EventError Event = "error"
)

// EventData is the payload passed to listeners. Match is nil for
// routeNotFound and redirect-limit errors; Err is non-nil only on the
// error channel.
type EventData struct {
	Path  string
	Match *Match
	Err   error
}

// Listener observes a channel. The return value is meaningful only on
// EventBeforeNavigate, where false vetoes the in-flight navigation;
// on every other channel it is ignored.
type Listener func(data EventData) bool

// Bus is an ordered, named-channel listener registry. Listeners are
// append-only and invoked in registration order.
type Bus struct {
	listeners map[Event][]Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[Event][]Listener)}
}

// On appends a listener to a channel.
func (b *Bus) On(evt Event, fn Listener) {
	b.listeners[evt] = append(b.listeners[evt], fn)
}

// Emit invokes every listener on the channel in registration order. On
// EventBeforeNavigate a listener returning false stops emission and Emit
// returns false; all other channels are fire-and-forget and Emit returns
// true.
func (b *Bus) Emit(evt Event, data EventData) bool {
	vetoable := evt == EventBeforeNavigate
	for _, fn := range b.listeners[evt] {
		if !fn(data) && vetoable {
			return false
		}
	}
	return true
}
