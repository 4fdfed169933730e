package router

import "errors"

// Plugin extends a Router at registration time. Optional lifecycle
// capabilities are modeled as separate interfaces and dispatched by
// explicit type assertion, never by probing for method presence at run
// time.
type Plugin interface {
	// Install wires the plugin into the router (routes, hooks,
	// middleware, event listeners).
	Install(r *Router) error
}

// Initializer is the optional post-install lifecycle step.
type Initializer interface {
	Init(r *Router) error
}

// Destroyer is the optional teardown lifecycle step, run by Close.
type Destroyer interface {
	Destroy(r *Router) error
}

// PluginFunc adapts a function-style plugin.
type PluginFunc func(r *Router) error

// Install implements Plugin.
func (f PluginFunc) Install(r *Router) error {
	return f(r)
}

// UsePlugin installs a plugin and, when it implements Initializer, runs
// Init. The plugin is tracked for teardown only after both succeed.
func (r *Router) UsePlugin(p Plugin) error {
	if err := p.Install(r); err != nil {
		return err
	}
	if init, ok := p.(Initializer); ok {
		if err := init.Init(r); err != nil {
			return err
		}
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Close destroys registered plugins in reverse registration order and
// returns the joined errors.
func (r *Router) Close() error {
	var errs []error
	for i := len(r.plugins) - 1; i >= 0; i-- {
		if d, ok := r.plugins[i].(Destroyer); ok {
			if err := d.Destroy(r); err != nil {
				errs = append(errs, err)
			}
		}
	}
	r.plugins = nil
	return errors.Join(errs...)
}
