// Package loader provides the feature loading system.
//
// Each feature implements Feature and is registered with a Manager. LoadAll mounts the
// routes of every enabled feature in registration order, so features can be developed and
// tested in isolation and switched off when their dependencies are unavailable.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
