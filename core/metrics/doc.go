// Package metrics defines the Prometheus collectors for the service and exposes them
// over Fiber.
package metrics
