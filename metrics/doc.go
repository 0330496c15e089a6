// Package metrics records operational counters for the adapters.
//
// Adapters accept a Recorder; Noop is the default. Prometheus registers its
// collectors on a caller-supplied registry so several adapters (or tests) can
// keep separate registries.
package metrics
