// Package events provides task lifecycle events and an in-process emitter.
//
// The task service emits an event after every successful mutation without
// knowing who listens. Handlers (for example the Prometheus recorder in
// internal/platform/metrics) register with the emitter at startup.
package events
