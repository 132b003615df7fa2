// Package metrics exposes Prometheus metrics for the task API: HTTP request
// counters and latencies, live task counts read from the store at scrape
// time, and counters of task lifecycle events.
package metrics
