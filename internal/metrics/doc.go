// Package metrics exposes cache hierarchy statistics as Prometheus
// metrics: per-tier hit, promotion, and eviction counters, a miss
// counter, and a resident-entries gauge, served from an HTTP endpoint
// with a health check. The Collector plugs into the hierarchy through
// the types.StatsRecorder interface.
package metrics
