// Package config loads and validates TierCache configuration from YAML
// files and TIERCACHE_* environment variables: the ordered tier layout
// (capacity and eviction policy per tier, nearest first), the backing
// store mode and tuning, and metrics/logging settings.
package config
