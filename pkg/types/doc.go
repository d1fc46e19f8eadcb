// Package types defines the shared data types and interfaces used across
// TierCache components: tier snapshots and statistics, the backing store
// contract consulted on a full-hierarchy miss, and the stats recorder hook
// the hierarchy reports into.
package types
