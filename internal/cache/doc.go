/*
Package cache implements the TierCache core: eviction policies, bounded
cache tiers, and the multi-level hierarchy that routes lookups across them.

# Architecture

An ordered chain of tiers serves lookups front to back, promoting hot data
toward the nearest tier and falling back to a backing store on a full miss:

	┌─────────────────────────────────────────────┐
	│              Application                    │
	└─────────────────────────────────────────────┘
	                      │
	┌─────────────────────────────────────────────┐
	│              Hierarchy                      │  ← This Package
	│  ┌─────────────────────────────────────┐    │
	│  │   L1 Tier   (nearest, fastest)      │    │
	│  │   capacity N, LRU or LFU policy     │    │
	│  └─────────────────────────────────────┘    │
	│                      │                      │
	│  ┌─────────────────────────────────────┐    │
	│  │   L2 Tier ... Ln Tier               │    │
	│  └─────────────────────────────────────┘    │
	└─────────────────────────────────────────────┘
	                      │
	┌─────────────────────────────────────────────┐
	│            Backing Store                    │
	│   (consulted only on a full miss)           │
	└─────────────────────────────────────────────┘

# Eviction Policies

Two strategies are supported, selected by name at tier construction:

  - LRU: recency-ordered list plus a key index; O(1) touch, admit, and
    victim selection. The victim is the least recently used key.
  - LFU: per-key frequency counter plus a monotonic admission tick.
    The victim is the key with the lowest frequency; ties favor the key
    that has been resident longest (oldest admission, never last access).

# Concurrency

One mutex guards the whole hierarchy. Every public operation acquires it
once; the Get miss path and the public Put share an internal lock-held
helper so no code path ever re-enters the lock.

# Consistency

A tier's policy tracks exactly the keys resident in its data store.
Writes go to the nearest tier only; farther tiers may hold stale copies
until they are naturally evicted or overwritten by a later promotion.
*/
package cache
