package cache

import (
	"github.com/tiercache/tiercache/pkg/errors"
	"github.com/tiercache/tiercache/pkg/types"
)

// Tier is one level of the cache hierarchy: a bounded key/value store
// coupled to an eviction policy. The policy's tracked key-set always
// equals the data key-set, and the resident count never exceeds the
// capacity.
//
// Tier is not safe for concurrent use on its own; the owning Hierarchy
// serializes access.
type Tier[K comparable, V any] struct {
	capacity   int
	data       map[K]V
	policy     EvictionPolicy[K]
	policyName string
	evictions  uint64
}

// Eviction reports a victim removed from a tier to make room, carrying
// its value so the owner can demote it to a farther tier.
type Eviction[K comparable, V any] struct {
	Key      K
	Value    V
	Happened bool
}

// NewTier creates an empty tier with the given capacity and a policy
// selected by name.
func NewTier[K comparable, V any](capacity int, policyName string) (*Tier[K, V], error) {
	if capacity <= 0 {
		return nil, errors.NewError(errors.ErrCodeInvalidCapacity, "tier capacity must be positive").
			WithComponent("cache").
			WithOperation("NewTier").
			WithDetail("capacity", capacity)
	}

	policy, err := NewPolicy[K](policyName)
	if err != nil {
		return nil, err
	}

	return &Tier[K, V]{
		capacity:   capacity,
		data:       make(map[K]V, capacity),
		policy:     policy,
		policyName: policyName,
	}, nil
}

// Contains reports whether a key is resident. The policy's tracked set is
// the authoritative membership check.
func (t *Tier[K, V]) Contains(key K) bool {
	return t.policy.Contains(key)
}

// Get returns the stored value for a key already confirmed present.
// Absent keys yield the zero value; callers check Contains first.
func (t *Tier[K, V]) Get(key K) V {
	return t.data[key]
}

// Put writes key→value. If the tier is at capacity and the key is not
// already resident, one victim is evicted first and returned with its
// value. Every put registers the key with the policy as a fresh
// admission — including writes to a key that is already resident, which
// reset its eviction metadata.
func (t *Tier[K, V]) Put(key K, value V) (Eviction[K, V], error) {
	var eviction Eviction[K, V]

	if _, resident := t.data[key]; !resident && len(t.data) >= t.capacity {
		victim, err := t.policy.SelectVictim()
		if err != nil {
			// Only reachable when the policy lost track of resident keys.
			return eviction, err
		}
		eviction = Eviction[K, V]{Key: victim, Value: t.data[victim], Happened: true}
		delete(t.data, victim)
		t.evictions++
	}

	t.data[key] = value
	t.policy.Admit(key)
	return eviction, nil
}

// Promote ensures the key is resident with the given value, then records
// the access with the policy. Installing an absent key may evict a
// victim, reported exactly as for Put; promoting a resident key only
// touches it.
func (t *Tier[K, V]) Promote(key K, value V) (Eviction[K, V], error) {
	var eviction Eviction[K, V]

	if !t.policy.Contains(key) {
		var err error
		eviction, err = t.Put(key, value)
		if err != nil {
			return eviction, err
		}
	}
	t.policy.Touch(key)
	return eviction, nil
}

// Snapshot enumerates the tier's contents in the container's natural
// (unspecified) order. Diagnostics only.
func (t *Tier[K, V]) Snapshot() []types.Entry[K, V] {
	entries := make([]types.Entry[K, V], 0, len(t.data))
	for key, value := range t.data {
		entries = append(entries, types.Entry[K, V]{Key: key, Value: value})
	}
	return entries
}

// Len returns the number of resident keys.
func (t *Tier[K, V]) Len() int {
	return len(t.data)
}

// Capacity returns the maximum number of resident keys.
func (t *Tier[K, V]) Capacity() int {
	return t.capacity
}

// PolicyName returns the name the tier's policy was selected by.
func (t *Tier[K, V]) PolicyName() string {
	return t.policyName
}

// Evictions returns the number of victims removed from this tier.
func (t *Tier[K, V]) Evictions() uint64 {
	return t.evictions
}
