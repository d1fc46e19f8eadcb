package types

// BackingStore is the system of record behind the cache hierarchy. It is
// consulted only on a full-hierarchy miss and never fails from the
// hierarchy's point of view: implementations that can encounter transient
// errors (network stores) must absorb them internally and return a
// fallback value.
type BackingStore[K comparable, V any] interface {
	Fetch(key K) V
}

// BackingStoreFunc adapts a plain function to the BackingStore interface.
type BackingStoreFunc[K comparable, V any] func(key K) V

// Fetch calls the underlying function.
func (f BackingStoreFunc[K, V]) Fetch(key K) V {
	return f(key)
}

// StatsRecorder receives cache events from the hierarchy's hot paths.
// Implementations must be safe for concurrent use; all methods are
// called with the hierarchy lock held and must not block.
type StatsRecorder interface {
	// RecordHit records a lookup served by the tier with the given label.
	RecordHit(tierLabel string)
	// RecordMiss records a lookup that missed every tier.
	RecordMiss()
	// RecordPromotion records one copy of a value into a nearer tier.
	RecordPromotion(tierLabel string)
	// RecordEviction records a victim removed from the tier with the given label.
	RecordEviction(tierLabel string)
	// UpdateResidents reports the current resident entry count of a tier.
	UpdateResidents(tierLabel string, entries int)
}
