package cache

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/tiercache/tiercache/pkg/errors"
	"github.com/tiercache/tiercache/pkg/types"
)

// Hierarchy is an ordered chain of cache tiers. Index 0 is the nearest,
// fastest tier; the last tier sits in front of the backing store. The
// hierarchy owns its tiers outright and serializes every operation under
// one mutex, so a lookup's promotion writes are never interleaved with a
// concurrent AddTier or RemoveTier.
//
// Victims evicted from a tier are demoted into the next farther tier
// (cascading as needed); victims of the farthest tier are dropped. Writes
// go to the nearest tier only, so farther tiers may hold stale copies
// until they are naturally evicted or refreshed by a later promotion.
type Hierarchy[K comparable, V any] struct {
	mu       sync.Mutex
	tiers    []*Tier[K, V]
	hits     []uint64 // per-tier hit counts, parallel to tiers
	misses   uint64
	backing  types.BackingStore[K, V]
	recorder types.StatsRecorder
	logger   *slog.Logger
}

// Option configures a Hierarchy at construction time.
type Option[K comparable, V any] func(*Hierarchy[K, V])

// WithRecorder installs a stats recorder that receives hit, miss,
// promotion, and eviction events from the hierarchy's hot paths.
func WithRecorder[K comparable, V any](recorder types.StatsRecorder) Option[K, V] {
	return func(h *Hierarchy[K, V]) {
		h.recorder = recorder
	}
}

// WithLogger replaces the default component logger.
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(h *Hierarchy[K, V]) {
		h.logger = logger
	}
}

// New creates a hierarchy with no tiers in front of the given backing
// store. A nil backing store is replaced by one that returns zero values.
func New[K comparable, V any](backing types.BackingStore[K, V], opts ...Option[K, V]) *Hierarchy[K, V] {
	if backing == nil {
		backing = types.BackingStoreFunc[K, V](func(K) V {
			var zero V
			return zero
		})
	}

	h := &Hierarchy[K, V]{
		backing: backing,
		logger:  slog.Default().With("component", "hierarchy"),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// AddTier appends a new, empty tier to the end of the chain. It fails
// with a configuration error for a non-positive capacity or an unknown
// policy name, leaving the hierarchy unchanged.
func (h *Hierarchy[K, V]) AddTier(capacity int, policyName string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	tier, err := NewTier[K, V](capacity, policyName)
	if err != nil {
		return err
	}

	h.tiers = append(h.tiers, tier)
	h.hits = append(h.hits, 0)

	label := tierLabel(len(h.tiers) - 1)
	if h.recorder != nil {
		h.recorder.UpdateResidents(label, 0)
	}
	h.logger.Debug("tier added", "tier", label, "capacity", capacity, "policy", policyName)
	return nil
}

// RemoveTier removes the tier at the 1-based position index. Subsequent
// tiers shift down by one. Out-of-range indices fail with a TIER_INDEX
// error and leave the hierarchy unchanged.
func (h *Hierarchy[K, V]) RemoveTier(index int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 1 || index > len(h.tiers) {
		return errors.NewError(errors.ErrCodeTierIndex, "tier index out of range").
			WithComponent("hierarchy").
			WithOperation("RemoveTier").
			WithDetail("index", index).
			WithDetail("tier_count", len(h.tiers))
	}

	i := index - 1
	h.tiers = append(h.tiers[:i], h.tiers[i+1:]...)
	h.hits = append(h.hits[:i], h.hits[i+1:]...)

	h.updateResidentGauges()
	h.logger.Debug("tier removed", "index", index)
	return nil
}

// Get looks the key up tier by tier, nearest first. A hit at tier i
// refreshes the access there and copies the value into every nearer
// tier. A full miss fetches the value from the backing store and
// installs it into the nearest tier.
func (h *Hierarchy[K, V]) Get(key K) (V, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, tier := range h.tiers {
		if !tier.Contains(key) {
			continue
		}

		value := tier.Get(key)
		h.hits[i]++
		if h.recorder != nil {
			h.recorder.RecordHit(tierLabel(i))
		}

		// Touch the hit tier, then promote into every strictly
		// nearer tier.
		for j := i; j >= 0; j-- {
			eviction, err := h.tiers[j].Promote(key, value)
			if err != nil {
				var zero V
				return zero, err
			}
			if j < i && h.recorder != nil {
				h.recorder.RecordPromotion(tierLabel(j))
			}
			if err := h.demote(j, eviction); err != nil {
				var zero V
				return zero, err
			}
		}
		h.updateResidentGauges()
		return value, nil
	}

	// Full miss: consult the backing store. The fetch runs under the
	// hierarchy lock; backing stores are assumed fast for simulation
	// purposes and must absorb their own failures.
	h.misses++
	if h.recorder != nil {
		h.recorder.RecordMiss()
	}

	value := h.backing.Fetch(key)
	if err := h.putNearest(key, value); err != nil {
		var zero V
		return zero, err
	}
	return value, nil
}

// Put writes the key into the nearest tier only. Copies of the key in
// farther tiers are left as they are: they may go stale until naturally
// evicted or refreshed by a later promotion. That write-through-nearest
// behavior is deliberate.
func (h *Hierarchy[K, V]) Put(key K, value V) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.putNearest(key, value)
}

// TierCount returns the number of tiers in the chain.
func (h *Hierarchy[K, V]) TierCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tiers)
}

// Display enumerates each tier's label, policy, and contents for
// presentation collaborators. Entry order within a tier is unspecified.
func (h *Hierarchy[K, V]) Display() []types.TierSnapshot[K, V] {
	h.mu.Lock()
	defer h.mu.Unlock()

	snapshots := make([]types.TierSnapshot[K, V], 0, len(h.tiers))
	for i, tier := range h.tiers {
		snapshots = append(snapshots, types.TierSnapshot[K, V]{
			Label:   tierLabel(i),
			Policy:  tier.PolicyName(),
			Entries: tier.Snapshot(),
		})
	}
	return snapshots
}

// Stats reports per-tier statistics. A tier's hit rate is its share of
// all lookups the hierarchy has served; its miss count is the number of
// lookups that probed the tier without being satisfied there.
func (h *Hierarchy[K, V]) Stats() []types.TierStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	lookups := h.misses
	for _, hits := range h.hits {
		lookups += hits
	}

	stats := make([]types.TierStats, 0, len(h.tiers))
	probes := lookups
	for i, tier := range h.tiers {
		s := types.TierStats{
			Hits:      h.hits[i],
			Misses:    probes - h.hits[i],
			Evictions: tier.Evictions(),
			Entries:   tier.Len(),
			Capacity:  tier.Capacity(),
		}
		if lookups > 0 {
			s.HitRate = float64(h.hits[i]) / float64(lookups)
		}
		stats = append(stats, s)
		probes = s.Misses
	}
	return stats
}

// Misses returns the number of lookups that missed every tier.
func (h *Hierarchy[K, V]) Misses() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.misses
}

// Internal helpers, called with h.mu held.

// putNearest installs key→value into tier 0. Both the public Put and the
// Get miss path delegate here so neither re-acquires the hierarchy lock.
// With no tiers configured the write is dropped.
func (h *Hierarchy[K, V]) putNearest(key K, value V) error {
	if len(h.tiers) == 0 {
		return nil
	}

	eviction, err := h.tiers[0].Put(key, value)
	if err != nil {
		return err
	}
	if err := h.demote(0, eviction); err != nil {
		return err
	}
	if h.recorder != nil {
		h.recorder.UpdateResidents(tierLabel(0), h.tiers[0].Len())
	}
	return nil
}

// demote moves a victim evicted from the tier at position i into the
// next farther tier, cascading until an insert fits without eviction or
// the farthest tier drops its victim.
func (h *Hierarchy[K, V]) demote(i int, eviction Eviction[K, V]) error {
	for eviction.Happened {
		if h.recorder != nil {
			h.recorder.RecordEviction(tierLabel(i))
		}
		h.logger.Debug("evicted", "tier", tierLabel(i), "key", eviction.Key)

		i++
		if i >= len(h.tiers) {
			return nil
		}

		next, err := h.tiers[i].Put(eviction.Key, eviction.Value)
		if err != nil {
			return err
		}
		eviction = next
	}
	return nil
}

func (h *Hierarchy[K, V]) updateResidentGauges() {
	if h.recorder == nil {
		return
	}
	for i, tier := range h.tiers {
		h.recorder.UpdateResidents(tierLabel(i), tier.Len())
	}
}

// tierLabel renders the conventional L1, L2, ... label for a tier position.
func tierLabel(i int) string {
	return "L" + strconv.Itoa(i+1)
}
