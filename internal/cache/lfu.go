package cache

import (
	"github.com/tiercache/tiercache/pkg/errors"
)

// LFU implements least-frequently-used eviction. Each tracked key carries
// an access frequency and the monotonic tick at which it was admitted.
// Frequency ties are broken by the oldest admission tick, so ties favor
// evicting the entry that has been resident longest, never the one least
// recently touched.
type LFU[K comparable] struct {
	freq     map[K]uint64
	admitted map[K]uint64
	tick     uint64
}

// NewLFU creates an empty LFU policy.
func NewLFU[K comparable]() *LFU[K] {
	return &LFU[K]{
		freq:     make(map[K]uint64),
		admitted: make(map[K]uint64),
	}
}

// Touch increments a tracked key's frequency. The admission tick is not
// refreshed. Untracked keys are ignored.
func (p *LFU[K]) Touch(key K) {
	if _, ok := p.freq[key]; ok {
		p.freq[key]++
	}
}

// Admit registers a key with frequency 1 at the current tick. Re-admitting
// a tracked key resets both its frequency and its admission tick.
func (p *LFU[K]) Admit(key K) {
	p.freq[key] = 1
	p.admitted[key] = p.tick
	p.tick++
}

// SelectVictim removes and returns the key with the lowest frequency,
// breaking ties by the smallest admission tick. The scan is linear in the
// number of tracked keys, which is bounded by the tier capacity.
func (p *LFU[K]) SelectVictim() (K, error) {
	if len(p.freq) == 0 {
		var zero K
		return zero, errors.NewError(errors.ErrCodeEmptyPolicy, "no tracked keys to evict").
			WithComponent("cache").
			WithOperation("SelectVictim").
			WithDetail("policy", PolicyLFU)
	}

	var victim K
	first := true
	var minFreq, oldestTick uint64

	for key, frequency := range p.freq {
		tick := p.admitted[key]
		if first || frequency < minFreq || (frequency == minFreq && tick < oldestTick) {
			victim = key
			minFreq = frequency
			oldestTick = tick
			first = false
		}
	}

	delete(p.freq, victim)
	delete(p.admitted, victim)
	return victim, nil
}

// Contains reports whether a key is tracked.
func (p *LFU[K]) Contains(key K) bool {
	_, ok := p.freq[key]
	return ok
}

// Len returns the number of tracked keys.
func (p *LFU[K]) Len() int {
	return len(p.freq)
}
