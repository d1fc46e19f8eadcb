package cache

import (
	"container/list"

	"github.com/tiercache/tiercache/pkg/errors"
)

// LRU implements least-recently-used eviction. It keeps a recency-ordered
// list of keys (most recent at the front) plus a direct index from key to
// list element, giving O(1) Touch, Admit, and SelectVictim.
type LRU[K comparable] struct {
	order *list.List // most recent at the front
	index map[K]*list.Element
}

// NewLRU creates an empty LRU policy.
func NewLRU[K comparable]() *LRU[K] {
	return &LRU[K]{
		order: list.New(),
		index: make(map[K]*list.Element),
	}
}

// Touch moves a tracked key to the most-recent end. Untracked keys are ignored.
func (p *LRU[K]) Touch(key K) {
	if element, ok := p.index[key]; ok {
		p.order.MoveToFront(element)
	}
}

// Admit registers a key as most recent. Re-admitting a tracked key resets
// its position as if newly admitted.
func (p *LRU[K]) Admit(key K) {
	if element, ok := p.index[key]; ok {
		p.order.Remove(element)
	}
	p.index[key] = p.order.PushFront(key)
}

// SelectVictim removes and returns the least recently used key.
func (p *LRU[K]) SelectVictim() (K, error) {
	element := p.order.Back()
	if element == nil {
		var zero K
		return zero, errors.NewError(errors.ErrCodeEmptyPolicy, "no tracked keys to evict").
			WithComponent("cache").
			WithOperation("SelectVictim").
			WithDetail("policy", PolicyLRU)
	}

	key := element.Value.(K)
	p.order.Remove(element)
	delete(p.index, key)
	return key, nil
}

// Contains reports whether a key is tracked.
func (p *LRU[K]) Contains(key K) bool {
	_, ok := p.index[key]
	return ok
}

// Len returns the number of tracked keys.
func (p *LRU[K]) Len() int {
	return len(p.index)
}
