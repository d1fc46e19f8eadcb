package cache

import (
	"strings"

	"github.com/tiercache/tiercache/pkg/errors"
)

// Recognized eviction policy names.
const (
	PolicyLRU = "LRU"
	PolicyLFU = "LFU"
)

// EvictionPolicy tracks the set of keys resident in one tier plus whatever
// metadata its strategy needs to choose a victim. The policy's tracked
// key-set must equal the tier's data key-set at every quiescent point.
type EvictionPolicy[K comparable] interface {
	// Touch records an access to a key. It is a no-op for untracked keys;
	// callers only touch keys already confirmed resident.
	Touch(key K)

	// Admit registers a key with fresh metadata. Admitting an already
	// tracked key resets its metadata as if newly admitted.
	Admit(key K)

	// SelectVictim removes and returns one tracked key for eviction.
	// It fails only when no keys are tracked, which indicates a broken
	// residency invariant and is unreachable from the public contract.
	SelectVictim() (K, error)

	// Contains reports whether a key is tracked.
	Contains(key K) bool

	// Len returns the number of tracked keys.
	Len() int
}

// NewPolicy creates an eviction policy by name. Names are matched
// case-insensitively; unknown names yield an INVALID_POLICY error.
func NewPolicy[K comparable](name string) (EvictionPolicy[K], error) {
	switch strings.ToUpper(name) {
	case PolicyLRU:
		return NewLRU[K](), nil
	case PolicyLFU:
		return NewLFU[K](), nil
	default:
		return nil, errors.NewError(errors.ErrCodeInvalidPolicy, "unknown eviction policy").
			WithComponent("cache").
			WithOperation("NewPolicy").
			WithDetail("policy", name)
	}
}

// KnownPolicy reports whether name selects a supported eviction policy.
func KnownPolicy(name string) bool {
	switch strings.ToUpper(name) {
	case PolicyLRU, PolicyLFU:
		return true
	default:
		return false
	}
}
