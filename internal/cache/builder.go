package cache

import (
	"github.com/tiercache/tiercache/internal/config"
	"github.com/tiercache/tiercache/pkg/types"
)

// NewFromConfig builds a hierarchy from a validated configuration,
// appending one tier per configured entry in order (first entry = L1).
func NewFromConfig[K comparable, V any](cfg *config.Configuration, backing types.BackingStore[K, V], opts ...Option[K, V]) (*Hierarchy[K, V], error) {
	h := New(backing, opts...)
	for _, tc := range cfg.Tiers {
		if err := h.AddTier(tc.Capacity, tc.Policy); err != nil {
			return nil, err
		}
	}
	return h, nil
}
