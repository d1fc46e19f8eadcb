package types

// Entry is a single key/value pair resident in a tier.
type Entry[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// TierSnapshot is a read-only enumeration of one tier's contents,
// produced for display collaborators. Entry order is the container's
// natural order and is not specified.
type TierSnapshot[K comparable, V any] struct {
	Label   string        `json:"label"`
	Policy  string        `json:"policy"`
	Entries []Entry[K, V] `json:"entries"`
}

// TierStats tracks per-tier cache statistics.
type TierStats struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	Entries   int     `json:"entries"`
	Capacity  int     `json:"capacity"`
	HitRate   float64 `json:"hit_rate"`
}

// Utilization returns the fraction of the tier's capacity in use.
func (s TierStats) Utilization() float64 {
	if s.Capacity <= 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Capacity)
}
