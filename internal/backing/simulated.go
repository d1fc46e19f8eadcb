package backing

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// MainMemoryValue is the value the reference main-memory simulator
// synthesizes for every key.
const MainMemoryValue = "Data_from_main_memory"

// SimulatedConfig tunes the simulated store.
type SimulatedConfig struct {
	// Latency is a fixed delay applied to every fetch.
	Latency time.Duration `yaml:"latency"`

	// FetchesPerSecond caps fetch throughput, modeling memory bandwidth.
	// Zero means unlimited.
	FetchesPerSecond float64 `yaml:"fetches_per_second"`
}

// SimulatedStore synthesizes values locally, standing in for main memory
// behind the cache hierarchy. It never fails and is safe for concurrent
// use.
type SimulatedStore[K comparable, V any] struct {
	synthesize func(K) V
	latency    time.Duration
	limiter    *rate.Limiter
	fetches    atomic.Uint64
}

// NewSimulatedStore creates a store that produces values with the given
// synthesis function. A nil config disables latency and rate limiting.
func NewSimulatedStore[K comparable, V any](synthesize func(K) V, config *SimulatedConfig) *SimulatedStore[K, V] {
	store := &SimulatedStore[K, V]{synthesize: synthesize}

	if config != nil {
		store.latency = config.Latency
		if config.FetchesPerSecond > 0 {
			store.limiter = rate.NewLimiter(rate.Limit(config.FetchesPerSecond), 1)
		}
	}

	return store
}

// NewMainMemory creates the reference main-memory simulator: every fetch
// returns MainMemoryValue.
func NewMainMemory[K comparable](config *SimulatedConfig) *SimulatedStore[K, string] {
	return NewSimulatedStore(func(K) string { return MainMemoryValue }, config)
}

// Fetch synthesizes the value for a key, applying the configured latency
// and rate limit first.
func (s *SimulatedStore[K, V]) Fetch(key K) V {
	if s.limiter != nil {
		_ = s.limiter.Wait(context.Background())
	}
	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	s.fetches.Add(1)
	return s.synthesize(key)
}

// Fetches returns the number of fetches served so far.
func (s *SimulatedStore[K, V]) Fetches() uint64 {
	return s.fetches.Load()
}
