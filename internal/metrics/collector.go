package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers cache hierarchy metrics and serves them over a
// Prometheus endpoint. It implements types.StatsRecorder; all Record*
// methods are cheap counter updates safe to call on hot paths.
type Collector struct {
	mu       sync.RWMutex
	config   *Config
	registry *prometheus.Registry

	// Prometheus metrics
	hitCounter       *prometheus.CounterVec
	missCounter      prometheus.Counter
	promotionCounter *prometheus.CounterVec
	evictionCounter  *prometheus.CounterVec
	residentsGauge   *prometheus.GaugeVec

	// Internal tracking
	totalHits   uint64
	totalMisses uint64
	lastReset   time.Time

	// HTTP server for metrics endpoint
	server *http.Server
}

// Config represents metrics configuration
type Config struct {
	Enabled   bool              `yaml:"enabled"`
	Port      int               `yaml:"port"`
	Path      string            `yaml:"path"`
	Labels    map[string]string `yaml:"labels"`
	Namespace string            `yaml:"namespace"`
}

// NewCollector creates a new metrics collector
func NewCollector(config *Config) (*Collector, error) {
	if config == nil {
		config = &Config{
			Enabled:   true,
			Port:      8080,
			Path:      "/metrics",
			Namespace: "tiercache",
			Labels:    make(map[string]string),
		}
	}

	if !config.Enabled {
		return &Collector{config: config}, nil
	}

	registry := prometheus.NewRegistry()

	collector := &Collector{
		config:    config,
		registry:  registry,
		lastReset: time.Now(),
	}

	if err := collector.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if err := collector.registerMetrics(); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return collector, nil
}

// Start starts the metrics endpoint server
func (c *Collector) Start(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(c.config.Path, promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/health", c.healthHandler)

	c.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", c.config.Port),
		Handler:           mux,
		ReadHeaderTimeout: 30 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Metrics server error: %v\n", err)
		}
	}()

	return nil
}

// Stop stops the metrics endpoint server
func (c *Collector) Stop(ctx context.Context) error {
	if c.server != nil {
		return c.server.Shutdown(ctx)
	}
	return nil
}

// RecordHit records a lookup served by the given tier
func (c *Collector) RecordHit(tierLabel string) {
	if !c.config.Enabled {
		return
	}

	c.mu.Lock()
	c.totalHits++
	c.mu.Unlock()

	c.hitCounter.With(prometheus.Labels{"tier": tierLabel}).Inc()
}

// RecordMiss records a lookup that missed every tier
func (c *Collector) RecordMiss() {
	if !c.config.Enabled {
		return
	}

	c.mu.Lock()
	c.totalMisses++
	c.mu.Unlock()

	c.missCounter.Inc()
}

// RecordPromotion records one copy of a hit value into a nearer tier
func (c *Collector) RecordPromotion(tierLabel string) {
	if !c.config.Enabled {
		return
	}

	c.promotionCounter.With(prometheus.Labels{"tier": tierLabel}).Inc()
}

// RecordEviction records a victim removed from the given tier
func (c *Collector) RecordEviction(tierLabel string) {
	if !c.config.Enabled {
		return
	}

	c.evictionCounter.With(prometheus.Labels{"tier": tierLabel}).Inc()
}

// UpdateResidents reports the current resident entry count of a tier
func (c *Collector) UpdateResidents(tierLabel string, entries int) {
	if !c.config.Enabled {
		return
	}

	c.residentsGauge.With(prometheus.Labels{"tier": tierLabel}).Set(float64(entries))
}

// HitRatio returns the overall hit ratio across all lookups seen so far
func (c *Collector) HitRatio() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.totalHits + c.totalMisses
	if total == 0 {
		return 0
	}
	return float64(c.totalHits) / float64(total)
}

// ResetCounters resets the internal hit/miss tracking
func (c *Collector) ResetCounters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalHits = 0
	c.totalMisses = 0
	c.lastReset = time.Now()
}

// Helper methods

func (c *Collector) initMetrics() error {
	c.hitCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Name:      "hits_total",
			Help:      "Total number of lookups served by each tier",
		},
		[]string{"tier"},
	)

	c.missCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Name:      "misses_total",
			Help:      "Total number of lookups that missed every tier",
		},
	)

	c.promotionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Name:      "promotions_total",
			Help:      "Total number of values copied into each tier on a hit",
		},
		[]string{"tier"},
	)

	c.evictionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Name:      "evictions_total",
			Help:      "Total number of victims evicted from each tier",
		},
		[]string{"tier"},
	)

	c.residentsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: c.config.Namespace,
			Name:      "resident_entries",
			Help:      "Current number of resident entries in each tier",
		},
		[]string{"tier"},
	)

	return nil
}

func (c *Collector) registerMetrics() error {
	metrics := []prometheus.Collector{
		c.hitCounter,
		c.missCounter,
		c.promotionCounter,
		c.evictionCounter,
		c.residentsGauge,
	}

	for _, metric := range metrics {
		if err := c.registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// HTTP handlers

func (c *Collector) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy","service":"tiercache-metrics"}`)) // Ignore write error for health check
}
