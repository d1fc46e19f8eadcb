package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tcerrors "github.com/tiercache/tiercache/pkg/errors"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	require.Len(t, cfg.Tiers, 2)
	assert.Equal(t, 3, cfg.Tiers[0].Capacity)
	assert.Equal(t, "LRU", cfg.Tiers[0].Policy)
	assert.Equal(t, 2, cfg.Tiers[1].Capacity)
	assert.Equal(t, "LFU", cfg.Tiers[1].Policy)
	assert.Equal(t, BackingSimulated, cfg.Backing.Mode)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiercache.yaml")

	content := `
tiers:
  - capacity: 10
    policy: LRU
  - capacity: 100
    policy: LFU
backing:
  mode: simulated
  latency: 5ms
metrics:
  enabled: false
logging:
  level: DEBUG
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg := NewDefault()
	require.NoError(t, cfg.LoadFromFile(path))

	require.Len(t, cfg.Tiers, 2)
	assert.Equal(t, 10, cfg.Tiers[0].Capacity)
	assert.Equal(t, 100, cfg.Tiers[1].Capacity)
	assert.Equal(t, "LFU", cfg.Tiers[1].Policy)
	assert.Equal(t, 5*time.Millisecond, cfg.Backing.Latency)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg := NewDefault()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)

	var tcErr *tcerrors.TierCacheError
	require.ErrorAs(t, err, &tcErr)
	assert.Equal(t, tcerrors.ErrCodeConfigLoad, tcErr.Code)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TIERCACHE_LOG_LEVEL", "ERROR")
	t.Setenv("TIERCACHE_METRICS_PORT", "9191")
	t.Setenv("TIERCACHE_METRICS_ENABLED", "false")
	t.Setenv("TIERCACHE_BACKING_MODE", "s3")
	t.Setenv("TIERCACHE_S3_BUCKET", "tiercache-data")
	t.Setenv("TIERCACHE_BACKING_LATENCY", "20ms")

	cfg := NewDefault()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "ERROR", cfg.Logging.Level)
	assert.Equal(t, 9191, cfg.Metrics.Port)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, BackingS3, cfg.Backing.Mode)
	assert.Equal(t, "tiercache-data", cfg.Backing.S3.Bucket)
	assert.Equal(t, 20*time.Millisecond, cfg.Backing.Latency)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "tiercache.yaml")

	cfg := NewDefault()
	cfg.Tiers = []TierConfig{{Capacity: 7, Policy: "LFU"}}
	require.NoError(t, cfg.SaveToFile(path))

	loaded := NewDefault()
	require.NoError(t, loaded.LoadFromFile(path))
	require.Len(t, loaded.Tiers, 1)
	assert.Equal(t, 7, loaded.Tiers[0].Capacity)
	assert.Equal(t, "LFU", loaded.Tiers[0].Policy)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Configuration) {},
			wantErr: false,
		},
		{
			name: "zero capacity",
			mutate: func(c *Configuration) {
				c.Tiers[0].Capacity = 0
			},
			wantErr: true,
		},
		{
			name: "negative capacity",
			mutate: func(c *Configuration) {
				c.Tiers[1].Capacity = -5
			},
			wantErr: true,
		},
		{
			name: "unknown policy",
			mutate: func(c *Configuration) {
				c.Tiers[0].Policy = "FIFO"
			},
			wantErr: true,
		},
		{
			name: "lowercase policy accepted",
			mutate: func(c *Configuration) {
				c.Tiers[0].Policy = "lru"
			},
			wantErr: false,
		},
		{
			name: "unknown backing mode",
			mutate: func(c *Configuration) {
				c.Backing.Mode = "tape"
			},
			wantErr: true,
		},
		{
			name: "s3 without bucket",
			mutate: func(c *Configuration) {
				c.Backing.Mode = BackingS3
				c.Backing.S3.Bucket = ""
			},
			wantErr: true,
		},
		{
			name: "s3 with bucket",
			mutate: func(c *Configuration) {
				c.Backing.Mode = BackingS3
				c.Backing.S3.Bucket = "tiercache-data"
			},
			wantErr: false,
		},
		{
			name: "metrics port out of range",
			mutate: func(c *Configuration) {
				c.Metrics.Port = 70000
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			mutate: func(c *Configuration) {
				c.Logging.Level = "LOUD"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
