package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamishcoleman/cli-bcachectl/internal/bcache"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MinLen)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Color)
	assert.Equal(t, bcache.DefaultFSRoot, cfg.Sysfs.BcacheRoot)
	assert.Equal(t, bcache.DefaultBlockRoot, cfg.Sysfs.BlockRoot)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `minlen: 6
log_level: debug
color: false
sysfs:
  bcache_root: /tmp/fs
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.MinLen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Color)
	assert.Equal(t, "/tmp/fs", cfg.Sysfs.BcacheRoot)
	// Unset keys keep their defaults.
	assert.Equal(t, bcache.DefaultBlockRoot, cfg.Sysfs.BlockRoot)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			MinLen:   4,
			LogLevel: "info",
			Sysfs: SysfsConfig{
				BcacheRoot: bcache.DefaultFSRoot,
				BlockRoot:  bcache.DefaultBlockRoot,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "minlen too small",
			mutate:  func(c *Config) { c.MinLen = 0 },
			wantErr: true,
		},
		{
			name:    "empty bcache root",
			mutate:  func(c *Config) { c.Sysfs.BcacheRoot = "" },
			wantErr: true,
		},
		{
			name:    "empty block root",
			mutate:  func(c *Config) { c.Sysfs.BlockRoot = "" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "noisy" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
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
