// Package config loads tool configuration from defaults, an optional file
// and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/hamishcoleman/cli-bcachectl/internal/bcache"
)

// Config holds all configuration for the tool
type Config struct {
	// MinLen is the floor for shortened identifier labels.
	MinLen   int         `mapstructure:"minlen"`
	LogLevel string      `mapstructure:"log_level"`
	Color    bool        `mapstructure:"color"`
	Sysfs    SysfsConfig `mapstructure:"sysfs"`
}

// SysfsConfig holds the sysfs locations to scan
type SysfsConfig struct {
	BcacheRoot string `mapstructure:"bcache_root"`
	BlockRoot  string `mapstructure:"block_root"`
}

// Load loads configuration from file and environment variables. Environment
// variables use the BCACHECTL_ prefix, e.g. BCACHECTL_MINLEN.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("BCACHECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("minlen", 4)
	v.SetDefault("log_level", "warn")
	v.SetDefault("color", true)
	v.SetDefault("sysfs.bcache_root", bcache.DefaultFSRoot)
	v.SetDefault("sysfs.block_root", bcache.DefaultBlockRoot)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MinLen < 1 {
		return fmt.Errorf("minlen must be at least 1, got %d", c.MinLen)
	}
	if c.Sysfs.BcacheRoot == "" {
		return fmt.Errorf("sysfs.bcache_root cannot be empty")
	}
	if c.Sysfs.BlockRoot == "" {
		return fmt.Errorf("sysfs.block_root cannot be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}
