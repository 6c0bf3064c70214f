package config

import (
	"strings"

	"github.com/marmos91/pasdb/internal/bytesize"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields. Zero values are replaced with defaults; explicit values are
// preserved.
func ApplyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = "/var/lib/pasdb"
	}
	if cfg.ImageName == "" {
		cfg.ImageName = "heap.pas"
	}

	applyAllocatorDefaults(&cfg.Allocator)
	applyLoggingDefaults(&cfg.Logging)
	applyMetricsDefaults(&cfg.Metrics)
}

func applyAllocatorDefaults(cfg *AllocatorConfig) {
	if cfg.InitialDataAreaSize == 0 {
		cfg.InitialDataAreaSize = bytesize.ByteSize(1 << 20) // 1 MiB
	}
	if cfg.InitialTableCapacity == 0 {
		cfg.InitialTableCapacity = 16
	}
	if cfg.GrowthFactor == 0 {
		cfg.GrowthFactor = 2.0
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// GetDefaultConfig returns a Config with all default values applied. Useful
// for generating sample configuration files and as the fallback when no
// config file is found.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
