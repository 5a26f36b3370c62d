package config

import "time"

// Default values for configuration fields.
const (
	// Proxy defaults
	DefaultListenAddress   = ":3333"
	DefaultDialTimeout     = 10 * time.Second
	DefaultReadBufferSize  = 4096
	DefaultShutdownTimeout = 30 * time.Second

	// Health defaults
	DefaultHealthInterval = 30 * time.Second
	DefaultHealthTimeout  = 5 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultMetricsListenAddress = ":3000"
)

// ApplyDefaults fills in default values for any zero-valued fields.
// Called by LoadConfig after parsing and before validation.
func ApplyDefaults(cfg *Config) {
	if cfg.Proxy.ListenAddress == "" {
		cfg.Proxy.ListenAddress = DefaultListenAddress
	}
	if cfg.Proxy.DialTimeout == 0 {
		cfg.Proxy.DialTimeout = DefaultDialTimeout
	}
	if cfg.Proxy.ReadBufferSize == 0 {
		cfg.Proxy.ReadBufferSize = DefaultReadBufferSize
	}
	if cfg.Proxy.ShutdownTimeout == 0 {
		cfg.Proxy.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Health.Interval == 0 {
		cfg.Health.Interval = DefaultHealthInterval
	}
	if cfg.Health.Timeout == 0 {
		cfg.Health.Timeout = DefaultHealthTimeout
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
}
