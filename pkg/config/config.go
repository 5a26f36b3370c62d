package config

import "time"

// Config is the root configuration structure for the Vulcan relay.
type Config struct {
	// Proxy contains relay listener configuration.
	Proxy ProxyConfig `yaml:"proxy"`

	// Pools is the ordered list of upstream mining pools. Order is
	// significant: it is the failover priority.
	Pools []PoolConfig `yaml:"pools"`

	// Health contains health monitor configuration.
	Health HealthConfig `yaml:"health"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProxyConfig contains configuration for the relay's TCP listener.
type ProxyConfig struct {
	// ListenAddress is the address and port mining clients connect to.
	// Format: "host:port" or ":port".
	// Default: ":3333"
	ListenAddress string `yaml:"listen_address"`

	// DialTimeout bounds the outbound dial to a selected pool.
	// Default: 10s
	DialTimeout time.Duration `yaml:"dial_timeout"`

	// ReadBufferSize is the chunk size for socket reads on both
	// directions of a relay pair.
	// Default: 4096
	ReadBufferSize int `yaml:"read_buffer_size"`

	// ShutdownTimeout is the maximum duration to wait for the listener
	// and metrics server to stop on shutdown. In-flight relay pairs are
	// not force-closed; they end with the process.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// PoolConfig identifies one upstream pool endpoint.
type PoolConfig struct {
	// Host is the pool hostname or IP.
	Host string `yaml:"host"`

	// Port is the pool's Stratum port.
	Port int `yaml:"port"`
}

// HealthConfig contains configuration for the pool health monitor.
type HealthConfig struct {
	// Interval is how often every pool is probed.
	// Default: 30s
	Interval time.Duration `yaml:"interval"`

	// Timeout bounds each probe dial.
	// Default: 5s
	Timeout time.Duration `yaml:"timeout"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in logs.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics listener is started.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// ListenAddress is the address for the metrics HTTP server.
	// Default: ":3000"
	ListenAddress string `yaml:"listen_address"`
}

// MetricsEnabled resolves the tri-state Enabled flag, defaulting to true.
func (m *MetricsConfig) MetricsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}
