package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
proxy:
  listen_address: ":4444"
pools:
  - host: pool-a.example.com
    port: 3333
  - host: pool-b.example.com
    port: 14444
health:
  interval: 10s
telemetry:
  logging:
    level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Proxy.ListenAddress != ":4444" {
		t.Errorf("ListenAddress = %q, want :4444", cfg.Proxy.ListenAddress)
	}
	if len(cfg.Pools) != 2 {
		t.Fatalf("got %d pools, want 2", len(cfg.Pools))
	}
	if cfg.Pools[0].Host != "pool-a.example.com" || cfg.Pools[1].Port != 14444 {
		t.Errorf("pool order not preserved: %+v", cfg.Pools)
	}
	if cfg.Health.Interval != 10*time.Second {
		t.Errorf("Health.Interval = %v, want 10s", cfg.Health.Interval)
	}

	// Unset fields pick up defaults.
	if cfg.Health.Timeout != DefaultHealthTimeout {
		t.Errorf("Health.Timeout = %v, want default %v", cfg.Health.Timeout, DefaultHealthTimeout)
	}
	if cfg.Proxy.DialTimeout != DefaultDialTimeout {
		t.Errorf("Proxy.DialTimeout = %v, want default %v", cfg.Proxy.DialTimeout, DefaultDialTimeout)
	}
	if cfg.Telemetry.Metrics.ListenAddress != DefaultMetricsListenAddress {
		t.Errorf("Metrics.ListenAddress = %q, want default %q", cfg.Telemetry.Metrics.ListenAddress, DefaultMetricsListenAddress)
	}
	if !cfg.Telemetry.Metrics.MetricsEnabled() {
		t.Error("metrics should default to enabled")
	}
}

func TestLoadConfigEmptyPoolListIsValid(t *testing.T) {
	path := writeConfigFile(t, "proxy:\n  listen_address: \":3333\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Pools) != 0 {
		t.Errorf("got %d pools, want 0", len(cfg.Pools))
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() with missing file should fail")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "proxy: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() with malformed YAML should fail")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
proxy:
  listen_address: ":3333"
pools:
  - host: pool.example.com
    port: 3333
`)

	t.Setenv("VULCAN_PROXY_LISTEN_ADDRESS", ":5555")
	t.Setenv("VULCAN_HEALTH_INTERVAL", "45s")
	t.Setenv("VULCAN_TELEMETRY_METRICS_ENABLED", "false")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Proxy.ListenAddress != ":5555" {
		t.Errorf("ListenAddress = %q, want :5555", cfg.Proxy.ListenAddress)
	}
	if cfg.Health.Interval != 45*time.Second {
		t.Errorf("Health.Interval = %v, want 45s", cfg.Health.Interval)
	}
	if cfg.Telemetry.Metrics.MetricsEnabled() {
		t.Error("metrics should be disabled by env override")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "bad listen address",
			mutate: func(c *Config) { c.Proxy.ListenAddress = "no-port" },
			field:  "proxy.listen_address",
		},
		{
			name:   "pool missing host",
			mutate: func(c *Config) { c.Pools = []PoolConfig{{Port: 3333}} },
			field:  "pools[0].host",
		},
		{
			name:   "pool port out of range",
			mutate: func(c *Config) { c.Pools = []PoolConfig{{Host: "a", Port: 70000}} },
			field:  "pools[0].port",
		},
		{
			name:   "negative health interval",
			mutate: func(c *Config) { c.Health.Interval = -time.Second },
			field:  "health.interval",
		},
		{
			name:   "probe timeout exceeds interval",
			mutate: func(c *Config) { c.Health.Timeout = time.Minute; c.Health.Interval = time.Second },
			field:  "health.timeout",
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Telemetry.Logging.Level = "loud" },
			field:  "telemetry.logging.level",
		},
		{
			name:   "unknown log format",
			mutate: func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			field:  "telemetry.logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			verr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("Validate() returned %T, want ValidationError", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.field, verr.Errors)
			}
		})
	}
}

func TestValidateDefaultsPass(t *testing.T) {
	cfg := &Config{Pools: []PoolConfig{{Host: "pool.example.com", Port: 3333}}}
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() on defaults = %v, want nil", err)
	}
}
