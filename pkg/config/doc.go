// Package config provides configuration management for the Vulcan relay.
//
// This package handles loading, validating, and managing configuration
// from YAML files with environment variable overrides. Configuration is
// read once at startup; the relay has no runtime reconfiguration.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention VULCAN_SECTION_FIELD.
// For example:
//
//   - VULCAN_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - VULCAN_HEALTH_INTERVAL overrides health.interval
//   - VULCAN_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based
// configuration. The pool list itself is file-only: it is ordered, and
// order is the failover priority.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides
// earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	proxy:
//	  listen_address: ":3333"
//	pools:
//	  - host: pool-a.example.com
//	    port: 3333
//	  - host: pool-b.example.com
//	    port: 3333
//	health:
//	  interval: 30s
//	  timeout: 5s
//	telemetry:
//	  logging:
//	    level: info
//	  metrics:
//	    listen_address: ":3000"
package config
