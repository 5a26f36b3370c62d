package config

import (
	"fmt"
	"net"
	"strings"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g. "proxy.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. It implements the error interface and provides access to
// all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a
// ValidationError if any rule fails. All validation errors are collected
// and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProxy(&cfg.Proxy)...)
	errs = append(errs, validatePools(cfg.Pools)...)
	errs = append(errs, validateHealth(&cfg.Health)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateProxy validates relay listener configuration.
func validateProxy(cfg *ProxyConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: "listen address is required",
		})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: fmt.Sprintf("invalid listen address: %v", err),
		})
	}

	if cfg.DialTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.dial_timeout",
			Message: "dial timeout must be positive",
		})
	}
	if cfg.ReadBufferSize <= 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.read_buffer_size",
			Message: "read buffer size must be positive",
		})
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.shutdown_timeout",
			Message: "shutdown timeout must be positive",
		})
	}

	return errs
}

// validatePools validates the upstream pool list. An empty list is legal:
// the relay starts, refuses clients, and reports through metrics.
func validatePools(pools []PoolConfig) []FieldError {
	var errs []FieldError

	for i, p := range pools {
		if p.Host == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("pools[%d].host", i),
				Message: "host is required",
			})
		}
		if p.Port < 1 || p.Port > 65535 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("pools[%d].port", i),
				Message: fmt.Sprintf("port must be between 1 and 65535, got %d", p.Port),
			})
		}
	}

	return errs
}

// validateHealth validates health monitor configuration.
func validateHealth(cfg *HealthConfig) []FieldError {
	var errs []FieldError

	if cfg.Interval <= 0 {
		errs = append(errs, FieldError{
			Field:   "health.interval",
			Message: "probe interval must be positive",
		})
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "health.timeout",
			Message: "probe timeout must be positive",
		})
	}
	if cfg.Timeout > 0 && cfg.Interval > 0 && cfg.Timeout > cfg.Interval {
		errs = append(errs, FieldError{
			Field:   "health.timeout",
			Message: "probe timeout must not exceed the probe interval",
		})
	}

	return errs
}

// validateTelemetry validates logging and metrics configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("level must be one of debug, info, warn, error; got %q", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("format must be json or text; got %q", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.MetricsEnabled() {
		if cfg.Metrics.ListenAddress == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: "listen address is required when metrics are enabled",
			})
		} else if _, _, err := net.SplitHostPort(cfg.Metrics.ListenAddress); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: fmt.Sprintf("invalid listen address: %v", err),
			})
		}
	}

	return errs
}
