// Package telemetry provides observability for the Vulcan relay.
//
// # Components
//
//   - logging: structured logging setup on top of log/slog
//   - metrics: Prometheus metrics and the read-only pool status snapshot,
//     served on their own listener separate from the relay port
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	slog.SetDefault(logger)
//
//	collector := metrics.NewCollector(registry)
//	srv := metrics.NewServer(cfg.Telemetry.Metrics.ListenAddress, collector)
//
// The metrics surface is strictly read-only: it reports the snapshot the
// relay core already maintains and never influences pool selection or
// connection handling.
package telemetry
