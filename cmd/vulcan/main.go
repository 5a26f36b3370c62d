// Vulcan is a transparent Stratum relay for mining fleets.
//
// It accepts TCP connections from miners, validates every Stratum frame
// crossing it, and relays traffic byte-for-byte to the highest-priority
// healthy upstream pool:
//   - Line-delimited JSON-RPC frame validation in both directions
//   - Priority-ordered pool failover with periodic health probes
//   - Per-direction frame counters and pool gauges over Prometheus
//
// Usage:
//
//	# Start the relay with default configuration
//	vulcan run
//
//	# Start with custom configuration file
//	vulcan run --config /path/to/config.yaml
//
//	# Show version information
//	vulcan version
//
//	# Validate a configuration file
//	vulcan validate --config /path/to/config.yaml
//
//	# Query a running relay's status endpoint
//	vulcan status
package main

func main() {
	Execute()
}
