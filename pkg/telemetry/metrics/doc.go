// Package metrics exposes the relay's Prometheus metrics and the
// read-only pool status snapshot.
//
// # Metrics
//
//   - vulcan_relay_connections_accepted_total: client connections accepted
//   - vulcan_relay_connections_refused_total: connections refused because
//     no pool is configured
//   - vulcan_relay_frames_forwarded_total: validated frames forwarded,
//     labelled by direction ("client", "pool")
//   - vulcan_relay_invalid_frames_total: frames rejected by validation,
//     labelled by direction
//   - vulcan_relay_dial_failures_total: failed dials to a selected pool
//   - vulcan_relay_probe_failures_total: failed health probes
//   - vulcan_relay_pool_health: per-pool health gauge (1=healthy)
//   - vulcan_relay_pool_connections: per-pool live connection gauge
//   - vulcan_relay_connections_served_total: lifetime accepted connections
//
// Pool gauges are collected at scrape time straight from the pool
// registry, so they can never drift from the state the relay actually
// uses for selection.
//
// # Endpoints
//
// Server binds the metrics listener (default :3000) and serves:
//
//   - /metrics: Prometheus exposition
//   - /status: JSON snapshot {total_connections, pools: [{host, healthy,
//     connections}]}
//   - /health: process liveness
package metrics
