// Package pools tracks the configured upstream mining pools: their
// endpoints, health, and live connection counts.
//
// # Registry
//
// The Registry holds the pools in configured order. Order is significant:
// it is the failover priority, not a load-distribution hint. Select
// returns the first healthy pool, falling back to the first pool outright
// when none are healthy, and nil only when no pools are configured.
//
// # Shared state
//
// Pool health and connection counts are mutated concurrently by the
// health monitor and by every connection pair, so both live behind
// atomics. Readers never observe a partially updated pool.
//
// # Health monitoring
//
// The Monitor probes every pool on a fixed schedule with a short TCP
// dial, all pools concurrently. A failed probe marks the pool unhealthy;
// a successful probe marks it healthy again. Probing never touches
// connections already assigned to a pool; health only affects future
// selection.
package pools
