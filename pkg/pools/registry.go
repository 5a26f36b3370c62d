package pools

import "sync/atomic"

// Registry is the ordered set of configured pools plus the process-wide
// connection tally. The pool list is fixed at construction; there is no
// runtime reconfiguration.
type Registry struct {
	pools []*Pool
	total atomic.Uint64
}

// NewRegistry builds a registry over the given pools, preserving order.
func NewRegistry(entries []*Pool) *Registry {
	return &Registry{pools: entries}
}

// Pools returns the pools in configured order. The returned slice must
// not be modified.
func (r *Registry) Pools() []*Pool {
	return r.pools
}

// Len returns the number of configured pools.
func (r *Registry) Len() int {
	return len(r.pools)
}

// ConnAccepted records one accepted client connection in the lifetime
// tally exposed through Snapshot.
func (r *Registry) ConnAccepted() {
	r.total.Add(1)
}

// PoolStatus is one pool's entry in a metrics snapshot.
type PoolStatus struct {
	Host        string `json:"host"`
	Healthy     bool   `json:"healthy"`
	Connections int64  `json:"connections"`
}

// Snapshot is the read-only view the metrics surface publishes.
type Snapshot struct {
	// TotalConnections counts client connections accepted since process
	// start.
	TotalConnections uint64 `json:"total_connections"`

	// Pools lists per-pool status in configured order.
	Pools []PoolStatus `json:"pools"`
}

// Snapshot assembles the current state of every pool. Each field read is
// individually atomic; the snapshot as a whole is a consistent enough
// view for polling consumers.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		TotalConnections: r.total.Load(),
		Pools:            make([]PoolStatus, 0, len(r.pools)),
	}
	for _, p := range r.pools {
		snap.Pools = append(snap.Pools, PoolStatus{
			Host:        p.Host,
			Healthy:     p.Healthy(),
			Connections: p.ActiveConns(),
		})
	}
	return snap
}
