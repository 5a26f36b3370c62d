package pools

// Select returns the pool a new client connection should be relayed to:
// the first healthy pool in configured order, or the first pool outright
// when none are healthy. This is ordered failover, not load balancing:
// a lower-priority pool only receives connections while every pool ahead
// of it is marked unhealthy.
//
// Select returns nil only when the registry is empty.
func (r *Registry) Select() *Pool {
	if len(r.pools) == 0 {
		return nil
	}
	for _, p := range r.pools {
		if p.Healthy() {
			return p
		}
	}
	// Last resort: every pool is marked down, so hand out the highest
	// priority one and let the dial decide.
	return r.pools[0]
}
