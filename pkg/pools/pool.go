package pools

import (
	"net"
	"strconv"
	"sync/atomic"
)

// Pool is one configured upstream endpoint. It is created once at startup
// and lives for the process lifetime; only its health flag and connection
// counter change, and both are safe for concurrent use.
type Pool struct {
	// Host is the upstream hostname or IP.
	Host string

	// Port is the upstream Stratum port.
	Port int

	healthy atomic.Bool
	active  atomic.Int64
}

// New creates a pool entry. Pools start healthy; health state is not
// persisted across restarts.
func New(host string, port int) *Pool {
	p := &Pool{Host: host, Port: port}
	p.healthy.Store(true)
	return p
}

// Addr returns the dialable "host:port" address.
func (p *Pool) Addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// Healthy reports the last probe verdict.
func (p *Pool) Healthy() bool {
	return p.healthy.Load()
}

// SetHealthy records a probe verdict and reports whether the value
// changed, so callers can log transitions without racing each other.
func (p *Pool) SetHealthy(healthy bool) (changed bool) {
	return p.healthy.Swap(healthy) != healthy
}

// ConnOpened increments the live connection count. Paired with exactly
// one ConnClosed per connection.
func (p *Pool) ConnOpened() {
	p.active.Add(1)
}

// ConnClosed decrements the live connection count.
func (p *Pool) ConnClosed() {
	p.active.Add(-1)
}

// ActiveConns returns the number of relay pairs currently assigned to
// this pool.
func (p *Pool) ActiveConns() int64 {
	return p.active.Load()
}
