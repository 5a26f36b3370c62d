package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/vulcan/pkg/pools"
)

// Direction labels for frame metrics, matching the relay's log tags.
const (
	DirectionClient = "client"
	DirectionPool   = "pool"
)

// Collector owns every Prometheus metric the relay records. A nil
// *Collector is valid and records nothing, so components can be exercised
// in tests without metrics plumbing.
type Collector struct {
	registry *prometheus.Registry

	connectionsAccepted prometheus.Counter
	connectionsRefused  prometheus.Counter
	framesForwarded     *prometheus.CounterVec
	invalidFrames       *prometheus.CounterVec
	dialFailures        *prometheus.CounterVec
	probeFailures       *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics together
// with scrape-time pool gauges over poolRegistry. If registry is nil a
// fresh Prometheus registry is created.
func NewCollector(registry *prometheus.Registry, poolRegistry *pools.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		connectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "connections_accepted_total",
			Help:      "Total client connections accepted by the relay",
		}),
		connectionsRefused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "connections_refused_total",
			Help:      "Client connections refused because no pool is configured",
		}),
		framesForwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_forwarded_total",
			Help:      "Validated frames forwarded, by originating direction",
		}, []string{"direction"}),
		invalidFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invalid_frames_total",
			Help:      "Frames rejected by protocol validation, by originating direction",
		}, []string{"direction"}),
		dialFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dial_failures_total",
			Help:      "Failed dials to a selected pool",
		}, []string{"pool"}),
		probeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "probe_failures_total",
			Help:      "Failed health probes, by pool",
		}, []string{"pool"}),
	}

	registry.MustRegister(
		c.connectionsAccepted,
		c.connectionsRefused,
		c.framesForwarded,
		c.invalidFrames,
		c.dialFailures,
		c.probeFailures,
	)

	if poolRegistry != nil {
		registry.MustRegister(newPoolCollector(poolRegistry))
	}

	return c
}

const (
	namespace = "vulcan"
	subsystem = "relay"
)

// Registry returns the underlying Prometheus registry for the HTTP
// handler.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ConnAccepted records an accepted client connection.
func (c *Collector) ConnAccepted() {
	if c == nil {
		return
	}
	c.connectionsAccepted.Inc()
}

// ConnRefused records a connection refused for lack of configured pools.
func (c *Collector) ConnRefused() {
	if c == nil {
		return
	}
	c.connectionsRefused.Inc()
}

// FrameForwarded records one validated, forwarded frame.
func (c *Collector) FrameForwarded(direction string) {
	if c == nil {
		return
	}
	c.framesForwarded.WithLabelValues(direction).Inc()
}

// InvalidFrame records one frame rejected by validation.
func (c *Collector) InvalidFrame(direction string) {
	if c == nil {
		return
	}
	c.invalidFrames.WithLabelValues(direction).Inc()
}

// DialFailed records a failed dial to the named pool.
func (c *Collector) DialFailed(pool string) {
	if c == nil {
		return
	}
	c.dialFailures.WithLabelValues(pool).Inc()
}

// ProbeFailed records a failed health probe against the named pool.
func (c *Collector) ProbeFailed(pool string) {
	if c == nil {
		return
	}
	c.probeFailures.WithLabelValues(pool).Inc()
}
