package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/vulcan/pkg/pools"
)

// poolCollector derives per-pool gauges from the registry at scrape time
// instead of mirroring state into gauge writes. What Prometheus sees is
// exactly what the selector sees.
type poolCollector struct {
	registry *pools.Registry

	health      *prometheus.Desc
	connections *prometheus.Desc
	served      *prometheus.Desc
}

func newPoolCollector(registry *pools.Registry) *poolCollector {
	return &poolCollector{
		registry: registry,
		health: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "pool_health"),
			"Pool health status (1=healthy, 0=unhealthy)",
			[]string{"pool"}, nil,
		),
		connections: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "pool_connections"),
			"Relay pairs currently assigned to the pool",
			[]string{"pool"}, nil,
		),
		served: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "connections_served_total"),
			"Client connections accepted since process start",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (pc *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- pc.health
	ch <- pc.connections
	ch <- pc.served
}

// Collect implements prometheus.Collector.
func (pc *poolCollector) Collect(ch chan<- prometheus.Metric) {
	snap := pc.registry.Snapshot()

	ch <- prometheus.MustNewConstMetric(pc.served, prometheus.CounterValue, float64(snap.TotalConnections))

	for i, status := range snap.Pools {
		healthy := 0.0
		if status.Healthy {
			healthy = 1.0
		}
		addr := pc.registry.Pools()[i].Addr()
		ch <- prometheus.MustNewConstMetric(pc.health, prometheus.GaugeValue, healthy, addr)
		ch <- prometheus.MustNewConstMetric(pc.connections, prometheus.GaugeValue, float64(status.Connections), addr)
	}
}
