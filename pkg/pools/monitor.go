package pools

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// MonitorHooks are optional callbacks the monitor invokes alongside its
// own bookkeeping, used to feed the metrics collector without coupling
// this package to it. Either field may be nil.
type MonitorHooks struct {
	// HealthChanged fires on every health transition, after the pool's
	// flag has been updated.
	HealthChanged func(pool *Pool, healthy bool)

	// ProbeFailed fires on every failed probe, including repeated
	// failures that cause no transition.
	ProbeFailed func(pool *Pool)
}

// Monitor probes every registered pool on a fixed interval. A failed
// probe marks the pool unhealthy; a successful probe marks it healthy
// again, so a pool that recovers re-enters selection on the next tick.
//
// Probes run concurrently, one goroutine per pool, and never block the
// relay's connection handling.
type Monitor struct {
	registry *Registry
	interval time.Duration
	timeout  time.Duration
	hooks    MonitorHooks

	// dial is swapped out in tests.
	dial func(addr string, timeout time.Duration) (net.Conn, error)

	cron    *cron.Cron
	logger  *slog.Logger
	mu      sync.Mutex
	running bool
}

// NewMonitor creates a monitor over the registry. interval is the probe
// schedule; timeout bounds each probe dial.
func NewMonitor(registry *Registry, interval, timeout time.Duration, hooks MonitorHooks) *Monitor {
	return &Monitor{
		registry: registry,
		interval: interval,
		timeout:  timeout,
		hooks:    hooks,
		dial: func(addr string, timeout time.Duration) (net.Conn, error) {
			return net.DialTimeout("tcp", addr, timeout)
		},
		cron:   cron.New(),
		logger: slog.Default().With("component", "pools.monitor"),
	}
}

// Start begins scheduled probing and returns immediately. Probing stops
// when ctx is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("monitor already started")
	}
	if m.registry.Len() == 0 {
		m.logger.Info("no pools configured, health monitor idle")
		return nil
	}

	schedule := fmt.Sprintf("@every %s", m.interval)
	if _, err := m.cron.AddFunc(schedule, m.ProbeAll); err != nil {
		return fmt.Errorf("failed to schedule health probes: %w", err)
	}

	m.cron.Start()
	m.running = true

	m.logger.Info("health monitor started",
		"interval", m.interval,
		"probe_timeout", m.timeout,
		"pools", m.registry.Len(),
	)

	go func() {
		<-ctx.Done()
		m.Stop()
	}()

	return nil
}

// Stop halts scheduled probing. A probe already in flight completes.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.cron.Stop()
	m.running = false
	m.logger.Info("health monitor stopped")
}

// ProbeAll probes every pool once, concurrently, and waits for all
// probes to finish. It is the scheduled tick body and is also callable
// directly for an immediate sweep at startup.
func (m *Monitor) ProbeAll() {
	var wg sync.WaitGroup
	for _, p := range m.registry.Pools() {
		wg.Add(1)
		go func(p *Pool) {
			defer wg.Done()
			m.probe(p)
		}(p)
	}
	wg.Wait()
}

// probe dials the pool and records the verdict.
func (m *Monitor) probe(p *Pool) {
	start := time.Now()
	conn, err := m.dial(p.Addr(), m.timeout)
	latency := time.Since(start)

	if err != nil {
		if m.hooks.ProbeFailed != nil {
			m.hooks.ProbeFailed(p)
		}
		if p.SetHealthy(false) {
			m.logger.Warn("pool marked unhealthy",
				"pool", p.Addr(),
				"error", err,
				"latency", latency,
			)
			if m.hooks.HealthChanged != nil {
				m.hooks.HealthChanged(p, false)
			}
		} else {
			m.logger.Debug("pool probe failed",
				"pool", p.Addr(),
				"error", err,
			)
		}
		return
	}
	conn.Close()

	if p.SetHealthy(true) {
		m.logger.Info("pool marked healthy",
			"pool", p.Addr(),
			"latency", latency,
		)
		if m.hooks.HealthChanged != nil {
			m.hooks.HealthChanged(p, true)
		}
	} else {
		m.logger.Debug("pool probe passed",
			"pool", p.Addr(),
			"latency", latency,
		)
	}
}
