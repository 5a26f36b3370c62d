package pools

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"
)

// fakeConn satisfies net.Conn for probe success paths; only Close is used.
type fakeConn struct {
	net.Conn
}

func (fakeConn) Close() error { return nil }

func newTestMonitor(reg *Registry, hooks MonitorHooks, fail map[string]bool) *Monitor {
	m := NewMonitor(reg, time.Second, 100*time.Millisecond, hooks)
	var mu sync.Mutex
	m.dial = func(addr string, timeout time.Duration) (net.Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail[addr] {
			return nil, errors.New("connection refused")
		}
		return fakeConn{}, nil
	}
	return m
}

func TestProbeMarksUnhealthyOnFailure(t *testing.T) {
	a := New("a", 3333)
	b := New("b", 3333)
	reg := NewRegistry([]*Pool{a, b})

	m := newTestMonitor(reg, MonitorHooks{}, map[string]bool{"a:3333": true})
	m.ProbeAll()

	if a.Healthy() {
		t.Error("pool a should be unhealthy after failed probe")
	}
	if !b.Healthy() {
		t.Error("pool b should stay healthy after successful probe")
	}
}

func TestProbeRestoresHealthOnSuccess(t *testing.T) {
	a := New("a", 3333)
	a.SetHealthy(false)
	reg := NewRegistry([]*Pool{a})

	m := newTestMonitor(reg, MonitorHooks{}, nil)
	m.ProbeAll()

	if !a.Healthy() {
		t.Error("pool should be healthy again after successful probe")
	}
}

func TestProbeHooks(t *testing.T) {
	a := New("a", 3333)
	reg := NewRegistry([]*Pool{a})

	var mu sync.Mutex
	var transitions []bool
	var failures int
	hooks := MonitorHooks{
		HealthChanged: func(_ *Pool, healthy bool) {
			mu.Lock()
			transitions = append(transitions, healthy)
			mu.Unlock()
		},
		ProbeFailed: func(_ *Pool) {
			mu.Lock()
			failures++
			mu.Unlock()
		},
	}

	fail := map[string]bool{"a:3333": true}
	m := newTestMonitor(reg, hooks, fail)

	m.ProbeAll() // healthy -> unhealthy
	m.ProbeAll() // still unhealthy, no transition
	fail["a:3333"] = false
	m.ProbeAll() // unhealthy -> healthy

	if failures != 2 {
		t.Errorf("ProbeFailed fired %d times, want 2", failures)
	}
	if len(transitions) != 2 || transitions[0] != false || transitions[1] != true {
		t.Errorf("HealthChanged transitions = %v, want [false true]", transitions)
	}
}

func TestMonitorStartWithEmptyRegistryIsIdle(t *testing.T) {
	m := NewMonitor(NewRegistry(nil), time.Second, time.Second, MonitorHooks{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	m.Stop()
}
