package proxy

import (
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"

	"mercator-hq/vulcan/pkg/pools"
	"mercator-hq/vulcan/pkg/stratum"
	"mercator-hq/vulcan/pkg/telemetry/metrics"
)

// Direction tags for logs and metrics: the side a frame originated from.
const (
	DirectionClient = metrics.DirectionClient
	DirectionPool   = metrics.DirectionPool
)

// Pair relays frames between one client connection and one upstream pool
// connection until either side fails, closes, or produces an invalid
// frame.
type Pair struct {
	id       string
	client   net.Conn
	upstream net.Conn
	pool     *pools.Pool
	bufSize  int
	metrics  *metrics.Collector
	logger   *slog.Logger

	teardownOnce sync.Once
	done         chan struct{}
}

// NewPair creates a relay pair over an accepted client connection and an
// already-dialed upstream connection, and claims a connection slot on the
// pool. The slot is released exactly once, at teardown.
func NewPair(client, upstream net.Conn, pool *pools.Pool, bufSize int, collector *metrics.Collector) *Pair {
	p := &Pair{
		id:       uuid.New().String(),
		client:   client,
		upstream: upstream,
		pool:     pool,
		bufSize:  bufSize,
		metrics:  collector,
		done:     make(chan struct{}),
	}
	p.logger = slog.Default().With(
		"conn_id", p.id,
		"client", client.RemoteAddr().String(),
		"pool", pool.Addr(),
	)

	pool.ConnOpened()
	p.logger.Info("relay pair established")
	return p
}

// ID returns the pair's identifier, present in all its log entries.
func (p *Pair) ID() string {
	return p.id
}

// Done is closed once the pair has been torn down.
func (p *Pair) Done() <-chan struct{} {
	return p.done
}

// Run relays both directions and blocks until the pair is torn down.
func (p *Pair) Run() {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.pipe(p.client, p.upstream, DirectionClient)
	}()
	go func() {
		defer wg.Done()
		p.pipe(p.upstream, p.client, DirectionPool)
	}()
	wg.Wait()
}

// pipe is one direction's read loop: chunk, reassemble, validate,
// forward. Any exit reason funnels into Teardown, which closes both
// sockets and thereby unblocks the opposite pipe too.
func (p *Pair) pipe(src, dst net.Conn, direction string) {
	reassembler := &stratum.Reassembler{}
	buf := make([]byte, p.bufSize)

	for {
		n, err := src.Read(buf)
		if n > 0 {
			for _, frame := range reassembler.Feed(buf[:n]) {
				if !p.forward(frame, dst, direction) {
					// Invalid frame or dead destination: the rest of
					// this batch is discarded unvalidated.
					return
				}
			}
		}
		if err != nil {
			p.Teardown("connection closed", "direction", direction, "error", err.Error())
			return
		}
	}
}

// forward validates one frame and writes it to dst with its terminator
// re-appended. It returns false once the pair is being torn down.
func (p *Pair) forward(frame []byte, dst net.Conn, direction string) bool {
	f, err := stratum.Parse(frame)
	if err == nil {
		err = f.Validate()
	}
	if err != nil {
		p.metrics.InvalidFrame(direction)
		p.logger.Warn("invalid frame",
			"direction", direction,
			"reason", err.Error(),
			"frame_len", len(frame),
		)
		p.Teardown("invalid frame", "direction", direction)
		return false
	}

	if worker, ok := f.WorkerName(); ok && f.MethodName() == stratum.MethodAuthorize {
		p.logger.Debug("worker authorization relayed", "worker", worker)
	}

	// Reassembler frames are private copies, so the terminator can be
	// appended in place.
	if _, err := dst.Write(append(frame, stratum.Terminator)); err != nil {
		p.Teardown("write failed", "direction", direction, "error", err.Error())
		return false
	}

	p.metrics.FrameForwarded(direction)
	return true
}

// Teardown closes both endpoints and releases the pool slot. It is safe
// to call from any goroutine any number of times; only the first call has
// any effect. The args are log attributes describing the trigger.
func (p *Pair) Teardown(reason string, args ...any) {
	p.teardownOnce.Do(func() {
		p.client.Close()
		p.upstream.Close()
		p.pool.ConnClosed()
		close(p.done)

		attrs := append([]any{"reason", reason}, args...)
		p.logger.Info("relay pair closed", attrs...)
	})
}
