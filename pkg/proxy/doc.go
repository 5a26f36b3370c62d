// Package proxy implements the bidirectional Stratum relay between one
// mining client and its assigned upstream pool.
//
// # Connection pairs
//
// A Pair owns both sockets of one relayed connection. Each direction runs
// its own goroutine: read a chunk, reassemble it into frames, validate
// every frame, and forward valid frames byte-identical with a single
// trailing terminator. The two directions share nothing but the pair's
// teardown state.
//
// # Teardown
//
// Teardown is idempotent and reachable from either direction: an invalid
// frame, a transport error, or either endpoint closing all funnel into
// the same once-guarded path, which closes both sockets and releases the
// pair's slot on its pool exactly once. Closing both sockets is also what
// unblocks the opposite direction's pending read.
//
// An invalid frame additionally discards the remainder of the read batch
// it arrived in: nothing after the offending frame is validated or
// forwarded.
//
// # Backpressure
//
// There is none beyond the transport's own: a validated frame is written
// to its destination immediately, with no intermediate queue. A slow
// destination therefore stalls its direction's read loop at the socket.
package proxy
