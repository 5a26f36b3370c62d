// Package stratum implements the wire-level pieces of the Stratum mining
// protocol that the relay needs: frame validation and byte-stream
// reassembly. The package performs no I/O and holds no references to
// sockets or pools, so both halves are directly testable.
//
// # Frames
//
// Stratum is a line-delimited JSON-RPC-style protocol. Each frame is a
// single JSON object terminated by a line-feed byte. A frame is either a
// request:
//
//	{"id": 1, "method": "mining.subscribe", "params": ["Agent/1.0", null]}
//
// or a response:
//
//	{"id": 1, "result": [...], "error": null}
//
// The relay never rewrites frame bodies; validation is a pure accept or
// reject decision.
//
// # Validation
//
// Validate checks a candidate frame against the protocol rules:
//
//	if err := stratum.Validate(raw); err != nil {
//	    // err names the failed check; the frame must not be forwarded
//	}
//
// A parse failure of any kind is simply an invalid frame. Validate never
// panics and never partially accepts.
//
// # Reassembly
//
// Reassembler turns arbitrary byte chunks read from a socket into discrete
// frames. One Reassembler instance is owned by each (connection, direction)
// pair:
//
//	var r stratum.Reassembler
//	for _, frame := range r.Feed(chunk) {
//	    // complete frames, in arrival order, terminator stripped
//	}
//
// A frame split across N chunks is yielded exactly once, after the chunk
// carrying its terminator arrives.
package stratum
