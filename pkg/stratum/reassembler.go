package stratum

import "bytes"

// Terminator is the frame delimiter on the wire.
const Terminator = '\n'

// Reassembler accumulates arbitrary byte chunks from one direction of one
// connection and yields complete, terminator-stripped frames. The zero
// value is ready to use. A Reassembler is not safe for concurrent use;
// each (connection, direction) owns its own instance.
//
// At any point the held buffer contains at most one incomplete trailing
// frame; every fully terminated frame is returned by the Feed call that
// completed it.
type Reassembler struct {
	pending []byte
}

// Feed appends chunk to the pending buffer and returns every frame the
// buffer now completes, in arrival order. Returned frames are copies and
// remain valid across subsequent Feed calls. The trailing segment after
// the last terminator (possibly empty) is retained as the new pending
// buffer.
func (r *Reassembler) Feed(chunk []byte) [][]byte {
	r.pending = append(r.pending, chunk...)

	var frames [][]byte
	for {
		i := bytes.IndexByte(r.pending, Terminator)
		if i < 0 {
			break
		}
		frame := make([]byte, i)
		copy(frame, r.pending[:i])
		frames = append(frames, frame)
		r.pending = r.pending[i+1:]
	}

	// Re-home the remainder so completed frames' backing storage can be
	// collected.
	if len(frames) > 0 {
		r.pending = append([]byte(nil), r.pending...)
	}

	return frames
}

// PendingLen returns the size of the buffered incomplete frame.
func (r *Reassembler) PendingLen() int {
	return len(r.pending)
}
