package proxy

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"

	"mercator-hq/vulcan/pkg/pools"
)

// newTestPair wires a Pair between two in-memory pipes and starts it.
// clientSide and poolSide are the test's ends of each pipe.
func newTestPair(t *testing.T) (clientSide, poolSide net.Conn, pool *pools.Pool, pair *Pair) {
	t.Helper()

	clientSide, clientConn := net.Pipe()
	upstreamConn, poolSide := net.Pipe()
	pool = pools.New("pool.test", 3333)

	pair = NewPair(clientConn, upstreamConn, pool, 4096, nil)
	go pair.Run()

	t.Cleanup(func() {
		pair.Teardown("test cleanup")
		clientSide.Close()
		poolSide.Close()
	})
	return clientSide, poolSide, pool, pair
}

func waitForTeardown(t *testing.T, pair *Pair) {
	t.Helper()
	select {
	case <-pair.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("pair was not torn down in time")
	}
}

func TestValidFrameForwardedByteIdentical(t *testing.T) {
	clientSide, poolSide, _, _ := newTestPair(t)

	frame := `{"id":1,"method":"mining.subscribe","params":["Agent/1.0",null]}`
	go clientSide.Write([]byte(frame + "\n"))

	got, err := bufio.NewReader(poolSide).ReadString('\n')
	if err != nil {
		t.Fatalf("reading forwarded frame: %v", err)
	}
	if got != frame+"\n" {
		t.Errorf("forwarded %q, want %q", got, frame+"\n")
	}
}

func TestResponsesForwardedFromPool(t *testing.T) {
	clientSide, poolSide, _, _ := newTestPair(t)

	frame := `{"id":1,"result":[[["mining.notify","ae6812"]],"08000002",4],"error":null}`
	go poolSide.Write([]byte(frame + "\n"))

	got, err := bufio.NewReader(clientSide).ReadString('\n')
	if err != nil {
		t.Fatalf("reading forwarded frame: %v", err)
	}
	if got != frame+"\n" {
		t.Errorf("forwarded %q, want %q", got, frame+"\n")
	}
}

func TestInvalidFrameTearsDownPair(t *testing.T) {
	clientSide, poolSide, pool, pair := newTestPair(t)

	go clientSide.Write([]byte("not json\n"))

	waitForTeardown(t, pair)

	// Nothing was forwarded; the pool side sees only the closed pipe.
	buf := make([]byte, 64)
	poolSide.SetReadDeadline(time.Now().Add(time.Second))
	if n, err := poolSide.Read(buf); err == nil {
		t.Errorf("pool side received %q, want closed connection", buf[:n])
	}

	if got := pool.ActiveConns(); got != 0 {
		t.Errorf("ActiveConns() = %d after teardown, want 0", got)
	}
}

func TestInvalidFrameDiscardsRestOfBatch(t *testing.T) {
	clientSide, poolSide, _, pair := newTestPair(t)

	valid := `{"id":1,"method":"mining.subscribe","params":["a","b"]}`
	alsoValid := `{"id":2,"method":"mining.subscribe","params":["c","d"]}`
	batch := valid + "\nbroken\n" + alsoValid + "\n"

	go clientSide.Write([]byte(batch))

	reader := bufio.NewReader(poolSide)
	got, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading first forwarded frame: %v", err)
	}
	if got != valid+"\n" {
		t.Errorf("first frame = %q, want %q", got, valid+"\n")
	}

	waitForTeardown(t, pair)

	// The frame after the broken one must never arrive.
	poolSide.SetReadDeadline(time.Now().Add(time.Second))
	if rest, err := reader.ReadString('\n'); err == nil {
		t.Errorf("received %q after invalid frame, want nothing", rest)
	}
}

func TestClientCloseTearsDownBothEnds(t *testing.T) {
	clientSide, poolSide, pool, pair := newTestPair(t)

	clientSide.Close()
	waitForTeardown(t, pair)

	buf := make([]byte, 8)
	poolSide.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := poolSide.Read(buf); err == nil {
		t.Error("pool side should observe closure after client close")
	}
	if got := pool.ActiveConns(); got != 0 {
		t.Errorf("ActiveConns() = %d, want 0", got)
	}
}

func TestPoolCloseTearsDownBothEnds(t *testing.T) {
	clientSide, poolSide, pool, pair := newTestPair(t)

	poolSide.Close()
	waitForTeardown(t, pair)

	buf := make([]byte, 8)
	clientSide.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := clientSide.Read(buf); err == nil {
		t.Error("client side should observe closure after pool close")
	}
	if got := pool.ActiveConns(); got != 0 {
		t.Errorf("ActiveConns() = %d, want 0", got)
	}
}

// Repeated teardown triggers must decrement the pool count exactly once.
func TestTeardownIsIdempotent(t *testing.T) {
	_, _, pool, pair := newTestPair(t)

	if got := pool.ActiveConns(); got != 1 {
		t.Fatalf("ActiveConns() = %d before teardown, want 1", got)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pair.Teardown("concurrent trigger")
		}()
	}
	wg.Wait()

	if got := pool.ActiveConns(); got != 0 {
		t.Errorf("ActiveConns() = %d after repeated teardown, want 0", got)
	}
}

// Frames split across many writes must come out whole and in order.
func TestFragmentedFramesRelayedInOrder(t *testing.T) {
	clientSide, poolSide, _, _ := newTestPair(t)

	first := `{"id":1,"method":"mining.authorize","params":["w1","x"]}`
	second := `{"id":2,"method":"mining.submit","params":["w1","job1","ab","00","00"]}`
	wire := first + "\n" + second + "\n"

	go func() {
		for i := 0; i < len(wire); i += 7 {
			end := i + 7
			if end > len(wire) {
				end = len(wire)
			}
			if _, err := clientSide.Write([]byte(wire[i:end])); err != nil {
				return
			}
		}
	}()

	reader := bufio.NewReader(poolSide)
	for i, want := range []string{first, second} {
		got, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("reading frame %d: %v", i, err)
		}
		if got != want+"\n" {
			t.Errorf("frame %d = %q, want %q", i, got, want+"\n")
		}
	}
}
