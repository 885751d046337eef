package game

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okybr/tictacgo-backend/internal"
)

// fakeConn records everything written to it, in order, as raw envelopes.
type fakeConn struct {
	mu     sync.Mutex
	closed bool
	msgs   []internal.Message[json.RawMessage]
}

func (c *fakeConn) WriteJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var msg internal.Message[json.RawMessage]
	if err := json.Unmarshal(raw, &msg); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.msgs))
	for i, m := range c.msgs {
		out[i] = m.Type
	}
	return out
}

func (c *fakeConn) count(msgType string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.msgs {
		if m.Type == msgType {
			n++
		}
	}
	return n
}

// lastOf decodes the most recent message of the given type into out.
func (c *fakeConn) lastOf(t *testing.T, msgType string, out any) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.msgs) - 1; i >= 0; i-- {
		if c.msgs[i].Type == msgType {
			require.NoError(t, json.Unmarshal(c.msgs[i].Data, out))
			return
		}
	}
	t.Fatalf("no %q message recorded", msgType)
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = nil
}

func newTestHub() *Hub {
	return NewHub(DefaultConfig(), zap.NewNop().Sugar())
}

func newTestPlayer(id string) (*internal.Player, *fakeConn) {
	conn := &fakeConn{}
	return internal.NewPlayer(id, conn), conn
}

// pairedHub joins two players into one room and clears the messages the
// setup produced, so tests start from a clean recording.
func pairedHub(t *testing.T) (*Hub, *internal.Player, *internal.Player, *fakeConn, *fakeConn) {
	t.Helper()
	h := newTestHub()
	a, connA := newTestPlayer("conn-a")
	b, connB := newTestPlayer("conn-b")

	h.RequestJoin(a, "alice")
	h.RequestJoin(b, "bob")

	roomA, symA := a.Session()
	roomB, symB := b.Session()
	require.NotNil(t, roomA)
	require.Same(t, roomA, roomB)
	require.Equal(t, internal.SymbolX, symA)
	require.Equal(t, internal.SymbolO, symB)

	connA.reset()
	connB.reset()
	return h, a, b, connA, connB
}
