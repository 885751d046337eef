package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okybr/tictacgo-backend/internal"
	"github.com/okybr/tictacgo-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             8080,
		LogLevel:         "info",
		LogFormat:        "console",
		ChatHistoryLimit: 25,
		ChatCooldown:     700 * time.Millisecond,
		ChatMaxLength:    200,
		ShutdownTimeout:  time.Second,
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(testConfig(), zap.NewNop().Sugar())
	ts := httptest.NewServer(s.RegisterRoutes())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatsStartsEmpty(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body internal.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, body.StatusCode)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 0, data["rooms"])
	assert.EqualValues(t, 0, data["pending"])
}

// brokenWriter accepts headers but fails every body write, like a client
// that hung up mid-response.
type brokenWriter struct {
	header http.Header
	codes  []int
}

func (w *brokenWriter) Header() http.Header { return w.header }

func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func (w *brokenWriter) WriteHeader(statusCode int) {
	w.codes = append(w.codes, statusCode)
}

func TestStatsWriteFailureDoesNotRewriteHeader(t *testing.T) {
	s := New(testConfig(), zap.NewNop().Sugar())
	w := &brokenWriter{header: http.Header{}}

	s.StatsHandler(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

	// The 200 was already committed before the body failed; no second
	// status may be written after it.
	assert.Equal(t, []int{http.StatusOK}, w.codes)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

// --- websocket helpers -------------------------------------------------------

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(internal.Message[json.RawMessage]{Type: msgType, Data: raw}))
}

func readEvent(t *testing.T, conn *websocket.Conn) internal.Message[json.RawMessage] {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg internal.Message[json.RawMessage]
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func expectEvent(t *testing.T, conn *websocket.Conn, msgType string, out any) {
	t.Helper()
	msg := readEvent(t, conn)
	require.Equal(t, msgType, msg.Type)
	if out != nil {
		require.NoError(t, json.Unmarshal(msg.Data, out))
	}
}

// --- end to end --------------------------------------------------------------

func TestFullGameOverWebsocket(t *testing.T) {
	ts := newTestServer(t)

	connA := dialWS(t, ts)
	sendEvent(t, connA, "join", internal.JoinData{Name: "alice"})
	expectEvent(t, connA, "waiting", nil)

	connB := dialWS(t, ts)
	sendEvent(t, connB, "join", internal.JoinData{Name: "bob"})

	var assigned internal.AssignedData
	expectEvent(t, connA, "assigned", &assigned)
	assert.Equal(t, internal.SymbolX, assigned.Symbol)
	expectEvent(t, connB, "assigned", &assigned)
	assert.Equal(t, internal.SymbolO, assigned.Symbol)

	var state internal.StateData
	expectEvent(t, connA, "state", &state)
	assert.Equal(t, internal.SymbolX, state.Turn)
	assert.Equal(t, internal.StatusPlaying, state.Status)
	expectEvent(t, connB, "state", &state)

	var history []internal.ChatEntry
	expectEvent(t, connA, "chat_history", &history)
	require.Len(t, history, 1)
	assert.Equal(t, internal.ChatKindSystem, history[0].Kind)
	expectEvent(t, connB, "chat_history", nil)

	// Play X to a top-row win: X 0, O 4, X 1, O 3, X 2.
	type step struct {
		conn  *websocket.Conn
		index int
	}
	for _, mv := range []step{{connA, 0}, {connB, 4}, {connA, 1}, {connB, 3}} {
		sendEvent(t, mv.conn, "move", internal.MoveData{Index: mv.index})
		expectEvent(t, connA, "state", nil)
		expectEvent(t, connA, "chat_message", nil)
		expectEvent(t, connB, "state", nil)
		expectEvent(t, connB, "chat_message", nil)
	}

	sendEvent(t, connA, "move", internal.MoveData{Index: 2})
	expectEvent(t, connA, "state", &state)
	assert.Equal(t, internal.StatusEnded, state.Status)
	require.NotNil(t, state.Winner)
	assert.Equal(t, internal.SymbolX, *state.Winner)

	var over internal.GameOverData
	expectEvent(t, connA, "game_over", &over)
	require.NotNil(t, over.Winner)
	assert.Equal(t, internal.SymbolX, *over.Winner)
	expectEvent(t, connA, "chat_message", nil)

	expectEvent(t, connB, "state", nil)
	expectEvent(t, connB, "game_over", nil)
	expectEvent(t, connB, "chat_message", nil)

	// Departure tears the room down and notifies the survivor.
	require.NoError(t, connA.Close())
	var left internal.OpponentLeftData
	expectEvent(t, connB, "opponent_left", &left)
	assert.NotEmpty(t, left.Message)
}

func TestChatOverWebsocket(t *testing.T) {
	ts := newTestServer(t)

	connA := dialWS(t, ts)
	sendEvent(t, connA, "join", internal.JoinData{Name: "alice"})
	expectEvent(t, connA, "waiting", nil)

	connB := dialWS(t, ts)
	sendEvent(t, connB, "join", internal.JoinData{Name: "bob"})

	// Skip the pairing burst on both sides.
	for _, conn := range []*websocket.Conn{connA, connB} {
		expectEvent(t, conn, "assigned", nil)
		expectEvent(t, conn, "state", nil)
		expectEvent(t, conn, "chat_history", nil)
	}

	sendEvent(t, connA, "chat_send", internal.ChatSendData{Text: "  good   luck "})

	var entry internal.ChatEntry
	expectEvent(t, connB, "chat_message", &entry)
	assert.Equal(t, internal.ChatKindUser, entry.Kind)
	assert.Equal(t, "good luck", entry.Text)
	assert.Equal(t, internal.SymbolX, entry.FromSymbol)
	assert.Equal(t, "alice", entry.FromName)

	expectEvent(t, connA, "chat_message", nil)
}
