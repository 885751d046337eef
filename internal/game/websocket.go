package game

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/okybr/tictacgo-backend/internal"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the HTTP connection and starts the per-connection
// message loop. Matchmaking does not happen here; the client asks for it
// with an explicit join event.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("[HandleWebSocket] upgrade failed: %v", err)
		return
	}

	player := internal.NewPlayer(uuid.NewString(), conn)
	h.log.Infof("[HandleWebSocket] player=%s connected from %s", player.Id, r.RemoteAddr)

	go h.handleMessages(player, conn)
}

// handleMessages reads and routes inbound events for one connection until
// the transport tears down. Malformed frames are skipped; transport errors
// end the loop and count as a disconnect.
func (h *Hub) handleMessages(player *internal.Player, conn *websocket.Conn) {
	defer func() {
		conn.Close()
		h.HandleDeparture(player)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			h.log.Infof("[handleMessages] player=%s read ended: %v", player.Id, err)
			return
		}

		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.log.Debugf("[handleMessages] player=%s malformed frame: %v", player.Id, err)
			continue
		}

		h.dispatch(player, msg)
	}
}

// dispatch routes one parsed envelope. Bad payloads are dropped without a
// reply, like every other protocol violation.
func (h *Hub) dispatch(player *internal.Player, msg internal.Message[json.RawMessage]) {
	switch msg.Type {
	case "join":
		// The payload is optional; a bare join means an anonymous player.
		var data internal.JoinData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				h.log.Debugf("[dispatch] player=%s bad join payload: %v", player.Id, err)
				return
			}
		}
		h.RequestJoin(player, data.Name)
	case "move":
		var data internal.MoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			// Non-integer index lands here and is dropped.
			h.log.Debugf("[dispatch] player=%s bad move payload: %v", player.Id, err)
			return
		}
		h.ApplyMove(player, data.Index)
	case "chat_send":
		var data internal.ChatSendData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			h.log.Debugf("[dispatch] player=%s bad chat payload: %v", player.Id, err)
			return
		}
		h.PostUser(player, data.Text)
	default:
		h.log.Debugf("[dispatch] player=%s unknown message type %q", player.Id, msg.Type)
	}
}
