package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/okybr/tictacgo-backend/internal"
)

// Config carries the game tunables the hub needs at runtime.
type Config struct {
	ChatHistoryLimit int
	ChatCooldown     time.Duration
	ChatMaxLength    int
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		ChatHistoryLimit: internal.DefaultChatHistoryLimit,
		ChatCooldown:     internal.DefaultChatCooldown,
		ChatMaxLength:    internal.DefaultChatMaxLength,
	}
}

// Hub wires the matchmaker, the room registry, the session state machine,
// and the chat ledger together behind the websocket endpoint. All inbound
// events funnel through it.
type Hub struct {
	cfg      Config
	log      *zap.SugaredLogger
	registry *Registry
	match    *Matchmaker
}

func NewHub(cfg Config, log *zap.SugaredLogger) *Hub {
	return &Hub{
		cfg:      cfg,
		log:      log,
		registry: NewRegistry(),
		match:    NewMatchmaker(),
	}
}

// Registry exposes the room registry for HTTP surfaces (stats).
func (h *Hub) Registry() *Registry {
	return h.registry
}

// PendingCount reports whether a connection is parked waiting for a partner.
func (h *Hub) PendingCount() int {
	return h.match.PendingCount()
}

// broadcastToRoom snapshots the room's members under lock and writes the
// message to each outside it. Fire-and-forget: per-member write failures are
// logged and skipped, never propagated into game state.
func (h *Hub) broadcastToRoom(room *internal.Room, msg any) {
	room.Mu.RLock()
	members := room.Members()
	room.Mu.RUnlock()

	for _, p := range members {
		if !p.IsConnected() {
			continue
		}
		if err := p.SafeWriteJSON(msg); err != nil {
			h.log.Warnf("[Broadcast] room=%s player=%s write failed: %v", room.Id, p.Id, err)
		}
	}
}

// sendTo writes a message to a single connection, logging failures.
func (h *Hub) sendTo(p *internal.Player, msg any) {
	if err := p.SafeWriteJSON(msg); err != nil {
		h.log.Warnf("[Send] player=%s write failed: %v", p.Id, err)
	}
}
