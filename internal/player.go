package internal

import (
	"sync"
	"time"
)

// Conn is the subset of *websocket.Conn the game logic needs. Tests swap in
// a recording fake; production always hands in a gorilla connection.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Player is one ephemeral connection. It is created on connect, destroyed on
// disconnect, and belongs to at most one room at a time.
type Player struct {
	Id       string
	Conn     Conn
	JoinedAt time.Time

	// session state, guarded by mu
	room        *Room
	symbol      Symbol
	name        string
	isConnected bool

	// LastChatAt is the time of this connection's last accepted chat post.
	// Guarded by the owning room's Mu (chat only happens inside a room).
	LastChatAt time.Time

	mu      sync.RWMutex
	writeMu sync.Mutex // serializes Conn writes across goroutines
}

func NewPlayer(id string, conn Conn) *Player {
	return &Player{
		Id:          id,
		Conn:        conn,
		JoinedAt:    time.Now(),
		isConnected: true,
	}
}

// Session returns the player's current room and symbol. Both are zero until
// the matchmaker seats the player.
func (p *Player) Session() (*Room, Symbol) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.room, p.symbol
}

// Seat binds the player to a room under a symbol. Called by the matchmaker
// at pairing time, never again for the connection's lifetime.
func (p *Player) Seat(room *Room, symbol Symbol) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.room = room
	p.symbol = symbol
}

func (p *Player) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.name == "" {
		return DefaultName
	}
	return p.name
}

func (p *Player) SetName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = name
}

func (p *Player) IsConnected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isConnected
}

func (p *Player) SetConnected(connected bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isConnected = connected
}

// SafeWriteJSON writes one JSON message to the connection. WriteJSON is not
// safe for concurrent use, so all outbound traffic funnels through here.
func (p *Player) SafeWriteJSON(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteJSON(v)
}
