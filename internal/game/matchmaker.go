package game

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/okybr/tictacgo-backend/internal"
)

// Matchmaker owns the single pending-connection slot. The slot is only ever
// touched under mu, so two racing joins cannot both see themselves paired
// as X.
type Matchmaker struct {
	mu      sync.Mutex
	pending *internal.Player
}

func NewMatchmaker() *Matchmaker {
	return &Matchmaker{}
}

type joinOutcome int

const (
	joinIgnored joinOutcome = iota
	joinWaiting
	joinPaired
)

// roomFactory allocates and registers the room for a matched pair.
type roomFactory func(playerX, playerO *internal.Player) *internal.Room

// join runs the whole matchmaking decision in one critical section: the
// already-seated check, the stale-pending discard, and either parking p or
// seating both members of the pair into a freshly created room. Seating must
// finish before the slot is released; otherwise a swapped-out partner exists
// in an unseated limbo where its own re-join could park it again and pair it
// into a second room. A stale pending connection (already disconnected) is
// discarded and replaced rather than paired against; re-joining while
// pending keeps p pending.
func (m *Matchmaker) join(p *internal.Player, create roomFactory) (joinOutcome, *internal.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if room, _ := p.Session(); room != nil {
		return joinIgnored, room
	}
	if m.pending != nil && !m.pending.IsConnected() {
		m.pending = nil
	}
	if m.pending == nil || m.pending.Id == p.Id {
		m.pending = p
		return joinWaiting, nil
	}

	first := m.pending
	m.pending = nil
	room := create(first, p)
	// The earlier-arrived connection is always X, the later always O.
	first.Seat(room, internal.SymbolX)
	p.Seat(room, internal.SymbolO)
	return joinPaired, room
}

// Forget clears p from the pending slot if it is parked there.
func (m *Matchmaker) Forget(p *internal.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil && m.pending.Id == p.Id {
		m.pending = nil
	}
}

// PendingCount is 0 or 1.
func (m *Matchmaker) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return 0
	}
	return 1
}

// RequestJoin queues the connection for matchmaking or pairs it with the
// waiting one. A connection already seated in a room is a no-op; there is no
// error path, unjoinable requests simply wait.
func (h *Hub) RequestJoin(p *internal.Player, rawName string) {
	p.SetName(normalizeName(rawName))

	outcome, room := h.match.join(p, func(playerX, playerO *internal.Player) *internal.Room {
		return h.registry.Create(playerX, playerO, playerX.Name(), playerO.Name())
	})

	switch outcome {
	case joinIgnored:
		h.log.Debugf("[RequestJoin] player=%s already in room %s, ignoring", p.Id, room.Id)
	case joinWaiting:
		h.log.Infof("[RequestJoin] player=%s (%s) is now waiting", p.Id, p.Name())
		h.sendTo(p, internal.Message[internal.WaitingData]{
			Type: "waiting",
			Data: internal.WaitingData{Message: "Waiting for another player..."},
		})
	case joinPaired:
		h.announceRoom(room)
	}
}

// announceRoom sends the pairing burst to a freshly created room: both
// assignments, the initial public state, and the seeded chat history.
func (h *Hub) announceRoom(room *internal.Room) {
	room.Mu.Lock()
	playerX := room.Players[internal.SymbolX]
	playerO := room.Players[internal.SymbolO]
	nameX := room.Names[internal.SymbolX]
	nameO := room.Names[internal.SymbolO]
	// Seed the ledger before the history snapshot so both clients see the
	// opening system line in chat_history without a separate chat_message.
	room.AppendChat(systemEntry(nameX+" (X) vs "+nameO+" (O). X moves first."), h.cfg.ChatHistoryLimit)
	state := room.PublicState()
	history := room.ChatHistory()
	room.Mu.Unlock()

	h.log.Infof("[CreateRoom] room=%s X=%s (%s) O=%s (%s)",
		room.Id, playerX.Id, nameX, playerO.Id, nameO)

	h.sendTo(playerX, internal.Message[internal.AssignedData]{
		Type: "assigned",
		Data: internal.AssignedData{Symbol: internal.SymbolX},
	})
	h.sendTo(playerO, internal.Message[internal.AssignedData]{
		Type: "assigned",
		Data: internal.AssignedData{Symbol: internal.SymbolO},
	})

	h.broadcastToRoom(room, internal.Message[internal.StateData]{Type: "state", Data: state})
	h.broadcastToRoom(room, internal.Message[[]internal.ChatEntry]{Type: "chat_history", Data: history})
}

// normalizeName trims, collapses inner whitespace, truncates, and falls back
// to the default display name when nothing is left.
func normalizeName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return internal.DefaultName
	}
	if utf8.RuneCountInString(name) > internal.MaxNameLength {
		name = string([]rune(name)[:internal.MaxNameLength])
	}
	return name
}
