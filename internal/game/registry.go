package game

import (
	"sync"

	"github.com/okybr/tictacgo-backend/internal"
	"github.com/okybr/tictacgo-backend/internal/utils"
)

// Registry owns the map of live rooms. Every component that needs to mutate
// a room locates it here first; nothing else holds the map.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*internal.Room),
	}
}

// Create allocates a room for the seated pair, generates a fresh identifier
// (re-rolled on the unlikely collision with a live room), and registers it.
func (r *Registry) Create(playerX, playerO *internal.Player, nameX, nameO string) *internal.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := utils.GenerateID(internal.RoomIDLength)
	for _, taken := r.rooms[id]; taken; _, taken = r.rooms[id] {
		id = utils.GenerateID(internal.RoomIDLength)
	}

	room := &internal.Room{
		Id:     id,
		Turn:   internal.SymbolX,
		Status: internal.StatusPlaying,
		Players: map[internal.Symbol]*internal.Player{
			internal.SymbolX: playerX,
			internal.SymbolO: playerO,
		},
		Names: map[internal.Symbol]string{
			internal.SymbolX: nameX,
			internal.SymbolO: nameO,
		},
		Chat: make([]internal.ChatEntry, 0, internal.DefaultChatHistoryLimit),
	}
	r.rooms[id] = room
	return room
}

// Get looks a room up by id.
func (r *Registry) Get(id string) (*internal.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// Delete removes a room. Deleting an absent id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
