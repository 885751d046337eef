package internal

// Methods (Room Struct). Callers are expected to hold r.Mu unless noted.

// Member returns the player seated at the given symbol, nil if absent.
func (r *Room) Member(s Symbol) *Player {
	return r.Players[s]
}

// Opponent returns the other seated player relative to the given symbol.
func (r *Room) Opponent(s Symbol) *Player {
	return r.Players[s.Other()]
}

// Members returns the room's connection handles in symbol order (X first).
// Delivery iterates this explicitly; the transport has no grouping primitive.
func (r *Room) Members() []*Player {
	members := make([]*Player, 0, PlayersPerRoom)
	for _, s := range []Symbol{SymbolX, SymbolO} {
		if p := r.Players[s]; p != nil {
			members = append(members, p)
		}
	}
	return members
}

// PublicState snapshots the subset of room data safe to broadcast.
// Internal connection identifiers never leave the server.
func (r *Room) PublicState() StateData {
	state := StateData{
		Board:  r.Board,
		Turn:   r.Turn,
		Status: r.Status,
	}
	if r.Winner != SymbolNone {
		w := r.Winner
		state.Winner = &w
	}
	return state
}

// ChatHistory returns a copy of the retained chat entries in arrival order.
func (r *Room) ChatHistory() []ChatEntry {
	history := make([]ChatEntry, len(r.Chat))
	copy(history, r.Chat)
	return history
}

// AppendChat pushes an entry onto the ledger, evicting oldest-first until
// the retained length is within limit.
func (r *Room) AppendChat(entry ChatEntry, limit int) {
	r.Chat = append(r.Chat, entry)
	if limit > 0 && len(r.Chat) > limit {
		r.Chat = r.Chat[len(r.Chat)-limit:]
	}
}
