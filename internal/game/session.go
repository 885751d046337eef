package game

import (
	"github.com/okybr/tictacgo-backend/internal"
)

// Session state machine: playing -> ended, no way back. Move validation is
// entirely server-authoritative; the client's claimed turn or symbol is
// never trusted.

// ApplyMove validates and applies one move. Rejections are silent: no state
// change, no broadcast. An accepted move produces exactly one state
// broadcast, plus game_over when the room transitions to ended.
func (h *Hub) ApplyMove(p *internal.Player, index int) {
	room, symbol := p.Session()
	if room == nil {
		h.log.Debugf("[ApplyMove] player=%s has no room, dropping move", p.Id)
		return
	}
	// A deleted room is treated as absence, same as never having one.
	if live, ok := h.registry.Get(room.Id); !ok || live != room {
		h.log.Debugf("[ApplyMove] room=%s is gone, dropping move from player=%s", room.Id, p.Id)
		return
	}

	room.Mu.Lock()
	if room.Status != internal.StatusPlaying {
		room.Mu.Unlock()
		h.log.Debugf("[ApplyMove] room=%s is not playing, dropping move", room.Id)
		return
	}
	if symbol != room.Turn {
		room.Mu.Unlock()
		h.log.Debugf("[ApplyMove] room=%s player=%s moved out of turn", room.Id, p.Id)
		return
	}
	if index < 0 || index >= internal.BoardSize {
		room.Mu.Unlock()
		h.log.Debugf("[ApplyMove] room=%s player=%s index %d out of range", room.Id, p.Id, index)
		return
	}
	if room.Board[index] != internal.SymbolNone {
		room.Mu.Unlock()
		h.log.Debugf("[ApplyMove] room=%s player=%s cell %d occupied", room.Id, p.Id, index)
		return
	}

	room.Board[index] = symbol

	var narration string
	switch winner := CheckWinner(room.Board); {
	case winner != internal.SymbolNone:
		room.Status = internal.StatusEnded
		room.Winner = winner
		narration = room.Names[winner] + " (" + string(winner) + ") wins!"
	case IsFull(room.Board):
		room.Status = internal.StatusEnded
		room.Winner = internal.SymbolNone
		narration = "Board is full. It's a draw."
	default:
		room.Turn = symbol.Other()
		narration = room.Names[room.Turn] + " (" + string(room.Turn) + ") to move."
	}

	state := room.PublicState()
	ended := room.Status == internal.StatusEnded
	room.Mu.Unlock()

	h.log.Infof("[ApplyMove] room=%s player=%s placed %s at %d (status=%s)",
		room.Id, p.Id, symbol, index, state.Status)

	h.broadcastToRoom(room, internal.Message[internal.StateData]{Type: "state", Data: state})
	if ended {
		h.broadcastToRoom(room, internal.Message[internal.GameOverData]{
			Type: "game_over",
			Data: internal.GameOverData{Winner: state.Winner},
		})
	}
	h.PostSystem(room, narration)
}

// HandleDeparture tears down whatever the leaving connection was attached
// to: the pending slot if it had no partner yet, otherwise its room. An
// in-progress game cannot be resumed once one side leaves.
func (h *Hub) HandleDeparture(p *internal.Player) {
	p.SetConnected(false)
	h.match.Forget(p)

	room, symbol := p.Session()
	if room == nil {
		h.log.Infof("[HandleDeparture] player=%s left before pairing", p.Id)
		return
	}

	// Freeze the room before it leaves the registry: a move that already
	// passed the liveness lookup still has to take the room lock, where the
	// status check rejects it.
	room.Mu.Lock()
	room.Status = internal.StatusEnded
	opponent := room.Opponent(symbol)
	room.Mu.Unlock()

	h.registry.Delete(room.Id)

	h.log.Infof("[HandleDeparture] room=%s player=%s (%s) left, room removed",
		room.Id, p.Id, symbol)

	if opponent != nil && opponent.IsConnected() {
		h.sendTo(opponent, internal.Message[internal.OpponentLeftData]{
			Type: "opponent_left",
			Data: internal.OpponentLeftData{Message: "Your opponent disconnected. Press restart to play again."},
		})
	}
}
