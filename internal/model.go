package internal

import (
	"sync"
	"time"
)

const (
	// Game configuration
	BoardSize      = 9
	RoomIDLength   = 6
	MaxNameLength  = 24
	DefaultName    = "Anonymous"
	PlayersPerRoom = 2

	// Chat configuration defaults
	DefaultChatHistoryLimit = 25
	DefaultChatCooldown     = 700 * time.Millisecond
	DefaultChatMaxLength    = 200
)

type Symbol string

const (
	SymbolX    Symbol = "X"
	SymbolO    Symbol = "O"
	SymbolNone Symbol = ""
)

// Other returns the opposing symbol. SymbolNone maps to itself.
func (s Symbol) Other() Symbol {
	switch s {
	case SymbolX:
		return SymbolO
	case SymbolO:
		return SymbolX
	}
	return SymbolNone
}

type RoomStatus string

const (
	StatusPlaying RoomStatus = "playing"
	StatusEnded   RoomStatus = "ended"
)

// Board is the 3x3 grid in row-major order. Empty cells hold SymbolNone,
// which serializes as "" to match the wire format clients expect.
type Board [BoardSize]Symbol

type ChatKind string

const (
	ChatKindSystem ChatKind = "system"
	ChatKindUser   ChatKind = "user"
)

// ChatEntry is immutable once created. System entries carry no sender.
type ChatEntry struct {
	Kind       ChatKind `json:"kind"`
	Text       string   `json:"text"`
	Timestamp  int64    `json:"timestamp_ms"`
	FromSymbol Symbol   `json:"from_symbol,omitempty"`
	FromName   string   `json:"from_name,omitempty"`
}

// Room is a single two-player game session.
type Room struct {
	Id      string
	Board   Board
	Turn    Symbol
	Status  RoomStatus
	Winner  Symbol
	Players map[Symbol]*Player
	Names   map[Symbol]string
	Chat    []ChatEntry

	Mu sync.RWMutex
}

// Response is the timed JSON envelope used by the HTTP endpoints.
type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
