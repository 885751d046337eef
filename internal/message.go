package internal

// Message is the typed event envelope shared by both directions of the wire.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound payloads (client -> server)

type JoinData struct {
	Name string `json:"name"`
}

type MoveData struct {
	Index int `json:"index"`
}

type ChatSendData struct {
	Text string `json:"text"`
}

// Outbound payloads (server -> client)

type WaitingData struct {
	Message string `json:"message"`
}

type AssignedData struct {
	Symbol Symbol `json:"symbol"`
}

// StateData is the full public game view. Winner is null until the room ends
// with a winner; a draw keeps it null with status "ended".
type StateData struct {
	Board  Board      `json:"board"`
	Turn   Symbol     `json:"turn"`
	Status RoomStatus `json:"status"`
	Winner *Symbol    `json:"winner"`
}

type GameOverData struct {
	Winner *Symbol `json:"winner"`
}

type OpponentLeftData struct {
	Message string `json:"message"`
}
