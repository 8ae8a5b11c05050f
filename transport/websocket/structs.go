package websocket

import (
	"encoding/json"

	"github.com/gridgames/tictactoe-rooms/internal/entity"
)

// Message is the wire envelope: an action name and a raw payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinPayload struct {
	Code     string `json:"code"`
	Username string `json:"username"`
}

// MovePayload carries the client-computed board and the acting mark; the
// gateway re-derives and validates the actual move.
type MovePayload struct {
	Code         string       `json:"code"`
	Board        entity.Board `json:"board"`
	PlayerSymbol string       `json:"playerSymbol"`
}

type LeavePayload struct {
	Code     string `json:"code"`
	Username string `json:"username"`
}

type ChatPayload struct {
	Code     string `json:"code"`
	Username string `json:"username"`
	Message  string `json:"message"`
}
