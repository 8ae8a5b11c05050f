package gateway

import "github.com/gridgames/tictactoe-rooms/internal/entity"

// Outbound actions, named after what the client sees.
const (
	ActionPlayerJoined = "player_joined"
	ActionGameStart    = "game_start"
	ActionUpdateBoard  = "update_board"
	ActionPlayerLeft   = "player_left"
	ActionOpponentLeft = "opponent_left"
	ActionChatMessage  = "chat_message"
	ActionError        = "error"
)

type PlayerJoinedPayload struct {
	Username string `json:"username"`
}

// GameStartPayload is sent to each participant individually: the two sides
// receive different marks and opponents.
type GameStartPayload struct {
	Symbol   string `json:"symbol"`
	Opponent string `json:"opponent"`
}

type UpdateBoardPayload struct {
	Board         entity.Board `json:"board"`
	CurrentPlayer string       `json:"currentPlayer"`
	Winner        *string      `json:"winner"`
	WinningLine   *[3]int      `json:"winningLine"`
}

type PlayerLeftPayload struct {
	Username string `json:"username"`
}

type ChatMessagePayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
