package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
	"github.com/gridgames/tictactoe-rooms/internal/entity"
)

const (
	botName = "Bot"

	defaultGameName = "Tic-Tac-Toe"
)

type roomRegistry interface {
	GetOrCreate(code string) *entity.Room
	Get(code string) (*entity.Room, error)
	Destroy(code string)
	Rooms() []*entity.Room
}

type statsService interface {
	RecordWin(ctx context.Context, gameName, winner, loser string)
	RecordDraw(ctx context.Context, gameName string, names ...string)
}

type botService interface {
	PickMove(board entity.Board, botMark string) (int, error)
}

// Gateway translates inbound connection events into registry and room
// operations and fans the results back out. It never touches the transport
// beyond the Conn interface, so it is exercised in tests with recorder
// connections.
type Gateway struct {
	logger   *slog.Logger
	registry roomRegistry
	stats    statsService
	bot      botService
}

func New(logger *slog.Logger, registry roomRegistry, stats statsService, bot botService) *Gateway {
	return &Gateway{
		logger:   logger.With("component", "gateway"),
		registry: registry,
		stats:    stats,
		bot:      bot,
	}
}

// HandleJoin seats a participant in the room for code, creating the room
// when the code is fresh. Seat errors go back to the caller only; a
// successful seat is announced to the whole room, and the filling seat
// triggers per-participant game_start events.
func (that *Gateway) HandleJoin(ctx context.Context, conn entity.Conn, code, username string) error {
	log := that.logger.With("method", "HandleJoin", "code", code)

	if code == "" || username == "" {
		return that.sendError(conn, apperror.ErrInvalidInput.Error())
	}

	room := that.registry.GetOrCreate(code)

	_, started, err := room.Seat(username, conn)
	if err != nil {
		log.Info("seat rejected", "username", username, "error", err)
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, ActionPlayerJoined, PlayerJoinedPayload{Username: username})

	if room.IsWithBot() && !started {
		return that.startBotGame(ctx, room)
	}

	if started {
		that.announceStart(room)
	}

	log.Info("player joined", "username", username)

	return nil
}

// HandleMove validates and applies a move. The server is authoritative: the
// acting mark must be owned by the seat bound to the sending connection, the
// submitted board is checked against room state, and any rejection is
// reported to the sender alone, leaving the board untouched.
func (that *Gateway) HandleMove(ctx context.Context, conn entity.Conn, code string, board entity.Board, mark string) error {
	log := that.logger.With("method", "HandleMove", "code", code)

	if !entity.IsValidMark(mark) || !board.IsValid() {
		return that.sendError(conn, apperror.ErrInvalidInput.Error())
	}

	room, err := that.registry.Get(code)
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	result, err := room.ApplyMove(conn, mark, board)
	if err != nil {
		log.Info("move rejected", "mark", mark, "error", err)
		return that.sendError(conn, err.Error())
	}

	that.broadcastBoard(room, result)

	if result.Finished {
		that.recordOutcome(ctx, room, result)
		return nil
	}

	if room.IsWithBot() {
		that.botReply(ctx, room)
	}

	return nil
}

// HandleLeave processes an explicit departure. An empty room is destroyed;
// otherwise the remaining participant learns who left.
func (that *Gateway) HandleLeave(_ context.Context, _ entity.Conn, code, username string) error {
	log := that.logger.With("method", "HandleLeave", "code", code)

	room, err := that.registry.Get(code)
	if err != nil {
		log.Debug("leave for unknown room", "username", username)
		return nil
	}

	removed, empty := room.Remove(username)
	if !removed {
		return nil
	}

	if empty {
		that.registry.Destroy(code)
		return nil
	}

	that.broadcast(room, ActionPlayerLeft, PlayerLeftPayload{Username: username})

	log.Info("player left", "username", username)

	return nil
}

// HandleDisconnect handles a dropped transport connection: it finds the one
// room the connection was seated in, vacates the seat, and either destroys
// the room or tells the remaining participant their opponent is gone.
func (that *Gateway) HandleDisconnect(_ context.Context, conn entity.Conn) {
	log := that.logger.With("method", "HandleDisconnect")

	for _, room := range that.registry.Rooms() {
		name, empty := room.RemoveByConn(conn)
		if name == "" {
			continue
		}

		if empty {
			that.registry.Destroy(room.Code())
		} else {
			that.broadcast(room, ActionOpponentLeft, nil)
		}

		log.Info("disconnected player removed", "code", room.Code(), "username", name)

		// a connection sits in at most one room
		return
	}
}

// HandleChat relays a chat line to everyone in the room, sender included.
func (that *Gateway) HandleChat(_ context.Context, _ entity.Conn, code, username, message string) error {
	room, err := that.registry.Get(code)
	if err != nil {
		return nil
	}

	that.broadcast(room, ActionChatMessage, ChatMessagePayload{Username: username, Message: message})

	return nil
}

// startBotGame fills the free seat with the bot, announces the game to the
// human, and lets the bot open when it drew X.
func (that *Gateway) startBotGame(ctx context.Context, room *entity.Room) error {
	log := that.logger.With("method", "startBotGame", "code", room.Code())

	bot, err := room.SeatBot(botName)
	if err != nil {
		return fmt.Errorf("failed to seat bot: %w", err)
	}

	for _, participant := range room.Participants() {
		if participant.IsBot() || participant.Conn == nil {
			continue
		}

		payload := GameStartPayload{Symbol: participant.Mark, Opponent: botName}
		if err = participant.Conn.SendMessage(ActionGameStart, payload); err != nil {
			log.Error("failed to send game start", "username", participant.Name, "error", err)
		}
	}

	if bot.Mark == entity.PlayerX {
		that.botReply(ctx, room)
	}

	return nil
}

// announceStart sends each participant its own mark and its opponent's name.
func (that *Gateway) announceStart(room *entity.Room) {
	log := that.logger.With("method", "announceStart", "code", room.Code())

	participants := room.Participants()

	for _, participant := range participants {
		if participant.IsBot() || participant.Conn == nil {
			continue
		}

		opponent := ""
		for _, other := range participants {
			if other.Name != participant.Name {
				opponent = other.Name
			}
		}

		payload := GameStartPayload{Symbol: participant.Mark, Opponent: opponent}
		if err := participant.Conn.SendMessage(ActionGameStart, payload); err != nil {
			log.Error("failed to send game start", "username", participant.Name, "error", err)
		}
	}
}

// botReply asks the bot for a move when it is its turn, applies it, and
// broadcasts the new board.
func (that *Gateway) botReply(ctx context.Context, room *entity.Room) {
	log := that.logger.With("method", "botReply", "code", room.Code())

	var botMark string
	for _, participant := range room.Participants() {
		if participant.IsBot() {
			botMark = participant.Mark
		}
	}

	if botMark == "" || room.Turn() != botMark || room.Phase() != entity.PhaseOngoing {
		return
	}

	cell, err := that.bot.PickMove(room.Board(), botMark)
	if err != nil {
		log.Error("bot failed to pick a move", "error", err)
		return
	}

	result, err := room.ApplyMoveCell(botMark, cell)
	if err != nil {
		log.Error("bot move rejected", "cell", cell, "error", err)
		return
	}

	that.broadcastBoard(room, result)

	if result.Finished {
		that.recordOutcome(ctx, room, result)
	}
}

func (that *Gateway) broadcastBoard(room *entity.Room, result entity.MoveResult) {
	payload := UpdateBoardPayload{
		Board:         result.Board,
		CurrentPlayer: result.Turn,
	}

	if result.Finished {
		winner := result.Winner
		payload.Winner = &winner
		if result.HasLine {
			line := result.Line
			payload.WinningLine = &line
		}
	}

	that.broadcast(room, ActionUpdateBoard, payload)
}

// recordOutcome reports the finished game to the stats collaborator. Bot
// seats carry no user account and are skipped.
func (that *Gateway) recordOutcome(ctx context.Context, room *entity.Room, result entity.MoveResult) {
	gameName := room.GameName()
	if gameName == "" {
		gameName = defaultGameName
	}

	participants := room.Participants()

	if result.Winner == entity.PlayerTie {
		names := make([]string, 0, len(participants))
		for _, participant := range participants {
			if !participant.IsBot() {
				names = append(names, participant.Name)
			}
		}

		that.stats.RecordDraw(ctx, gameName, names...)
		return
	}

	var winner, loser string
	for _, participant := range participants {
		if participant.IsBot() {
			continue
		}
		if participant.Mark == result.Winner {
			winner = participant.Name
		} else {
			loser = participant.Name
		}
	}

	that.stats.RecordWin(ctx, gameName, winner, loser)
}

// broadcast fans an event out to every connected participant. Room locks are
// already released here, so slow connections never hold up room state.
func (that *Gateway) broadcast(room *entity.Room, action string, payload any) {
	log := that.logger.With("method", "broadcast", "code", room.Code())

	for _, participant := range room.Participants() {
		if participant.IsBot() || participant.Conn == nil {
			continue
		}

		if err := participant.Conn.SendMessage(action, payload); err != nil {
			log.Error("failed to send message", "action", action, "username", participant.Name, "error", err)
		}
	}
}

func (that *Gateway) sendError(conn entity.Conn, message string) error {
	if err := conn.SendMessage(ActionError, ErrorPayload{Message: message}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
