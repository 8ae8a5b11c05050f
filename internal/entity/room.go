package entity

import (
	"fmt"
	"sync"
	"time"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
	"github.com/gridgames/tictactoe-rooms/internal/tictactoe"
)

const (
	PhaseWaiting  = "waiting"
	PhaseOngoing  = "ongoing"
	PhaseFinished = "finished"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"

	MaxParticipants = 2
)

// Room is one game's authoritative state, keyed by join code. All mutation
// goes through its methods; the internal mutex serializes them so two
// concurrent events on the same room can never interleave. Methods report
// side effects as return values — broadcasting is the gateway's job.
type Room struct {
	mu sync.Mutex

	code      string
	gameName  string
	host      string
	createdAt time.Time
	roomType  string

	participants []Participant
	board        Board
	turn         string
	phase        string
}

func NewRoom(code, gameName, host, roomType string) *Room {
	return &Room{
		code:      code,
		gameName:  gameName,
		host:      host,
		createdAt: time.Now(),
		roomType:  roomType,
		board:     NewBoard(),
		turn:      PlayerX,
		phase:     PhaseWaiting,
	}
}

func (that *Room) Code() string { return that.code }

func (that *Room) GameName() string { return that.gameName }

func (that *Room) Host() string { return that.host }

func (that *Room) CreatedAt() time.Time { return that.createdAt }

func (that *Room) IsPublic() bool { return that.roomType == PublicType }

func (that *Room) IsWithBot() bool { return that.roomType == WithBotType }

// Seat admits a participant. The first joiner plays X and the room keeps
// waiting; the second plays O and the game starts.
func (that *Room) Seat(name string, conn Conn) (Participant, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.participants) >= MaxParticipants {
		return Participant{}, false, fmt.Errorf("%w: %s", apperror.ErrRoomFull, that.code)
	}

	for _, participant := range that.participants {
		if participant.Name == name {
			return Participant{}, false, fmt.Errorf("%w: %s", apperror.ErrDuplicateName, name)
		}
	}

	mark := PlayerX
	if len(that.participants) == 1 {
		mark = PlayerO
	}

	seated := Participant{Name: name, Mark: mark, Conn: conn}
	that.participants = append(that.participants, seated)

	started := len(that.participants) == MaxParticipants
	if started {
		that.phase = PhaseOngoing
	}

	return seated, started, nil
}

// SeatBot fills the second seat with a bot opponent. Marks are dealt at
// random, so the existing human may be reassigned; callers must read seats
// back before announcing the game.
func (that *Room) SeatBot(name string) (Participant, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.participants) != 1 {
		return Participant{}, fmt.Errorf("%w: %s", apperror.ErrRoomFull, that.code)
	}

	humanMark, botMark := RandomMarks()
	that.participants[0].Mark = humanMark

	bot := Participant{Name: name, Mark: botMark, Bot: true}
	that.participants = append(that.participants, bot)
	that.phase = PhaseOngoing

	return bot, nil
}

// MoveResult is the observable effect of an accepted move.
type MoveResult struct {
	Board    Board
	Turn     string
	Winner   string // PlayerX, PlayerO or PlayerTie once finished
	Line     [3]int
	HasLine  bool
	Finished bool
}

// ApplyMove accepts the client-submitted board and derives the move from it:
// the submission must differ from the authoritative board in exactly one
// previously empty cell, now carrying the acting mark. The acting mark must
// belong to the seat bound to the sending connection; a claimed mark is never
// trusted on its own. Anything else — a forged mark, an overwritten cell,
// several new marks, a rewritten history — is rejected without touching room
// state.
func (that *Room) ApplyMove(conn Conn, mark string, submitted Board) (MoveResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.phase != PhaseOngoing {
		return MoveResult{}, fmt.Errorf("%w: %s", apperror.ErrGameNotActive, that.phase)
	}

	seat, ok := that.seatByConn(conn)
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: connection holds no seat", apperror.ErrIllegalMove)
	}

	if seat.Mark != mark {
		return MoveResult{}, fmt.Errorf("%w: %s does not play %s", apperror.ErrIllegalMove, seat.Name, mark)
	}

	if that.turn != mark {
		return MoveResult{}, apperror.ErrNotYourTurn
	}

	cell, err := that.diffMove(mark, submitted)
	if err != nil {
		return MoveResult{}, err
	}

	return that.applyCell(mark, cell), nil
}

// ApplyMoveCell places a mark directly by index. Used for bot replies, which
// produce a cell rather than a whole board.
func (that *Room) ApplyMoveCell(mark string, cell int) (MoveResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.phase != PhaseOngoing {
		return MoveResult{}, fmt.Errorf("%w: %s", apperror.ErrGameNotActive, that.phase)
	}

	if that.turn != mark {
		return MoveResult{}, apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(that.board) {
		return MoveResult{}, fmt.Errorf("%w: cell %d out of range", apperror.ErrIllegalMove, cell)
	}

	if that.board[cell] != EmptyCell {
		return MoveResult{}, fmt.Errorf("%w: cell %d is occupied", apperror.ErrIllegalMove, cell)
	}

	return that.applyCell(mark, cell), nil
}

// diffMove finds the single new mark in the submitted board.
func (that *Room) diffMove(mark string, submitted Board) (int, error) {
	cell := -1

	for i := range that.board {
		if submitted[i] == that.board[i] {
			continue
		}

		if that.board[i] != EmptyCell || submitted[i] != mark || cell != -1 {
			return 0, fmt.Errorf("%w: board does not follow from current state", apperror.ErrIllegalMove)
		}

		cell = i
	}

	if cell == -1 {
		return 0, fmt.Errorf("%w: no new mark on board", apperror.ErrIllegalMove)
	}

	return cell, nil
}

func (that *Room) applyCell(mark string, cell int) MoveResult {
	that.board[cell] = mark

	result := MoveResult{Board: that.board, Turn: that.turn}

	switch outcome := tictactoe.Evaluate(that.board); {
	case outcome.Winner == tictactoe.WinnerNone:
		that.turn = ToggleMark(mark)
		result.Turn = that.turn
	case outcome.Winner == PlayerTie:
		that.phase = PhaseFinished
		result.Winner = PlayerTie
		result.Finished = true
	default:
		// turn stays with the winner; no further turns are issued
		that.phase = PhaseFinished
		result.Winner = outcome.Winner
		result.Line = outcome.Line
		result.HasLine = true
		result.Finished = true
	}

	return result
}

// Remove vacates the named seat. When no human remains the room reports
// itself empty so the registry can destroy it; when one human remains the
// room reverts to waiting with a fresh board and the remaining participant
// re-seated as X.
func (that *Room) Remove(name string) (bool, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, participant := range that.participants {
		if participant.Name != name || participant.Bot {
			continue
		}

		that.participants = append(that.participants[:i], that.participants[i+1:]...)
		return true, that.resetAfterDeparture()
	}

	return false, false
}

// RemoveByConn vacates the seat bound to the given connection, returning the
// departed name. Used for transport-level disconnects, which carry no
// payload.
func (that *Room) RemoveByConn(conn Conn) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, participant := range that.participants {
		if participant.Bot || participant.Conn != conn {
			continue
		}

		that.participants = append(that.participants[:i], that.participants[i+1:]...)
		return participant.Name, that.resetAfterDeparture()
	}

	return "", false
}

// resetAfterDeparture is called under the lock after a seat is vacated.
// Reports whether the room is now empty of humans.
func (that *Room) resetAfterDeparture() bool {
	humans := make([]Participant, 0, len(that.participants))
	for _, participant := range that.participants {
		if !participant.Bot {
			humans = append(humans, participant)
		}
	}

	if len(humans) == 0 {
		that.participants = nil
		return true
	}

	humans[0].Mark = PlayerX
	that.participants = humans
	that.board = NewBoard()
	that.turn = PlayerX
	that.phase = PhaseWaiting

	return false
}

// Participants returns a snapshot of the seats.
func (that *Room) Participants() []Participant {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot := make([]Participant, len(that.participants))
	copy(snapshot, that.participants)

	return snapshot
}

// Joinable reports whether the room still has a free human seat.
func (that *Room) Joinable() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.participants) < MaxParticipants
}

func (that *Room) Phase() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.phase
}

func (that *Room) Turn() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.turn
}

func (that *Room) Board() Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board
}

// seatByConn is called under the lock. Bot seats carry no connection and
// never match.
func (that *Room) seatByConn(conn Conn) (Participant, bool) {
	for _, participant := range that.participants {
		if !participant.Bot && participant.Conn == conn {
			return participant, true
		}
	}

	return Participant{}, false
}
