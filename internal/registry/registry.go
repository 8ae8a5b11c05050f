package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
	"github.com/gridgames/tictactoe-rooms/internal/entity"
	"github.com/gridgames/tictactoe-rooms/internal/pkg"
)

// Registry owns the code -> room map. Map mutation happens under its own
// lock in short critical sections; each room additionally serializes its own
// state, so events for different rooms run in parallel while events for the
// same room apply one at a time.
type Registry struct {
	logger *slog.Logger

	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func New(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger.With("component", "registry"),
		rooms:  make(map[string]*entity.Room),
	}
}

// CreateParams describes an explicitly hosted room.
type CreateParams struct {
	GameName string
	HostName string
	Code     string // optional custom join code
	Public   bool
	VsBot    bool
}

// CreateRoom reserves a join code and registers a fresh room for it. A free
// custom code is taken verbatim; a taken custom code grows random digits
// until it is free; without a custom code, fresh codes are drawn until one
// is unused.
func (that *Registry) CreateRoom(params CreateParams) (string, error) {
	roomType := entity.PrivateType
	switch {
	case params.VsBot:
		roomType = entity.WithBotType
	case params.Public:
		roomType = entity.PublicType
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	code := params.Code
	custom := code != ""

	for {
		if code != "" {
			if _, taken := that.rooms[code]; !taken {
				break
			}
		}

		var err error
		if custom {
			code, err = pkg.AppendRandomDigit(code)
		} else {
			code, err = pkg.GenerateJoinCode()
		}
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
	}

	that.rooms[code] = entity.NewRoom(code, params.GameName, params.HostName, roomType)

	that.logger.Info("room created", "code", code, "game", params.GameName, "host", params.HostName, "type", roomType)

	return code, nil
}

// GetOrCreate serves the ad-hoc join flow: an unknown code lazily becomes a
// fresh private room with no declared game name or host.
func (that *Registry) GetOrCreate(code string) *entity.Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	if room, ok := that.rooms[code]; ok {
		return room
	}

	room := entity.NewRoom(code, "", "", entity.PrivateType)
	that.rooms[code] = room

	that.logger.Info("room created on join", "code", code)

	return room
}

func (that *Registry) Get(code string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	return room, nil
}

func (that *Registry) Destroy(code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[code]; !ok {
		return
	}

	delete(that.rooms, code)
	that.logger.Info("room destroyed", "code", code)
}

// Rooms returns a snapshot of the live rooms.
func (that *Registry) Rooms() []*entity.Room {
	that.mu.RLock()
	defer that.mu.RUnlock()

	rooms := make([]*entity.Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}

	return rooms
}

// RoomSummary is one row of a public-session listing.
type RoomSummary struct {
	Code      string
	Host      string
	CreatedAt time.Time
}

// ListPublicJoinable returns the discoverable rooms for a game that still
// have a free seat. Snapshot-consistent; no ordering guarantee.
func (that *Registry) ListPublicJoinable(gameName string) []RoomSummary {
	that.mu.RLock()
	rooms := make([]*entity.Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}
	that.mu.RUnlock()

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		if room.GameName() != gameName || !room.IsPublic() || !room.Joinable() {
			continue
		}

		summaries = append(summaries, RoomSummary{
			Code:      room.Code(),
			Host:      room.Host(),
			CreatedAt: room.CreatedAt(),
		})
	}

	return summaries
}
