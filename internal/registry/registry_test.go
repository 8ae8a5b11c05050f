package registry

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
	"github.com/gridgames/tictactoe-rooms/internal/entity"
	"github.com/gridgames/tictactoe-rooms/internal/pkg"
)

func newTestRegistry() *Registry {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegistry_CreateRoom(t *testing.T) {
	t.Run("Reserves a free custom code verbatim", func(t *testing.T) {
		// Given: an empty registry
		reg := newTestRegistry()

		// When: creating a room with a custom code
		code, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "alice", Code: "MYCODE"})

		// Then: the room exists under exactly that code
		require.NoError(t, err)
		assert.Equal(t, "MYCODE", code)

		room, err := reg.Get("MYCODE")
		require.NoError(t, err)
		assert.Equal(t, "alice", room.Host())
	})

	t.Run("Disambiguates a taken custom code with appended digits", func(t *testing.T) {
		// Given: a registry where MYCODE is taken
		reg := newTestRegistry()
		_, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "alice", Code: "MYCODE"})
		require.NoError(t, err)

		// When: a second host requests the same code
		code, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "bob", Code: "MYCODE"})

		// Then: the new code keeps the prefix and grew at least one digit
		require.NoError(t, err)
		assert.NotEqual(t, "MYCODE", code)
		assert.True(t, strings.HasPrefix(code, "MYCODE"))

		_, err = reg.Get(code)
		require.NoError(t, err)
	})

	t.Run("Generates a fresh code when none is requested", func(t *testing.T) {
		// Given: an empty registry
		reg := newTestRegistry()

		// When: creating a room without a custom code
		code, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "alice", Public: true})

		// Then: the code has the generator's shape and the room is public
		require.NoError(t, err)
		assert.Len(t, code, pkg.JoinCodeLength)

		room, err := reg.Get(code)
		require.NoError(t, err)
		assert.True(t, room.IsPublic())
	})

	t.Run("VsBot rooms carry the bot type", func(t *testing.T) {
		// Given: an empty registry
		reg := newTestRegistry()

		// When: creating a bot room
		code, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "alice", VsBot: true})

		// Then: the room is a bot room and not discoverable
		require.NoError(t, err)
		room, err := reg.Get(code)
		require.NoError(t, err)
		assert.True(t, room.IsWithBot())
		assert.False(t, room.IsPublic())
	})
}

func TestRegistry_GetOrCreate(t *testing.T) {
	t.Run("Creates a fresh room for an unknown code", func(t *testing.T) {
		// Given: an empty registry
		reg := newTestRegistry()

		// When: the ad-hoc join flow resolves a fresh code
		room := reg.GetOrCreate("AB12C")

		// Then: a waiting room now exists under that code
		require.NotNil(t, room)
		assert.Equal(t, "AB12C", room.Code())
		assert.Equal(t, entity.PhaseWaiting, room.Phase())

		found, err := reg.Get("AB12C")
		require.NoError(t, err)
		assert.Same(t, room, found)
	})

	t.Run("Returns the existing room for a known code", func(t *testing.T) {
		// Given: a registry with a hosted room
		reg := newTestRegistry()
		code, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "alice", Code: "AB12C"})
		require.NoError(t, err)

		// When: the join flow resolves the same code
		room := reg.GetOrCreate(code)

		// Then: it is the hosted room, not a fresh one
		assert.Equal(t, "alice", room.Host())
	})
}

func TestRegistry_Destroy(t *testing.T) {
	t.Run("Destroy removes the room exactly once", func(t *testing.T) {
		// Given: a registry with one room
		reg := newTestRegistry()
		room := reg.GetOrCreate("AB12C")
		require.NotNil(t, room)

		// When: the room is destroyed, twice
		reg.Destroy("AB12C")
		reg.Destroy("AB12C")

		// Then: the code no longer resolves
		_, err := reg.Get("AB12C")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRegistry_ListPublicJoinable(t *testing.T) {
	t.Run("Lists only public rooms of the game with a free seat", func(t *testing.T) {
		// Given: a mix of public, private, foreign-game and full rooms
		reg := newTestRegistry()

		publicCode, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "alice", Public: true})
		require.NoError(t, err)

		_, err = reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "bob"})
		require.NoError(t, err)

		_, err = reg.CreateRoom(CreateParams{GameName: "Checkers", HostName: "carol", Public: true})
		require.NoError(t, err)

		fullCode, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: "dave", Public: true})
		require.NoError(t, err)
		fullRoom, err := reg.Get(fullCode)
		require.NoError(t, err)
		_, _, err = fullRoom.Seat("dave", nil)
		require.NoError(t, err)
		_, _, err = fullRoom.Seat("erin", nil)
		require.NoError(t, err)

		// When: listing joinable public Tic-Tac-Toe sessions
		summaries := reg.ListPublicJoinable("Tic-Tac-Toe")

		// Then: only alice's room shows up, with its metadata
		require.Len(t, summaries, 1)
		assert.Equal(t, publicCode, summaries[0].Code)
		assert.Equal(t, "alice", summaries[0].Host)
		assert.False(t, summaries[0].CreatedAt.IsZero())
	})
}

func TestRegistry_Concurrency(t *testing.T) {
	t.Run("Concurrent creates and destroys keep codes unique", func(t *testing.T) {
		// Given: an empty registry
		reg := newTestRegistry()

		const workers = 32

		// When: many goroutines create, resolve and destroy rooms at once
		var wg sync.WaitGroup
		codes := make([]string, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				code, err := reg.CreateRoom(CreateParams{GameName: "Tic-Tac-Toe", HostName: fmt.Sprintf("host-%d", i)})
				assert.NoError(t, err)
				codes[i] = code

				_ = reg.GetOrCreate(code)

				if i%2 == 0 {
					reg.Destroy(code)
				}
			}(i)
		}

		wg.Wait()

		// Then: every worker got a distinct code and survivors still resolve
		seen := make(map[string]bool, workers)
		for i, code := range codes {
			require.NotEmpty(t, code)
			assert.False(t, seen[code], "duplicate code %s", code)
			seen[code] = true

			_, err := reg.Get(code)
			if i%2 == 0 {
				assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
			} else {
				assert.NoError(t, err)
			}
		}
	})
}
