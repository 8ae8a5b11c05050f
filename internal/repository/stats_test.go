package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridgames/tictactoe-rooms/internal/entity"
	"github.com/gridgames/tictactoe-rooms/testing/suite"
)

func TestStatsRepository_IncrementResult(t *testing.T) {
	t.Run("IncrementResult_Accumulates", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)

		// Given: alice records two wins, a loss and a draw
		for _, result := range []string{"win", "win", "loss", "draw"} {
			err := statsRepo.IncrementResult(ctx, "alice", "Tic-Tac-Toe", result)
			require.NoError(t, err)
		}

		// When: her stats are read back
		stats, err := statsRepo.GetByUser(ctx, "alice", "Tic-Tac-Toe")

		// Then: the counters match what was recorded
		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{Wins: 2, Losses: 1, Draws: 1}, stats)
	})

	t.Run("IncrementResult_UnknownResult", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)

		// When: a bogus result is recorded
		err := statsRepo.IncrementResult(ctx, "carol", "Tic-Tac-Toe", "forfeit")

		// Then: it is rejected and nothing is persisted
		require.ErrorIs(t, err, ErrUnknownResult)

		stats, err := statsRepo.GetByUser(ctx, "carol", "Tic-Tac-Toe")
		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{}, stats)
	})
}

func TestStatsRepository_GetByUser(t *testing.T) {
	t.Run("GetByUser_FreshUser", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)

		// When: stats are read for a user who never played
		stats, err := statsRepo.GetByUser(ctx, "nobody", "Tic-Tac-Toe")

		// Then: every counter is zero
		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{}, stats)
	})

	t.Run("GetByUser_ScopedByGame", func(t *testing.T) {
		ctx, st := suite.New(t)

		statsRepo := NewStatsRepository(st.Storage)

		// Given: bob wins at one game
		err := statsRepo.IncrementResult(ctx, "bob", "Tic-Tac-Toe", "win")
		require.NoError(t, err)

		// When: his stats are read for another game
		stats, err := statsRepo.GetByUser(ctx, "bob", "Connect-Four")

		// Then: the other game's counters are untouched
		require.NoError(t, err)
		assert.Equal(t, &entity.Stats{}, stats)
	})
}
