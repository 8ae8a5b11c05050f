package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/gridgames/tictactoe-rooms/internal/entity"
)

var ErrUnknownResult = errors.New("unknown game result")

// StatsRepository keeps per-user win/loss/draw counters, one hash per
// user and game.
type StatsRepository interface {
	IncrementResult(ctx context.Context, username, gameName, result string) error
	GetByUser(ctx context.Context, username, gameName string) (*entity.Stats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) IncrementResult(ctx context.Context, username, gameName, result string) error {
	field, err := resultField(result)
	if err != nil {
		return err
	}

	if err = that.client.HIncrBy(ctx, statsKey(username, gameName), field, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment %s for %s: %w", field, username, err)
	}

	return nil
}

func (that *dbStats) GetByUser(ctx context.Context, username, gameName string) (*entity.Stats, error) {
	values, err := that.client.HGetAll(ctx, statsKey(username, gameName)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for %s: %w", username, err)
	}

	stats := &entity.Stats{}
	if err = parseCounter(values, "wins", &stats.Wins); err != nil {
		return nil, err
	}
	if err = parseCounter(values, "losses", &stats.Losses); err != nil {
		return nil, err
	}
	if err = parseCounter(values, "draws", &stats.Draws); err != nil {
		return nil, err
	}

	return stats, nil
}

func statsKey(username, gameName string) string {
	return "stats:" + username + ":" + gameName
}

func resultField(result string) (string, error) {
	switch result {
	case "win":
		return "wins", nil
	case "loss":
		return "losses", nil
	case "draw":
		return "draws", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownResult, result)
	}
}

func parseCounter(values map[string]string, field string, dst *int64) error {
	raw, ok := values[field]
	if !ok {
		return nil
	}

	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse %s counter: %w", field, err)
	}

	*dst = parsed

	return nil
}
