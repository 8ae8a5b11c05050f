package service

import (
	"context"
	"log/slog"
)

const (
	resultWin  = "win"
	resultLoss = "loss"
	resultDraw = "draw"
)

// StatsService persists game outcomes emitted by the gateway. Failures are
// logged and swallowed: a broken stats store must never affect a room.
type StatsService interface {
	RecordWin(ctx context.Context, gameName, winner, loser string)
	RecordDraw(ctx context.Context, gameName string, names ...string)
}

type statsRepo interface {
	IncrementResult(ctx context.Context, username, gameName, result string) error
}

type statsService struct {
	logger    *slog.Logger
	statsRepo statsRepo
}

func NewStatsService(logger *slog.Logger, statsRepo statsRepo) StatsService {
	return &statsService{
		logger:    logger.With("component", "stats"),
		statsRepo: statsRepo,
	}
}

func (that *statsService) RecordWin(ctx context.Context, gameName, winner, loser string) {
	that.record(ctx, winner, gameName, resultWin)
	that.record(ctx, loser, gameName, resultLoss)
}

func (that *statsService) RecordDraw(ctx context.Context, gameName string, names ...string) {
	for _, name := range names {
		that.record(ctx, name, gameName, resultDraw)
	}
}

func (that *statsService) record(ctx context.Context, username, gameName, result string) {
	if username == "" {
		return
	}

	if err := that.statsRepo.IncrementResult(ctx, username, gameName, result); err != nil {
		that.logger.Error("failed to record game result", "username", username, "result", result, "error", err)
	}
}
