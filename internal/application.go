package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gridgames/tictactoe-rooms/internal/config"
	"github.com/gridgames/tictactoe-rooms/internal/gateway"
	"github.com/gridgames/tictactoe-rooms/internal/registry"
	"github.com/gridgames/tictactoe-rooms/internal/repository"
	"github.com/gridgames/tictactoe-rooms/internal/repository/storage"
	"github.com/gridgames/tictactoe-rooms/internal/service"
	"github.com/gridgames/tictactoe-rooms/transport/rest"
	"github.com/gridgames/tictactoe-rooms/transport/websocket"
)

// RunApp - wires the application together and runs it until a signal or a
// server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	statsRepo := repository.NewStatsRepository(redisStorage.Connection)
	statsService := service.NewStatsService(logger, statsRepo)
	botService := service.NewBotService()

	roomRegistry := registry.New(logger)
	sessionGateway := gateway.New(logger, roomRegistry, statsService, botService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		handlers := rest.NewHandlers(logger, roomRegistry)
		if httpErr := rest.Start(ctx, conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, sessionGateway)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
