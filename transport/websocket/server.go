package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridgames/tictactoe-rooms/internal/entity"
)

// Inbound actions, one handler each.
const (
	actionJoinRoom    = "join_room"
	actionMakeMove    = "make_move"
	actionLeaveGame   = "leave_game"
	actionChatMessage = "chat_message"
)

var ErrUnknownAction = errors.New("unknown action")

type gameGateway interface {
	HandleJoin(ctx context.Context, conn entity.Conn, code, username string) error
	HandleMove(ctx context.Context, conn entity.Conn, code string, board entity.Board, mark string) error
	HandleLeave(ctx context.Context, conn entity.Conn, code, username string) error
	HandleChat(ctx context.Context, conn entity.Conn, code, username, message string) error
	HandleDisconnect(ctx context.Context, conn entity.Conn)
}

type Server struct {
	logger   *slog.Logger
	gateway  gameGateway
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, cl *client, payload json.RawMessage) error
}

func New(logger *slog.Logger, gateway gameGateway) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		gateway: gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]func(context.Context, *client, json.RawMessage) error),
	}

	server.handlers[actionJoinRoom] = server.handleJoin
	server.handlers[actionMakeMove] = server.handleMove
	server.handlers[actionLeaveGame] = server.handleLeave
	server.handlers[actionChatMessage] = server.handleChat

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection upgrades the request and pumps messages until the
// connection drops.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	cl := newClient(conn)

	defer func() {
		if err = cl.close(); err != nil {
			log.Error("failed to close connection", "error", err)
		}
	}()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	that.readLoop(ctx, cl)
}

func (that *Server) readLoop(ctx context.Context, cl *client) {
	log := that.logger.With("method", "readLoop")

	// the connection may belong to a room; a read failure of any kind is a
	// disconnect for that room
	defer that.gateway.HandleDisconnect(ctx, cl)

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			log.Info("connection closed", "error", err)
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		if err = that.processMessage(ctx, cl, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) processMessage(ctx context.Context, cl *client, message *Message) error {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, message.Action)
	}

	return handler(ctx, cl, message.Payload)
}

func (that *Server) handleJoin(ctx context.Context, cl *client, payload json.RawMessage) error {
	var req JoinPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal join payload: %w", err)
	}

	return that.gateway.HandleJoin(ctx, cl, req.Code, req.Username)
}

func (that *Server) handleMove(ctx context.Context, cl *client, payload json.RawMessage) error {
	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal move payload: %w", err)
	}

	return that.gateway.HandleMove(ctx, cl, req.Code, req.Board, req.PlayerSymbol)
}

func (that *Server) handleLeave(ctx context.Context, cl *client, payload json.RawMessage) error {
	var req LeavePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal leave payload: %w", err)
	}

	return that.gateway.HandleLeave(ctx, cl, req.Code, req.Username)
}

func (that *Server) handleChat(ctx context.Context, cl *client, payload json.RawMessage) error {
	var req ChatPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal chat payload: %w", err)
	}

	return that.gateway.HandleChat(ctx, cl, req.Code, req.Username, req.Message)
}
