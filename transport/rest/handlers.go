package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gridgames/tictactoe-rooms/internal/registry"
)

const createdAtLayout = "2006-01-02 15:04:05"

type roomRegistry interface {
	CreateRoom(params registry.CreateParams) (string, error)
	ListPublicJoinable(gameName string) []registry.RoomSummary
}

type Handlers struct {
	logger   *slog.Logger
	registry roomRegistry
}

func NewHandlers(logger *slog.Logger, registry roomRegistry) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		registry: registry,
	}
}

type createRoomRequest struct {
	GameName string `json:"game_name"`
	Host     string `json:"host"`
	Code     string `json:"code,omitempty"`
	Public   bool   `json:"public,omitempty"`
	VsBot    bool   `json:"vs_bot,omitempty"`
}

type createRoomResponse struct {
	Code string `json:"code"`
}

type roomListItem struct {
	Code      string `json:"code"`
	Host      string `json:"host"`
	CreatedAt string `json:"created_at"`
}

type roomListResponse struct {
	Rooms []roomListItem `json:"rooms"`
}

// RoomsHandler serves the room creation and discovery surface: POST hosts a
// session and returns its join code, GET lists public joinable sessions for
// a game.
func (that *Handlers) RoomsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		that.createRoom(w, r)
	case http.MethodGet:
		that.listRooms(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (that *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "createRoom")

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.GameName == "" || req.Host == "" {
		http.Error(w, "game_name and host are required", http.StatusBadRequest)
		return
	}

	code, err := that.registry.CreateRoom(registry.CreateParams{
		GameName: req.GameName,
		HostName: req.Host,
		Code:     req.Code,
		Public:   req.Public,
		VsBot:    req.VsBot,
	})
	if err != nil {
		log.Error("failed to create room", "error", err)
		http.Error(w, "failed to create room", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusCreated, createRoomResponse{Code: code})
}

func (that *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	gameName := r.URL.Query().Get("game_name")
	if gameName == "" {
		http.Error(w, "game_name is required", http.StatusBadRequest)
		return
	}

	summaries := that.registry.ListPublicJoinable(gameName)

	resp := roomListResponse{Rooms: make([]roomListItem, 0, len(summaries))}
	for _, summary := range summaries {
		resp.Rooms = append(resp.Rooms, roomListItem{
			Code:      summary.Code,
			Host:      summary.Host,
			CreatedAt: summary.CreatedAt.Format(createdAtLayout),
		})
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *Handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
