package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps one websocket connection. It is the entity.Conn handle seated
// in rooms; writes are serialized because broadcasts for different rooms may
// target the same connection concurrently.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

func (that *client) SendMessage(action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := Message{
		Action:  action,
		Payload: raw,
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) close() error {
	if err := that.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}
