package entity

// Conn is the opaque transport handle bound to a seated participant. The room
// never writes to it; fan-out belongs to the gateway.
type Conn interface {
	SendMessage(action string, payload any) error
}

// Participant is a seat in a room: a display name, an assigned mark and the
// connection it arrived on. Bot seats have no connection.
type Participant struct {
	Name string
	Mark string
	Bot  bool
	Conn Conn
}

func (that Participant) IsBot() bool {
	return that.Bot
}
