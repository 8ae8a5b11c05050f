package apperror

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid data provided")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrDuplicateName = errors.New("username already taken in this room")
	ErrGameNotActive = errors.New("game is not active")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotYourTurn   = errors.New("it's not your turn")
)
