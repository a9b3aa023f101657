package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeReset     MessageType = "reset"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MoveRequest names a move either by squares or by coordinate text such as
// "e2e4" or "O-O". Text wins when both are given.
type MoveRequest struct {
	From *model.Position `json:"from,omitempty"`
	To   *model.Position `json:"to,omitempty"`
	Move string          `json:"move,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage wraps payload as the JSON body of a message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

func NewErrorMessage(err error) Message {
	raw, _ := json.Marshal(ErrorPayload{Error: err.Error()})
	return Message{Type: MessageTypeError, Payload: raw}
}
