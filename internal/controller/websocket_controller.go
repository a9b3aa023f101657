package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.WSGameIDKey).(string)
	connID := uuid.New().String()

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, connID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		c.WriteJSON(ws.NewErrorMessage(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("read error: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendError(gameID, connID, fmt.Errorf("invalid message: %w", err))
			continue
		}

		// State changes reach this connection through the game broadcast.
		if err := wsc.handleMessage(gameID, msg); err != nil {
			wsc.sendError(gameID, connID, err)
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req ws.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		_, _, err := wsc.gameService.HandleMove(gameID, req)
		return err
	case ws.MessageTypeUndo:
		_, _, err := wsc.gameService.Undo(gameID)
		return err
	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError reports err to this connection only.
func (wsc *WebSocketController) sendError(gameID, connID string, err error) {
	if werr := wsc.gameService.Notify(gameID, connID, ws.NewErrorMessage(err)); werr != nil {
		log.Printf("failed to send error: %v", werr)
	}
}
