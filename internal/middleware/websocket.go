package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It runs after EnsureGameID, so the game ID is already known to be well formed.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// First, check if this is a WebSocket upgrade request
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Store the ID in locals so it is available after the WebSocket upgrade
		c.Locals(WSGameIDKey, c.Params("gameId"))
		return c.Next()
	}
}
