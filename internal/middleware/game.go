package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys under which the validated game ID is stored.
const (
	GameIDKey   = "gameID"
	WSGameIDKey = "wsGameID"
)

// EnsureGameID rejects requests whose :gameId parameter is not a uuid
// before they reach a handler.
func EnsureGameID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		if _, err := uuid.Parse(gameID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID must be a uuid",
			})
		}

		c.Locals(GameIDKey, gameID)
		return c.Next()
	}
}
