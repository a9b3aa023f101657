package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

// ErrorHandler renders errors that escape a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// NewApp wires middleware, REST routes and the websocket endpoint around
// gameService.
func NewApp(cfg config.Config, gameService *service.GameService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId",
		middleware.EnsureGameID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			Origins:         cfg.AllowOrigins,
		}),
	)

	// Set up REST routes
	api := app.Group("/api")
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/", gameController.ListGames)
	gameRoutes.Get("/:gameId", middleware.EnsureGameID(), gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", middleware.EnsureGameID(), gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", middleware.EnsureGameID(), gameController.MakeMove)
	gameRoutes.Post("/:gameId/undo", middleware.EnsureGameID(), gameController.Undo)
	gameRoutes.Post("/:gameId/reset", middleware.EnsureGameID(), gameController.Reset)
	gameRoutes.Delete("/:gameId", middleware.EnsureGameID(), gameController.DeleteGame)

	return app
}
