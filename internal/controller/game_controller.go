package controller

import (
	"errors"
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps engine and service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrBadNotation),
		errors.Is(err, service.ErrInvalidMove),
		errors.Is(err, service.ErrInvalidOrientation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNothingToUndo):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrEmptySquare),
		errors.Is(err, model.ErrWrongTurn),
		errors.Is(err, model.ErrIllegalDestination),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrInvalidLayout):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// gameIDOf returns the game ID validated by middleware.EnsureGameID.
func gameIDOf(c *fiber.Ctx) string {
	gameID, _ := c.Locals(middleware.GameIDKey).(string)
	return gameID
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req service.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	state, err := gc.gameService.CreateGame(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": state.ID,
		"name":    state.Name,
		"state":   state,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(),
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := gameIDOf(c)

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(gameState)
}

// LegalMoves answers for the square given either as ?square=e2 or as
// ?row=6&col=4.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID := gameIDOf(c)

	var (
		pos model.Position
		err error
	)
	if name := c.Query("square"); name != "" {
		pos, err = gc.gameService.ParseSquare(gameID, name)
		if err != nil {
			return respondError(c, err)
		}
	} else {
		pos = model.Position{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}
	}

	moves, err := gc.gameService.LegalMoves(gameID, pos)
	if err != nil {
		return respondError(c, err)
	}
	destinations := make([]string, 0, len(moves))
	for _, m := range moves {
		name, err := gc.gameService.SquareName(gameID, m.To)
		if err != nil {
			return respondError(c, err)
		}
		destinations = append(destinations, name)
	}
	return c.JSON(fiber.Map{
		"from":         pos,
		"moves":        moves,
		"destinations": destinations,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := gameIDOf(c)

	var req ws.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	move, state, err := gc.gameService.HandleMove(gameID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"move":  move,
		"state": state,
	})
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	move, state, err := gc.gameService.Undo(gameIDOf(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"undone": move,
		"state":  state,
	})
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	state, err := gc.gameService.Reset(gameIDOf(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(gameIDOf(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game deleted",
	})
}
