package service

import (
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

type GameService struct {
	gameManager        *GameManager
	defaultOrientation model.Color
}

func NewGameService(gameManager *GameManager, defaultOrientation model.Color) *GameService {
	if !defaultOrientation.Valid() {
		defaultOrientation = model.White
	}
	return &GameService{
		gameManager:        gameManager,
		defaultOrientation: defaultOrientation,
	}
}

// CreateGameRequest is the body of a create call. Every field is optional;
// Rows sets up a custom position instead of the opening.
type CreateGameRequest struct {
	Orientation model.Color `json:"orientation"`
	ToMove      model.Color `json:"toMove"`
	Rows        []string    `json:"rows"`
}

func (gs *GameService) CreateGame(req CreateGameRequest) (GameState, error) {
	orientation := req.Orientation
	if orientation == "" {
		orientation = gs.defaultOrientation
	}

	var (
		game *Game
		err  error
	)
	if len(req.Rows) == 0 {
		game, err = gs.gameManager.CreateGame(orientation)
	} else {
		if len(req.Rows) != 8 {
			return GameState{}, model.ErrInvalidLayout
		}
		toMove := req.ToMove
		if toMove == "" {
			toMove = model.White
		}
		var rows [8]string
		copy(rows[:], req.Rows)
		game, err = gs.gameManager.CreateGameFromRows(orientation, toMove, rows)
	}
	if err != nil {
		return GameState{}, err
	}
	return game.State(), nil
}

func (gs *GameService) ListGames() []GameSummary {
	return gs.gameManager.ListGames()
}

func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	return game.State(), nil
}

func (gs *GameService) LegalMoves(gameID string, pos model.Position) ([]model.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(pos)
}

// SquareName names pos the way the game's board is oriented.
func (gs *GameService) SquareName(gameID string, pos model.Position) (string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	var name string
	game.View(func(b *model.Board) { name = b.SquareName(pos) })
	return name, nil
}

// ParseSquare resolves an algebraic square name against the game's board.
func (gs *GameService) ParseSquare(gameID, name string) (model.Position, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Position{}, err
	}
	var (
		pos      model.Position
		parseErr error
	)
	game.View(func(b *model.Board) { pos, parseErr = b.ParseSquare(name) })
	return pos, parseErr
}

func (gs *GameService) HandleMove(gameID string, req ws.MoveRequest) (model.Move, GameState, error) {
	switch {
	case req.Move != "":
		game, err := gs.gameManager.GetGame(gameID)
		if err != nil {
			return model.Move{}, GameState{}, err
		}
		m, state, err := game.MakeMoveText(req.Move)
		gs.logMove(gameID, m, err)
		return m, state, err
	case req.From != nil && req.To != nil:
		m, state, err := gs.gameManager.MakeMove(gameID, *req.From, *req.To)
		gs.logMove(gameID, m, err)
		return m, state, err
	default:
		return model.Move{}, GameState{}, ErrInvalidMove
	}
}

func (gs *GameService) logMove(gameID string, m model.Move, err error) {
	if err != nil {
		log.Printf("game %s: move rejected: %v", gameID, err)
		return
	}
	log.Printf("game %s: %s played %s", gameID, m.Color, m.Notation)
}

func (gs *GameService) Undo(gameID string) (model.Move, GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.Move{}, GameState{}, err
	}
	m, state, err := game.Undo()
	if err == nil {
		log.Printf("game %s: took back %s", gameID, m.Notation)
	}
	return m, state, err
}

func (gs *GameService) Reset(gameID string) (GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	log.Printf("game %s: reset", gameID)
	return game.Reset(), nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID, connID string, conn Observer) error {
	return gs.gameManager.RegisterConnection(gameID, connID, conn)
}

func (gs *GameService) Notify(gameID, connID string, v interface{}) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Notify(connID, v)
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	gs.gameManager.UnregisterConnection(gameID, connID)
}
