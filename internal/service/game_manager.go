// service/game_manager.go
package service

import (
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrNothingToUndo      = errors.New("no move to undo")
	ErrInvalidOrientation = errors.New("orientation must be white or black")
	ErrInvalidMove        = errors.New("move needs from and to squares or move text")
)

type GameManager struct {
	games map[string]*Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*Game),
	}
}

func (gm *GameManager) CreateGame(orientation model.Color) (*Game, error) {
	if !orientation.Valid() {
		return nil, ErrInvalidOrientation
	}
	game := NewGame(uuid.New().String(), petname.Generate(2, "-"), orientation)
	gm.add(game)
	return game, nil
}

// CreateGameFromRows opens a session on a custom position.
func (gm *GameManager) CreateGameFromRows(orientation, toMove model.Color, rows [8]string) (*Game, error) {
	if !orientation.Valid() {
		return nil, ErrInvalidOrientation
	}
	game, err := NewGameFromRows(uuid.New().String(), petname.Generate(2, "-"), orientation, toMove, rows)
	if err != nil {
		return nil, err
	}
	gm.add(game)
	return game, nil
}

func (gm *GameManager) add(game *Game) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[game.ID] = game
	log.Printf("created game %s (%s)", game.ID, game.Name)
}

func (gm *GameManager) GetGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	if !exists {
		gm.mu.Unlock()
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	gm.mu.Unlock()

	game.Close()
	log.Printf("deleted game %s", gameID)
	return nil
}

// ListGames returns a summary of every session, oldest first.
func (gm *GameManager) ListGames() []GameSummary {
	gm.mu.RLock()
	games := make([]*Game, 0, len(gm.games))
	for _, game := range gm.games {
		games = append(games, game)
	}
	gm.mu.RUnlock()

	summaries := make([]GameSummary, 0, len(games))
	for _, game := range games {
		summaries = append(summaries, game.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries
}

func (gm *GameManager) MakeMove(gameID string, from, to model.Position) (model.Move, GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Move{}, GameState{}, err
	}
	return game.MakeMove(from, to)
}

func (gm *GameManager) RegisterConnection(gameID, connID string, conn Observer) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(connID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, connID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(connID)
}
