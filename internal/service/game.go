package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Observer receives state pushes. *websocket.Conn satisfies it.
type Observer interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Observer // connID -> connection
	mu          sync.Mutex
}

// Game is one hot-seat session: a board, the position it started from and
// the observers that get a new snapshot after every change.
type Game struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	mu          sync.Mutex
	board       *model.Board
	orientation model.Color
	start       [8]string
	startToMove model.Color
	connections *GameConnections
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Observer),
	}
}

// NewGame starts a session from the opening position.
func NewGame(id, name string, orientation model.Color) *Game {
	board := model.NewBoard(orientation)
	game, err := NewGameFromRows(id, name, board.Orientation(), model.White, board.Rows())
	if err != nil {
		panic(err)
	}
	return game
}

// NewGameFromRows starts a session from an arbitrary position in the row
// format accepted by model.NewBoardFromRows.
func NewGameFromRows(id, name string, orientation, toMove model.Color, rows [8]string) (*Game, error) {
	board, err := model.NewBoardFromRows(orientation, toMove, rows)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:          id,
		Name:        name,
		CreatedAt:   time.Now(),
		board:       board,
		orientation: orientation,
		start:       rows,
		startToMove: toMove,
		connections: NewGameConnections(),
	}, nil
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return newGameState(g.ID, g.Name, g.board)
}

func (g *Game) Summary() GameSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GameSummary{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		ToMove:    g.board.ToMove(),
		Moves:     len(g.board.History()),
		Result:    g.board.TerminalState(),
	}
}

// View runs fn with the live board under the game lock. fn must not keep
// the board or call back into the game.
func (g *Game) View(fn func(b *model.Board)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.board)
}

func (g *Game) LegalMoves(pos model.Position) ([]model.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.LegalMoves(pos)
}

func (g *Game) MakeMove(from, to model.Position) (model.Move, GameState, error) {
	return g.update(func(b *model.Board) (model.Move, error) {
		return b.ApplyMove(from, to)
	})
}

// MakeMoveText plays a move given as coordinate text, e.g. "e2e4" or "O-O".
func (g *Game) MakeMoveText(text string) (model.Move, GameState, error) {
	return g.update(func(b *model.Board) (model.Move, error) {
		from, to, err := b.ParseMove(text)
		if err != nil {
			return model.Move{}, err
		}
		return b.ApplyMove(from, to)
	})
}

// Undo takes back the last move by replaying every earlier move from the
// starting position.
func (g *Game) Undo() (model.Move, GameState, error) {
	return g.update(func(b *model.Board) (model.Move, error) {
		history := b.History()
		if len(history) == 0 {
			return model.Move{}, ErrNothingToUndo
		}
		replay, err := g.replay(history[:len(history)-1])
		if err != nil {
			return model.Move{}, err
		}
		g.board = replay
		return history[len(history)-1], nil
	})
}

func (g *Game) Reset() GameState {
	_, state, err := g.update(func(b *model.Board) (model.Move, error) {
		replay, err := g.replay(nil)
		if err != nil {
			return model.Move{}, err
		}
		g.board = replay
		return model.Move{}, nil
	})
	if err != nil {
		// The start position was accepted when the game was created.
		panic(err)
	}
	return state
}

func (g *Game) replay(moves []model.Move) (*model.Board, error) {
	board, err := model.NewBoardFromRows(g.orientation, g.startToMove, g.start)
	if err != nil {
		return nil, err
	}
	for _, m := range moves {
		if _, err := board.ApplyMove(m.From, m.To); err != nil {
			return nil, fmt.Errorf("replay %s: %w", m, err)
		}
	}
	return board, nil
}

// update runs fn under the game lock and, when it succeeds, pushes the new
// state to every observer. The connections lock is taken before the game
// lock is released, so observers see states in the order they were made.
// Lock order is always g.mu then g.connections.mu.
func (g *Game) update(fn func(b *model.Board) (model.Move, error)) (model.Move, GameState, error) {
	g.mu.Lock()
	m, err := fn(g.board)
	if err != nil {
		g.mu.Unlock()
		return model.Move{}, GameState{}, err
	}
	state := newGameState(g.ID, g.Name, g.board)
	g.connections.mu.Lock()
	g.mu.Unlock()

	g.broadcastLocked(state)
	g.connections.mu.Unlock()
	return m, state, nil
}

// RegisterConnection adds an observer and sends it the current state. No
// move can be broadcast between that snapshot and the registration.
func (g *Game) RegisterConnection(connID string, conn Observer) error {
	g.mu.Lock()
	state := newGameState(g.ID, g.Name, g.board)
	g.connections.mu.Lock()
	g.mu.Unlock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[connID]; exists {
		return fmt.Errorf("connection %s already registered", connID)
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send initial state: %w", err)
	}
	g.connections.connections[connID] = conn
	log.Printf("game %s: registered connection %s", g.ID, connID)
	return nil
}

func (g *Game) UnregisterConnection(connID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if _, exists := g.connections.connections[connID]; exists {
		delete(g.connections.connections, connID)
		log.Printf("game %s: unregistered connection %s", g.ID, connID)
	}
}

// Notify writes v to a single registered observer.
func (g *Game) Notify(connID string, v interface{}) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	conn, exists := g.connections.connections[connID]
	if !exists {
		return fmt.Errorf("connection %s not registered", connID)
	}
	return conn.WriteJSON(v)
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return len(g.connections.connections)
}

// Close says goodbye to every observer and forgets them.
func (g *Game) Close() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for connID, conn := range g.connections.connections {
		if wsConn, ok := conn.(*websocket.Conn); ok {
			err := wsConn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game deleted"),
			)
			if err != nil {
				log.Printf("game %s: failed to send close frame to %s: %v", g.ID, connID, err)
			}
		}
		if err := conn.Close(); err != nil {
			log.Printf("game %s: failed to close %s: %v", g.ID, connID, err)
		}
		delete(g.connections.connections, connID)
	}
}

// broadcastLocked writes state to every observer. The caller holds the
// connections lock, which also serialises writes since a websocket allows
// one writer at a time. Observers that fail to accept the write are dropped.
func (g *Game) broadcastLocked(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}
	for connID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: failed to send state to %s: %v", g.ID, connID, err)
			delete(g.connections.connections, connID)
		}
	}
}
