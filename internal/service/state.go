package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// GameState is the snapshot sent to REST clients and websocket observers.
type GameState struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Orientation    model.Color        `json:"orientation"`
	Board          [8][8]*model.Piece `json:"board"`
	ToMove         model.Color        `json:"toMove"`
	MoveHistory    []MovePair         `json:"moveHistory"`
	LastMove       *model.Move        `json:"lastMove"`
	IsCheck        bool               `json:"isCheck"`
	Result         model.GameResult   `json:"result"`
	Material       int                `json:"material"`
	CapturedPieces CapturedPieces     `json:"capturedPieces"`
	Status         string             `json:"status"`
}

// MovePair is one numbered line of the move list.
type MovePair struct {
	Number int    `json:"number"`
	White  string `json:"white"`
	Black  string `json:"black,omitempty"`
}

// CapturedPieces lists what each side has taken.
type CapturedPieces struct {
	White []model.Piece `json:"white"`
	Black []model.Piece `json:"black"`
}

// GameSummary is the listing entry for a session.
type GameSummary struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"createdAt"`
	ToMove    model.Color      `json:"toMove"`
	Moves     int              `json:"moves"`
	Result    model.GameResult `json:"result"`
}

func newGameState(id, name string, board *model.Board) GameState {
	history := board.History()
	state := GameState{
		ID:             id,
		Name:           name,
		Orientation:    board.Orientation(),
		Board:          board.Grid(),
		ToMove:         board.ToMove(),
		MoveHistory:    pairMoves(history),
		IsCheck:        board.IsInCheck(board.ToMove()),
		Result:         board.TerminalState(),
		Material:       board.MaterialBalance(),
		CapturedPieces: capturedPieces(history),
	}
	if last, ok := board.LastMove(); ok {
		state.LastMove = &last
	}
	state.Status = statusText(state)
	return state
}

// pairMoves numbers the history from white's point of view. A position
// set up with black to move opens with an elided white move.
func pairMoves(history []model.Move) []MovePair {
	pairs := make([]MovePair, 0, (len(history)+1)/2)
	for _, m := range history {
		if m.Color == model.White || len(pairs) == 0 {
			pair := MovePair{Number: len(pairs) + 1, White: m.Notation}
			if m.Color == model.Black {
				pair.White, pair.Black = "...", m.Notation
			}
			pairs = append(pairs, pair)
			continue
		}
		pairs[len(pairs)-1].Black = m.Notation
	}
	return pairs
}

func capturedPieces(history []model.Move) CapturedPieces {
	captured := CapturedPieces{
		White: make([]model.Piece, 0),
		Black: make([]model.Piece, 0),
	}
	for _, m := range history {
		if m.Captured == nil {
			continue
		}
		switch m.Color {
		case model.White:
			captured.White = append(captured.White, *m.Captured)
		case model.Black:
			captured.Black = append(captured.Black, *m.Captured)
		}
	}
	return captured
}

func statusText(state GameState) string {
	switch state.Result.Status {
	case model.Checkmate:
		return fmt.Sprintf("%s wins by checkmate", title(state.Result.Winner))
	case model.Stalemate:
		return "Game drawn by stalemate"
	}
	if state.IsCheck {
		return fmt.Sprintf("%s to move, in check", title(state.ToMove))
	}
	return fmt.Sprintf("%s to move", title(state.ToMove))
}

func title(c model.Color) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
