package model

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the rules engine. Check them with errors.Is.
var (
	// ErrOutOfBounds indicates a position outside the 8x8 grid.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrEmptySquare indicates a query or move against an empty square.
	ErrEmptySquare = errors.New("no piece on square")

	// ErrWrongTurn indicates a piece whose color is not the side to move.
	ErrWrongTurn = errors.New("not your turn")

	// ErrIllegalDestination indicates a destination outside the legal move set.
	ErrIllegalDestination = errors.New("illegal destination")

	// ErrGameOver indicates a move attempted after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidLayout indicates a position that cannot be set up.
	ErrInvalidLayout = errors.New("invalid board layout")

	// ErrBadNotation indicates move text that is not coordinate notation.
	ErrBadNotation = errors.New("unrecognised move text")
)

// MoveError carries the squares involved in a rejected query or move.
type MoveError struct {
	Op   string
	From Position
	To   *Position
	Err  error
}

func (e *MoveError) Error() string {
	if e.To != nil {
		return fmt.Sprintf("%s %s->%s: %v", e.Op, e.From, *e.To, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.From, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
