package model

import (
	"errors"

	"golang.org/x/exp/slices"
)

// LegalMoves returns the legal moves of the piece on pos in generation
// order. It fails when pos is off the board, empty, or holds a piece of the
// side not to move.
func (b *Board) LegalMoves(pos Position) ([]Move, error) {
	if !pos.InBounds() {
		return nil, &MoveError{Op: "legal moves", From: pos, Err: ErrOutOfBounds}
	}
	p := b.at(pos)
	if p == nil {
		return nil, &MoveError{Op: "legal moves", From: pos, Err: ErrEmptySquare}
	}
	if p.Color != b.toMove {
		return nil, &MoveError{Op: "legal moves", From: pos, Err: ErrWrongTurn}
	}
	return b.legalMovesFor(p), nil
}

// AllLegalMoves returns every legal move of the side to move.
func (b *Board) AllLegalMoves() []Move {
	var moves []Move
	for _, p := range b.pieces {
		if p.Color == b.toMove {
			moves = append(moves, b.legalMovesFor(p)...)
		}
	}
	return moves
}

// ApplyMove plays the piece on from to to when that destination is in its
// legal set, then recomputes check, checkmate and stalemate for the side
// now to move. The applied move is returned with its notation filled in.
func (b *Board) ApplyMove(from, to Position) (Move, error) {
	if !to.InBounds() {
		return Move{}, &MoveError{Op: "apply move", From: from, To: &to, Err: ErrOutOfBounds}
	}
	if b.result.Status != Playing {
		return Move{}, &MoveError{Op: "apply move", From: from, To: &to, Err: ErrGameOver}
	}
	legal, err := b.LegalMoves(from)
	if err != nil {
		var moveErr *MoveError
		if errors.As(err, &moveErr) {
			moveErr.Op, moveErr.To = "apply move", &to
		}
		return Move{}, err
	}
	i := slices.IndexFunc(legal, func(m Move) bool { return m.To == to })
	if i < 0 {
		return Move{}, &MoveError{Op: "apply move", From: from, To: &to, Err: ErrIllegalDestination}
	}

	m := legal[i]
	m.Coordinate = b.coordinateNotation(m)
	m.Notation = b.shortNotation(m)
	b.apply(m)

	b.result = b.computeResult()
	switch {
	case b.result.Status == Checkmate:
		m.Notation += "#"
	case b.IsInCheck(b.toMove):
		m.Notation += "+"
	}
	b.log[len(b.log)-1] = m
	return m, nil
}
