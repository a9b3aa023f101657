package model

import (
	"fmt"
	"strings"
)

type CastleRookMove struct {
	Rook *Piece   `json:"-"`
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Move is both a legal-move candidate and a move log entry. Notation and
// Coordinate are only filled in once the move has been applied.
type Move struct {
	Piece      *Piece          `json:"-"`
	PieceType  PieceType       `json:"pieceType"`
	Color      Color           `json:"color"`
	From       Position        `json:"from"`
	To         Position        `json:"to"`
	Captured   *Piece          `json:"capturedPiece,omitempty"`
	Promotion  PieceType       `json:"promotion,omitempty"`
	EnPassant  bool            `json:"enPassant,omitempty"`
	Castle     *CastleRookMove `json:"castleRookMove,omitempty"`
	Notation   string          `json:"notation,omitempty"`
	Coordinate string          `json:"coordinate,omitempty"`
}

func (m Move) IsCapture() bool {
	return m.Captured != nil
}

func (m Move) String() string {
	if m.Coordinate != "" {
		return m.Coordinate
	}
	return fmt.Sprintf("%s->%s", m.From, m.To)
}

func (b *Board) newMove(p *Piece, to Position) Move {
	m := Move{
		Piece:     p,
		PieceType: p.Type,
		Color:     p.Color,
		From:      p.Position,
		To:        to,
		Captured:  b.at(to),
	}
	if p.Type == Pawn && to.Row == p.promotionRow() {
		m.Promotion = Queen
	}
	return m
}

func (b *Board) castleNotation(m Move) string {
	if b.SquareName(m.Castle.From)[0] == 'h' {
		return "O-O"
	}
	return "O-O-O"
}

// coordinateNotation renders e2e4, e7e8=Q, O-O and O-O-O.
func (b *Board) coordinateNotation(m Move) string {
	if m.Castle != nil {
		return b.castleNotation(m)
	}
	s := b.SquareName(m.From) + b.SquareName(m.To)
	if m.Promotion != "" {
		s += "=" + m.Promotion.getPieceNotation()
	}
	return s
}

// shortNotation renders the move in short algebraic form without a check
// suffix. It must run before the move is applied.
func (b *Board) shortNotation(m Move) string {
	if m.Castle != nil {
		return b.castleNotation(m)
	}
	to := b.SquareName(m.To)
	capture := ""
	if m.IsCapture() {
		capture = "x"
	}
	if m.PieceType == Pawn {
		s := to
		if m.IsCapture() {
			s = b.SquareName(m.From)[:1] + capture + to
		}
		if m.Promotion != "" {
			s += "=" + m.Promotion.getPieceNotation()
		}
		return s
	}
	return m.PieceType.getPieceNotation() + b.disambiguation(m) + capture + to
}

// disambiguation names the source file, rank or square when another piece
// of the same type and color can also reach the destination.
func (b *Board) disambiguation(m Move) string {
	var sameFile, sameRank, ambiguous bool
	for _, other := range b.pieces {
		if other == m.Piece || other.Type != m.PieceType || other.Color != m.Color {
			continue
		}
		for _, cand := range b.legalMovesFor(other) {
			if cand.To != m.To {
				continue
			}
			ambiguous = true
			if other.Position.Col == m.From.Col {
				sameFile = true
			}
			if other.Position.Row == m.From.Row {
				sameRank = true
			}
		}
	}
	from := b.SquareName(m.From)
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	default:
		return from
	}
}

// ParseMove reads coordinate text such as "e2e4", "e7e8=Q", "e7e8q", "O-O"
// or "O-O-O" into the squares ApplyMove expects. A promotion suffix must be a
// queen and is only accepted on a pawn move onto its last row. Castling
// resolves against the king of the side to move; whether the castle is legal
// is left to ApplyMove.
func (b *Board) ParseMove(text string) (from, to Position, err error) {
	text = strings.TrimSpace(text)
	switch strings.ReplaceAll(strings.ToUpper(text), "0", "O") {
	case "O-O":
		return b.castleSquares(true)
	case "O-O-O":
		return b.castleSquares(false)
	}

	text = strings.ToLower(text)
	if len(text) < 4 {
		return Position{}, Position{}, fmt.Errorf("%w: %q", ErrBadNotation, text)
	}
	var promote bool
	switch strings.TrimPrefix(text[4:], "=") {
	case "":
	case "q":
		promote = true
	default:
		return Position{}, Position{}, fmt.Errorf("%w: %q", ErrBadNotation, text)
	}
	if from, err = b.ParseSquare(text[:2]); err != nil {
		return Position{}, Position{}, err
	}
	if to, err = b.ParseSquare(text[2:4]); err != nil {
		return Position{}, Position{}, err
	}
	if promote && !b.promotes(from, to) {
		return Position{}, Position{}, fmt.Errorf("%w: %q is not a promotion", ErrBadNotation, text)
	}
	return from, to, nil
}

// promotes reports whether the piece on from is a pawn and to is on the row
// where it promotes.
func (b *Board) promotes(from, to Position) bool {
	p := b.at(from)
	return p != nil && p.Type == Pawn && to.Row == b.backRow(p.Color.Opposite())
}

func (b *Board) castleSquares(kingside bool) (Position, Position, error) {
	king := b.King(b.toMove)
	// The h-file is column 7 for white orientation and column 0 for black.
	step := 1
	if b.orientation == Black {
		step = -1
	}
	if !kingside {
		step = -step
	}
	return king.Position, Position{Row: king.Position.Row, Col: king.Position.Col + 2*step}, nil
}
