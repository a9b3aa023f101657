package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// Value is the material value of the piece type. The king's value is a
// sentinel and never takes part in capture logic.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 100
	}
	return 0
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	// StartRow is only meaningful for pawns: it fixes their direction,
	// double-step eligibility and promotion row.
	StartRow int  `json:"startRow,omitempty"`
	HasMoved bool `json:"hasMoved"`
}

func (p *Piece) Value() int {
	return p.Type.Value()
}

// Letter returns the piece letter, uppercase for white and lowercase for black.
func (p *Piece) Letter() byte {
	var letter byte
	switch p.Type {
	case Pawn:
		letter = 'P'
	case Knight:
		letter = 'N'
	case Bishop:
		letter = 'B'
	case Rook:
		letter = 'R'
	case Queen:
		letter = 'Q'
	case King:
		letter = 'K'
	default:
		return '?'
	}
	if p.Color == Black {
		letter += 'a' - 'A'
	}
	return letter
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s at %s", p.Color, p.Type, p.Position)
}

// forward is the row delta of a pawn's advance.
func (p *Piece) forward() int {
	if p.StartRow < boardSize/2 {
		return 1
	}
	return -1
}

func (p *Piece) promotionRow() int {
	if p.forward() > 0 {
		return boardSize - 1
	}
	return 0
}

func pieceFromLetter(letter byte) (PieceType, Color, bool) {
	color := White
	if letter >= 'a' && letter <= 'z' {
		color = Black
		letter -= 'a' - 'A'
	}
	switch letter {
	case 'P':
		return Pawn, color, true
	case 'N':
		return Knight, color, true
	case 'B':
		return Bishop, color, true
	case 'R':
		return Rook, color, true
	case 'Q':
		return Queen, color, true
	case 'K':
		return King, color, true
	}
	return "", "", false
}
