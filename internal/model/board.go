package model

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const boardSize = 8

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < boardSize && p.Col >= 0 && p.Col < boardSize
}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is the authoritative game state. The grid and the piece list always
// agree: every live piece sits in the grid cell named by its Position.
type Board struct {
	grid        [boardSize][boardSize]*Piece
	pieces      []*Piece
	whiteKing   *Piece
	blackKing   *Piece
	toMove      Color
	orientation Color
	log         []Move
	result      GameResult
}

// Opening layouts, row 0 first. Orienting the board for black rotates it so
// that white starts on rows 0 and 1.
var (
	whiteLayout = [boardSize]string{
		"rnbqkbnr",
		"pppppppp",
		"........",
		"........",
		"........",
		"........",
		"PPPPPPPP",
		"RNBQKBNR",
	}
	blackLayout = [boardSize]string{
		"RNBKQBNR",
		"PPPPPPPP",
		"........",
		"........",
		"........",
		"........",
		"pppppppp",
		"rnbkqbnr",
	}
)

// NewBoard returns the standard opening position with white to move.
// Orientation only decides which back rank is row 0.
func NewBoard(orientation Color) *Board {
	layout := whiteLayout
	if orientation == Black {
		layout = blackLayout
	} else {
		orientation = White
	}
	board, err := NewBoardFromRows(orientation, White, layout)
	if err != nil {
		panic(err)
	}
	return board
}

// NewBoardFromRows builds a position from eight rows of piece letters
// (uppercase white, lowercase black, '.' empty), row 0 first. Kings and
// rooks standing on their opening squares are treated as unmoved; every
// other king or rook is marked as moved.
func NewBoardFromRows(orientation, toMove Color, rows [boardSize]string) (*Board, error) {
	if !orientation.Valid() || !toMove.Valid() {
		return nil, fmt.Errorf("%w: unknown color", ErrInvalidLayout)
	}
	b := &Board{toMove: toMove, orientation: orientation}
	for row, line := range rows {
		if len(line) != boardSize {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrInvalidLayout, row, len(line))
		}
		for col := 0; col < boardSize; col++ {
			if line[col] == '.' {
				continue
			}
			pieceType, color, ok := pieceFromLetter(line[col])
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q at row %d", ErrInvalidLayout, line[col], row)
			}
			pos := Position{Row: row, Col: col}
			piece := &Piece{Type: pieceType, Color: color, Position: pos}
			switch pieceType {
			case Pawn:
				if row == 0 || row == boardSize-1 {
					return nil, fmt.Errorf("%w: pawn on back rank at %s", ErrInvalidLayout, pos)
				}
				piece.StartRow = b.pawnRow(color)
				piece.HasMoved = row != piece.StartRow
			case King:
				piece.HasMoved = pos != Position{Row: b.backRow(color), Col: b.kingCol()}
			case Rook:
				piece.HasMoved = row != b.backRow(color) || (col != 0 && col != boardSize-1)
			}
			b.grid[row][col] = piece
		}
	}
	b.rebuild()

	for _, color := range []Color{White, Black} {
		if n := b.countKings(color); n != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", ErrInvalidLayout, color, n)
		}
	}
	if b.IsInCheck(toMove.Opposite()) {
		return nil, fmt.Errorf("%w: %s is in check but not to move", ErrInvalidLayout, toMove.Opposite())
	}
	b.result = b.computeResult()
	return b, nil
}

func (b *Board) backRow(color Color) int {
	if color == b.orientation {
		return boardSize - 1
	}
	return 0
}

func (b *Board) pawnRow(color Color) int {
	if b.backRow(color) == 0 {
		return 1
	}
	return boardSize - 2
}

func (b *Board) kingCol() int {
	if b.orientation == Black {
		return 3
	}
	return 4
}

func (b *Board) countKings(color Color) int {
	n := 0
	for _, p := range b.pieces {
		if p.Type == King && p.Color == color {
			n++
		}
	}
	return n
}

// rebuild recomputes the piece list and king references from the grid.
func (b *Board) rebuild() {
	b.pieces = b.pieces[:0]
	b.whiteKing, b.blackKing = nil, nil
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			p := b.grid[row][col]
			if p == nil {
				continue
			}
			b.pieces = append(b.pieces, p)
			if p.Type == King {
				if p.Color == White {
					b.whiteKing = p
				} else {
					b.blackKing = p
				}
			}
		}
	}
}

// Get returns the piece on pos. Out-of-range positions report no piece.
func (b *Board) Get(pos Position) (*Piece, bool) {
	if !pos.InBounds() {
		return nil, false
	}
	p := b.grid[pos.Row][pos.Col]
	return p, p != nil
}

func (b *Board) at(pos Position) *Piece {
	return b.grid[pos.Row][pos.Col]
}

func (b *Board) ToMove() Color {
	return b.toMove
}

func (b *Board) Orientation() Color {
	return b.orientation
}

func (b *Board) King(color Color) *Piece {
	if color == White {
		return b.whiteKing
	}
	return b.blackKing
}

// Pieces returns the live pieces in grid order.
func (b *Board) Pieces() []*Piece {
	return slices.Clone(b.pieces)
}

// Grid returns a copy of every occupied square.
func (b *Board) Grid() [boardSize][boardSize]*Piece {
	var grid [boardSize][boardSize]*Piece
	for _, p := range b.pieces {
		cp := *p
		grid[p.Position.Row][p.Position.Col] = &cp
	}
	return grid
}

func (b *Board) History() []Move {
	return slices.Clone(b.log)
}

func (b *Board) LastMove() (Move, bool) {
	if len(b.log) == 0 {
		return Move{}, false
	}
	return b.log[len(b.log)-1], true
}

// clone deep-copies the pieces. The log is shared read-only; appending to
// the copy reallocates.
func (b *Board) clone() *Board {
	c := &Board{
		toMove:      b.toMove,
		orientation: b.orientation,
		log:         b.log[:len(b.log):len(b.log)],
		result:      b.result,
		pieces:      make([]*Piece, 0, len(b.pieces)),
	}
	for _, p := range b.pieces {
		cp := *p
		c.grid[p.Position.Row][p.Position.Col] = &cp
	}
	c.rebuild()
	return c
}

func (b *Board) remove(pos Position) *Piece {
	p := b.at(pos)
	if p == nil {
		return nil
	}
	b.grid[pos.Row][pos.Col] = nil
	if i := slices.Index(b.pieces, p); i >= 0 {
		b.pieces = slices.Delete(b.pieces, i, i+1)
	}
	return p
}

// relocate moves the piece on m.From to m.To and removes whatever it
// captures, including an en passant victim beside the source square.
func (b *Board) relocate(m Move) *Piece {
	piece := b.at(m.From)
	if m.EnPassant {
		b.remove(Position{Row: m.From.Row, Col: m.To.Col})
	} else {
		b.remove(m.To)
	}
	b.grid[m.From.Row][m.From.Col] = nil
	piece.Position = m.To
	b.grid[m.To.Row][m.To.Col] = piece
	return piece
}

// apply performs a move that has already been found legal.
func (b *Board) apply(m Move) {
	piece := b.relocate(m)
	piece.HasMoved = true

	if m.Promotion != "" {
		b.remove(m.To)
		queen := &Piece{Type: m.Promotion, Color: piece.Color, Position: m.To, HasMoved: true}
		b.grid[m.To.Row][m.To.Col] = queen
		b.pieces = append(b.pieces, queen)
	}

	if m.Castle != nil {
		rook := b.at(m.Castle.From)
		b.grid[m.Castle.From.Row][m.Castle.From.Col] = nil
		rook.Position = m.Castle.To
		rook.HasMoved = true
		b.grid[m.Castle.To.Row][m.Castle.To.Col] = rook
	}

	b.log = append(b.log, m)
	b.toMove = b.toMove.Opposite()
}

// SquareName returns the algebraic name of pos as seen from the board's
// orientation.
func (b *Board) SquareName(pos Position) string {
	if !pos.InBounds() {
		return "??"
	}
	if b.orientation == Black {
		return fmt.Sprintf("%c%d", 'h'-pos.Col, pos.Row+1)
	}
	return fmt.Sprintf("%c%d", 'a'+pos.Col, boardSize-pos.Row)
}

// ParseSquare is the inverse of SquareName.
func (b *Board) ParseSquare(name string) (Position, error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrOutOfBounds, name)
	}
	file, rank := int(name[0]-'a'), int(name[1]-'1')
	if b.orientation == Black {
		return Position{Row: rank, Col: boardSize - 1 - file}, nil
	}
	return Position{Row: boardSize - 1 - rank, Col: file}, nil
}

// Rows dumps the grid in the format accepted by NewBoardFromRows.
func (b *Board) Rows() [boardSize]string {
	var rows [boardSize]string
	for row := 0; row < boardSize; row++ {
		var sb strings.Builder
		for col := 0; col < boardSize; col++ {
			if p := b.grid[row][col]; p != nil {
				sb.WriteByte(p.Letter())
			} else {
				sb.WriteByte('.')
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

func (b *Board) String() string {
	rows := b.Rows()
	return strings.Join(rows[:], "\n")
}
