package model

// Direction tables. Their order fixes the order in which candidates are
// produced.
var (
	knightDirs = []Position{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingDirs   = []Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirs   = []Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs = []Position{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// pseudoMoves lists every destination of p that respects its movement
// pattern and occupancy, ignoring the safety of its own king. Castling and
// en passant are not included.
func (b *Board) pseudoMoves(p *Piece) []Move {
	switch p.Type {
	case Pawn:
		return b.pawnMoves(p)
	case Knight:
		return b.stepMoves(p, knightDirs)
	case Bishop:
		return b.slideMoves(p, bishopDirs)
	case Rook:
		return b.slideMoves(p, rookDirs)
	case Queen:
		return append(b.slideMoves(p, rookDirs), b.slideMoves(p, bishopDirs)...)
	case King:
		return b.stepMoves(p, kingDirs)
	default:
		return nil
	}
}

// canEnter reports whether p may land on pos: on the board and either
// empty or held by an opposing piece.
func (b *Board) canEnter(p *Piece, pos Position) bool {
	if !pos.InBounds() {
		return false
	}
	target := b.at(pos)
	return target == nil || target.Color != p.Color
}

func (b *Board) stepMoves(p *Piece, dirs []Position) []Move {
	moves := make([]Move, 0, len(dirs))
	for _, dir := range dirs {
		targetPos := p.Position.add(dir)
		if b.canEnter(p, targetPos) {
			moves = append(moves, b.newMove(p, targetPos))
		}
	}
	return moves
}

func (b *Board) slideMoves(p *Piece, dirs []Position) []Move {
	var moves []Move
	for _, dir := range dirs {
		targetPos := p.Position.add(dir)
		for targetPos.InBounds() {
			target := b.at(targetPos)
			if target == nil {
				moves = append(moves, b.newMove(p, targetPos))
			} else if target.Color != p.Color {
				moves = append(moves, b.newMove(p, targetPos))
				break
			} else {
				break
			}
			targetPos = targetPos.add(dir)
		}
	}
	return moves
}

func (b *Board) pawnMoves(p *Piece) []Move {
	var moves []Move
	dir := Position{Row: p.forward()}

	one := p.Position.add(dir)
	if one.InBounds() && b.at(one) == nil {
		moves = append(moves, b.newMove(p, one))
		if p.Position.Row == p.StartRow {
			two := one.add(dir)
			if two.InBounds() && b.at(two) == nil {
				moves = append(moves, b.newMove(p, two))
			}
		}
	}

	for _, side := range []int{-1, 1} {
		diag := Position{Row: p.Position.Row + dir.Row, Col: p.Position.Col + side}
		if !diag.InBounds() {
			continue
		}
		if target := b.at(diag); target != nil && target.Color != p.Color {
			moves = append(moves, b.newMove(p, diag))
		}
	}
	return moves
}

// castlingMoves offers a castle toward each unmoved rook on its original
// file when the king is unmoved and every square between them is empty.
// Whether the king passes through check is left to the legality filter.
func (b *Board) castlingMoves(king *Piece) []Move {
	if king.Type != King || king.HasMoved {
		return nil
	}
	var moves []Move
	row := king.Position.Row
	for _, rookCol := range []int{0, boardSize - 1} {
		rook := b.grid[row][rookCol]
		if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		step := 1
		if rookCol < king.Position.Col {
			step = -1
		}
		if !b.rowClear(row, king.Position.Col, rookCol, step) {
			continue
		}
		to := Position{Row: row, Col: king.Position.Col + 2*step}
		if !to.InBounds() {
			continue
		}
		m := b.newMove(king, to)
		m.Castle = &CastleRookMove{
			Rook: rook,
			From: rook.Position,
			To:   Position{Row: row, Col: to.Col - step},
		}
		moves = append(moves, m)
	}
	return moves
}

func (b *Board) rowClear(row, fromCol, toCol, step int) bool {
	for col := fromCol + step; col != toCol; col += step {
		if b.grid[row][col] != nil {
			return false
		}
	}
	return true
}
