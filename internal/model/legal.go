package model

import "golang.org/x/exp/slices"

// legalMovesFor filters the pseudo-legal candidates of p down to the moves
// that do not leave its own king capturable. Each candidate is tried on a
// throwaway copy of the board.
func (b *Board) legalMovesFor(p *Piece) []Move {
	candidates := b.pseudoMoves(p)
	if p.Type == Pawn {
		candidates = append(candidates, b.enPassantMoves(p)...)
	}
	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if b.keepsKingSafe(m) {
			legal = append(legal, m)
		}
	}
	if p.Type == King {
		legal = append(legal, b.legalCastlingMoves(p)...)
	}
	return legal
}

// keepsKingSafe plays m on a copy and reports whether the mover's king is
// out of reach of every opposing piece afterwards.
func (b *Board) keepsKingSafe(m Move) bool {
	sim := b.clone()
	mover := sim.relocate(m)
	king := sim.King(mover.Color)
	return !sim.isAttacked(king.Position, mover.Color.Opposite())
}

// legalCastlingMoves drops a castle when the king stands in check, when the
// square it crosses is attacked, or when it would land in check.
func (b *Board) legalCastlingMoves(king *Piece) []Move {
	castles := b.castlingMoves(king)
	if len(castles) == 0 || b.IsInCheck(king.Color) {
		return nil
	}
	legal := make([]Move, 0, len(castles))
	for _, m := range castles {
		step := 1
		if m.To.Col < m.From.Col {
			step = -1
		}
		transit := b.newMove(king, Position{Row: m.From.Row, Col: m.From.Col + step})
		if !b.keepsKingSafe(transit) || !b.keepsKingSafe(m) {
			continue
		}
		legal = append(legal, m)
	}
	return legal
}

// enPassantMoves offers the capture only on the move right after an
// opposing pawn advanced two rows to land beside p.
func (b *Board) enPassantMoves(p *Piece) []Move {
	last, ok := b.LastMove()
	if !ok || last.PieceType != Pawn || last.Color == p.Color {
		return nil
	}
	if abs(last.To.Row-last.From.Row) != 2 {
		return nil
	}
	if last.To.Row != p.Position.Row || abs(last.To.Col-p.Position.Col) != 1 {
		return nil
	}
	victim := b.at(last.To)
	if victim == nil || victim.Type != Pawn || victim.Color == p.Color {
		return nil
	}
	to := Position{Row: p.Position.Row + p.forward(), Col: last.To.Col}
	if !to.InBounds() || b.at(to) != nil {
		return nil
	}
	m := b.newMove(p, to)
	m.EnPassant = true
	m.Captured = victim
	return []Move{m}
}

// isAttacked reports whether any piece of color by has a pseudo-legal move
// onto pos. pos is expected to be occupied by the defender; pawns only
// reach occupied squares diagonally.
func (b *Board) isAttacked(pos Position, by Color) bool {
	for _, p := range b.pieces {
		if p.Color != by {
			continue
		}
		if slices.IndexFunc(b.pseudoMoves(p), func(m Move) bool { return m.To == pos }) >= 0 {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
