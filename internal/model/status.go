package model

type Status string

const (
	Playing   Status = "playing"
	Checkmate Status = "checkmate"
	Stalemate Status = "stalemate"
)

// GameResult is the terminal state of the position. Winner is only set for
// checkmate.
type GameResult struct {
	Status Status `json:"status"`
	Winner Color  `json:"winner,omitempty"`
}

func (r GameResult) IsOver() bool {
	return r.Status != Playing
}

// IsInCheck reports whether any opposing piece can move onto color's king.
func (b *Board) IsInCheck(color Color) bool {
	king := b.King(color)
	if king == nil {
		return false
	}
	return b.isAttacked(king.Position, color.Opposite())
}

// TerminalState returns the state computed after the last applied move.
func (b *Board) TerminalState() GameResult {
	return b.result
}

func (b *Board) computeResult() GameResult {
	if b.hasLegalMoves(b.toMove) {
		return GameResult{Status: Playing}
	}
	if b.IsInCheck(b.toMove) {
		return GameResult{Status: Checkmate, Winner: b.toMove.Opposite()}
	}
	return GameResult{Status: Stalemate}
}

func (b *Board) hasLegalMoves(color Color) bool {
	for _, p := range b.pieces {
		if p.Color == color && len(b.legalMovesFor(p)) > 0 {
			return true
		}
	}
	return false
}

// MaterialBalance is the white material minus the black material. It is
// informational only.
func (b *Board) MaterialBalance() int {
	balance := 0
	for _, p := range b.pieces {
		if p.Type == King {
			continue
		}
		if p.Color == White {
			balance += p.Value()
		} else {
			balance -= p.Value()
		}
	}
	return balance
}
