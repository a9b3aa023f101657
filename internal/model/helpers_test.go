package model

import (
	"math/rand"
	"sort"
	"testing"
)

// mustRows builds a white-oriented position, row 0 being rank 8.
func mustRows(t *testing.T, toMove Color, rows ...string) *Board {
	t.Helper()
	if len(rows) != boardSize {
		t.Fatalf("mustRows: got %d rows, want %d", len(rows), boardSize)
	}
	var layout [boardSize]string
	copy(layout[:], rows)
	b, err := NewBoardFromRows(White, toMove, layout)
	if err != nil {
		t.Fatalf("NewBoardFromRows() error: %v", err)
	}
	return b
}

func square(t *testing.T, b *Board, name string) Position {
	t.Helper()
	pos, err := b.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error: %v", name, err)
	}
	return pos
}

// play applies coordinate moves such as "e2e4".
func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		if _, err := b.ApplyMove(square(t, b, mv[:2]), square(t, b, mv[2:4])); err != nil {
			t.Fatalf("ApplyMove(%s) error: %v", mv, err)
		}
	}
}

// destinations returns the sorted square names the piece on name can reach.
func destinations(t *testing.T, b *Board, name string) []string {
	t.Helper()
	moves, err := b.LegalMoves(square(t, b, name))
	if err != nil {
		t.Fatalf("LegalMoves(%s) error: %v", name, err)
	}
	return squareNames(b, moves)
}

func squareNames(b *Board, moves []Move) []string {
	names := make([]string, 0, len(moves))
	for _, m := range moves {
		names = append(names, b.SquareName(m.To))
	}
	sort.Strings(names)
	return names
}

// checkInvariants verifies that grid and piece list agree and that each
// side has exactly one king.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()
	occupied := 0
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			if b.grid[row][col] != nil {
				occupied++
			}
		}
	}
	if occupied != len(b.pieces) {
		t.Fatalf("grid holds %d pieces, piece list %d", occupied, len(b.pieces))
	}
	for _, p := range b.pieces {
		if got := b.grid[p.Position.Row][p.Position.Col]; got != p {
			t.Fatalf("%v is not referenced by its grid cell", p)
		}
	}
	for _, color := range []Color{White, Black} {
		if n := b.countKings(color); n != 1 {
			t.Fatalf("%s has %d kings", color, n)
		}
		if king := b.King(color); king == nil || b.grid[king.Position.Row][king.Position.Col] != king {
			t.Fatalf("%s king reference is stale", color)
		}
	}
}

// randomGame plays up to plies random legal moves, calling visit before
// each move with the position and its legal moves.
func randomGame(t *testing.T, b *Board, seed int64, plies int, visit func(b *Board, moves []Move)) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	for ply := 0; ply < plies; ply++ {
		moves := b.AllLegalMoves()
		if visit != nil {
			visit(b, moves)
		}
		if len(moves) == 0 {
			if !b.TerminalState().IsOver() {
				t.Fatalf("seed %d ply %d: no legal moves but state %v", seed, ply, b.TerminalState())
			}
			return
		}
		m := moves[rng.Intn(len(moves))]
		if _, err := b.ApplyMove(m.From, m.To); err != nil {
			t.Fatalf("seed %d ply %d: ApplyMove(%v) error: %v", seed, ply, m, err)
		}
		checkInvariants(t, b)
	}
}
