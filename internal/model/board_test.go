package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name        string
		orientation Color
		rows        [boardSize]string
		whiteKing   Position
		blackKing   Position
	}{
		{"white orientation", White, whiteLayout, Position{7, 4}, Position{0, 4}},
		{"black orientation", Black, blackLayout, Position{0, 3}, Position{7, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(tt.orientation)
			if diff := cmp.Diff(tt.rows, b.Rows()); diff != "" {
				t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
			}
			if got := len(b.Pieces()); got != 32 {
				t.Errorf("len(Pieces()) = %d; want 32", got)
			}
			if b.ToMove() != White {
				t.Errorf("ToMove() = %v; want white", b.ToMove())
			}
			if got := b.King(White).Position; got != tt.whiteKing {
				t.Errorf("King(White).Position = %v; want %v", got, tt.whiteKing)
			}
			if got := b.King(Black).Position; got != tt.blackKing {
				t.Errorf("King(Black).Position = %v; want %v", got, tt.blackKing)
			}
			if got := b.SquareName(tt.whiteKing); got != "e1" {
				t.Errorf("SquareName(white king) = %q; want e1", got)
			}
			if got := b.TerminalState(); got.Status != Playing {
				t.Errorf("TerminalState() = %v; want playing", got)
			}
			if got := b.MaterialBalance(); got != 0 {
				t.Errorf("MaterialBalance() = %d; want 0", got)
			}
			for _, p := range b.Pieces() {
				if p.HasMoved {
					t.Errorf("%v marked as moved in opening position", p)
				}
			}
			checkInvariants(t, b)
		})
	}
}

func TestPawnDirectionFollowsStartRow(t *testing.T) {
	for _, orientation := range []Color{White, Black} {
		b := NewBoard(orientation)
		for _, p := range b.Pieces() {
			if p.Type != Pawn {
				continue
			}
			if p.StartRow != p.Position.Row {
				t.Errorf("%s orientation: %v has StartRow %d", orientation, p, p.StartRow)
			}
			want := 1
			if p.StartRow == 6 {
				want = -1
			}
			if got := p.forward(); got != want {
				t.Errorf("%s orientation: %v forward() = %d; want %d", orientation, p, got, want)
			}
		}
	}
}

func TestGet(t *testing.T) {
	b := NewBoard(White)

	if p, ok := b.Get(Position{7, 4}); !ok || p.Type != King || p.Color != White {
		t.Errorf("Get(7,4) = %v, %v; want white king", p, ok)
	}
	if p, ok := b.Get(Position{4, 4}); ok || p != nil {
		t.Errorf("Get(4,4) = %v, %v; want empty", p, ok)
	}
	for _, pos := range []Position{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		if p, ok := b.Get(pos); ok || p != nil {
			t.Errorf("Get(%v) = %v, %v; want empty", pos, p, ok)
		}
	}
}

func TestSquareNames(t *testing.T) {
	for _, orientation := range []Color{White, Black} {
		b := NewBoard(orientation)
		seen := make(map[string]bool)
		for row := 0; row < boardSize; row++ {
			for col := 0; col < boardSize; col++ {
				pos := Position{row, col}
				name := b.SquareName(pos)
				if seen[name] {
					t.Fatalf("%s orientation: duplicate square name %q", orientation, name)
				}
				seen[name] = true
				back, err := b.ParseSquare(name)
				if err != nil {
					t.Fatalf("ParseSquare(%q) error: %v", name, err)
				}
				if back != pos {
					t.Errorf("%s orientation: ParseSquare(SquareName(%v)) = %v", orientation, pos, back)
				}
			}
		}
	}

	b := NewBoard(White)
	for _, bad := range []string{"", "e", "i1", "a0", "a9", "e22"} {
		if _, err := b.ParseSquare(bad); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ParseSquare(%q) error = %v; want ErrOutOfBounds", bad, err)
		}
	}
}

func TestNewBoardFromRowsRejects(t *testing.T) {
	empty := "........"
	tests := []struct {
		name string
		rows [boardSize]string
	}{
		{"two white kings", [boardSize]string{"....k...", empty, empty, empty, empty, empty, empty, "...KK..."}},
		{"missing black king", [boardSize]string{empty, empty, empty, empty, empty, empty, empty, "....K..."}},
		{"pawn on back rank", [boardSize]string{"P...k...", empty, empty, empty, empty, empty, empty, "....K..."}},
		{"unknown letter", [boardSize]string{"....k...", empty, empty, "...X....", empty, empty, empty, "....K..."}},
		{"short row", [boardSize]string{"....k..", empty, empty, empty, empty, empty, empty, "....K..."}},
		{"side not to move in check", [boardSize]string{"....k...", empty, empty, empty, empty, empty, empty, "K...R..."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// White to move, so black must not start in check.
			if _, err := NewBoardFromRows(White, White, tt.rows); !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("NewBoardFromRows() error = %v; want ErrInvalidLayout", err)
			}
		})
	}
}

func TestNewBoardFromRowsMovedFlags(t *testing.T) {
	b := mustRows(t, White,
		"r...k..r",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R..K..R.",
	)
	tests := []struct {
		square string
		moved  bool
	}{
		{"a8", false},
		{"h8", false},
		{"e8", false},
		{"a1", false},
		{"d1", true},
		{"g1", true},
	}
	for _, tt := range tests {
		p, ok := b.Get(square(t, b, tt.square))
		if !ok {
			t.Fatalf("no piece on %s", tt.square)
		}
		if p.HasMoved != tt.moved {
			t.Errorf("%s HasMoved = %v; want %v", tt.square, p.HasMoved, tt.moved)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(White)
	c := b.clone()
	c.relocate(c.newMove(c.at(Position{6, 4}), Position{4, 4}))

	if _, ok := b.Get(Position{4, 4}); ok {
		t.Error("moving a piece on the copy changed the original grid")
	}
	if p, _ := b.Get(Position{6, 4}); p == nil || p.Position != (Position{6, 4}) {
		t.Errorf("original pawn = %v; want pawn still on (6,4)", p)
	}
	checkInvariants(t, b)
	checkInvariants(t, c)
}
