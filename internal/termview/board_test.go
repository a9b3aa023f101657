package termview

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	tests := []struct {
		orientation model.Color
		first, last string
		files       string
	}{
		{model.White, "8  r  n  b  q  k  b  n  r ", "1  R  N  B  Q  K  B  N  R ", "   a  b  c  d  e  f  g  h "},
		{model.Black, "1  R  N  B  K  Q  B  N  R ", "8  r  n  b  k  q  b  n  r ", "   h  g  f  e  d  c  b  a "},
	}
	for _, tt := range tests {
		t.Run(string(tt.orientation), func(t *testing.T) {
			var buf bytes.Buffer
			Render(&buf, model.NewBoard(tt.orientation), nil)
			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if len(lines) != 9 {
				t.Fatalf("rendered %d lines; want 9:\n%s", len(lines), buf.String())
			}
			want := []string{tt.first, tt.last, tt.files}
			got := []string{lines[0], lines[7], lines[8]}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
			if lines[4] != "4"+strings.Repeat("   ", 8)+" " && lines[4] != "5"+strings.Repeat("   ", 8)+" " {
				t.Errorf("empty rank rendered as %q", lines[4])
			}
		})
	}
}

func TestStatus(t *testing.T) {
	b := model.NewBoard(model.White)
	if got := Status(b); got != "white to move" {
		t.Errorf("Status() = %q; want white to move", got)
	}
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		from, to, err := b.ParseMove(mv)
		if err != nil {
			t.Fatalf("ParseMove(%s) error: %v", mv, err)
		}
		if _, err := b.ApplyMove(from, to); err != nil {
			t.Fatalf("ApplyMove(%s) error: %v", mv, err)
		}
	}
	if got := Status(b); got != "Checkmate, black wins" {
		t.Errorf("Status() = %q; want Checkmate, black wins", got)
	}
	want := "1. f3 e5\n2. g4 Qh4#\n"
	if got := History(b.History()); got != want {
		t.Errorf("History() = %q; want %q", got, want)
	}
}

func TestHistoryStartingWithBlack(t *testing.T) {
	moves := []model.Move{
		{Color: model.Black, Notation: "d5"},
		{Color: model.White, Notation: "Ke2"},
	}
	if got, want := History(moves), "1. ... d5\n2. Ke2\n"; got != want {
		t.Errorf("History() = %q; want %q", got, want)
	}
}
