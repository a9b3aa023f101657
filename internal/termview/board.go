// Package termview draws a board on a terminal.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/fatih/color"
)

const size = 8

var labels = color.New(color.FgHiBlack)

// Render writes b as eight rows of squares, rank labels on the left and file
// labels underneath, both read off the board's orientation. Squares in
// marked are highlighted.
func Render(w io.Writer, b *model.Board, marked map[model.Position]bool) {
	grid := b.Grid()
	for row := 0; row < size; row++ {
		rank := b.SquareName(model.Position{Row: row, Col: 0})[1:]
		labels.Fprintf(w, "%s ", rank)
		for col := 0; col < size; col++ {
			pos := model.Position{Row: row, Col: col}
			p := grid[row][col]
			cellColor(pos, p, marked).Fprint(w, cellText(p))
		}
		fmt.Fprintln(w)
	}

	var files strings.Builder
	files.WriteString("  ")
	for col := 0; col < size; col++ {
		files.WriteString(" " + b.SquareName(model.Position{Row: size - 1, Col: col})[:1] + " ")
	}
	labels.Fprintln(w, files.String())
}

func cellText(p *model.Piece) string {
	if p == nil {
		return "   "
	}
	return " " + string(p.Letter()) + " "
}

func cellColor(pos model.Position, p *model.Piece, marked map[model.Position]bool) *color.Color {
	bg := color.BgGreen
	switch {
	case marked[pos]:
		bg = color.BgRed
	case (pos.Row+pos.Col)%2 == 0:
		bg = color.BgHiWhite
	}
	c := color.New(bg)
	if p != nil {
		fg := color.FgBlack
		if p.Color == model.White {
			fg = color.FgHiBlue
		}
		c.Add(fg, color.Bold)
	}
	return c
}

// Status is the one-line summary shown under the board.
func Status(b *model.Board) string {
	result := b.TerminalState()
	switch result.Status {
	case model.Checkmate:
		return fmt.Sprintf("Checkmate, %s wins", result.Winner)
	case model.Stalemate:
		return "Stalemate, the game is drawn"
	}
	if b.IsInCheck(b.ToMove()) {
		return fmt.Sprintf("%s to move (check)", b.ToMove())
	}
	return fmt.Sprintf("%s to move", b.ToMove())
}

// History formats the move list as numbered pairs, one per line.
func History(moves []model.Move) string {
	var sb strings.Builder
	num := 1
	for i, m := range moves {
		if m.Color == model.White {
			fmt.Fprintf(&sb, "%d. %s", num, m.Notation)
			continue
		}
		if i == 0 {
			fmt.Fprintf(&sb, "%d. ...", num)
		}
		fmt.Fprintf(&sb, " %s\n", m.Notation)
		num++
	}
	if s := sb.String(); s != "" && !strings.HasSuffix(s, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}
