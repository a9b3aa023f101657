package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/termview"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

const help = `moves: e2e4, e7e8=Q, O-O, O-O-O
commands: moves <square>, undo, reset, history, help, quit`

func initLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}

func main() {
	logPath := flag.String("log", "./chessterm.log", "path to log file")
	orientation := flag.String("orientation", string(model.White), "side at the bottom of the board: white or black")
	flag.Parse()
	initLog(*logPath, "CHESSTERM: ")

	side := model.Color(strings.ToLower(*orientation))
	if !side.Valid() {
		fmt.Fprintf(os.Stderr, "invalid orientation %q\n", *orientation)
		os.Exit(2)
	}

	game := service.NewGame(uuid.New().String(), "terminal", side)
	log.Printf("new game %s, %s orientation", game.ID, side)
	run(game, os.Stdin, os.Stdout)
}

func run(game *service.Game, in io.Reader, out io.Writer) {
	errs := color.New(color.FgRed)
	draw(game, out, nil)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return
		case "help":
			fmt.Fprintln(out, help)
		case "history":
			game.View(func(b *model.Board) { fmt.Fprint(out, termview.History(b.History())) })
		case "undo":
			m, _, err := game.Undo()
			if err != nil {
				errs.Fprintln(out, err)
				continue
			}
			log.Printf("took back %s", m.Notation)
			draw(game, out, nil)
		case "reset":
			game.Reset()
			log.Println("reset")
			draw(game, out, nil)
		case "moves":
			if len(fields) < 2 {
				errs.Fprintln(out, "usage: moves <square>")
				continue
			}
			marked, err := destinations(game, fields[1])
			if err != nil {
				errs.Fprintln(out, err)
				continue
			}
			draw(game, out, marked)
		default:
			m, _, err := game.MakeMoveText(fields[0])
			if err != nil {
				log.Printf("rejected %q: %v", fields[0], err)
				errs.Fprintln(out, err)
				continue
			}
			log.Printf("%s played %s", m.Color, m.Notation)
			draw(game, out, map[model.Position]bool{m.From: true, m.To: true})
		}
	}
}

func destinations(game *service.Game, square string) (map[model.Position]bool, error) {
	var (
		pos model.Position
		err error
	)
	game.View(func(b *model.Board) { pos, err = b.ParseSquare(square) })
	if err != nil {
		return nil, err
	}
	moves, err := game.LegalMoves(pos)
	if err != nil {
		return nil, err
	}
	marked := map[model.Position]bool{pos: true}
	for _, m := range moves {
		marked[m.To] = true
	}
	return marked, nil
}

func draw(game *service.Game, out io.Writer, marked map[model.Position]bool) {
	game.View(func(b *model.Board) {
		termview.Render(out, b, marked)
		fmt.Fprintln(out, termview.Status(b))
	})
}
