package main

import (
	"log"
	"os"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/controller"
	"github.com/benbeisheim/chessrules-backend/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, cfg.Orientation)

	app := controller.NewApp(cfg, gameService)
	log.Printf("listening on %s, default orientation %s", cfg.Addr, cfg.Orientation)
	log.Fatal(app.Listen(cfg.Addr))
}
