package main

import (
	"log"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/bootstrap"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/config"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
