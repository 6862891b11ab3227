package main

import (
	"log"

	"github.com/campus-hub/permission-service/migrate"
	"github.com/campus-hub/permission-service/seed"
	"github.com/campus-hub/permission-service/server"
)

func main() {
	if err := migrate.RunFromEnv(); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	if err := seed.RunFromEnv(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	cfg := server.GetConfig()
	srv := server.NewServer(cfg)
	if err := srv.Initialize(); err != nil {
		log.Fatalf("initialize failed: %v", err)
	}

	engine := server.NewGinEngine(srv)
	log.Printf("permission service listening on %s", cfg.HTTP.Addr)
	if err := engine.Run(cfg.HTTP.Addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
