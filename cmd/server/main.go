package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"epms/internal/app/server"
	"epms/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("EPMS server listening on %s", cfg.Addr)
	if err := app.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
