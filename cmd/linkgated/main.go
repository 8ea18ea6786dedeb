package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/ajdsjdasjh123sd/linkgate/internal/app"
)

func main() {
	// Optional .env for local development; the environment wins in production.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linkgated failed to start: %v", err)
	}
}
