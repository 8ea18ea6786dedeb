package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ajdsjdasjh123sd/linkgate/internal/bot"
	"github.com/ajdsjdasjh123sd/linkgate/internal/config"
	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
)

func main() {
	// Optional .env for local development; the environment wins in production.
	_ = godotenv.Load()

	cfg := config.LoadBot()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	b, err := bot.New(cfg, loggerClient)
	if err != nil {
		log.Fatalf("❌ linkgate-bot failed to initialize: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		log.Fatalf("❌ linkgate-bot failed to start: %v", err)
	}
	loggerClient.Info("🚀 linkgate-bot running")

	<-ctx.Done()
	loggerClient.Info("⏳ Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	b.Close(shutdownCtx)

	loggerClient.Info("✅ linkgate-bot stopped cleanly")
}
