package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/korobox/webtier/internal/config"
	"github.com/korobox/webtier/internal/logging"
	"github.com/korobox/webtier/internal/server"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.NewDefault()
	ctx := context.Background()

	log.Info(ctx, "starting gateway", "env", cfg.Env, "port", cfg.Port, "backend", cfg.BackendURL)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(cfg, log)}

	go func() {
		log.Info(ctx, "listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info(ctx, "shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "error during shutdown", "err", err)
	}
	log.Info(ctx, "server gracefully stopped")
}
