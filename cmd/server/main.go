package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shiven-Sharmaa/AmongUs/internal/config"
	"github.com/Shiven-Sharmaa/AmongUs/internal/logging"
	"github.com/Shiven-Sharmaa/AmongUs/internal/server"
	"github.com/Shiven-Sharmaa/AmongUs/internal/upstream"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		panic(err)
	}
	cfg := config.Load()

	if err := logging.Init(cfg.LogFile); err != nil {
		panic(err)
	}
	defer logging.Sync()

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout())
	srv := server.New(cfg, client)
	defer srv.Shutdown()

	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}
	go func() {
		logging.Log.Infof("crew view listening on %s upstream=%s", addr, cfg.UpstreamBaseURL)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logging.Log.Warnf("shutdown: %v", err)
	}
}
