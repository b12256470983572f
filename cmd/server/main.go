package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go-jobscrape-server/internal/api"
	"go-jobscrape-server/internal/app"
	"go-jobscrape-server/internal/config"
	"go-jobscrape-server/internal/reporter"
	"go-jobscrape-server/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Engine: %s, port: %s", cfg.Engine, cfg.Port)

	s, cleanup, err := app.BuildScraper(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to init scraper: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("⚠️ Failed to stop playwright: %v", err)
		}
	}()

	var notifier api.Notifier
	if cfg.TelegramEnabled() {
		r, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			notifier = r
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(s, store.NewJobStore(), notifier)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(handler),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	//scrapes can take a navigation timeout plus landmark waits
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.NavigationTimeout+2*cfg.LandmarkTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Forced shutdown: %v", err)
	}
	handler.Wait()
	log.Println("🏁 Server stopped.")
}
