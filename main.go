package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/mindmate-be/internal/ai"
	"github.com/isdelr/mindmate-be/internal/api"
	"github.com/isdelr/mindmate-be/internal/auth"
	"github.com/isdelr/mindmate-be/internal/config"
	"github.com/isdelr/mindmate-be/internal/logger"
	"github.com/isdelr/mindmate-be/internal/monitoring"
	"github.com/isdelr/mindmate-be/internal/services"
	"github.com/isdelr/mindmate-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	// Set up the AI collaborator; a missing key only disables it
	generator, err := ai.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AI client")
	}

	passwords, err := services.NewPasswordStorage(cfg.PasswordStorage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize password storage")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	sessionService := services.NewSessionService(hub)
	eventService := services.NewEventService(hub)
	accountService := services.NewAccountService(passwords)
	authService := services.NewAuthService(accountService, sessionService, eventService)
	progressService := services.NewProgressService(sessionService, eventService)
	adviceService := services.NewAdviceService(sessionService, eventService, generator)

	// Set up and run the background session reaper
	reaper, err := monitoring.NewSessionReaper(sessionService, eventService, cfg.SessionSweepCron, cfg.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session reaper")
	}
	reaper.Run()

	// Set up router
	router := api.NewRouter(api.Dependencies{
		Hub:            hub,
		Tokens:         auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL),
		SecureCookies:  cfg.IsProduction(),
		AllowedOrigins: cfg.CORSOrigins,
		Sessions:       sessionService,
		Auth:           authService,
		Progress:       progressService,
		Advice:         adviceService,
		Events:         eventService,
		Health:         monitoring.NewHealthChecker(sessionService, adviceService.Enabled),
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Bool("ai_enabled", adviceService.Enabled()).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reaper.Stop() // Stop the session reaper

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("Server exiting")
}
