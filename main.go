package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"reelist/config"
	"reelist/handlers"
	"reelist/internal/database"
	"reelist/services/auth"
	"reelist/services/omdb"
	"reelist/services/recommend"
	"reelist/services/users"
	"reelist/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}

	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		}))
	}

	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabasePath})
	if err != nil {
		log.Fatalf("[main] database: %v", err)
	}
	defer db.Close()

	secret := cfg.Token.Secret
	if secret == "" {
		secret, err = utils.GenerateTokenSecret()
		if err != nil {
			log.Fatalf("[main] token secret: %v", err)
		}
		log.Printf("[main] REELIST_TOKEN_SECRET not set, generated an ephemeral secret; sessions reset on restart")
	}
	issuer := auth.NewJWTIssuer([]byte(secret), cfg.Token.TTL)

	lookup := omdb.NewClientWithBaseURL(cfg.OMDb.APIKey, cfg.OMDb.BaseURL)
	recommender := recommend.NewService(lookup)
	userService := users.NewService(db.Users)

	router := utils.NewRouter()
	if cfg.Limiter.Enabled {
		router.Use(utils.RateLimit(cfg.Limiter.RPS, cfg.Limiter.Burst))
	}
	handlers.RegisterRoutes(router,
		handlers.NewUsersHandler(userService, issuer),
		handlers.NewMoviesHandler(lookup, recommender, userService),
		issuer,
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		log.Printf("[main] listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
