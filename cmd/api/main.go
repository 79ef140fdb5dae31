package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okuzmina/bookstand/internal/api"
	"github.com/okuzmina/bookstand/internal/catalog"
	"github.com/okuzmina/bookstand/internal/config"
	"github.com/okuzmina/bookstand/internal/ledger"
	"github.com/okuzmina/bookstand/internal/service"
	"github.com/okuzmina/bookstand/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open user store")
	}
	defer st.Close()

	// The ledger is rebuilt empty on every start: reservations are
	// session-scoped, only user records persist.
	cat := catalog.Default()
	led := ledger.New(cat)
	auth := service.NewAuthService(st, led)
	carts := service.NewCartService(st)

	handler := api.NewHandler(cat, led, auth, carts)
	router := api.NewRouter(handler)

	corsOpts := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsOpts.Handler(router),
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("db", cfg.DBPath).
			Int("books", cat.Size()).
			Msg("starting bookstand api")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Info().Msg("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
