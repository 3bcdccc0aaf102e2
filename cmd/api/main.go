// Command api serves the movie catalog HTTP API.
//
// @title                       Movie Catalog API
// @version                     1.0
// @description                 Browse, search and curate a movie catalog enriched with live TMDB metadata.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelhouse/movie-catalog/internal/api"
	"github.com/reelhouse/movie-catalog/internal/app"
	"github.com/reelhouse/movie-catalog/internal/infrastructure/config"
	"github.com/reelhouse/movie-catalog/internal/infrastructure/http/handlers"
	"github.com/reelhouse/movie-catalog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "movie-catalog-api"})
		l := logger.Get()
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "movie-catalog-api",
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap")
	}
	log.Info().Str("database", cfg.Mongo.Database).Bool("redis", a.Redis != nil).Msg("connected")

	e := api.NewRouter(api.Services{
		Auth:       a.Auth,
		Users:      a.Users,
		Catalog:    a.Catalog,
		References: a.References,
	}, api.Options{
		Logger:    logger.Component("http"),
		Readiness: handlers.NewHealthDependenciesHandler(a.DB, a.Redis),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	a.Close(shutdownCtx)
	log.Info().Msg("stopped")
}
