// Package app wires configuration, storage and services for the binaries
// under cmd/.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reelhouse/movie-catalog/internal/api/metrics"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
	"github.com/reelhouse/movie-catalog/internal/core/service"
	"github.com/reelhouse/movie-catalog/internal/infrastructure/config"
	mongostore "github.com/reelhouse/movie-catalog/internal/infrastructure/db/mongo"
	redisstore "github.com/reelhouse/movie-catalog/internal/infrastructure/db/redis"
	"github.com/reelhouse/movie-catalog/internal/infrastructure/tmdb"
)

// App holds the live connections and the services built on them.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client // nil when Redis was unreachable at startup

	Store    *mongostore.Store
	Metadata *tmdb.Client

	Auth       *service.AuthService
	Users      *service.UserService
	Catalog    *service.CatalogService
	References *service.ReferenceService
}

// New connects to MongoDB, ensures indexes and builds the services. Redis is
// optional: when it cannot be reached, logout revocation is disabled and a
// warning is logged.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}

	store := mongostore.NewStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	a := &App{
		Config: cfg,
		Logger: log,
		Mongo:  client,
		DB:     db,
		Store:  store,
		Metadata: tmdb.NewClient(tmdb.Config{
			APIKey:  cfg.TMDB.APIKey,
			BaseURL: cfg.TMDB.BaseURL,
			Timeout: cfg.TMDB.Timeout,
		}),
	}

	var revoker ports.TokenRevoker
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Password: cfg.Redis.Password})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable; logout revocation disabled")
	} else {
		a.Redis = rdb
		revoker = redisstore.NewTokenRevoker(rdb)
	}

	catalogStore := a.CatalogStore()
	a.Auth = service.NewAuthService(store.Users, revoker, cfg.JWTSecret, cfg.JWTTTL, log.With().Str("component", "auth").Logger())
	a.Users = service.NewUserService(store.Users, log.With().Str("component", "users").Logger())
	a.Catalog = service.NewCatalogService(catalogStore, a.Metadata, metrics.Recorder{}, log.With().Str("component", "catalog").Logger())
	a.References = service.NewReferenceService(catalogStore)

	return a, nil
}

// CatalogStore exposes the catalog collections to the services.
func (a *App) CatalogStore() service.CatalogStore {
	return service.CatalogStore{
		Movies:    a.Store.Movies,
		Directors: a.Store.Directors,
		Actors:    a.Store.Actors,
		Genres:    a.Store.Genres,
	}
}

// Close releases the connections.
func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("redis close")
		}
	}
	if err := a.Mongo.Disconnect(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("mongo disconnect")
	}
}
