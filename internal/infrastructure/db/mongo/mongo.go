package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Store bundles every catalog repository over one database.
type Store struct {
	Movies    *MovieRepository
	Directors *PersonRepository
	Actors    *PersonRepository
	Genres    *GenreRepository
	Users     *UserRepository
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Movies:    NewMovieRepository(db),
		Directors: NewDirectorRepository(db),
		Actors:    NewActorRepository(db),
		Genres:    NewGenreRepository(db),
		Users:     NewUserRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for name, fn := range map[string]func(context.Context) error{
		collectionMovies:    s.Movies.EnsureIndexes,
		collectionDirectors: s.Directors.EnsureIndexes,
		collectionActors:    s.Actors.EnsureIndexes,
		collectionGenres:    s.Genres.EnsureIndexes,
		collectionUsers:     s.Users.EnsureIndexes,
	} {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}
