package ports

import (
	"context"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
)

// MovieFilter carries the query parameters for listing movies.
type MovieFilter struct {
	Keyword    string   // optional: case-insensitive substring of title
	GenreIDs   []string // optional: movie matches when any of its genres is listed
	DirectorID string   // optional
	Skip       int
	Limit      int
}

// MovieRepository defines persistence operations for movies.
type MovieRepository interface {
	// Create inserts m and assigns its ID and CreatedAt.
	Create(ctx context.Context, m *domain.Movie) error
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Movie, error)
	FindByTMDBID(ctx context.Context, tmdbID int) (*domain.Movie, error)
	// List returns one page of movies, newest first, and the total number of matches.
	List(ctx context.Context, filter MovieFilter) ([]domain.Movie, int64, error)
	// ForEach streams every stored movie to fn, stopping at the first error.
	ForEach(ctx context.Context, fn func(domain.Movie) error) error
	Update(ctx context.Context, m *domain.Movie) error
	Delete(ctx context.Context, id string) error
}

// BackReferenceStore maintains the derived movie id lists kept on
// directors, actors and genres.
type BackReferenceStore interface {
	// AddMovie adds movieID to the movie list of every record in ids.
	// Adding an id that is already present is a no-op.
	AddMovie(ctx context.Context, ids []string, movieID string) error
	// RemoveMovie removes movieID from the movie list of every record in ids.
	RemoveMovie(ctx context.Context, ids []string, movieID string) error
}

// PersonRepository stores directors or actors; one instance per collection.
type PersonRepository interface {
	BackReferenceStore
	Create(ctx context.Context, p *domain.Person) error
	FindByID(ctx context.Context, id string) (*domain.Person, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Person, error)
	FindByTMDBID(ctx context.Context, tmdbID int) (*domain.Person, error)
	List(ctx context.Context) ([]domain.Person, error)
}

// GenreRepository stores genres.
type GenreRepository interface {
	BackReferenceStore
	Create(ctx context.Context, g *domain.Genre) error
	FindByID(ctx context.Context, id string) (*domain.Genre, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Genre, error)
	FindByTMDBID(ctx context.Context, tmdbID int) (*domain.Genre, error)
	FindByName(ctx context.Context, name string) (*domain.Genre, error)
	List(ctx context.Context) ([]domain.Genre, error)
}
