package ports

import (
	"context"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
)

// MoviePageSize is the fixed number of movies returned per list page.
const MoviePageSize = 16

// ListMoviesInput carries all parameters for the list endpoint.
type ListMoviesInput struct {
	Page       int // 1-based; values below 1 are treated as 1
	Keyword    string
	GenreIDs   []string
	DirectorID string
}

// MoviePage is one page of populated movies.
type MoviePage struct {
	Movies []domain.MovieDetail
	Page   int
	Pages  int
	Total  int64
}

// CreateMovieInput carries the fields needed to create a movie.
type CreateMovieInput struct {
	Title       string   `json:"title"       validate:"required"`
	ReleaseYear int      `json:"releaseYear" validate:"required,gte=1900"`
	Plot        string   `json:"plot"        validate:"required"`
	Runtime     int      `json:"runtime"     validate:"required,gte=1"`
	DirectorID  string   `json:"director"    validate:"required"`
	ActorIDs    []string `json:"actors"      validate:"dive,required"`
	GenreIDs    []string `json:"genres"      validate:"dive,required"`
	Poster      string   `json:"poster"`
	TMDBID      int      `json:"tmdbId"`
}

// UpdateMovieInput is a partial update: nil fields are left unchanged.
type UpdateMovieInput struct {
	Title       *string
	ReleaseYear *int
	Plot        *string
	Runtime     *int
	DirectorID  *string
	ActorIDs    *[]string
	GenreIDs    *[]string
	Poster      *string
}

// CatalogService defines the movie use cases.
type CatalogService interface {
	ListMovies(ctx context.Context, input ListMoviesInput) (*MoviePage, error)
	GetMovie(ctx context.Context, id string) (*domain.MovieDetail, error)
	GetEnrichedMovie(ctx context.Context, id string) (*domain.EnrichedMovie, error)
	CreateMovie(ctx context.Context, input CreateMovieInput) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, id string, input UpdateMovieInput) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

// MovieSummary is the short movie view listed on director, actor and genre pages.
type MovieSummary struct {
	ID          string
	Title       string
	ReleaseYear int
	Poster      string
}

// PersonDetail is a director or actor with its movies resolved.
type PersonDetail struct {
	domain.Person
	Movies []MovieSummary
}

// GenreDetail is a genre with its movies resolved.
type GenreDetail struct {
	domain.Genre
	Movies []MovieSummary
}

// ReferenceService exposes the read-only director, actor and genre listings.
type ReferenceService interface {
	ListDirectors(ctx context.Context) ([]domain.Person, error)
	GetDirector(ctx context.Context, id string) (*PersonDetail, error)
	ListActors(ctx context.Context) ([]domain.Person, error)
	GetActor(ctx context.Context, id string) (*PersonDetail, error)
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	GetGenre(ctx context.Context, id string) (*GenreDetail, error)
}

// ImportOutcome classifies the result of importing one external movie.
type ImportOutcome string

const (
	ImportCreated ImportOutcome = "imported"
	ImportSkipped ImportOutcome = "skipped"
	ImportFailed  ImportOutcome = "failed"
)

// ImportResult reports what happened to one external id.
type ImportResult struct {
	TMDBID  int
	Outcome ImportOutcome
	MovieID string
	Title   string
	Err     error
}

// Importer imports one movie from the metadata service keyed by its
// external id. Importing the same id twice creates nothing new.
type Importer interface {
	Import(ctx context.Context, tmdbID int) ImportResult
}
