package domain

import (
	"errors"
	"time"
)

// PosterPlaceholder is stored when a movie is created without a poster URL.
const PosterPlaceholder = "no-image.jpg"

var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrDirectorNotFound  = errors.New("director not found")
	ErrActorNotFound     = errors.New("actor not found")
	ErrGenreNotFound     = errors.New("genre not found")
	ErrReferenceNotFound = errors.New("referenced record not found")
	ErrDuplicateRecord   = errors.New("record already exists")
)

// IsNotFound reports whether err means a catalog record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMovieNotFound) ||
		errors.Is(err, ErrDirectorNotFound) ||
		errors.Is(err, ErrActorNotFound) ||
		errors.Is(err, ErrGenreNotFound)
}

// Movie is the stored catalog record. Relationship fields hold ids only;
// see MovieDetail for the populated view.
type Movie struct {
	ID          string
	Title       string
	Plot        string
	ReleaseYear int
	Runtime     int
	Poster      string
	DirectorID  string
	ActorIDs    []string
	GenreIDs    []string
	TMDBID      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Person is a director or an actor. Both live in their own collection but
// share the same shape.
type Person struct {
	ID        string
	Name      string
	BirthYear int
	Bio       string
	Image     string
	TMDBID    int
	MovieIDs  []string // back-reference, derived from Movie relationships
	CreatedAt time.Time
}

// Genre is a movie category.
type Genre struct {
	ID          string
	Name        string
	Description string
	TMDBID      int
	MovieIDs    []string // back-reference, derived from Movie relationships
	CreatedAt   time.Time
}

// MovieDetail is a Movie with its director, actors and genres resolved.
// Director is nil when the stored reference is dangling.
type MovieDetail struct {
	Movie
	Director *Person
	Actors   []Person
	Genres   []Genre
}
