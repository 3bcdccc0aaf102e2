package ports

import (
	"context"
	"strconv"
	"strings"
)

// MetadataCandidate is one search hit from the external movie service.
type MetadataCandidate struct {
	ID          int
	Title       string
	ReleaseDate string // YYYY-MM-DD, may be empty
	PosterPath  string
}

// ReleaseYear returns the year part of ReleaseDate, or 0 when unknown.
func (c MetadataCandidate) ReleaseYear() int {
	return yearOf(c.ReleaseDate)
}

// MetadataCredit is a cast or crew entry.
type MetadataCredit struct {
	ID          int
	Name        string
	Job         string // crew only
	Character   string // cast only
	ProfilePath string
}

// MetadataGenre is a genre as named by the external service.
type MetadataGenre struct {
	ID   int
	Name string
}

// MetadataDetails is the full record for one external movie, credits included.
type MetadataDetails struct {
	ID           int
	Title        string
	Overview     string
	ReleaseDate  string
	Runtime      int
	PosterPath   string
	BackdropPath string
	VoteAverage  float64
	VoteCount    int
	Genres       []MetadataGenre
	Cast         []MetadataCredit // billing order
	Crew         []MetadataCredit
}

// ReleaseYear returns the year part of ReleaseDate, or 0 when unknown.
func (d MetadataDetails) ReleaseYear() int {
	return yearOf(d.ReleaseDate)
}

// MetadataGateway is the client to the external movie-information service.
// Implementations do not retry.
type MetadataGateway interface {
	SearchMovies(ctx context.Context, title string) ([]MetadataCandidate, error)
	// MovieDetails returns nil details and a nil error when the service has no such movie.
	MovieDetails(ctx context.Context, id int) (*MetadataDetails, error)
}

func yearOf(date string) int {
	head, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return year
}
