package handler

import "time"

// --- Request types ---

// listMoviesQuery binds GET /api/movies. Genres is a comma-separated id list.
// Page is kept raw so an unparsable value falls back to the first page.
type listMoviesQuery struct {
	Page     string `query:"page"`
	Keyword  string `query:"keyword"`
	Genres   string `query:"genres"`
	Director string `query:"director"`
}

type createMovieRequest struct {
	Title       string   `json:"title"`
	ReleaseYear int      `json:"releaseYear"`
	Plot        string   `json:"plot"`
	Runtime     int      `json:"runtime"`
	Director    string   `json:"director"`
	Actors      []string `json:"actors"`
	Genres      []string `json:"genres"`
	Poster      string   `json:"poster"`
	TMDBID      int      `json:"tmdbId"`
}

// updateMovieRequest distinguishes an absent field (nil) from a present one.
type updateMovieRequest struct {
	Title       *string   `json:"title"`
	ReleaseYear *int      `json:"releaseYear"`
	Plot        *string   `json:"plot"`
	Runtime     *int      `json:"runtime"`
	Director    *string   `json:"director"`
	Actors      *[]string `json:"actors"`
	Genres      *[]string `json:"genres"`
	Poster      *string   `json:"poster"`
}

// --- Response types ---

// movieResponse is a stored movie with relationships as ids.
type movieResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Plot        string    `json:"plot"`
	ReleaseYear int       `json:"releaseYear"`
	Runtime     int       `json:"runtime"`
	Poster      string    `json:"poster"`
	Director    string    `json:"director"`
	Actors      []string  `json:"actors"`
	Genres      []string  `json:"genres"`
	TMDBID      int       `json:"tmdbId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type personRef struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	BirthYear int    `json:"birthYear,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Image     string `json:"image,omitempty"`
}

type genreRef struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// movieDetailResponse is a movie with director, actors and genres populated.
// Director is null when the stored reference is dangling.
type movieDetailResponse struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Plot        string      `json:"plot"`
	ReleaseYear int         `json:"releaseYear"`
	Runtime     int         `json:"runtime"`
	Poster      string      `json:"poster"`
	Director    *personRef  `json:"director"`
	Actors      []personRef `json:"actors"`
	Genres      []genreRef  `json:"genres"`
	TMDBID      int         `json:"tmdbId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type moviePageResponse struct {
	Movies []movieDetailResponse `json:"movies"`
	Page   int                   `json:"page"`
	Pages  int                   `json:"pages"`
	Total  int64                 `json:"total"`
}

type creditResponse struct {
	Name        string  `json:"name"`
	TMDBID      int     `json:"tmdbId"`
	Job         string  `json:"job,omitempty"`
	Character   string  `json:"character,omitempty"`
	ProfilePath *string `json:"profile_path,omitempty"`
}

type realTimeDataResponse struct {
	Director     *creditResponse  `json:"director"`
	Cast         []creditResponse `json:"cast"`
	PosterPath   *string          `json:"poster_path"`
	BackdropPath *string          `json:"backdrop_path"`
	VoteAverage  float64          `json:"vote_average"`
	VoteCount    int              `json:"vote_count"`
}

// enrichedMovieResponse flattens the stored movie and the live metadata
// into one object. TMDBID shadows the stored tmdbId with the matched one.
type enrichedMovieResponse struct {
	movieDetailResponse
	TMDBDataFound bool                  `json:"tmdbDataFound"`
	TMDBID        int                   `json:"tmdbId,omitempty"`
	RealTimeData  *realTimeDataResponse `json:"realTimeData,omitempty"`
	Error         string                `json:"error,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
