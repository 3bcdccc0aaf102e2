package handler

import "time"

type personResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	BirthYear int       `json:"birthYear,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Image     string    `json:"image,omitempty"`
	TMDBID    int       `json:"tmdbId,omitempty"`
	Movies    []string  `json:"movies"`
	CreatedAt time.Time `json:"createdAt"`
}

type genreResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TMDBID      int       `json:"tmdbId,omitempty"`
	Movies      []string  `json:"movies"`
	CreatedAt   time.Time `json:"createdAt"`
}

type movieSummaryResponse struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
	Poster      string `json:"poster"`
}

// personDetailResponse replaces the movie id list with populated summaries.
type personDetailResponse struct {
	personResponse
	Movies []movieSummaryResponse `json:"movies"`
}

type genreDetailResponse struct {
	genreResponse
	Movies []movieSummaryResponse `json:"movies"`
}
