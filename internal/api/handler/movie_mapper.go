package handler

import (
	"strconv"
	"strings"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

// --- Request → Service input ---

func toListInput(q listMoviesQuery) ports.ListMoviesInput {
	return ports.ListMoviesInput{
		Page:       parsePage(q.Page),
		Keyword:    strings.TrimSpace(q.Keyword),
		GenreIDs:   splitIDs(q.Genres),
		DirectorID: strings.TrimSpace(q.Director),
	}
}

// parsePage returns the requested page, or 1 when raw is absent or not a
// number. Values below 1 are clamped by the service.
func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return page
}

// splitIDs parses "a,b,,c" into [a b c].
func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func toCreateMovieInput(req createMovieRequest) ports.CreateMovieInput {
	return ports.CreateMovieInput{
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		Plot:        req.Plot,
		Runtime:     req.Runtime,
		DirectorID:  req.Director,
		ActorIDs:    req.Actors,
		GenreIDs:    req.Genres,
		Poster:      req.Poster,
		TMDBID:      req.TMDBID,
	}
}

func toUpdateMovieInput(req updateMovieRequest) ports.UpdateMovieInput {
	return ports.UpdateMovieInput{
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		Plot:        req.Plot,
		Runtime:     req.Runtime,
		DirectorID:  req.Director,
		ActorIDs:    req.Actors,
		GenreIDs:    req.Genres,
		Poster:      req.Poster,
	}
}

// --- Service result → HTTP response ---

func toMovieResponse(m *domain.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Plot:        m.Plot,
		ReleaseYear: m.ReleaseYear,
		Runtime:     m.Runtime,
		Poster:      m.Poster,
		Director:    m.DirectorID,
		Actors:      nonNil(m.ActorIDs),
		Genres:      nonNil(m.GenreIDs),
		TMDBID:      m.TMDBID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// toMovieDetailResponse populates relationships. brief keeps only names, as
// used by the list endpoint.
func toMovieDetailResponse(d *domain.MovieDetail, brief bool) movieDetailResponse {
	resp := movieDetailResponse{
		ID:          d.ID,
		Title:       d.Title,
		Plot:        d.Plot,
		ReleaseYear: d.ReleaseYear,
		Runtime:     d.Runtime,
		Poster:      d.Poster,
		Actors:      make([]personRef, 0, len(d.Actors)),
		Genres:      make([]genreRef, 0, len(d.Genres)),
		TMDBID:      d.TMDBID,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.Director != nil {
		ref := toPersonRef(*d.Director, brief)
		resp.Director = &ref
	}
	for _, a := range d.Actors {
		resp.Actors = append(resp.Actors, toPersonRef(a, brief))
	}
	for _, g := range d.Genres {
		ref := genreRef{ID: g.ID, Name: g.Name}
		if !brief {
			ref.Description = g.Description
		}
		resp.Genres = append(resp.Genres, ref)
	}
	return resp
}

func toPersonRef(p domain.Person, brief bool) personRef {
	ref := personRef{ID: p.ID, Name: p.Name}
	if !brief {
		ref.BirthYear = p.BirthYear
		ref.Bio = p.Bio
		ref.Image = p.Image
	}
	return ref
}

func toMoviePageResponse(p *ports.MoviePage) moviePageResponse {
	resp := moviePageResponse{
		Movies: make([]movieDetailResponse, 0, len(p.Movies)),
		Page:   p.Page,
		Pages:  p.Pages,
		Total:  p.Total,
	}
	for i := range p.Movies {
		resp.Movies = append(resp.Movies, toMovieDetailResponse(&p.Movies[i], true))
	}
	return resp
}

func toEnrichedMovieResponse(m *domain.EnrichedMovie) enrichedMovieResponse {
	resp := enrichedMovieResponse{
		movieDetailResponse: toMovieDetailResponse(&m.MovieDetail, false),
		TMDBDataFound:       m.Found,
		TMDBID:              m.MovieDetail.TMDBID,
		Error:               m.Note,
	}
	if !m.Found || m.RealTime == nil {
		return resp
	}

	rt := m.RealTime
	resp.TMDBID = m.Enrichment.TMDBID
	data := &realTimeDataResponse{
		Cast:         make([]creditResponse, 0, len(rt.Cast)),
		PosterPath:   optional(rt.PosterPath),
		BackdropPath: optional(rt.BackdropPath),
		VoteAverage:  rt.VoteAverage,
		VoteCount:    rt.VoteCount,
	}
	if rt.Director != nil {
		data.Director = &creditResponse{Name: rt.Director.Name, TMDBID: rt.Director.TMDBID, Job: rt.Director.Job}
	}
	for _, c := range rt.Cast {
		data.Cast = append(data.Cast, creditResponse{
			Name:        c.Name,
			TMDBID:      c.TMDBID,
			Character:   c.Character,
			ProfilePath: optional(c.ProfilePath),
		})
	}
	resp.RealTimeData = data
	return resp
}

func toPersonResponse(p domain.Person) personResponse {
	return personResponse{
		ID:        p.ID,
		Name:      p.Name,
		BirthYear: p.BirthYear,
		Bio:       p.Bio,
		Image:     p.Image,
		TMDBID:    p.TMDBID,
		Movies:    nonNil(p.MovieIDs),
		CreatedAt: p.CreatedAt.UTC(),
	}
}

func toGenreResponse(g domain.Genre) genreResponse {
	return genreResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		TMDBID:      g.TMDBID,
		Movies:      nonNil(g.MovieIDs),
		CreatedAt:   g.CreatedAt.UTC(),
	}
}

func toMovieSummaries(movies []ports.MovieSummary) []movieSummaryResponse {
	out := make([]movieSummaryResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, movieSummaryResponse{ID: m.ID, Title: m.Title, ReleaseYear: m.ReleaseYear, Poster: m.Poster})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
