package service

import (
	"context"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

const (
	// leadingCastSize is how many billed cast members the live view carries.
	leadingCastSize = 5
	directorJob     = "Director"

	enrichmentFailedNote = "Failed to fetch real-time data from TMDB"
)

// GetEnrichedMovie returns the stored movie together with a live view from
// the metadata service. Only a missing movie fails the call: any gateway
// problem degrades to a not-found enrichment.
func (s *CatalogService) GetEnrichedMovie(ctx context.Context, id string) (*domain.EnrichedMovie, error) {
	stored, err := s.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	enrichment := s.lookup(ctx, stored.Movie)
	merged := domain.Merge(*stored, enrichment)
	return &merged, nil
}

func (s *CatalogService) lookup(ctx context.Context, m domain.Movie) domain.Enrichment {
	candidates, err := s.metadata.SearchMovies(ctx, m.Title)
	if err != nil {
		s.logger.Warn().Err(err).Str("movie_id", m.ID).Str("title", m.Title).Msg("metadata search failed")
		s.metrics.Enrichment("error")
		return domain.EnrichmentMissing(enrichmentFailedNote)
	}
	if len(candidates) == 0 {
		s.metrics.Enrichment("no_match")
		return domain.EnrichmentMissing("")
	}

	best := selectCandidate(candidates, m.ReleaseYear)

	details, err := s.metadata.MovieDetails(ctx, best.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("movie_id", m.ID).Int("tmdb_id", best.ID).Msg("metadata details failed")
		s.metrics.Enrichment("error")
		return domain.EnrichmentMissing(enrichmentFailedNote)
	}
	if details == nil {
		s.metrics.Enrichment("no_match")
		return domain.EnrichmentMissing("")
	}

	s.metrics.Enrichment("found")
	return domain.EnrichmentFound(details.ID, realTimeData(details))
}

// selectCandidate picks the first candidate released in year, falling back
// to the first candidate. candidates must not be empty.
func selectCandidate(candidates []ports.MetadataCandidate, year int) ports.MetadataCandidate {
	for _, c := range candidates {
		if c.ReleaseYear() == year {
			return c
		}
	}
	return candidates[0]
}

func realTimeData(d *ports.MetadataDetails) domain.RealTimeData {
	rt := domain.RealTimeData{
		PosterPath:   d.PosterPath,
		BackdropPath: d.BackdropPath,
		VoteAverage:  d.VoteAverage,
		VoteCount:    d.VoteCount,
		Cast:         make([]domain.ExternalCredit, 0, leadingCastSize),
	}
	if dir, ok := findDirector(d.Crew); ok {
		rt.Director = &domain.ExternalCredit{
			Name:        dir.Name,
			TMDBID:      dir.ID,
			Job:         dir.Job,
			ProfilePath: dir.ProfilePath,
		}
	}
	for _, c := range leadingCast(d.Cast) {
		rt.Cast = append(rt.Cast, domain.ExternalCredit{
			Name:        c.Name,
			TMDBID:      c.ID,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
		})
	}
	return rt
}

func findDirector(crew []ports.MetadataCredit) (ports.MetadataCredit, bool) {
	for _, c := range crew {
		if c.Job == directorJob {
			return c, true
		}
	}
	return ports.MetadataCredit{}, false
}

func leadingCast(cast []ports.MetadataCredit) []ports.MetadataCredit {
	if len(cast) > leadingCastSize {
		return cast[:leadingCastSize]
	}
	return cast
}
