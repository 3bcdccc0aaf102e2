package service

import (
	"context"
	"fmt"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

// ReferenceService serves the read-only director, actor and genre views.
type ReferenceService struct {
	store CatalogStore
}

func NewReferenceService(store CatalogStore) *ReferenceService {
	return &ReferenceService{store: store}
}

func (s *ReferenceService) ListDirectors(ctx context.Context) ([]domain.Person, error) {
	return s.store.Directors.List(ctx)
}

func (s *ReferenceService) GetDirector(ctx context.Context, id string) (*ports.PersonDetail, error) {
	return s.personDetail(ctx, s.store.Directors, id)
}

func (s *ReferenceService) ListActors(ctx context.Context) ([]domain.Person, error) {
	return s.store.Actors.List(ctx)
}

func (s *ReferenceService) GetActor(ctx context.Context, id string) (*ports.PersonDetail, error) {
	return s.personDetail(ctx, s.store.Actors, id)
}

func (s *ReferenceService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.store.Genres.List(ctx)
}

func (s *ReferenceService) GetGenre(ctx context.Context, id string) (*ports.GenreDetail, error) {
	g, err := s.store.Genres.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	movies, err := s.summaries(ctx, g.MovieIDs)
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return &ports.GenreDetail{Genre: *g, Movies: movies}, nil
}

func (s *ReferenceService) personDetail(ctx context.Context, repo ports.PersonRepository, id string) (*ports.PersonDetail, error) {
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	movies, err := s.summaries(ctx, p.MovieIDs)
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &ports.PersonDetail{Person: *p, Movies: movies}, nil
}

// summaries resolves a back-reference list. Ids of movies that no longer
// exist are skipped.
func (s *ReferenceService) summaries(ctx context.Context, ids []string) ([]ports.MovieSummary, error) {
	out := make([]ports.MovieSummary, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	movies, err := s.store.Movies.FindByIDs(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	for _, m := range movies {
		out = append(out, ports.MovieSummary{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseYear: m.ReleaseYear,
			Poster:      m.Poster,
		})
	}
	return out, nil
}
