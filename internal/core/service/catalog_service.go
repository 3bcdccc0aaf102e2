package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
	"github.com/reelhouse/movie-catalog/internal/pkg/validation"
)

// Field rules shared by create and partial update.
const (
	ruleTitle    = "required"
	ruleYear     = "required,gte=1900"
	rulePlot     = "required"
	ruleRuntime  = "required,gte=1"
	ruleDirector = "required"
	ruleRefIDs   = "dive,required"
)

// CatalogStore groups the collections the catalog reads and writes.
type CatalogStore struct {
	Movies    ports.MovieRepository
	Directors ports.PersonRepository
	Actors    ports.PersonRepository
	Genres    ports.GenreRepository
}

// CatalogMetrics receives catalog events. All methods must be safe for
// concurrent use.
type CatalogMetrics interface {
	MovieWritten(op string)
	BackReferenceFailed(collection string)
	Enrichment(result string)
}

type nopCatalogMetrics struct{}

func (nopCatalogMetrics) MovieWritten(string)        {}
func (nopCatalogMetrics) BackReferenceFailed(string) {}
func (nopCatalogMetrics) Enrichment(string)          {}

type CatalogService struct {
	store    CatalogStore
	metadata ports.MetadataGateway
	validate *validation.Validator
	metrics  CatalogMetrics
	logger   zerolog.Logger
	now      func() time.Time
}

// NewCatalogService wires the catalog use cases. metrics may be nil.
func NewCatalogService(store CatalogStore, metadata ports.MetadataGateway, metrics CatalogMetrics, logger zerolog.Logger) *CatalogService {
	if metrics == nil {
		metrics = nopCatalogMetrics{}
	}
	return &CatalogService{
		store:    store,
		metadata: metadata,
		validate: validation.New(),
		metrics:  metrics,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListMovies returns one page of movies, newest first, with director,
// actor and genre names resolved.
func (s *CatalogService) ListMovies(ctx context.Context, in ports.ListMoviesInput) (*ports.MoviePage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}

	movies, total, err := s.store.Movies.List(ctx, ports.MovieFilter{
		Keyword:    in.Keyword,
		GenreIDs:   in.GenreIDs,
		DirectorID: in.DirectorID,
		Skip:       (page - 1) * ports.MoviePageSize,
		Limit:      ports.MoviePageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	details, err := s.populate(ctx, movies)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return &ports.MoviePage{
		Movies: details,
		Page:   page,
		Pages:  pageCount(total, ports.MoviePageSize),
		Total:  total,
	}, nil
}

func pageCount(total int64, size int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// GetMovie returns one movie fully populated.
func (s *CatalogService) GetMovie(ctx context.Context, id string) (*domain.MovieDetail, error) {
	m, err := s.store.Movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.populate(ctx, []domain.Movie{*m})
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return &details[0], nil
}

// CreateMovie validates input, stores the movie and then adds its id to the
// back-reference lists of its director, actors and genres. Back-reference
// failures are logged and do not fail the call.
func (s *CatalogService) CreateMovie(ctx context.Context, in ports.CreateMovieInput) (*domain.Movie, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, &in.DirectorID, &in.ActorIDs, &in.GenreIDs); err != nil {
		return nil, err
	}

	poster := in.Poster
	if poster == "" {
		poster = domain.PosterPlaceholder
	}
	now := s.now()
	m := &domain.Movie{
		Title:       in.Title,
		Plot:        in.Plot,
		ReleaseYear: in.ReleaseYear,
		Runtime:     in.Runtime,
		Poster:      poster,
		DirectorID:  in.DirectorID,
		ActorIDs:    nonNil(in.ActorIDs),
		GenreIDs:    nonNil(in.GenreIDs),
		TMDBID:      in.TMDBID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Movies.Create(ctx, m); err != nil {
		s.logger.Error().Err(err).Str("title", in.Title).Msg("failed to create movie")
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.addBackReferences(ctx, "directors", s.store.Directors, []string{m.DirectorID}, m.ID)
	s.addBackReferences(ctx, "actors", s.store.Actors, m.ActorIDs, m.ID)
	s.addBackReferences(ctx, "genres", s.store.Genres, m.GenreIDs, m.ID)

	s.metrics.MovieWritten("create")
	s.logger.Info().Str("movie_id", m.ID).Str("title", m.Title).Msg("movie created")
	return m, nil
}

// UpdateMovie applies the fields present in input. A changed director moves
// the back-reference from the old director to the new one; a provided actor
// or genre list replaces the previous list and its back-references wholesale.
func (s *CatalogService) UpdateMovie(ctx context.Context, id string, in ports.UpdateMovieInput) (*domain.Movie, error) {
	if err := s.validateUpdate(in); err != nil {
		return nil, err
	}

	m, err := s.store.Movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in.DirectorID, in.ActorIDs, in.GenreIDs); err != nil {
		return nil, err
	}

	before := *m
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.ReleaseYear != nil {
		m.ReleaseYear = *in.ReleaseYear
	}
	if in.Plot != nil {
		m.Plot = *in.Plot
	}
	if in.Runtime != nil {
		m.Runtime = *in.Runtime
	}
	if in.Poster != nil {
		m.Poster = *in.Poster
		if m.Poster == "" {
			m.Poster = domain.PosterPlaceholder
		}
	}
	if in.DirectorID != nil {
		m.DirectorID = *in.DirectorID
	}
	if in.ActorIDs != nil {
		m.ActorIDs = nonNil(*in.ActorIDs)
	}
	if in.GenreIDs != nil {
		m.GenreIDs = nonNil(*in.GenreIDs)
	}
	m.UpdatedAt = s.now()

	if err := s.store.Movies.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	if m.DirectorID != before.DirectorID {
		s.removeBackReferences(ctx, "directors", s.store.Directors, []string{before.DirectorID}, m.ID)
		s.addBackReferences(ctx, "directors", s.store.Directors, []string{m.DirectorID}, m.ID)
	}
	if in.ActorIDs != nil {
		s.removeBackReferences(ctx, "actors", s.store.Actors, before.ActorIDs, m.ID)
		s.addBackReferences(ctx, "actors", s.store.Actors, m.ActorIDs, m.ID)
	}
	if in.GenreIDs != nil {
		s.removeBackReferences(ctx, "genres", s.store.Genres, before.GenreIDs, m.ID)
		s.addBackReferences(ctx, "genres", s.store.Genres, m.GenreIDs, m.ID)
	}

	s.metrics.MovieWritten("update")
	s.logger.Info().Str("movie_id", m.ID).Msg("movie updated")
	return m, nil
}

// DeleteMovie retracts the movie from every back-reference list and then
// removes the record. Retraction failures are logged; the delete proceeds.
func (s *CatalogService) DeleteMovie(ctx context.Context, id string) error {
	m, err := s.store.Movies.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if m.DirectorID != "" {
		s.removeBackReferences(ctx, "directors", s.store.Directors, []string{m.DirectorID}, m.ID)
	}
	s.removeBackReferences(ctx, "actors", s.store.Actors, m.ActorIDs, m.ID)
	s.removeBackReferences(ctx, "genres", s.store.Genres, m.GenreIDs, m.ID)

	if err := s.store.Movies.Delete(ctx, m.ID); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.metrics.MovieWritten("delete")
	s.logger.Info().Str("movie_id", m.ID).Msg("movie removed")
	return nil
}

func (s *CatalogService) validateUpdate(in ports.UpdateMovieInput) error {
	ve := &domain.ValidationError{}
	if in.Title != nil {
		s.validate.Field(ve, "title", *in.Title, ruleTitle)
	}
	if in.ReleaseYear != nil {
		s.validate.Field(ve, "releaseYear", *in.ReleaseYear, ruleYear)
	}
	if in.Plot != nil {
		s.validate.Field(ve, "plot", *in.Plot, rulePlot)
	}
	if in.Runtime != nil {
		s.validate.Field(ve, "runtime", *in.Runtime, ruleRuntime)
	}
	if in.DirectorID != nil {
		s.validate.Field(ve, "director", *in.DirectorID, ruleDirector)
	}
	if in.ActorIDs != nil {
		s.validate.Field(ve, "actors", *in.ActorIDs, ruleRefIDs)
	}
	if in.GenreIDs != nil {
		s.validate.Field(ve, "genres", *in.GenreIDs, ruleRefIDs)
	}
	return ve.OrNil()
}

// checkReferences verifies that every referenced record exists. nil
// arguments are skipped.
func (s *CatalogService) checkReferences(ctx context.Context, directorID *string, actorIDs, genreIDs *[]string) error {
	var missing []string

	if directorID != nil {
		if _, err := s.store.Directors.FindByID(ctx, *directorID); err != nil {
			if !errors.Is(err, domain.ErrDirectorNotFound) {
				return fmt.Errorf("check director: %w", err)
			}
			missing = append(missing, "director "+*directorID)
		}
	}
	if actorIDs != nil && len(*actorIDs) > 0 {
		found, err := s.store.Actors.FindByIDs(ctx, *actorIDs)
		if err != nil {
			return fmt.Errorf("check actors: %w", err)
		}
		missing = append(missing, missingIDs("actor", *actorIDs, personIDs(found))...)
	}
	if genreIDs != nil && len(*genreIDs) > 0 {
		found, err := s.store.Genres.FindByIDs(ctx, *genreIDs)
		if err != nil {
			return fmt.Errorf("check genres: %w", err)
		}
		missing = append(missing, missingIDs("genre", *genreIDs, genreIDSet(found))...)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrReferenceNotFound, joinComma(missing))
	}
	return nil
}

func (s *CatalogService) addBackReferences(ctx context.Context, collection string, store ports.BackReferenceStore, ids []string, movieID string) {
	if len(ids) == 0 {
		return
	}
	if err := store.AddMovie(ctx, ids, movieID); err != nil {
		s.metrics.BackReferenceFailed(collection)
		s.logger.Warn().Err(err).
			Str("collection", collection).
			Strs("ids", ids).
			Str("movie_id", movieID).
			Msg("failed to add back-reference")
	}
}

func (s *CatalogService) removeBackReferences(ctx context.Context, collection string, store ports.BackReferenceStore, ids []string, movieID string) {
	if len(ids) == 0 {
		return
	}
	if err := store.RemoveMovie(ctx, ids, movieID); err != nil {
		s.metrics.BackReferenceFailed(collection)
		s.logger.Warn().Err(err).
			Str("collection", collection).
			Strs("ids", ids).
			Str("movie_id", movieID).
			Msg("failed to remove back-reference")
	}
}

// populate resolves the references of movies with one batched lookup per
// collection. Dangling references are dropped from the result.
func (s *CatalogService) populate(ctx context.Context, movies []domain.Movie) ([]domain.MovieDetail, error) {
	out := make([]domain.MovieDetail, len(movies))
	if len(movies) == 0 {
		return out, nil
	}

	var directorIDs, actorIDs, genreIDs []string
	for _, m := range movies {
		if m.DirectorID != "" {
			directorIDs = append(directorIDs, m.DirectorID)
		}
		actorIDs = append(actorIDs, m.ActorIDs...)
		genreIDs = append(genreIDs, m.GenreIDs...)
	}

	directors, err := s.lookupPersons(ctx, s.store.Directors, directorIDs)
	if err != nil {
		return nil, fmt.Errorf("populate directors: %w", err)
	}
	actors, err := s.lookupPersons(ctx, s.store.Actors, actorIDs)
	if err != nil {
		return nil, fmt.Errorf("populate actors: %w", err)
	}
	genres := map[string]domain.Genre{}
	if ids := unique(genreIDs); len(ids) > 0 {
		found, err := s.store.Genres.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("populate genres: %w", err)
		}
		for _, g := range found {
			genres[g.ID] = g
		}
	}

	for i, m := range movies {
		d := domain.MovieDetail{
			Movie:  m,
			Actors: make([]domain.Person, 0, len(m.ActorIDs)),
			Genres: make([]domain.Genre, 0, len(m.GenreIDs)),
		}
		if p, ok := directors[m.DirectorID]; ok {
			d.Director = &p
		}
		for _, id := range m.ActorIDs {
			if p, ok := actors[id]; ok {
				d.Actors = append(d.Actors, p)
			}
		}
		for _, id := range m.GenreIDs {
			if g, ok := genres[id]; ok {
				d.Genres = append(d.Genres, g)
			}
		}
		out[i] = d
	}
	return out, nil
}

func (s *CatalogService) lookupPersons(ctx context.Context, repo ports.PersonRepository, ids []string) (map[string]domain.Person, error) {
	out := map[string]domain.Person{}
	ids = unique(ids)
	if len(ids) == 0 {
		return out, nil
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range found {
		out[p.ID] = p
	}
	return out, nil
}
