package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// ImportMetrics receives one call per finished import.
type ImportMetrics interface {
	Imported(outcome string)
}

type movieCreator interface {
	CreateMovie(ctx context.Context, input ports.CreateMovieInput) (*domain.Movie, error)
}

// ImportService creates catalog movies from the metadata service, keyed by
// the external id rather than by free-text names. It is safe for concurrent
// use; gateway calls are paced by a shared limiter.
type ImportService struct {
	store    CatalogStore
	catalog  movieCreator
	metadata ports.MetadataGateway
	limiter  *rate.Limiter
	metrics  ImportMetrics
	logger   zerolog.Logger
}

// NewImportService returns an ImportService. A nil limiter disables pacing
// and a nil metrics sink is ignored.
func NewImportService(store CatalogStore, catalog movieCreator, metadata ports.MetadataGateway, limiter *rate.Limiter, metrics ImportMetrics, logger zerolog.Logger) *ImportService {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &ImportService{
		store:    store,
		catalog:  catalog,
		metadata: metadata,
		limiter:  limiter,
		metrics:  metrics,
		logger:   logger,
	}
}

// Import fetches tmdbID and stores it with its director, leading cast and
// genres, reusing records that were imported before.
func (s *ImportService) Import(ctx context.Context, tmdbID int) ports.ImportResult {
	res := s.importOne(ctx, tmdbID)
	if s.metrics != nil {
		s.metrics.Imported(string(res.Outcome))
	}

	var ev *zerolog.Event
	if res.Err != nil {
		ev = s.logger.Warn().Err(res.Err)
	} else {
		ev = s.logger.Info()
	}
	ev.Int("tmdb_id", tmdbID).Str("outcome", string(res.Outcome)).Str("title", res.Title).Msg("import finished")
	return res
}

func (s *ImportService) importOne(ctx context.Context, tmdbID int) ports.ImportResult {
	res := ports.ImportResult{TMDBID: tmdbID, Outcome: ports.ImportFailed}

	existing, err := s.store.Movies.FindByTMDBID(ctx, tmdbID)
	switch {
	case err == nil:
		res.Outcome, res.MovieID, res.Title = ports.ImportSkipped, existing.ID, existing.Title
		return res
	case !errors.Is(err, domain.ErrMovieNotFound):
		res.Err = fmt.Errorf("lookup movie: %w", err)
		return res
	}

	if err := s.limiter.Wait(ctx); err != nil {
		res.Err = err
		return res
	}
	details, err := s.metadata.MovieDetails(ctx, tmdbID)
	if err != nil {
		res.Err = fmt.Errorf("fetch details: %w", err)
		return res
	}
	if details == nil {
		res.Err = fmt.Errorf("tmdb movie %d does not exist", tmdbID)
		return res
	}
	res.Title = details.Title

	credit, ok := findDirector(details.Crew)
	if !ok {
		res.Err = fmt.Errorf("no director credit for %q", details.Title)
		return res
	}
	director, err := s.findOrCreatePerson(ctx, s.store.Directors, credit,
		fmt.Sprintf("Director known for their work on %s.", details.Title))
	if err != nil {
		res.Err = fmt.Errorf("director: %w", err)
		return res
	}

	cast := leadingCast(details.Cast)
	actorIDs := make([]string, 0, len(cast))
	for _, c := range cast {
		actor, err := s.findOrCreatePerson(ctx, s.store.Actors, c,
			fmt.Sprintf("Actor known for playing %s in %s.", c.Character, details.Title))
		if err != nil {
			res.Err = fmt.Errorf("actor %q: %w", c.Name, err)
			return res
		}
		actorIDs = append(actorIDs, actor.ID)
	}

	genreIDs := make([]string, 0, len(details.Genres))
	for _, g := range details.Genres {
		genre, err := s.findOrCreateGenre(ctx, g)
		if err != nil {
			res.Err = fmt.Errorf("genre %q: %w", g.Name, err)
			return res
		}
		genreIDs = append(genreIDs, genre.ID)
	}

	poster := ""
	if details.PosterPath != "" {
		poster = posterBaseURL + details.PosterPath
	}
	m, err := s.catalog.CreateMovie(ctx, ports.CreateMovieInput{
		Title:       details.Title,
		ReleaseYear: details.ReleaseYear(),
		Plot:        details.Overview,
		Runtime:     details.Runtime,
		DirectorID:  director.ID,
		ActorIDs:    actorIDs,
		GenreIDs:    genreIDs,
		Poster:      poster,
		TMDBID:      details.ID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			// Another import stored the same tmdbId in the meantime.
			res.Outcome = ports.ImportSkipped
			if existing, ferr := s.store.Movies.FindByTMDBID(ctx, tmdbID); ferr == nil {
				res.MovieID, res.Title = existing.ID, existing.Title
			}
			return res
		}
		res.Err = err
		return res
	}

	res.Outcome, res.MovieID = ports.ImportCreated, m.ID
	return res
}

func (s *ImportService) findOrCreatePerson(ctx context.Context, repo ports.PersonRepository, credit ports.MetadataCredit, bio string) (*domain.Person, error) {
	p, err := repo.FindByTMDBID(ctx, credit.ID)
	if err == nil {
		return p, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	p = &domain.Person{Name: credit.Name, Bio: bio, TMDBID: credit.ID, MovieIDs: []string{}}
	if credit.ProfilePath != "" {
		p.Image = posterBaseURL + credit.ProfilePath
	}
	if err := repo.Create(ctx, p); err != nil {
		// A concurrent import may have created the same person first.
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return repo.FindByTMDBID(ctx, credit.ID)
		}
		return nil, err
	}
	return p, nil
}

func (s *ImportService) findOrCreateGenre(ctx context.Context, mg ports.MetadataGenre) (*domain.Genre, error) {
	g, err := s.store.Genres.FindByTMDBID(ctx, mg.ID)
	if err == nil {
		return g, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}
	// Genres seeded by hand carry no external id yet; match those by name.
	g, err = s.store.Genres.FindByName(ctx, mg.Name)
	if err == nil {
		return g, nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	g = &domain.Genre{Name: mg.Name, TMDBID: mg.ID, MovieIDs: []string{}}
	if err := s.store.Genres.Create(ctx, g); err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return s.store.Genres.FindByTMDBID(ctx, mg.ID)
		}
		return nil, err
	}
	return g, nil
}
