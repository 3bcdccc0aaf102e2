package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubMovieRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Movie
	seq       int
	createErr error
	deleteErr error
}

func newStubMovieRepo() *stubMovieRepo {
	return &stubMovieRepo{byID: make(map[string]*domain.Movie)}
}

func cloneMovie(m *domain.Movie) *domain.Movie {
	c := *m
	c.ActorIDs = append([]string(nil), m.ActorIDs...)
	c.GenreIDs = append([]string(nil), m.GenreIDs...)
	return &c
}

func (r *stubMovieRepo) Create(_ context.Context, m *domain.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if m.TMDBID != 0 {
		for _, existing := range r.byID {
			if existing.TMDBID == m.TMDBID {
				return domain.ErrDuplicateRecord
			}
		}
	}
	r.seq++
	m.ID = fmt.Sprintf("m%03d", r.seq)
	r.byID[m.ID] = cloneMovie(m)
	return nil
}

func (r *stubMovieRepo) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return cloneMovie(m), nil
}

func (r *stubMovieRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Movie
	for _, id := range ids {
		if m, ok := r.byID[id]; ok {
			out = append(out, *cloneMovie(m))
		}
	}
	return out, nil
}

func (r *stubMovieRepo) FindByTMDBID(_ context.Context, tmdbID int) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.byID {
		if m.TMDBID == tmdbID {
			return cloneMovie(m), nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

// List applies the same filters and ordering the Mongo repository uses.
func (r *stubMovieRepo) List(_ context.Context, f ports.MovieFilter) ([]domain.Movie, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.Movie
	for _, m := range r.byID {
		if f.Keyword != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Keyword)) {
			continue
		}
		if f.DirectorID != "" && m.DirectorID != f.DirectorID {
			continue
		}
		if len(f.GenreIDs) > 0 && !anyOf(m.GenreIDs, f.GenreIDs) {
			continue
		}
		matched = append(matched, *cloneMovie(m))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if f.Skip >= len(matched) {
		return []domain.Movie{}, total, nil
	}
	end := f.Skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Skip:end], total, nil
}

func (r *stubMovieRepo) ForEach(_ context.Context, fn func(domain.Movie) error) error {
	r.mu.Lock()
	movies := make([]domain.Movie, 0, len(r.byID))
	for _, m := range r.byID {
		movies = append(movies, *cloneMovie(m))
	}
	r.mu.Unlock()
	for _, m := range movies {
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubMovieRepo) Update(_ context.Context, m *domain.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; !ok {
		return domain.ErrMovieNotFound
	}
	r.byID[m.ID] = cloneMovie(m)
	return nil
}

func (r *stubMovieRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byID, id)
	return nil
}

func anyOf(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// backrefs is the shared back-reference bookkeeping of the person and genre stubs.
type backrefs struct {
	movies  map[string][]string
	failAdd error
}

func (b *backrefs) add(ids []string, movieID string) error {
	if b.failAdd != nil {
		return b.failAdd
	}
	for _, id := range ids {
		list, ok := b.movies[id]
		if !ok {
			continue
		}
		if !contains(list, movieID) {
			b.movies[id] = append(list, movieID)
		}
	}
	return nil
}

func (b *backrefs) remove(ids []string, movieID string) {
	for _, id := range ids {
		list, ok := b.movies[id]
		if !ok {
			continue
		}
		kept := list[:0:0]
		for _, m := range list {
			if m != movieID {
				kept = append(kept, m)
			}
		}
		b.movies[id] = kept
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type stubPersonRepo struct {
	mu       sync.Mutex
	notFound error
	people   map[string]*domain.Person
	refs     backrefs
	seq      int
	prefix   string
}

func newStubPersonRepo(prefix string, notFound error) *stubPersonRepo {
	return &stubPersonRepo{
		notFound: notFound,
		people:   make(map[string]*domain.Person),
		refs:     backrefs{movies: make(map[string][]string)},
		prefix:   prefix,
	}
}

// seed stores a person under id and returns the repo for chaining.
func (r *stubPersonRepo) seed(id, name string) *stubPersonRepo {
	r.people[id] = &domain.Person{ID: id, Name: name}
	r.refs.movies[id] = []string{}
	return r
}

func (r *stubPersonRepo) get(id string) domain.Person {
	p := *r.people[id]
	p.MovieIDs = append([]string(nil), r.refs.movies[id]...)
	return p
}

func (r *stubPersonRepo) Create(_ context.Context, p *domain.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("%s%03d", r.prefix, r.seq)
	c := *p
	r.people[p.ID] = &c
	r.refs.movies[p.ID] = append([]string{}, p.MovieIDs...)
	return nil
}

func (r *stubPersonRepo) FindByID(_ context.Context, id string) (*domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.people[id]; !ok {
		return nil, r.notFound
	}
	p := r.get(id)
	return &p, nil
}

func (r *stubPersonRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Person
	for _, id := range ids {
		if _, ok := r.people[id]; ok {
			out = append(out, r.get(id))
		}
	}
	return out, nil
}

func (r *stubPersonRepo) FindByTMDBID(_ context.Context, tmdbID int) (*domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.people {
		if p.TMDBID == tmdbID {
			found := r.get(id)
			return &found, nil
		}
	}
	return nil, r.notFound
}

func (r *stubPersonRepo) List(_ context.Context) ([]domain.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Person
	for id := range r.people {
		out = append(out, r.get(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubPersonRepo) AddMovie(_ context.Context, ids []string, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs.add(ids, movieID)
}

func (r *stubPersonRepo) RemoveMovie(_ context.Context, ids []string, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs.remove(ids, movieID)
	return nil
}

type stubGenreRepo struct {
	mu     sync.Mutex
	genres map[string]*domain.Genre
	refs   backrefs
	seq    int
}

func newStubGenreRepo() *stubGenreRepo {
	return &stubGenreRepo{
		genres: make(map[string]*domain.Genre),
		refs:   backrefs{movies: make(map[string][]string)},
	}
}

func (r *stubGenreRepo) seed(id, name string) *stubGenreRepo {
	r.genres[id] = &domain.Genre{ID: id, Name: name}
	r.refs.movies[id] = []string{}
	return r
}

func (r *stubGenreRepo) get(id string) domain.Genre {
	g := *r.genres[id]
	g.MovieIDs = append([]string(nil), r.refs.movies[id]...)
	return g
}

func (r *stubGenreRepo) Create(_ context.Context, g *domain.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	g.ID = fmt.Sprintf("g%03d", r.seq)
	c := *g
	r.genres[g.ID] = &c
	r.refs.movies[g.ID] = append([]string{}, g.MovieIDs...)
	return nil
}

func (r *stubGenreRepo) FindByID(_ context.Context, id string) (*domain.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.genres[id]; !ok {
		return nil, domain.ErrGenreNotFound
	}
	g := r.get(id)
	return &g, nil
}

func (r *stubGenreRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Genre
	for _, id := range ids {
		if _, ok := r.genres[id]; ok {
			out = append(out, r.get(id))
		}
	}
	return out, nil
}

func (r *stubGenreRepo) FindByTMDBID(_ context.Context, tmdbID int) (*domain.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.genres {
		if g.TMDBID == tmdbID {
			found := r.get(id)
			return &found, nil
		}
	}
	return nil, domain.ErrGenreNotFound
}

func (r *stubGenreRepo) FindByName(_ context.Context, name string) (*domain.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.genres {
		if g.Name == name {
			found := r.get(id)
			return &found, nil
		}
	}
	return nil, domain.ErrGenreNotFound
}

func (r *stubGenreRepo) List(_ context.Context) ([]domain.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Genre
	for id := range r.genres {
		out = append(out, r.get(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubGenreRepo) AddMovie(_ context.Context, ids []string, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs.add(ids, movieID)
}

func (r *stubGenreRepo) RemoveMovie(_ context.Context, ids []string, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs.remove(ids, movieID)
	return nil
}

// ---------------------------------------------------------------------------
// Metadata gateway stub
// ---------------------------------------------------------------------------

type stubGateway struct {
	mu          sync.Mutex
	candidates  []ports.MetadataCandidate
	searchErr   error
	details     map[int]*ports.MetadataDetails
	detailsErr  error
	detailCalls []int
}

func (g *stubGateway) SearchMovies(_ context.Context, _ string) ([]ports.MetadataCandidate, error) {
	return g.candidates, g.searchErr
}

func (g *stubGateway) MovieDetails(_ context.Context, id int) (*ports.MetadataDetails, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.detailCalls = append(g.detailCalls, id)
	if g.detailsErr != nil {
		return nil, g.detailsErr
	}
	return g.details[id], nil
}

var errGatewayDown = errors.New("dial tcp: connection refused")

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type catalogFixture struct {
	movies    *stubMovieRepo
	directors *stubPersonRepo
	actors    *stubPersonRepo
	genres    *stubGenreRepo
	gateway   *stubGateway
	svc       *CatalogService
	clock     time.Time
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		movies:    newStubMovieRepo(),
		directors: newStubPersonRepo("d", domain.ErrDirectorNotFound).seed("D1", "Denis Villeneuve").seed("D2", "Christopher Nolan"),
		actors:    newStubPersonRepo("a", domain.ErrActorNotFound).seed("A1", "Amy Adams").seed("A2", "Jeremy Renner").seed("A3", "Keanu Reeves"),
		genres:    newStubGenreRepo().seed("G1", "Science Fiction").seed("G2", "Drama"),
		gateway:   &stubGateway{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.svc = NewCatalogService(f.store(), f.gateway, nil, discardLogger)
	// Advance one second per write so creation order is deterministic.
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func (f *catalogFixture) store() CatalogStore {
	return CatalogStore{Movies: f.movies, Directors: f.directors, Actors: f.actors, Genres: f.genres}
}

func arrivalInput() ports.CreateMovieInput {
	return ports.CreateMovieInput{
		Title:       "Arrival",
		ReleaseYear: 2016,
		Plot:        "A linguist works with the military to communicate with alien lifeforms.",
		Runtime:     116,
		DirectorID:  "D1",
		ActorIDs:    []string{},
		GenreIDs:    []string{"G1"},
	}
}
