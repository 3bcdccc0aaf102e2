package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

// Drift kinds reported by the auditor.
const (
	DriftMissing  = "missing"  // movie references the record, record does not list the movie
	DriftStale    = "stale"    // record lists a movie that no longer references it
	DriftDangling = "dangling" // movie references a record that does not exist
)

// BackReferenceDrift is one inconsistency between a movie and a record's
// back-reference list.
type BackReferenceDrift struct {
	Collection string
	RecordID   string
	MovieID    string
	Kind       string
}

// BackReferenceReport summarises an audit run.
type BackReferenceReport struct {
	MoviesScanned int
	Drift         []BackReferenceDrift
	Repaired      int
}

// BackReferenceAuditor recomputes the back-reference lists from the movie
// collection and compares them with what is stored.
type BackReferenceAuditor struct {
	store  CatalogStore
	logger zerolog.Logger
}

func NewBackReferenceAuditor(store CatalogStore, logger zerolog.Logger) *BackReferenceAuditor {
	return &BackReferenceAuditor{store: store, logger: logger}
}

type expectedRefs map[string]map[string]struct{} // record id -> movie ids

func (e expectedRefs) add(recordID, movieID string) {
	if recordID == "" {
		return
	}
	set, ok := e[recordID]
	if !ok {
		set = map[string]struct{}{}
		e[recordID] = set
	}
	set[movieID] = struct{}{}
}

// Audit reports drift in every collection. With repair set, missing ids are
// added and stale ids removed; dangling references are only reported.
func (a *BackReferenceAuditor) Audit(ctx context.Context, repair bool) (*BackReferenceReport, error) {
	directors, actors, genres := expectedRefs{}, expectedRefs{}, expectedRefs{}
	report := &BackReferenceReport{}

	err := a.store.Movies.ForEach(ctx, func(m domain.Movie) error {
		report.MoviesScanned++
		directors.add(m.DirectorID, m.ID)
		for _, id := range m.ActorIDs {
			actors.add(id, m.ID)
		}
		for _, id := range m.GenreIDs {
			genres.add(id, m.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan movies: %w", err)
	}

	storedDirectors, err := a.store.Directors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list directors: %w", err)
	}
	storedActors, err := a.store.Actors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	storedGenres, err := a.store.Genres.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	a.compare(ctx, report, repair, "directors", a.store.Directors, directors, personMovieLists(storedDirectors))
	a.compare(ctx, report, repair, "actors", a.store.Actors, actors, personMovieLists(storedActors))
	a.compare(ctx, report, repair, "genres", a.store.Genres, genres, genreMovieLists(storedGenres))

	return report, nil
}

func (a *BackReferenceAuditor) compare(ctx context.Context, report *BackReferenceReport, repair bool, collection string, store ports.BackReferenceStore, expected expectedRefs, stored map[string][]string) {
	for _, recordID := range sortedKeys(expected) {
		movies := expected[recordID]
		have, ok := stored[recordID]
		if !ok {
			for _, movieID := range sortedSet(movies) {
				report.Drift = append(report.Drift, BackReferenceDrift{collection, recordID, movieID, DriftDangling})
			}
			continue
		}
		haveSet := make(map[string]struct{}, len(have))
		for _, id := range have {
			haveSet[id] = struct{}{}
		}
		for _, movieID := range sortedSet(movies) {
			if _, ok := haveSet[movieID]; ok {
				continue
			}
			report.Drift = append(report.Drift, BackReferenceDrift{collection, recordID, movieID, DriftMissing})
			if repair {
				a.apply(ctx, report, collection, recordID, movieID, store.AddMovie)
			}
		}
	}

	for _, recordID := range sortedKeys(stored) {
		for _, movieID := range unique(stored[recordID]) {
			if _, ok := expected[recordID][movieID]; ok {
				continue
			}
			report.Drift = append(report.Drift, BackReferenceDrift{collection, recordID, movieID, DriftStale})
			if repair {
				a.apply(ctx, report, collection, recordID, movieID, store.RemoveMovie)
			}
		}
	}
}

func (a *BackReferenceAuditor) apply(ctx context.Context, report *BackReferenceReport, collection, recordID, movieID string, fn func(context.Context, []string, string) error) {
	if err := fn(ctx, []string{recordID}, movieID); err != nil {
		a.logger.Warn().Err(err).
			Str("collection", collection).
			Str("record_id", recordID).
			Str("movie_id", movieID).
			Msg("back-reference repair failed")
		return
	}
	report.Repaired++
}

func personMovieLists(ps []domain.Person) map[string][]string {
	out := make(map[string][]string, len(ps))
	for _, p := range ps {
		out[p.ID] = p.MovieIDs
	}
	return out
}

func genreMovieLists(gs []domain.Genre) map[string][]string {
	out := make(map[string][]string, len(gs))
	for _, g := range gs {
		out[g.ID] = g.MovieIDs
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(set map[string]struct{}) []string {
	return sortedKeys(set)
}
