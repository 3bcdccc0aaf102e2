package service

import (
	"context"
	"errors"
	"testing"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

func arrivalDetails() *ports.MetadataDetails {
	return &ports.MetadataDetails{
		ID:           329865,
		Title:        "Arrival",
		Overview:     "Taking place after alien crafts land around the world, an expert linguist is recruited by the military.",
		ReleaseDate:  "2016-11-10",
		Runtime:      116,
		PosterPath:   "/x2FJsf1ElAgr63Y3PNPtJrcmpoe.jpg",
		BackdropPath: "/yIZ1xendyqKvY3FGeeUYUd5X9Mm.jpg",
		VoteAverage:  7.6,
		VoteCount:    17000,
		Genres: []ports.MetadataGenre{
			{ID: 878, Name: "Science Fiction"},
			{ID: 9648, Name: "Mystery"},
		},
		Crew: []ports.MetadataCredit{
			{ID: 1, Name: "Bradford Young", Job: "Director of Photography"},
			{ID: 137427, Name: "Denis Villeneuve", Job: "Director", ProfilePath: "/dv.jpg"},
		},
		Cast: []ports.MetadataCredit{
			{ID: 9273, Name: "Amy Adams", Character: "Louise Banks"},
			{ID: 17604, Name: "Jeremy Renner", Character: "Ian Donnelly"},
			{ID: 3, Name: "Forest Whitaker", Character: "Colonel Weber"},
			{ID: 4, Name: "Michael Stuhlbarg", Character: "Agent Halpern"},
			{ID: 5, Name: "Mark O'Brien", Character: "Captain Marks"},
			{ID: 6, Name: "Tzi Ma", Character: "General Shang"},
		},
	}
}

func TestGetEnrichedMovie_Found(t *testing.T) {
	f := newCatalogFixture()
	m := mustCreate(t, f, arrivalInput())
	f.gateway.candidates = []ports.MetadataCandidate{{ID: 329865, Title: "Arrival", ReleaseDate: "2016-11-10"}}
	f.gateway.details = map[int]*ports.MetadataDetails{329865: arrivalDetails()}

	got, err := f.svc.GetEnrichedMovie(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetEnrichedMovie returned error: %v", err)
	}
	if !got.Found || got.TMDBID != 329865 || got.RealTime == nil {
		t.Fatalf("expected found enrichment, got %+v", got.Enrichment)
	}
	if got.RealTime.Director == nil || got.RealTime.Director.Name != "Denis Villeneuve" {
		t.Fatalf("expected director credit, got %+v", got.RealTime.Director)
	}
	if len(got.RealTime.Cast) != 5 {
		t.Fatalf("expected 5 leading cast members, got %d", len(got.RealTime.Cast))
	}
	if got.RealTime.Cast[0].Name != "Amy Adams" || got.RealTime.Cast[0].Character != "Louise Banks" {
		t.Fatalf("expected billing order, got %+v", got.RealTime.Cast[0])
	}
	if got.RealTime.VoteAverage != 7.6 || got.RealTime.BackdropPath == "" {
		t.Fatalf("expected vote and artwork data, got %+v", got.RealTime)
	}
	if got.Title != "Arrival" || got.Director == nil || got.Director.ID != "D1" {
		t.Fatalf("stored fields must be preserved, got %+v", got.MovieDetail)
	}
}

func TestGetEnrichedMovie_PrefersCandidateFromReleaseYear(t *testing.T) {
	f := newCatalogFixture()
	in := arrivalInput()
	in.Title, in.ReleaseYear = "Dune", 2021
	m := mustCreate(t, f, in)
	f.gateway.candidates = []ports.MetadataCandidate{
		{ID: 841, Title: "Dune", ReleaseDate: "1984-12-14"},
		{ID: 438631, Title: "Dune", ReleaseDate: "2021-09-15"},
	}
	f.gateway.details = map[int]*ports.MetadataDetails{
		841:    {ID: 841, Title: "Dune"},
		438631: {ID: 438631, Title: "Dune"},
	}

	got, err := f.svc.GetEnrichedMovie(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetEnrichedMovie returned error: %v", err)
	}
	if got.TMDBID != 438631 {
		t.Fatalf("expected the 2021 candidate, got %d", got.TMDBID)
	}
}

func TestGetEnrichedMovie_FallsBackToFirstCandidate(t *testing.T) {
	f := newCatalogFixture()
	m := mustCreate(t, f, arrivalInput())
	f.gateway.candidates = []ports.MetadataCandidate{
		{ID: 10, Title: "Arrival", ReleaseDate: "1996-05-31"},
		{ID: 11, Title: "Arrival", ReleaseDate: ""},
	}
	f.gateway.details = map[int]*ports.MetadataDetails{10: {ID: 10, Title: "Arrival"}}

	got, err := f.svc.GetEnrichedMovie(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetEnrichedMovie returned error: %v", err)
	}
	if got.TMDBID != 10 {
		t.Fatalf("expected first candidate, got %d", got.TMDBID)
	}
	if got.RealTime.Director != nil {
		t.Fatalf("expected no director when crew is empty, got %+v", got.RealTime.Director)
	}
	if got.RealTime.Cast == nil {
		t.Fatalf("cast should be an empty list, not nil")
	}
}

func TestGetEnrichedMovie_Degrades(t *testing.T) {
	cases := []struct {
		name       string
		gateway    *stubGateway
		wantNote   string
		wantDetail bool
	}{
		{
			name:     "search fails",
			gateway:  &stubGateway{searchErr: errGatewayDown},
			wantNote: enrichmentFailedNote,
		},
		{
			name:     "no candidates",
			gateway:  &stubGateway{},
			wantNote: "",
		},
		{
			name: "details fail",
			gateway: &stubGateway{
				candidates: []ports.MetadataCandidate{{ID: 1, ReleaseDate: "2016-01-01"}},
				detailsErr: errGatewayDown,
			},
			wantNote:   enrichmentFailedNote,
			wantDetail: true,
		},
		{
			name: "details missing",
			gateway: &stubGateway{
				candidates: []ports.MetadataCandidate{{ID: 1, ReleaseDate: "2016-01-01"}},
			},
			wantNote:   "",
			wantDetail: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCatalogFixture()
			gw := tc.gateway
			f.svc.metadata = gw
			m := mustCreate(t, f, arrivalInput())

			got, err := f.svc.GetEnrichedMovie(context.Background(), m.ID)
			if err != nil {
				t.Fatalf("gateway problems must not fail the call: %v", err)
			}
			if got.Found || got.RealTime != nil || got.TMDBID != 0 {
				t.Fatalf("expected not-found enrichment, got %+v", got.Enrichment)
			}
			if got.Note != tc.wantNote {
				t.Fatalf("note = %q, want %q", got.Note, tc.wantNote)
			}
			if got.Title != "Arrival" {
				t.Fatalf("stored movie must still be returned")
			}
			if tc.wantDetail && len(gw.detailCalls) != 1 {
				t.Fatalf("expected one details call, got %v", gw.detailCalls)
			}
		})
	}
}

func TestGetEnrichedMovie_MissingMovie(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.GetEnrichedMovie(context.Background(), "missing")
	if !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
	if len(f.gateway.detailCalls) != 0 {
		t.Fatalf("gateway must not be called for a missing movie")
	}
}

func TestGetEnrichedMovie_RecordsResult(t *testing.T) {
	f := newCatalogFixture()
	rec := &recordingCatalogMetrics{}
	f.svc.metrics = rec
	m := mustCreate(t, f, arrivalInput())

	f.gateway.searchErr = errGatewayDown
	_, _ = f.svc.GetEnrichedMovie(context.Background(), m.ID)
	f.gateway.searchErr = nil
	_, _ = f.svc.GetEnrichedMovie(context.Background(), m.ID)

	if len(rec.enrichments) != 2 || rec.enrichments[0] != "error" || rec.enrichments[1] != "no_match" {
		t.Fatalf("unexpected enrichment results: %v", rec.enrichments)
	}
}
