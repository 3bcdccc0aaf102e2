package service

import (
	"context"
	"testing"
)

func TestBackReferenceAuditor_CleanCatalog(t *testing.T) {
	f := newCatalogFixture()
	in := arrivalInput()
	in.ActorIDs = []string{"A1", "A2"}
	mustCreate(t, f, in)

	report, err := NewBackReferenceAuditor(f.store(), discardLogger).Audit(context.Background(), false)
	if err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}
	if report.MoviesScanned != 1 || len(report.Drift) != 0 {
		t.Fatalf("expected no drift, got %+v", report)
	}
}

func TestBackReferenceAuditor_ReportsAndRepairsDrift(t *testing.T) {
	f := newCatalogFixture()
	in := arrivalInput()
	in.ActorIDs = []string{"A1"}
	m := mustCreate(t, f, in)

	// missing: A1 forgot the movie; stale: G2 lists it without being referenced;
	// dangling: the movie references a director that was removed.
	f.actors.refs.movies["A1"] = []string{}
	f.genres.refs.movies["G2"] = []string{m.ID}
	stored := f.movies.byID[m.ID]
	stored.DirectorID = "D404"

	auditor := NewBackReferenceAuditor(f.store(), discardLogger)
	report, err := auditor.Audit(context.Background(), true)
	if err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}

	kinds := map[string]BackReferenceDrift{}
	for _, d := range report.Drift {
		kinds[d.Kind+":"+d.Collection] = d
	}
	if d, ok := kinds[DriftMissing+":actors"]; !ok || d.RecordID != "A1" || d.MovieID != m.ID {
		t.Fatalf("expected missing drift on A1, got %+v", report.Drift)
	}
	if d, ok := kinds[DriftStale+":genres"]; !ok || d.RecordID != "G2" {
		t.Fatalf("expected stale drift on G2, got %+v", report.Drift)
	}
	if d, ok := kinds[DriftDangling+":directors"]; !ok || d.RecordID != "D404" {
		t.Fatalf("expected dangling drift on D404, got %+v", report.Drift)
	}
	// D1 still lists the movie although it now points at D404.
	if _, ok := kinds[DriftStale+":directors"]; !ok {
		t.Fatalf("expected stale drift on D1, got %+v", report.Drift)
	}
	if report.Repaired != 3 {
		t.Fatalf("expected 3 repairs, got %d", report.Repaired)
	}

	if got := f.actors.get("A1").MovieIDs; len(got) != 1 || got[0] != m.ID {
		t.Fatalf("A1 not repaired: %v", got)
	}
	if got := f.genres.get("G2").MovieIDs; len(got) != 0 {
		t.Fatalf("G2 not repaired: %v", got)
	}

	again, err := auditor.Audit(context.Background(), false)
	if err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}
	if len(again.Drift) != 1 || again.Drift[0].Kind != DriftDangling {
		t.Fatalf("only the dangling reference should remain, got %+v", again.Drift)
	}
}

func TestBackReferenceAuditor_ReportOnlyLeavesDataAlone(t *testing.T) {
	f := newCatalogFixture()
	m := mustCreate(t, f, arrivalInput())
	f.genres.refs.movies["G1"] = []string{}

	report, err := NewBackReferenceAuditor(f.store(), discardLogger).Audit(context.Background(), false)
	if err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}
	if len(report.Drift) != 1 || report.Repaired != 0 {
		t.Fatalf("expected one unrepaired drift, got %+v", report)
	}
	if got := f.genres.get("G1").MovieIDs; len(got) != 0 {
		t.Fatalf("report-only audit must not write, got %v for %s", got, m.ID)
	}
}
