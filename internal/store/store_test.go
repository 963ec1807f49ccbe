package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

func TestInMemoryStoreAppendFlowOutcome(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	run, err := s.AppendFlowOutcome("enc-1", string(models.FlowTypeSafety), "Safety Assessment", "Patient assessed.", 1000)
	if err != nil {
		t.Fatalf("AppendFlowOutcome failed: %v", err)
	}
	if run.ID == "" {
		t.Error("expected run to be assigned an id")
	}
	if run.EncounterID != "enc-1" {
		t.Errorf("expected encounter id enc-1, got %q", run.EncounterID)
	}
	if run.FlowID != string(models.FlowTypeSafety) {
		t.Errorf("expected flow id %q, got %q", models.FlowTypeSafety, run.FlowID)
	}
	if run.InsertedAt != 1000 {
		t.Errorf("expected inserted_at 1000, got %d", run.InsertedAt)
	}
}

func TestInMemoryStoreAppendNeverUpdates(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	first, err := s.AppendFlowOutcome("enc-1", string(models.FlowTypeGeneric), "Structured Note", "First paragraph.", 1000)
	if err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	second, err := s.AppendFlowOutcome("enc-1", string(models.FlowTypeGeneric), "Structured Note", "Second paragraph.", 2000)
	if err != nil {
		t.Fatalf("second append failed: %v", err)
	}
	if first.ID == second.ID {
		t.Error("expected each append to create a distinct run")
	}

	runs, err := s.GetCompletedRuns("enc-1")
	if err != nil {
		t.Fatalf("GetCompletedRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestInMemoryStoreGetCompletedRunsOrdering(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	for i, ms := range []int64{500, 1500, 1000} {
		if _, err := s.AppendFlowOutcome("enc-1", string(models.FlowTypeGeneric), "Structured Note", "Paragraph.", ms); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	runs, err := s.GetCompletedRuns("enc-1")
	if err != nil {
		t.Fatalf("GetCompletedRuns failed: %v", err)
	}
	want := []int64{1500, 1000, 500}
	for i, r := range runs {
		if r.InsertedAt != want[i] {
			t.Errorf("run %d: expected inserted_at %d, got %d", i, want[i], r.InsertedAt)
		}
	}
}

func TestInMemoryStoreGetCompletedRunsScoping(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	if _, err := s.AppendFlowOutcome("enc-1", string(models.FlowTypeSafety), "Safety Assessment", "A.", 1000); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := s.AppendFlowOutcome("enc-2", string(models.FlowTypeSafety), "Safety Assessment", "B.", 2000); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	scoped, err := s.GetCompletedRuns("enc-1")
	if err != nil {
		t.Fatalf("GetCompletedRuns failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].Paragraph != "A." {
		t.Errorf("expected only enc-1 run, got %+v", scoped)
	}

	all, err := s.GetCompletedRuns("")
	if err != nil {
		t.Fatalf("GetCompletedRuns failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 runs with empty encounter filter, got %d", len(all))
	}
}

func TestInMemoryStoreValidation(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	tests := []struct {
		name      string
		flowID    string
		label     string
		paragraph string
		wantErr   error
	}{
		{"unknown flow", "bogus", "Label", "Paragraph.", models.ErrInvalidFlowType},
		{"empty label", string(models.FlowTypeSafety), "", "Paragraph.", models.ErrEmptyLabel},
		{"label too long", string(models.FlowTypeSafety), strings.Repeat("x", models.MaxLabelLength+1), "Paragraph.", models.ErrLabelTooLong},
		{"empty paragraph", string(models.FlowTypeSafety), "Label", "", models.ErrEmptyParagraph},
		{"paragraph too long", string(models.FlowTypeSafety), "Label", strings.Repeat("x", models.MaxParagraphLength+1), models.ErrParagraphTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AppendFlowOutcome("enc-1", tt.flowID, tt.label, tt.paragraph, 1000)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	runs, err := s.GetCompletedRuns("")
	if err != nil {
		t.Fatalf("GetCompletedRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs after rejected inserts, got %d", len(runs))
	}
}

func TestInMemoryStoreFavorites(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	if err := s.AddFavorite("c-haldol"); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if err := s.AddFavorite("c-haldol"); err != nil {
		t.Fatalf("repeated AddFavorite failed: %v", err)
	}
	if err := s.AddFavorite("c-bfcrs"); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}

	favs, err := s.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if len(favs) != 2 || !favs["c-haldol"] || !favs["c-bfcrs"] {
		t.Errorf("unexpected favorites set: %v", favs)
	}

	if err := s.RemoveFavorite("c-haldol"); err != nil {
		t.Fatalf("RemoveFavorite failed: %v", err)
	}
	favs, err = s.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if len(favs) != 1 || favs["c-haldol"] {
		t.Errorf("expected only c-bfcrs after removal, got %v", favs)
	}

	if err := s.AddFavorite(""); !errors.Is(err, models.ErrEmptyCardID) {
		t.Errorf("expected ErrEmptyCardID for empty add, got %v", err)
	}
	if err := s.RemoveFavorite(""); !errors.Is(err, models.ErrEmptyCardID) {
		t.Errorf("expected ErrEmptyCardID for empty remove, got %v", err)
	}
}

func TestInMemoryStoreRecentViews(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	for _, id := range []string{"c-haldol", "c-loraz", "c-haldol"} {
		if err := s.AddRecentView(id); err != nil {
			t.Fatalf("AddRecentView failed: %v", err)
		}
	}
	views, err := s.GetRecentViews()
	if err != nil {
		t.Fatalf("GetRecentViews failed: %v", err)
	}
	want := []string{"c-haldol", "c-loraz"}
	if len(views) != len(want) {
		t.Fatalf("expected %v, got %v", want, views)
	}
	for i := range want {
		if views[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], views[i])
		}
	}

	if err := s.AddRecentView(""); !errors.Is(err, models.ErrEmptyCardID) {
		t.Errorf("expected ErrEmptyCardID, got %v", err)
	}
}

func TestInMemoryStoreRecentViewsCap(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	for i := 0; i < MaxRecentViews+5; i++ {
		if err := s.AddRecentView(fmt.Sprintf("c-%02d", i)); err != nil {
			t.Fatalf("AddRecentView failed: %v", err)
		}
	}
	views, err := s.GetRecentViews()
	if err != nil {
		t.Fatalf("GetRecentViews failed: %v", err)
	}
	if len(views) != MaxRecentViews {
		t.Errorf("expected cap of %d, got %d", MaxRecentViews, len(views))
	}
	if views[0] != fmt.Sprintf("c-%02d", MaxRecentViews+4) {
		t.Errorf("expected newest view first, got %q", views[0])
	}
}

func TestInMemoryStoreGetFavoritesReturnsCopy(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	if err := s.AddFavorite("c-haldol"); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	favs, err := s.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	favs["c-injected"] = true

	again, err := s.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if again["c-injected"] {
		t.Error("mutating the returned set leaked into the store")
	}
}

func TestInMemoryStorePatientsAndEncounters(t *testing.T) {
	s := NewInMemoryStore()
	defer s.Close()

	p, err := s.AddPatient(models.Patient{Name: "Consult A", CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("AddPatient failed: %v", err)
	}
	if p.ID == "" {
		t.Error("expected patient to be assigned an id")
	}

	e1, err := s.AddEncounter(models.Encounter{PatientID: p.ID, StartedAt: time.Now()})
	if err != nil {
		t.Fatalf("AddEncounter failed: %v", err)
	}
	if _, err := s.AddEncounter(models.Encounter{PatientID: "someone-else", StartedAt: time.Now()}); err != nil {
		t.Fatalf("AddEncounter failed: %v", err)
	}

	encounters, err := s.GetEncounters(p.ID)
	if err != nil {
		t.Fatalf("GetEncounters failed: %v", err)
	}
	if len(encounters) != 1 || encounters[0].ID != e1.ID {
		t.Errorf("expected only %s for patient %s, got %+v", e1.ID, p.ID, encounters)
	}

	all, err := s.GetEncounters("")
	if err != nil {
		t.Fatalf("GetEncounters failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 encounters with empty patient filter, got %d", len(all))
	}
}

func TestSQLiteStoreRequiresDSN(t *testing.T) {
	if _, err := NewSQLiteStore(); err == nil {
		t.Error("expected error when DSN is not set")
	}
}

func TestPostgresStoreRequiresDSN(t *testing.T) {
	if _, err := NewPostgresStore(); err == nil {
		t.Error("expected error when DSN is not set")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dsn := t.TempDir() + "/registry.db"
	s, err := NewSQLiteStore(WithDSN(dsn))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer s.Close()

	run, err := s.AppendFlowOutcome("enc-1", string(models.FlowTypeCatatonia), "Catatonia Screen", "Screen documented.", 4200)
	if err != nil {
		t.Fatalf("AppendFlowOutcome failed: %v", err)
	}
	runs, err := s.GetCompletedRuns("enc-1")
	if err != nil {
		t.Fatalf("GetCompletedRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID || runs[0].Paragraph != "Screen documented." {
		t.Errorf("unexpected runs from sqlite: %+v", runs)
	}

	if err := s.AddFavorite("c-bfcrs"); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if err := s.AddFavorite("c-bfcrs"); err != nil {
		t.Fatalf("repeated AddFavorite failed: %v", err)
	}
	favs, err := s.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if len(favs) != 1 || !favs["c-bfcrs"] {
		t.Errorf("unexpected favorites from sqlite: %v", favs)
	}
}
