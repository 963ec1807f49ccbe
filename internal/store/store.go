// Package store provides the encounter registry backends for NoteFlow.
//
// It includes an in-memory store used by tests and the default configuration, plus
// SQLite and PostgreSQL backed stores for persistent deployments.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// Store defines the registry operations shared by all backends. AppendFlowOutcome
// creates a new completed-run entry on every call; repeated calls append, never
// update.
type Store interface {
	AddPatient(p models.Patient) (models.Patient, error)
	GetPatients() ([]models.Patient, error)
	AddEncounter(e models.Encounter) (models.Encounter, error)
	GetEncounters(patientID string) ([]models.Encounter, error)
	AppendFlowOutcome(encounterID, flowID, label, paragraph string, insertedAt int64) (models.CompletedRun, error)
	GetCompletedRuns(encounterID string) ([]models.CompletedRun, error)
	AddFavorite(cardID string) error
	RemoveFavorite(cardID string) error
	GetFavorites() (map[string]bool, error)
	AddRecentView(cardID string) error
	GetRecentViews() ([]string, error)
	Close() error
}

// MaxRecentViews caps the persisted recently-viewed list.
const MaxRecentViews = 20

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string // database connection string (file path for SQLite, URL for Postgres)
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// InMemoryStore is a mutex-guarded in-memory registry.
type InMemoryStore struct {
	mu          sync.Mutex
	patients    []models.Patient
	encounters  []models.Encounter
	runs        []models.CompletedRun
	favorites   map[string]bool
	recentViews []string
}

// NewInMemoryStore creates an empty in-memory registry.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{favorites: make(map[string]bool)}
}

// AddPatient stores a patient, assigning an id when absent.
func (s *InMemoryStore) AddPatient(p models.Patient) (models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.patients = append(s.patients, p)
	return p, nil
}

// GetPatients returns all stored patients.
func (s *InMemoryStore) GetPatients() ([]models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Patient(nil), s.patients...), nil
}

// AddEncounter stores an encounter, assigning an id when absent.
func (s *InMemoryStore) AddEncounter(e models.Encounter) (models.Encounter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.encounters = append(s.encounters, e)
	return e, nil
}

// GetEncounters returns encounters, optionally restricted to one patient.
func (s *InMemoryStore) GetEncounters(patientID string) ([]models.Encounter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Encounter
	for _, e := range s.encounters {
		if patientID == "" || e.PatientID == patientID {
			out = append(out, e)
		}
	}
	return out, nil
}

// AppendFlowOutcome creates a new completed run. Every call appends a fresh entry.
func (s *InMemoryStore) AppendFlowOutcome(encounterID, flowID, label, paragraph string, insertedAt int64) (models.CompletedRun, error) {
	if err := validateOutcome(flowID, label, paragraph); err != nil {
		return models.CompletedRun{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	run := models.CompletedRun{
		ID:          uuid.NewString(),
		EncounterID: encounterID,
		FlowID:      flowID,
		Label:       label,
		Paragraph:   paragraph,
		InsertedAt:  insertedAt,
	}
	s.runs = append(s.runs, run)
	return run, nil
}

// GetCompletedRuns returns completed runs, optionally restricted to one encounter,
// most recent first.
func (s *InMemoryStore) GetCompletedRuns(encounterID string) ([]models.CompletedRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CompletedRun
	for _, r := range s.runs {
		if encounterID == "" || r.EncounterID == encounterID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].InsertedAt > out[j].InsertedAt })
	return out, nil
}

// AddFavorite marks a card as favorited.
func (s *InMemoryStore) AddFavorite(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites[cardID] = true
	return nil
}

// RemoveFavorite clears a card's favorite flag.
func (s *InMemoryStore) RemoveFavorite(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, cardID)
	return nil
}

// GetFavorites returns the favorited card id set.
func (s *InMemoryStore) GetFavorites() (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.favorites))
	for id := range s.favorites {
		out[id] = true
	}
	return out, nil
}

// AddRecentView moves a card id to the front of the persisted recently-viewed list,
// dropping any prior occurrence and trimming to the cap.
func (s *InMemoryStore) AddRecentView(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]string, 0, len(s.recentViews)+1)
	next = append(next, cardID)
	for _, id := range s.recentViews {
		if id != cardID {
			next = append(next, id)
		}
	}
	if len(next) > MaxRecentViews {
		next = next[:MaxRecentViews]
	}
	s.recentViews = next
	return nil
}

// GetRecentViews returns the persisted recently-viewed card ids, most recent first.
func (s *InMemoryStore) GetRecentViews() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.recentViews...), nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}

// validateOutcome shares the insertion checks used by every backend before writing.
func validateOutcome(flowID, label, paragraph string) error {
	if !models.IsValidFlowType(models.FlowType(flowID)) {
		return fmt.Errorf("%w: %s", models.ErrInvalidFlowType, flowID)
	}
	if label == "" {
		return models.ErrEmptyLabel
	}
	if len(label) > models.MaxLabelLength {
		return models.ErrLabelTooLong
	}
	if paragraph == "" {
		return models.ErrEmptyParagraph
	}
	if len(paragraph) > models.MaxParagraphLength {
		return models.ErrParagraphTooLong
	}
	return nil
}
