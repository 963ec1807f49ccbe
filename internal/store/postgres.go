// Package store provides storage backends for NoteFlow.
//
// This file implements a PostgreSQL-backed registry.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// Constants for Postgres connection pool configuration
const (
	// DefaultMaxOpenConns defines the maximum number of open connections
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns defines the maximum number of idle connections
	DefaultMaxIdleConns = 5
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) AddPatient(p models.Patient) (models.Patient, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO patients (id, name, mrn, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, nilIfEmpty(p.MRN), p.CreatedAt)
	if err != nil {
		slog.Error("PostgresStore AddPatient failed", "error", err, "id", p.ID)
		return models.Patient{}, fmt.Errorf("failed to insert patient %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *PostgresStore) GetPatients() ([]models.Patient, error) {
	rows, err := s.db.Query(`SELECT id, name, COALESCE(mrn, ''), created_at FROM patients ORDER BY created_at`)
	if err != nil {
		slog.Error("PostgresStore GetPatients query failed", "error", err)
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.MRN, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient row: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patient rows: %w", err)
	}
	return patients, nil
}

func (s *PostgresStore) AddEncounter(e models.Encounter) (models.Encounter, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO encounters (id, patient_id, started_at) VALUES ($1, $2, $3)`,
		e.ID, e.PatientID, e.StartedAt)
	if err != nil {
		slog.Error("PostgresStore AddEncounter failed", "error", err, "id", e.ID)
		return models.Encounter{}, fmt.Errorf("failed to insert encounter %s: %w", e.ID, err)
	}
	return e, nil
}

func (s *PostgresStore) GetEncounters(patientID string) ([]models.Encounter, error) {
	rows, err := s.db.Query(
		`SELECT id, patient_id, started_at FROM encounters WHERE ($1 = '' OR patient_id = $1) ORDER BY started_at`,
		patientID)
	if err != nil {
		slog.Error("PostgresStore GetEncounters query failed", "error", err)
		return nil, fmt.Errorf("failed to query encounters: %w", err)
	}
	defer rows.Close()

	var encounters []models.Encounter
	for rows.Next() {
		var e models.Encounter
		if err := rows.Scan(&e.ID, &e.PatientID, &e.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan encounter row: %w", err)
		}
		encounters = append(encounters, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate encounter rows: %w", err)
	}
	return encounters, nil
}

func (s *PostgresStore) AppendFlowOutcome(encounterID, flowID, label, paragraph string, insertedAt int64) (models.CompletedRun, error) {
	if err := validateOutcome(flowID, label, paragraph); err != nil {
		return models.CompletedRun{}, err
	}
	run := models.CompletedRun{
		ID:          uuid.NewString(),
		EncounterID: encounterID,
		FlowID:      flowID,
		Label:       label,
		Paragraph:   paragraph,
		InsertedAt:  insertedAt,
	}
	_, err := s.db.Exec(
		`INSERT INTO completed_runs (id, encounter_id, flow_id, label, paragraph, inserted_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, nilIfEmpty(run.EncounterID), run.FlowID, run.Label, run.Paragraph, run.InsertedAt)
	if err != nil {
		slog.Error("PostgresStore AppendFlowOutcome failed", "error", err, "flow", flowID)
		return models.CompletedRun{}, fmt.Errorf("failed to insert completed run for flow %s: %w", flowID, err)
	}
	slog.Debug("PostgresStore AppendFlowOutcome succeeded", "run", run.ID, "flow", flowID)
	return run, nil
}

func (s *PostgresStore) GetCompletedRuns(encounterID string) ([]models.CompletedRun, error) {
	rows, err := s.db.Query(
		`SELECT id, COALESCE(encounter_id, ''), flow_id, label, paragraph, inserted_at
		 FROM completed_runs WHERE ($1 = '' OR encounter_id = $1) ORDER BY inserted_at DESC`,
		encounterID)
	if err != nil {
		slog.Error("PostgresStore GetCompletedRuns query failed", "error", err)
		return nil, fmt.Errorf("failed to query completed runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (s *PostgresStore) AddFavorite(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	_, err := s.db.Exec(`INSERT INTO favorites (card_id) VALUES ($1) ON CONFLICT DO NOTHING`, cardID)
	if err != nil {
		return fmt.Errorf("failed to insert favorite %s: %w", cardID, err)
	}
	return nil
}

func (s *PostgresStore) RemoveFavorite(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	_, err := s.db.Exec(`DELETE FROM favorites WHERE card_id = $1`, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite %s: %w", cardID, err)
	}
	return nil
}

func (s *PostgresStore) GetFavorites() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT card_id FROM favorites`)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()
	return scanFavorites(rows)
}

func (s *PostgresStore) AddRecentView(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	_, err := s.db.Exec(
		`INSERT INTO recent_views (card_id, viewed_at) VALUES ($1, $2)
		 ON CONFLICT (card_id) DO UPDATE SET viewed_at = EXCLUDED.viewed_at`,
		cardID, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record recent view %s: %w", cardID, err)
	}
	_, err = s.db.Exec(
		`DELETE FROM recent_views WHERE card_id NOT IN
		 (SELECT card_id FROM recent_views ORDER BY viewed_at DESC LIMIT $1)`, MaxRecentViews)
	if err != nil {
		return fmt.Errorf("failed to trim recent views: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetRecentViews() ([]string, error) {
	rows, err := s.db.Query(`SELECT card_id FROM recent_views ORDER BY viewed_at DESC LIMIT $1`, MaxRecentViews)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent views: %w", err)
	}
	defer rows.Close()
	return scanCardIDs(rows)
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
