// Package store provides storage backends for NoteFlow.
//
// This file implements an SQLite-backed registry.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) AddPatient(p models.Patient) (models.Patient, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO patients (id, name, mrn, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, nilIfEmpty(p.MRN), p.CreatedAt)
	if err != nil {
		slog.Error("SQLiteStore AddPatient failed", "error", err, "id", p.ID)
		return models.Patient{}, fmt.Errorf("failed to insert patient %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *SQLiteStore) GetPatients() ([]models.Patient, error) {
	rows, err := s.db.Query(`SELECT id, name, COALESCE(mrn, ''), created_at FROM patients ORDER BY created_at`)
	if err != nil {
		slog.Error("SQLiteStore GetPatients query failed", "error", err)
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

func (s *SQLiteStore) AddEncounter(e models.Encounter) (models.Encounter, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO encounters (id, patient_id, started_at) VALUES (?, ?, ?)`,
		e.ID, e.PatientID, e.StartedAt)
	if err != nil {
		slog.Error("SQLiteStore AddEncounter failed", "error", err, "id", e.ID)
		return models.Encounter{}, fmt.Errorf("failed to insert encounter %s: %w", e.ID, err)
	}
	return e, nil
}

func (s *SQLiteStore) GetEncounters(patientID string) ([]models.Encounter, error) {
	rows, err := s.db.Query(
		`SELECT id, patient_id, started_at FROM encounters WHERE (? = '' OR patient_id = ?) ORDER BY started_at`,
		patientID, patientID)
	if err != nil {
		slog.Error("SQLiteStore GetEncounters query failed", "error", err)
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

func (s *SQLiteStore) AppendFlowOutcome(encounterID, flowID, label, paragraph string, insertedAt int64) (models.CompletedRun, error) {
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
		`INSERT INTO completed_runs (id, encounter_id, flow_id, label, paragraph, inserted_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, nilIfEmpty(run.EncounterID), run.FlowID, run.Label, run.Paragraph, run.InsertedAt)
	if err != nil {
		slog.Error("SQLiteStore AppendFlowOutcome failed", "error", err, "flow", flowID)
		return models.CompletedRun{}, fmt.Errorf("failed to insert completed run for flow %s: %w", flowID, err)
	}
	slog.Debug("SQLiteStore AppendFlowOutcome succeeded", "run", run.ID, "flow", flowID)
	return run, nil
}

func (s *SQLiteStore) GetCompletedRuns(encounterID string) ([]models.CompletedRun, error) {
	rows, err := s.db.Query(
		`SELECT id, COALESCE(encounter_id, ''), flow_id, label, paragraph, inserted_at
		 FROM completed_runs WHERE (? = '' OR encounter_id = ?) ORDER BY inserted_at DESC`,
		encounterID, encounterID)
	if err != nil {
		slog.Error("SQLiteStore GetCompletedRuns query failed", "error", err)
		return nil, fmt.Errorf("failed to query completed runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (s *SQLiteStore) AddFavorite(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO favorites (card_id) VALUES (?)`, cardID)
	if err != nil {
		return fmt.Errorf("failed to insert favorite %s: %w", cardID, err)
	}
	return nil
}

func (s *SQLiteStore) RemoveFavorite(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	_, err := s.db.Exec(`DELETE FROM favorites WHERE card_id = ?`, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite %s: %w", cardID, err)
	}
	return nil
}

func (s *SQLiteStore) GetFavorites() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT card_id FROM favorites`)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()
	return scanFavorites(rows)
}

func (s *SQLiteStore) AddRecentView(cardID string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO recent_views (card_id, viewed_at) VALUES (?, ?)`,
		cardID, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record recent view %s: %w", cardID, err)
	}
	_, err = s.db.Exec(
		`DELETE FROM recent_views WHERE card_id NOT IN
		 (SELECT card_id FROM recent_views ORDER BY viewed_at DESC LIMIT ?)`, MaxRecentViews)
	if err != nil {
		return fmt.Errorf("failed to trim recent views: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetRecentViews() ([]string, error) {
	rows, err := s.db.Query(`SELECT card_id FROM recent_views ORDER BY viewed_at DESC LIMIT ?`, MaxRecentViews)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent views: %w", err)
	}
	defer rows.Close()
	return scanCardIDs(rows)
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
