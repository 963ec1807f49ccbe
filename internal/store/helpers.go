package store

import (
	"database/sql"
	"fmt"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// nilIfEmpty returns nil if s is empty, otherwise returns s.
// Used for nullable database columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// scanRuns scans completed runs from sql.Rows.
func scanRuns(rows *sql.Rows) ([]models.CompletedRun, error) {
	var runs []models.CompletedRun
	for rows.Next() {
		var r models.CompletedRun
		if err := rows.Scan(&r.ID, &r.EncounterID, &r.FlowID, &r.Label, &r.Paragraph, &r.InsertedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completed run row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completed run rows: %w", err)
	}
	return runs, nil
}

// scanCardIDs scans an ordered card id list from sql.Rows.
func scanCardIDs(rows *sql.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan card id row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card id rows: %w", err)
	}
	return ids, nil
}

// scanFavorites scans a favorites id set from sql.Rows.
func scanFavorites(rows *sql.Rows) (map[string]bool, error) {
	favorites := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		favorites[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite rows: %w", err)
	}
	return favorites, nil
}
