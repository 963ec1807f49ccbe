// Package library card content loading.
//
// Card content ships as YAML files, one file per topic area, each holding a list of
// cards. The loaded library is an immutable snapshot for the session; mid-session
// mutation is not modeled.
package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// cardFile is the on-disk shape of one content file.
type cardFile struct {
	Cards []models.Card `yaml:"cards"`
}

// LoadCards reads every *.yaml/*.yml file in dir and returns the combined card
// snapshot sorted by title. Duplicate ids and cards missing an id, title, or section
// are rejected; a card referencing a section id unknown to the index is kept (the
// filter treats unknown ids as leaves) but logged.
func LoadCards(dir string, index *Index) ([]models.Card, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read card directory %s: %w", dir, err)
	}

	var cards []models.Card
	seen := make(map[string]string) // card id -> file it came from
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read card file %s: %w", path, err)
		}
		var file cardFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse card file %s: %w", path, err)
		}
		for _, card := range file.Cards {
			if card.ID == "" || card.Title == "" || card.SectionID == "" {
				return nil, fmt.Errorf("card in %s missing id, title, or section", path)
			}
			if prev, dup := seen[card.ID]; dup {
				return nil, fmt.Errorf("duplicate card id %q in %s (first seen in %s)", card.ID, path, prev)
			}
			seen[card.ID] = path
			if index != nil {
				if _, known := index.ByID[card.SectionID]; !known {
					slog.Warn("LoadCards: card references unknown section", "card", card.ID, "section", card.SectionID)
				}
			}
			cards = append(cards, card)
		}
	}

	sort.SliceStable(cards, func(i, j int) bool { return lessTitle(cards[i], cards[j]) })
	slog.Info("LoadCards: library loaded", "dir", dir, "cards", len(cards))
	return cards, nil
}
