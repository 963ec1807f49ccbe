// Package outcome shared text-assembly helpers.
package outcome

import (
	"regexp"
	"strings"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// orNotRecorded trims a free-text field and substitutes the placeholder when empty.
func orNotRecorded(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.NotRecorded
	}
	return s
}

// quoteOpeners and quoteCloser sets recognized by QuoteIf. Smart quotes pasted from
// word processors must not be double-wrapped.
var (
	quoteOpeners = []string{`"`, "‘", "“"}
	quoteClosers = []string{`"`, "’", "”"}
)

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// QuoteIf wraps a verbatim patient statement in straight quotes unless it already
// carries quotes (straight or smart) on both ends. Empty input renders the standard
// placeholder so the sentence around it stays intact.
func QuoteIf(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.NotRecorded
	}
	if hasAnyPrefix(s, quoteOpeners) && hasAnySuffix(s, quoteClosers) {
		return s
	}
	return `"` + s + `"`
}

// joinChecklist joins checked phrases with ", " in declaration order; an empty
// selection renders the placeholder.
func joinChecklist(parts []string) string {
	if len(parts) == 0 {
		return models.NotRecorded
	}
	return strings.Join(parts, ", ")
}

// checked appends phrase to parts when on is set; builders call it once per checklist
// flag in declaration order.
func checked(parts []string, on bool, phrase string) []string {
	if on {
		return append(parts, phrase)
	}
	return parts
}

// collapseWhitespace folds any whitespace run into a single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
