// Package outcome generic structured note builder.
package outcome

import (
	"fmt"
	"strings"

	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
)

// GenericBoundary is the fixed legal-boundary sentence ending every structured note.
const GenericBoundary = "This entry documents clinical observations and recommendations at the time of writing and does not itself direct or authorize treatment."

// BuildGenericOutcome assembles the free-form structured note. Like the lorazepam flow
// it renders paragraph-per-topic joined by newlines.
func BuildGenericOutcome(form models.GenericForm, insertedAtMs int64) string {
	ts := timefmt.FormatLocalTimestamp(insertedAtMs)

	var actions []string
	actions = checked(actions, form.Actions.ChartReviewed, "chart reviewed")
	actions = checked(actions, form.Actions.TeamDiscussed, "discussed with primary team")
	actions = checked(actions, form.Actions.FamilyDiscussed, "discussed with family")
	actions = checked(actions, form.Actions.ConsultantContacted, "consultant contacted")

	paragraphs := []string{
		fmt.Sprintf("Situation: %s.", orNotRecorded(form.Situation)),
		fmt.Sprintf("Assessment: %s.", orNotRecorded(form.Assessment)),
		fmt.Sprintf("Actions taken: %s.", joinChecklist(actions)),
		fmt.Sprintf("Plan: %s.", orNotRecorded(form.Plan)),
		fmt.Sprintf("%s Recorded %s.", GenericBoundary, ts),
	}

	return strings.Join(paragraphs, "\n")
}
