// Package outcome catatonia screen builder.
package outcome

import (
	"fmt"
	"strings"

	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
)

// CatatoniaBoundary is the fixed legal-boundary sentence ending every catatonia paragraph.
const CatatoniaBoundary = "Findings reflect the examination at the time of assessment; catatonic features wax and wane, and this note does not exclude catatonia at other times."

var screenPhrases = map[models.CatatoniaScreen]string{
	models.ScreenCompleted:   "a structured catatonia examination was completed",
	models.ScreenPartial:     "a partial catatonia examination was performed",
	models.ScreenDeferred:    "the structured examination was deferred",
	models.ScreenNotAssessed: "the examination was not performed at this encounter",
}

// severityPhrase renders the severity band. The empty-string unset value renders the
// standard placeholder while the explicit not_assessed code renders "not assessed";
// the asymmetry carries evidentiary weight (field never touched vs clinician
// explicitly declined) and must not be collapsed.
func severityPhrase(sev models.CatatoniaSeverity) string {
	switch sev {
	case models.SeverityNoneObserved:
		return "no catatonic features observed"
	case models.SeverityMild:
		return "mild catatonic features"
	case models.SeverityModerate:
		return "moderate catatonic features"
	case models.SeveritySevere:
		return "severe catatonic features"
	case models.SeverityNotAssessed:
		return "not assessed"
	default:
		return models.NotRecorded
	}
}

var challengePhrases = map[models.LorazepamChallenge]string{
	models.ChallengeMarkedImprovement: "a lorazepam challenge was performed with marked improvement",
	models.ChallengePartialResponse:   "a lorazepam challenge was performed with partial response",
	models.ChallengeNoChange:          "a lorazepam challenge was performed without observable change",
	models.ChallengeNotPerformed:      "a lorazepam challenge was not performed",
	models.ChallengeDeferred:          "a lorazepam challenge was deferred",
}

// BuildCatatoniaOutcome assembles the catatonia screen narrative: examination status,
// Bush-Francis score, severity band, challenge result, and supporting workup.
func BuildCatatoniaOutcome(form models.CatatoniaForm, insertedAtMs int64) string {
	ts := timefmt.FormatLocalTimestamp(insertedAtMs)

	var workup []string
	workup = checked(workup, form.Workup.CBC, "CBC")
	workup = checked(workup, form.Workup.CMP, "CMP")
	workup = checked(workup, form.Workup.CK, "CK")
	workup = checked(workup, form.Workup.Neuroimaging, "neuroimaging")
	workup = checked(workup, form.Workup.EEG, "EEG")
	workup = checked(workup, form.Workup.InfectiousWorkup, "infectious workup")

	sentences := []string{
		fmt.Sprintf("On evaluation for catatonia, %s.", lookupPhrase(screenPhrases, form.Screen)),
		fmt.Sprintf("Bush-Francis screening score: %s.", orNotRecorded(form.BushFrancisScore)),
		fmt.Sprintf("Severity: %s.", severityPhrase(form.Severity)),
		fmt.Sprintf("Regarding pharmacologic probe, %s.", lookupPhrase(challengePhrases, form.Challenge)),
		fmt.Sprintf("Supporting workup ordered or reviewed: %s.", joinChecklist(workup)),
		fmt.Sprintf("%s Recorded %s.", CatatoniaBoundary, ts),
	}

	return strings.Join(sentences, " ")
}
