// Package outcome observation level builder.
package outcome

import (
	"fmt"
	"strings"

	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
)

// ObservationBoundary is the fixed legal-boundary sentence ending every observation paragraph.
const ObservationBoundary = "The observation level documented here reflects the clinical recommendation at the time of writing; implementation and continuation are governed by unit policy and the responsible attending."

// riskTypePhrases includes the explicit not_disclosed_here variant; the unset empty
// string falls through to the placeholder instead, and the two must render differently.
var riskTypePhrases = map[models.ObservationRiskType]string{
	models.ObsRiskSuicide:          "suicide risk",
	models.ObsRiskSelfHarm:         "self-harm risk",
	models.ObsRiskViolence:         "risk of violence toward others",
	models.ObsRiskElopement:        "elopement risk",
	models.ObsRiskFalls:            "fall risk",
	models.ObsRiskNotDisclosedHere: "not disclosed / unspecified here",
}

var observationLevelPhrases = map[models.ObservationLevel]string{
	models.ObsLevelContinuous:       "continuous 1:1 observation",
	models.ObsLevelLineOfSight:      "line-of-sight observation",
	models.ObsLevelQ15:              "checks at 15-minute intervals",
	models.ObsLevelQ30:              "checks at 30-minute intervals",
	models.ObsLevelRoutine:          "routine unit observation",
	models.ObsLevelNotDisclosedHere: "not disclosed / unspecified here",
}

// BuildObservationOutcome assembles the observation-level narrative: indication,
// ordered level, environmental safety measures, and handoff.
func BuildObservationOutcome(form models.ObservationForm, insertedAtMs int64) string {
	ts := timefmt.FormatLocalTimestamp(insertedAtMs)

	var environment []string
	environment = checked(environment, form.EnvironmentalSafety.BelongingsSearched, "belongings searched")
	environment = checked(environment, form.EnvironmentalSafety.RoomSwept, "room swept for contraband")
	environment = checked(environment, form.EnvironmentalSafety.CordsSharpsRemoved, "cords and sharps removed")
	environment = checked(environment, form.EnvironmentalSafety.DoorKeptOpen, "door kept open")

	sentences := []string{
		fmt.Sprintf("Observation is indicated for %s.", lookupPhrase(riskTypePhrases, form.RiskType)),
		fmt.Sprintf("Recommended observation level: %s.", lookupPhrase(observationLevelPhrases, form.ObservationLevel)),
		fmt.Sprintf("Environmental safety measures: %s.", joinChecklist(environment)),
		fmt.Sprintf("Handoff and communication: %s.", orNotRecorded(form.Handoff)),
		fmt.Sprintf("%s Recorded %s.", ObservationBoundary, ts),
	}

	return strings.Join(sentences, " ")
}
