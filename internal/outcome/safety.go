// Package outcome safety assessment builder.
package outcome

import (
	"fmt"
	"strings"

	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
)

// SafetyBoundary is the fixed legal-boundary sentence ending every safety paragraph.
const SafetyBoundary = "This note documents a clinical safety assessment at a point in time and does not by itself authorize, mandate, or replace any specific intervention or legal hold."

// ideationPhrases maps each ideation status to its fixed clinical phrase. The explicit
// not_assessed variant reads differently from a field simply left empty.
var ideationPhrases = map[models.IdeationStatus]string{
	models.IdeationNone:        "patient denies current suicidal ideation",
	models.IdeationPassive:     "patient reports passive death wish without active suicidal ideation",
	models.IdeationActive:      "patient reports active suicidal ideation",
	models.IdeationFluctuating: "patient reports suicidal ideation fluctuating over the course of the interview",
	models.IdeationNotAssessed: "suicidal ideation was not formally assessed at this encounter",
}

var intentPlanPhrases = map[models.IntentPlanStatus]string{
	models.IntentPlanDenied:      "and denies plan or intent to act",
	models.IntentPlanNoIntent:    "with a stated plan but no current intent to act",
	models.IntentPlanActive:      "with stated plan and intent to act",
	models.IntentPlanNotAssessed: "plan and intent were not assessed",
}

var riskFormulationPhrases = map[models.RiskFormulation]string{
	models.RiskLow:           "low",
	models.RiskModerate:      "moderate",
	models.RiskHigh:          "high",
	models.RiskAcute:         "acute and imminent",
	models.RiskNotFormulated: "not formulated at this encounter",
}

var dispositionPhrases = map[models.SafetyDisposition]string{
	models.DispositionAdmitVoluntary:   "voluntary psychiatric admission",
	models.DispositionAdmitInvoluntary: "psychiatric admission under involuntary status",
	models.DispositionDischargePlan:    "discharge with a collaboratively completed safety plan",
	models.DispositionContinueCare:     "continuation of the current level of care",
}

func lookupPhrase[K comparable](table map[K]string, key K) string {
	if phrase, ok := table[key]; ok {
		return phrase
	}
	return models.NotRecorded
}

// BuildSafetyOutcome assembles the safety assessment narrative. Sentences cover
// ideation and intent, the patient's verbatim statement, means access, protective
// factors, the risk formulation, disposition, and the boundary line. The whole
// paragraph is whitespace-collapsed before returning.
func BuildSafetyOutcome(form models.SafetyForm, insertedAtMs int64) string {
	ts := timefmt.FormatLocalTimestamp(insertedAtMs)

	var means []string
	means = checked(means, form.MeansAccess.Firearms, "firearms in the home")
	means = checked(means, form.MeansAccess.MedicationStockpile, "stockpiled medications")
	means = checked(means, form.MeansAccess.Sharps, "access to sharps")
	means = checked(means, form.MeansAccess.OtherMeans, "other identified means")

	var protective []string
	protective = checked(protective, form.ProtectiveFactors.FamilySupport, "family support")
	protective = checked(protective, form.ProtectiveFactors.ReligiousBeliefs, "religious beliefs")
	protective = checked(protective, form.ProtectiveFactors.FutureOrientation, "future orientation")
	protective = checked(protective, form.ProtectiveFactors.TreatmentEngaged, "active engagement with treatment")

	sentences := []string{
		fmt.Sprintf("On assessment, %s, %s.",
			lookupPhrase(ideationPhrases, form.IdeationStatus),
			lookupPhrase(intentPlanPhrases, form.IntentPlanStatus)),
		fmt.Sprintf("Patient states, %s.", QuoteIf(form.PatientVerbatim)),
		fmt.Sprintf("Access to lethal means identified: %s.", joinChecklist(means)),
		fmt.Sprintf("Protective factors: %s.", joinChecklist(protective)),
		fmt.Sprintf("Acute suicide risk is assessed as %s.",
			lookupPhrase(riskFormulationPhrases, form.RiskFormulation)),
		fmt.Sprintf("Recommended disposition: %s.",
			lookupPhrase(dispositionPhrases, form.Disposition)),
		fmt.Sprintf("%s Recorded %s.", SafetyBoundary, ts),
	}

	return collapseWhitespace(strings.Join(sentences, " "))
}
