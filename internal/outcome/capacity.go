// Package outcome decision-making capacity builder.
package outcome

import (
	"fmt"
	"strings"

	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
)

// CapacityBoundary is the fixed legal-boundary sentence ending every capacity paragraph.
const CapacityBoundary = "Capacity is decision-specific and time-specific; this assessment applies only to the decision described above and does not constitute a global determination of competence, which remains a judicial matter."

// Each capacity domain carries its own phrase table; the four tables are intentionally
// separate because the clinical wording differs per domain.
var understandingPhrases = map[models.CapacityDomain]string{
	models.DomainIntact:         "demonstrates intact understanding of the relevant information",
	models.DomainPartial:        "demonstrates partial understanding, with gaps on repetition",
	models.DomainImpaired:       "is unable to paraphrase the relevant information despite repeated explanation",
	models.DomainUnableToAssess: "understanding could not be assessed",
}

var appreciationPhrases = map[models.CapacityDomain]string{
	models.DomainIntact:         "appreciates how the decision applies to their own situation",
	models.DomainPartial:        "shows limited appreciation of personal consequences",
	models.DomainImpaired:       "does not appreciate that the decision applies to their own circumstances",
	models.DomainUnableToAssess: "appreciation could not be assessed",
}

var reasoningPhrases = map[models.CapacityDomain]string{
	models.DomainIntact:         "manipulates the relevant information rationally and weighs alternatives",
	models.DomainPartial:        "shows partially logical reasoning with identifiable distortions",
	models.DomainImpaired:       "reasoning is grossly impaired by the underlying condition",
	models.DomainUnableToAssess: "reasoning could not be assessed",
}

var choiceStabilityPhrases = map[models.ChoiceStability]string{
	models.ChoiceStable:         "communicates a clear and stable choice",
	models.ChoiceFluctuating:    "expressed choice fluctuates within the interview",
	models.ChoiceInconsistent:   "expressed choice is inconsistent across repeated inquiry",
	models.ChoiceUnableToAssess: "a choice could not be elicited",
}

var impressionPhrases = map[models.CapacityImpression]string{
	models.ImpressionHasCapacity:   "the patient has capacity for this specific decision at this time",
	models.ImpressionLacksCapacity: "the patient lacks capacity for this specific decision at this time",
	models.ImpressionFluctuating:   "capacity is fluctuating; reassessment is advised before the decision is acted on",
	models.ImpressionNotDetermined: "a capacity determination was not reached at this encounter",
}

// BuildCapacityOutcome assembles the capacity assessment narrative across the four
// standard domains, the overall impression, and the recommendation.
func BuildCapacityOutcome(form models.CapacityForm, insertedAtMs int64) string {
	ts := timefmt.FormatLocalTimestamp(insertedAtMs)

	sentences := []string{
		fmt.Sprintf("Capacity was assessed for the following decision: %s.", orNotRecorded(form.DecisionContext)),
		fmt.Sprintf("The patient %s.", lookupPhrase(understandingPhrases, form.Understanding)),
		fmt.Sprintf("The patient %s.", lookupPhrase(appreciationPhrases, form.Appreciation)),
		fmt.Sprintf("The patient %s.", lookupPhrase(reasoningPhrases, form.Reasoning)),
		fmt.Sprintf("The patient %s.", lookupPhrase(choiceStabilityPhrases, form.ChoiceStability)),
		fmt.Sprintf("Overall impression: %s.", lookupPhrase(impressionPhrases, form.Impression)),
		fmt.Sprintf("Recommendation: %s.", orNotRecorded(form.Recommendation)),
		fmt.Sprintf("%s Recorded %s.", CapacityBoundary, ts),
	}

	return strings.Join(sentences, " ")
}
