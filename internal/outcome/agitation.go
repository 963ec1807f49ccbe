// Package outcome agitation / behavioral emergency builder.
package outcome

import (
	"fmt"
	"strings"

	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
)

// AgitationBoundary is the fixed legal-boundary sentence ending every agitation paragraph.
const AgitationBoundary = "Interventions described were clinically indicated responses to acute behavioral risk; this documentation does not constitute a standing order and does not replace institutional policy on restraint or seclusion."

var baselinePhrases = map[models.AgitationBaseline]string{
	models.BaselineCalm:        "patient was calm and at behavioral baseline prior to this episode",
	models.BaselineRestless:    "patient showed restlessness above behavioral baseline",
	models.BaselineEscalating:  "patient exhibited progressively escalating agitation from baseline",
	models.BaselineAcuteChange: "patient exhibited an acute behavioral change from documented baseline",
}

// injuryRiskPhrases carries the five coded risk profiles; anything else falls through
// to the catch-all placeholder.
var injuryRiskPhrases = map[models.InjuryRiskProfile]string{
	models.InjuryRiskLowStatic:        "low static risk of injury to self or others",
	models.InjuryRiskEscalatingVerbal: "escalating verbal aggression without physical contact",
	models.InjuryRiskImminentPhysical: "imminent risk of physical aggression",
	models.InjuryRiskActiveAssault:    "active assaultive behavior with immediate injury risk",
	models.InjuryRiskSelfDirected:     "risk primarily self-directed",
}

var deEscalationResultPhrases = map[models.DeEscalationResponse]string{
	models.DeEscalationSettled:      "patient settled with de-escalation alone",
	models.DeEscalationPartial:      "partial response to de-escalation",
	models.DeEscalationNoEffect:     "no observable response to de-escalation",
	models.DeEscalationRefused:      "patient declined to engage with de-escalation attempts",
	models.DeEscalationNotAttempted: "de-escalation was not attempted given immediacy of risk",
}

var monitoringPhrases = map[models.PostInterventionMonitoring]string{
	models.MonitoringContinuous: "continuous monitoring was initiated",
	models.MonitoringQ15:        "monitoring at 15-minute intervals was initiated",
	models.MonitoringRoutine:    "routine unit monitoring was resumed",
	models.MonitoringHandoff:    "monitoring was handed off to the primary team with parameters documented",
}

// BuildAgitationOutcome assembles the behavioral emergency narrative: baseline and
// risk, medical contributors, de-escalation attempts and response, escalation
// rationale, and post-intervention monitoring.
func BuildAgitationOutcome(form models.AgitationForm, insertedAtMs int64) string {
	ts := timefmt.FormatLocalTimestamp(insertedAtMs)

	var contributors []string
	contributors = checked(contributors, form.MedicalContributors.Delirium, "delirium")
	contributors = checked(contributors, form.MedicalContributors.Intoxication, "intoxication")
	contributors = checked(contributors, form.MedicalContributors.Withdrawal, "withdrawal")
	contributors = checked(contributors, form.MedicalContributors.Pain, "uncontrolled pain")
	contributors = checked(contributors, form.MedicalContributors.Hypoxia, "hypoxia")

	var attempts []string
	attempts = checked(attempts, form.DeEscalation.VerbalDeEscalation, "verbal de-escalation")
	attempts = checked(attempts, form.DeEscalation.EnvironmentModified, "environmental modification")
	attempts = checked(attempts, form.DeEscalation.OralMedicationOffer, "offer of oral medication")
	attempts = checked(attempts, form.DeEscalation.FamilyInvolvement, "family involvement")

	sentences := []string{
		fmt.Sprintf("Prior to intervention, %s, with %s.",
			lookupPhrase(baselinePhrases, form.Baseline),
			lookupPhrase(injuryRiskPhrases, form.InjuryRiskProfile)),
		fmt.Sprintf("Medical contributors considered: %s.", joinChecklist(contributors)),
		fmt.Sprintf("De-escalation attempted: %s; %s.",
			joinChecklist(attempts),
			lookupPhrase(deEscalationResultPhrases, form.DeEscalationResult)),
		fmt.Sprintf("Rationale for escalation of intervention: %s.", orNotRecorded(form.EscalationRationale)),
		fmt.Sprintf("Following intervention, %s.", lookupPhrase(monitoringPhrases, form.Monitoring)),
		fmt.Sprintf("%s Recorded %s.", AgitationBoundary, ts),
	}

	return strings.Join(sentences, " ")
}
