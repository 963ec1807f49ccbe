// Package outcome lorazepam trial builder.
package outcome

import (
	"fmt"
	"strings"

	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
)

// LorazepamBoundary is the fixed legal-boundary sentence ending every lorazepam paragraph.
const LorazepamBoundary = "Dosing described reflects the clinical trial documented here; prescribing authority and ongoing orders remain with the treating team and this note does not itself constitute a medication order."

var indicationPhrases = map[models.LorazepamIndication]string{
	models.IndicationCatatonia:         "suspected catatonia",
	models.IndicationAgitation:         "acute agitation",
	models.IndicationAlcoholWithdrawal: "alcohol withdrawal",
	models.IndicationAnxiolysis:        "anxiolysis",
	models.IndicationOther:             "another documented indication",
}

var lorazepamResponsePhrases = map[models.LorazepamResponse]string{
	models.LorazepamMarkedResponse:  "a marked clinical response was observed",
	models.LorazepamPartialResponse: "a partial clinical response was observed",
	models.LorazepamNoResponse:      "no clinical response was observed",
	models.LorazepamAdverseEffect:   "an adverse effect was observed and the trial was stopped",
	models.LorazepamPending:         "response assessment is pending",
}

// BuildLorazepamOutcome assembles the lorazepam trial narrative. This flow renders as
// short paragraphs joined by newlines rather than one running paragraph.
func BuildLorazepamOutcome(form models.LorazepamForm, insertedAtMs int64) string {
	ts := timefmt.FormatLocalTimestamp(insertedAtMs)

	var vitals []string
	vitals = checked(vitals, form.VitalsMonitoring.BloodPressure, "blood pressure")
	vitals = checked(vitals, form.VitalsMonitoring.HeartRate, "heart rate")
	vitals = checked(vitals, form.VitalsMonitoring.RespiratoryRate, "respiratory rate")
	vitals = checked(vitals, form.VitalsMonitoring.OxygenSaturation, "oxygen saturation")
	vitals = checked(vitals, form.VitalsMonitoring.SedationLevel, "sedation level")

	paragraphs := []string{
		fmt.Sprintf("A lorazepam trial was undertaken for %s.", lookupPhrase(indicationPhrases, form.Indication)),
		fmt.Sprintf("Test dose administered: %s.", orNotRecorded(form.TestDose)),
		fmt.Sprintf("Following the test dose, %s.", lookupPhrase(lorazepamResponsePhrases, form.Response)),
		fmt.Sprintf("Parameters monitored around dosing: %s.", joinChecklist(vitals)),
		fmt.Sprintf("Titration plan: %s.", orNotRecorded(form.TitrationPlan)),
		fmt.Sprintf("%s Recorded %s.", LorazepamBoundary, ts),
	}

	return strings.Join(paragraphs, "\n")
}
