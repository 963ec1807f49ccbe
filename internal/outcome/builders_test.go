package outcome

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
)

// Every builder, for any form value, returns a non-empty paragraph carrying its flow's
// boundary sentence and the exact recorded timestamp.
func TestAllBuilders_CommonContract(t *testing.T) {
	ms := time.Date(2024, 3, 2, 14, 45, 0, 0, time.Local).UnixMilli()
	ts := timefmt.FormatLocalTimestamp(ms)

	cases := []struct {
		name     string
		out      string
		boundary string
	}{
		{"safety", BuildSafetyOutcome(models.SafetyForm{}, ms), SafetyBoundary},
		{"agitation", BuildAgitationOutcome(models.AgitationForm{}, ms), AgitationBoundary},
		{"capacity", BuildCapacityOutcome(models.CapacityForm{}, ms), CapacityBoundary},
		{"catatonia", BuildCatatoniaOutcome(models.CatatoniaForm{}, ms), CatatoniaBoundary},
		{"lorazepam", BuildLorazepamOutcome(models.LorazepamForm{}, ms), LorazepamBoundary},
		{"observation", BuildObservationOutcome(models.ObservationForm{}, ms), ObservationBoundary},
		{"generic", BuildGenericOutcome(models.GenericForm{}, ms), GenericBoundary},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.out == "" {
				t.Fatal("empty output")
			}
			if !strings.Contains(tc.out, tc.boundary) {
				t.Errorf("boundary sentence missing from %q", tc.out)
			}
			if !strings.HasSuffix(tc.out, "Recorded "+ts+".") {
				t.Errorf("output does not end with recorded timestamp; got %q", tc.out)
			}
		})
	}
}

func TestBuildAgitationOutcome_InjuryRiskVariants(t *testing.T) {
	ms := time.Now().UnixMilli()
	cases := []struct {
		profile models.InjuryRiskProfile
		want    string
	}{
		{models.InjuryRiskLowStatic, "low static risk of injury to self or others"},
		{models.InjuryRiskEscalatingVerbal, "escalating verbal aggression without physical contact"},
		{models.InjuryRiskImminentPhysical, "imminent risk of physical aggression"},
		{models.InjuryRiskActiveAssault, "active assaultive behavior with immediate injury risk"},
		{models.InjuryRiskSelfDirected, "risk primarily self-directed"},
		{models.InjuryRiskProfile(""), "[not recorded]"},
		{models.InjuryRiskProfile("bogus_code"), "[not recorded]"},
	}
	for _, tc := range cases {
		out := BuildAgitationOutcome(models.AgitationForm{InjuryRiskProfile: tc.profile}, ms)
		if !strings.Contains(out, tc.want) {
			t.Errorf("injury risk %q: output missing %q", tc.profile, tc.want)
		}
	}
}

func TestBuildAgitationOutcome_DeEscalationOrder(t *testing.T) {
	out := BuildAgitationOutcome(models.AgitationForm{
		DeEscalation: models.DeEscalationChecklist{
			VerbalDeEscalation:  true,
			EnvironmentModified: true,
			OralMedicationOffer: true,
			FamilyInvolvement:   true,
		},
		DeEscalationResult: models.DeEscalationPartial,
	}, time.Now().UnixMilli())
	want := "verbal de-escalation, environmental modification, offer of oral medication, family involvement; partial response to de-escalation."
	if !strings.Contains(out, want) {
		t.Errorf("de-escalation sentence malformed: %q", out)
	}
}

func TestBuildCapacityOutcome_DomainVariants(t *testing.T) {
	ms := time.Now().UnixMilli()
	// The four domains each carry their own phrasing; spot-check every variant of the
	// understanding table and the distinct wording of the other domains.
	understanding := map[models.CapacityDomain]string{
		models.DomainIntact:         "demonstrates intact understanding of the relevant information",
		models.DomainPartial:        "demonstrates partial understanding, with gaps on repetition",
		models.DomainImpaired:       "is unable to paraphrase the relevant information despite repeated explanation",
		models.DomainUnableToAssess: "understanding could not be assessed",
		models.CapacityDomain(""):   "[not recorded]",
	}
	for domain, want := range understanding {
		out := BuildCapacityOutcome(models.CapacityForm{Understanding: domain}, ms)
		if !strings.Contains(out, want) {
			t.Errorf("understanding %q: output missing %q", domain, want)
		}
	}

	out := BuildCapacityOutcome(models.CapacityForm{
		Appreciation:    models.DomainIntact,
		Reasoning:       models.DomainImpaired,
		ChoiceStability: models.ChoiceInconsistent,
		Impression:      models.ImpressionFluctuating,
	}, ms)
	for _, want := range []string{
		"appreciates how the decision applies to their own situation",
		"reasoning is grossly impaired by the underlying condition",
		"expressed choice is inconsistent across repeated inquiry",
		"capacity is fluctuating; reassessment is advised before the decision is acted on",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("capacity output missing %q; got %q", want, out)
		}
	}
}

func TestBuildLorazepamOutcome_ParagraphJoin(t *testing.T) {
	out := BuildLorazepamOutcome(models.LorazepamForm{
		Indication: models.IndicationCatatonia,
		TestDose:   "lorazepam 2 mg IV",
		Response:   models.LorazepamMarkedResponse,
	}, time.Now().UnixMilli())

	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 paragraphs, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "suspected catatonia") {
		t.Errorf("indication missing: %q", lines[0])
	}
	if lines[1] != "Test dose administered: lorazepam 2 mg IV." {
		t.Errorf("test dose paragraph = %q", lines[1])
	}
	if !strings.Contains(lines[2], "a marked clinical response was observed") {
		t.Errorf("response missing: %q", lines[2])
	}
}

func TestBuildGenericOutcome_ParagraphJoin(t *testing.T) {
	out := BuildGenericOutcome(models.GenericForm{
		Situation:  "transferred overnight",
		Assessment: "stable",
		Actions:    models.GenericActionsChecklist{ChartReviewed: true, TeamDiscussed: true},
		Plan:       "follow up tomorrow",
	}, time.Now().UnixMilli())

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 paragraphs, got %d", len(lines))
	}
	if lines[2] != "Actions taken: chart reviewed, discussed with primary team." {
		t.Errorf("actions paragraph = %q", lines[2])
	}
}

func TestRegistry_BuildDecodesForms(t *testing.T) {
	ms := time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local).UnixMilli()
	raw := json.RawMessage(`{"ideation_status":"active","intent_plan_status":"active_intent","patient_verbatim":"I want to end it"}`)

	out, err := Build(models.FlowTypeSafety, raw, ms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "patient reports active suicidal ideation") {
		t.Errorf("registry build output missing ideation phrase: %q", out)
	}

	// Identical typed and registry paths produce identical paragraphs.
	typed := BuildSafetyOutcome(models.SafetyForm{
		IdeationStatus:   models.IdeationActive,
		IntentPlanStatus: models.IntentPlanActive,
		PatientVerbatim:  "I want to end it",
	}, ms)
	if out != typed {
		t.Errorf("registry output differs from typed builder:\n%q\n%q", out, typed)
	}
}

func TestRegistry_UnknownFlowType(t *testing.T) {
	if _, err := Build(models.FlowType("unknown"), nil, 0); err == nil {
		t.Error("expected error for unregistered flow type")
	}
}

func TestRegistry_EmptyPayloadUsesDefaults(t *testing.T) {
	out, err := Build(models.FlowTypeObservation, nil, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "[not recorded]") {
		t.Errorf("default form should render placeholders: %q", out)
	}
}

func TestRegistry_MalformedJSON(t *testing.T) {
	if _, err := Build(models.FlowTypeSafety, json.RawMessage(`{`), 0); err == nil {
		t.Error("expected error for malformed form JSON")
	}
}
