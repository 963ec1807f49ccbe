package outcome

import (
	"strings"
	"testing"
	"time"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// The empty-string unset severity and the explicit not_assessed code must render
// distinct phrases; the distinction is load-bearing for the paragraph's evidentiary
// tone and must never be collapsed.
func TestBuildCatatoniaOutcome_SeverityUnsetVsNotAssessed(t *testing.T) {
	ms := time.Now().UnixMilli()

	unset := BuildCatatoniaOutcome(models.CatatoniaForm{}, ms)
	if !strings.Contains(unset, "Severity: [not recorded].") {
		t.Errorf("unset severity should render placeholder; got %q", unset)
	}

	declined := BuildCatatoniaOutcome(models.CatatoniaForm{Severity: models.SeverityNotAssessed}, ms)
	if !strings.Contains(declined, "Severity: not assessed.") {
		t.Errorf("not_assessed severity should render 'not assessed'; got %q", declined)
	}
	if strings.Contains(declined, "Severity: [not recorded].") {
		t.Error("not_assessed severity must not render the unset placeholder")
	}
}

func TestBuildCatatoniaOutcome_SeverityBands(t *testing.T) {
	ms := time.Now().UnixMilli()
	cases := []struct {
		severity models.CatatoniaSeverity
		want     string
	}{
		{models.SeverityNoneObserved, "Severity: no catatonic features observed."},
		{models.SeverityMild, "Severity: mild catatonic features."},
		{models.SeverityModerate, "Severity: moderate catatonic features."},
		{models.SeveritySevere, "Severity: severe catatonic features."},
	}
	for _, tc := range cases {
		out := BuildCatatoniaOutcome(models.CatatoniaForm{Severity: tc.severity}, ms)
		if !strings.Contains(out, tc.want) {
			t.Errorf("severity %q: output missing %q", tc.severity, tc.want)
		}
	}
}

func TestBuildCatatoniaOutcome_ChallengeVariants(t *testing.T) {
	ms := time.Now().UnixMilli()
	cases := []struct {
		challenge models.LorazepamChallenge
		want      string
	}{
		{models.ChallengeMarkedImprovement, "a lorazepam challenge was performed with marked improvement"},
		{models.ChallengePartialResponse, "a lorazepam challenge was performed with partial response"},
		{models.ChallengeNoChange, "a lorazepam challenge was performed without observable change"},
		{models.ChallengeNotPerformed, "a lorazepam challenge was not performed"},
		{models.ChallengeDeferred, "a lorazepam challenge was deferred"},
		{models.LorazepamChallenge(""), "[not recorded]"},
	}
	for _, tc := range cases {
		out := BuildCatatoniaOutcome(models.CatatoniaForm{Challenge: tc.challenge}, ms)
		if !strings.Contains(out, tc.want) {
			t.Errorf("challenge %q: output missing %q", tc.challenge, tc.want)
		}
	}
}

func TestBuildCatatoniaOutcome_WorkupOrder(t *testing.T) {
	out := BuildCatatoniaOutcome(models.CatatoniaForm{
		Workup: models.CatatoniaWorkupChecklist{
			CBC: true, CMP: true, CK: true, Neuroimaging: true, EEG: true, InfectiousWorkup: true,
		},
	}, time.Now().UnixMilli())
	want := "CBC, CMP, CK, neuroimaging, EEG, infectious workup"
	if !strings.Contains(out, want) {
		t.Errorf("workup order wrong: %q", out)
	}
}
