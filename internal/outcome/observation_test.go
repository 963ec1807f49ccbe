package outcome

import (
	"strings"
	"testing"
	"time"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// An unset observation level renders the placeholder; "not disclosed / unspecified
// here" is reserved for the explicit not_disclosed_here code.
func TestBuildObservationOutcome_UnsetLevelVsNotDisclosed(t *testing.T) {
	ms := time.Now().UnixMilli()

	unset := BuildObservationOutcome(models.ObservationForm{}, ms)
	if !strings.Contains(unset, "Recommended observation level: [not recorded].") {
		t.Errorf("unset level should render placeholder; got %q", unset)
	}
	if strings.Contains(unset, "not disclosed / unspecified here") {
		t.Error("unset level must not borrow the not_disclosed_here phrase")
	}

	disclosed := BuildObservationOutcome(models.ObservationForm{
		ObservationLevel: models.ObsLevelNotDisclosedHere,
	}, ms)
	if !strings.Contains(disclosed, "Recommended observation level: not disclosed / unspecified here.") {
		t.Errorf("not_disclosed_here level malformed; got %q", disclosed)
	}
}

func TestBuildObservationOutcome_RiskTypeVariants(t *testing.T) {
	ms := time.Now().UnixMilli()
	cases := []struct {
		risk models.ObservationRiskType
		want string
	}{
		{models.ObsRiskSuicide, "Observation is indicated for suicide risk."},
		{models.ObsRiskSelfHarm, "Observation is indicated for self-harm risk."},
		{models.ObsRiskViolence, "Observation is indicated for risk of violence toward others."},
		{models.ObsRiskElopement, "Observation is indicated for elopement risk."},
		{models.ObsRiskFalls, "Observation is indicated for fall risk."},
		{models.ObsRiskNotDisclosedHere, "Observation is indicated for not disclosed / unspecified here."},
		{models.ObservationRiskType(""), "Observation is indicated for [not recorded]."},
	}
	for _, tc := range cases {
		out := BuildObservationOutcome(models.ObservationForm{RiskType: tc.risk}, ms)
		if !strings.Contains(out, tc.want) {
			t.Errorf("risk %q: output missing %q; got %q", tc.risk, tc.want, out)
		}
	}
}

func TestBuildObservationOutcome_LevelVariants(t *testing.T) {
	ms := time.Now().UnixMilli()
	cases := []struct {
		level models.ObservationLevel
		want  string
	}{
		{models.ObsLevelContinuous, "continuous 1:1 observation"},
		{models.ObsLevelLineOfSight, "line-of-sight observation"},
		{models.ObsLevelQ15, "checks at 15-minute intervals"},
		{models.ObsLevelQ30, "checks at 30-minute intervals"},
		{models.ObsLevelRoutine, "routine unit observation"},
	}
	for _, tc := range cases {
		out := BuildObservationOutcome(models.ObservationForm{ObservationLevel: tc.level}, ms)
		if !strings.Contains(out, tc.want) {
			t.Errorf("level %q: output missing %q", tc.level, tc.want)
		}
	}
}

func TestBuildObservationOutcome_EnvironmentChecklist(t *testing.T) {
	out := BuildObservationOutcome(models.ObservationForm{
		EnvironmentalSafety: models.EnvironmentalSafetyChecklist{
			BelongingsSearched: true,
			RoomSwept:          true,
			CordsSharpsRemoved: true,
			DoorKeptOpen:       true,
		},
	}, time.Now().UnixMilli())
	want := "belongings searched, room swept for contraband, cords and sharps removed, door kept open"
	if !strings.Contains(out, want) {
		t.Errorf("environment checklist order wrong: %q", out)
	}
}
