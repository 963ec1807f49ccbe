package models

import "testing"

func TestIsValidFlowType(t *testing.T) {
	valid := []FlowType{
		FlowTypeSafety, FlowTypeAgitation, FlowTypeCapacity, FlowTypeCatatonia,
		FlowTypeLorazepam, FlowTypeObservation, FlowTypeGeneric,
	}
	for _, ft := range valid {
		if !IsValidFlowType(ft) {
			t.Errorf("expected %q to be valid", ft)
		}
	}
	for _, ft := range []FlowType{"", "bogus", "SAFETY"} {
		if IsValidFlowType(ft) {
			t.Errorf("expected %q to be invalid", ft)
		}
	}
}

func TestFlowLabel(t *testing.T) {
	if got := FlowLabel(FlowTypeCatatonia); got != "Catatonia Screen" {
		t.Errorf("unexpected label: %q", got)
	}
	// Unknown flows fall back to the raw value.
	if got := FlowLabel(FlowType("mystery")); got != "mystery" {
		t.Errorf("unexpected fallback label: %q", got)
	}
}

func TestAPIResponseBuilder(t *testing.T) {
	resp := NewAPIResponseBuilder().
		WithStatus(APIStatusRecorded).
		WithMessage("stored").
		WithResult(map[string]string{"id": "r-1"}).
		Build()
	if resp.Status != string(APIStatusRecorded) {
		t.Errorf("unexpected status: %q", resp.Status)
	}
	if resp.Message != "stored" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if resp.Result == nil {
		t.Error("expected result to be set")
	}
}

func TestAPIResponseHelpers(t *testing.T) {
	if resp := Success("data"); resp.Status != string(APIStatusOK) || resp.Result != "data" {
		t.Errorf("unexpected success response: %+v", resp)
	}
	if resp := Error("boom"); resp.Status != string(APIStatusError) || resp.Message != "boom" {
		t.Errorf("unexpected error response: %+v", resp)
	}
	if resp := Recorded(nil); resp.Status != string(APIStatusRecorded) {
		t.Errorf("unexpected recorded response: %+v", resp)
	}
}
