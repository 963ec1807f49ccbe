// Package testutil provides common test utilities and helpers for NoteFlow tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ClinScribe/NoteFlow/internal/api"
	"github.com/ClinScribe/NoteFlow/internal/library"
	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/store"
)

// TestCards is a small library snapshot spanning three leaf sections.
var TestCards = []models.Card{
	{ID: "c-haldol", Title: "Haloperidol dosing", SectionID: "antipsychotics", Tags: []string{"antipsychotic", "agitation"}, Summary: "IM and PO dosing for acute agitation."},
	{ID: "c-olanz", Title: "Olanzapine dosing", SectionID: "antipsychotics", Tags: []string{"antipsychotic"}, Summary: "Avoid IM olanzapine with parenteral benzodiazepines."},
	{ID: "c-loraz", Title: "Lorazepam challenge", SectionID: "benzodiazepines", Tags: []string{"benzodiazepine", "catatonia"}, Summary: "Test dose protocol for suspected catatonia."},
	{ID: "c-bfcrs", Title: "Bush-Francis scale", SectionID: "catatonia", Tags: []string{"catatonia", "scale"}, Summary: "23-item catatonia rating scale."},
}

// NewTestServer creates a test API server with in-memory dependencies.
// This centralizes the test server creation logic used across multiple test files.
func NewTestServer(t *testing.T) (*api.Server, *store.InMemoryStore, *library.NavState) {
	t.Helper()
	st := store.NewInMemoryStore()
	index := library.BuildIndex(library.DefaultSections)
	engine := library.NewEngine(TestCards, index)
	nav := library.NewNavState(engine, library.WithDebounceInterval(time.Millisecond))
	return api.NewServer(st, engine, nav, nil), st, nav
}

// AssertHTTPStatus checks the HTTP status code and fails the test if it doesn't match.
func AssertHTTPStatus(t *testing.T, expected, actual int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected status %d, got %d", context, expected, actual)
	}
}

// AssertJSONResponse decodes JSON response and validates the status field.
func AssertJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus string) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}

	if status, ok := response["status"].(string); ok {
		if status != expectedStatus {
			t.Errorf("expected status '%s', got '%s'", expectedStatus, status)
		}
	} else {
		t.Error("response missing or invalid 'status' field")
	}

	return response
}

// CreateHTTPRequest creates an HTTP request with optional JSON body for testing.
func CreateHTTPRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create HTTP request: %v", err)
	}
	return req
}

// AssertRunCount validates the number of completed runs in the store.
func AssertRunCount(t *testing.T, st store.Store, expected int, context string) {
	t.Helper()
	runs, err := st.GetCompletedRuns("")
	if err != nil {
		t.Fatalf("%s: failed to get completed runs: %v", context, err)
	}
	if len(runs) != expected {
		t.Errorf("%s: expected %d runs, got %d", context, expected, len(runs))
	}
}
