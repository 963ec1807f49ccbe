// Package models defines the core data structures for NoteFlow.
//
// It includes flow identifiers, per-flow form state records, the completed-run record
// persisted by the registry, content-library cards, and the shared API response envelope.
package models

import (
	"errors"
	"time"
)

// FlowType identifies one clinical documentation flow.
type FlowType string

const (
	// FlowTypeSafety is the suicide/self-harm safety assessment flow.
	FlowTypeSafety FlowType = "safety"
	// FlowTypeAgitation is the agitation / behavioral emergency flow.
	FlowTypeAgitation FlowType = "agitation"
	// FlowTypeCapacity is the decision-making capacity assessment flow.
	FlowTypeCapacity FlowType = "capacity"
	// FlowTypeCatatonia is the catatonia screening flow.
	FlowTypeCatatonia FlowType = "catatonia"
	// FlowTypeLorazepam is the lorazepam trial documentation flow.
	FlowTypeLorazepam FlowType = "lorazepam"
	// FlowTypeObservation is the observation-level documentation flow.
	FlowTypeObservation FlowType = "observation"
	// FlowTypeGeneric is the free-form structured note flow.
	FlowTypeGeneric FlowType = "generic"
)

// NotRecorded is the placeholder rendered for any field left blank. Every interpolation
// point in an outcome paragraph falls back to it rather than rendering an empty string.
const NotRecorded = "[not recorded]"

// Validation constants for outcome insertion.
const (
	// MaxParagraphLength bounds a single outcome paragraph.
	MaxParagraphLength = 16384
	// MaxLabelLength bounds a completed-run label.
	MaxLabelLength = 200
)

// Error variables for better error handling and testability
var (
	ErrInvalidFlowType  = errors.New("invalid flow type")
	ErrEmptyParagraph   = errors.New("paragraph cannot be empty")
	ErrParagraphTooLong = errors.New("paragraph exceeds maximum length")
	ErrEmptyLabel       = errors.New("label cannot be empty")
	ErrLabelTooLong     = errors.New("label exceeds maximum length")
	ErrEmptyCardID      = errors.New("card id cannot be empty")
)

// IsValidFlowType checks if the given flow type is supported.
func IsValidFlowType(ft FlowType) bool {
	switch ft {
	case FlowTypeSafety, FlowTypeAgitation, FlowTypeCapacity, FlowTypeCatatonia,
		FlowTypeLorazepam, FlowTypeObservation, FlowTypeGeneric:
		return true
	default:
		return false
	}
}

// flowLabels maps each flow type to its human-readable wizard label.
var flowLabels = map[FlowType]string{
	FlowTypeSafety:      "Safety Assessment",
	FlowTypeAgitation:   "Agitation / Behavioral Emergency",
	FlowTypeCapacity:    "Capacity Assessment",
	FlowTypeCatatonia:   "Catatonia Screen",
	FlowTypeLorazepam:   "Lorazepam Trial",
	FlowTypeObservation: "Observation Level",
	FlowTypeGeneric:     "Structured Note",
}

// FlowLabel returns the human-readable label for a flow type, or the raw value for an
// unknown flow.
func FlowLabel(ft FlowType) string {
	if label, ok := flowLabels[ft]; ok {
		return label
	}
	return string(ft)
}

// Patient represents a patient on the consult list.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MRN       string    `json:"mrn,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Encounter represents one clinical encounter for a patient. Completed runs are appended
// under an encounter.
type Encounter struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	StartedAt time.Time `json:"started_at"`
}

// CompletedRun is the registry-owned record created by each outcome insertion. The
// paragraph is the only artifact that crosses from form state into persistent state; the
// run is never mutated after creation.
type CompletedRun struct {
	ID          string `json:"id"`
	EncounterID string `json:"encounter_id,omitempty"`
	FlowID      string `json:"flow_id"`
	Label       string `json:"label"`
	Paragraph   string `json:"paragraph"`
	InsertedAt  int64  `json:"inserted_at"` // epoch milliseconds, captured once at commit
}

// Card is one unit of reference content in the psychiatry toolkit library.
// Cards are immutable once loaded; SectionID always names a leaf section.
type Card struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	SectionID  string   `json:"section_id" yaml:"section"`
	Tags       []string `json:"tags,omitempty" yaml:"tags"`
	Summary    string   `json:"summary,omitempty" yaml:"summary"`
	HTML       string   `json:"html,omitempty" yaml:"html"`
	References []string `json:"references,omitempty" yaml:"references"`
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
	// APIStatusRecorded indicates data was successfully recorded via API.
	APIStatusRecorded APIStatus = "recorded"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// APIResponseBuilder provides a fluent interface for building API responses.
type APIResponseBuilder struct {
	response APIResponse
}

// NewAPIResponseBuilder creates a new APIResponseBuilder instance.
func NewAPIResponseBuilder() *APIResponseBuilder {
	return &APIResponseBuilder{response: APIResponse{}}
}

// WithStatus sets the status of the API response.
func (b *APIResponseBuilder) WithStatus(status APIStatus) *APIResponseBuilder {
	b.response.Status = string(status)
	return b
}

// WithMessage sets the message of the API response.
func (b *APIResponseBuilder) WithMessage(message string) *APIResponseBuilder {
	b.response.Message = message
	return b
}

// WithResult sets the result data of the API response.
func (b *APIResponseBuilder) WithResult(result interface{}) *APIResponseBuilder {
	b.response.Result = result
	return b
}

// Build constructs and returns the final APIResponse.
func (b *APIResponseBuilder) Build() APIResponse {
	return b.response
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return NewAPIResponseBuilder().WithStatus(APIStatusOK).WithResult(result).Build()
}

// SuccessWithMessage creates a successful API response with a message and result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return NewAPIResponseBuilder().WithStatus(APIStatusOK).WithMessage(message).WithResult(result).Build()
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return NewAPIResponseBuilder().WithStatus(APIStatusError).WithMessage(message).Build()
}

// Recorded creates a recorded API response with result data.
func Recorded(result interface{}) APIResponse {
	return NewAPIResponseBuilder().WithStatus(APIStatusRecorded).WithResult(result).Build()
}
