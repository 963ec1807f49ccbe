// Package outcome implements the flow outcome generation engine.
//
// Each clinical flow has a deterministic builder mapping its typed form state plus a
// capture timestamp to the final narrative paragraph. Builders are total over their
// input domain: missing information is rendered as a visible placeholder, never an
// error. A package registry adapts the typed builders for callers that carry the form
// as raw JSON (the API layer).
package outcome

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// Builder defines how to create an outcome paragraph from raw form state.
type Builder interface {
	Build(raw json.RawMessage, insertedAtMs int64) (string, error)
}

var registry = make(map[models.FlowType]Builder)

// Register associates a FlowType with a Builder implementation.
func Register(ft models.FlowType, b Builder) {
	registry[ft] = b
}

// Get retrieves the Builder for a given FlowType.
func Get(ft models.FlowType) (Builder, bool) {
	b, ok := registry[ft]
	return b, ok
}

// Build finds and runs the Builder for the flow type. The only failure modes are an
// unregistered flow type and malformed form JSON; the builders themselves never fail.
func Build(ft models.FlowType, raw json.RawMessage, insertedAtMs int64) (string, error) {
	slog.Debug("Outcome Build invoked", "flow", ft)
	b, ok := Get(ft)
	if !ok {
		slog.Error("No builder registered for flow type", "flow", ft)
		return "", fmt.Errorf("no builder registered for flow type %s", ft)
	}
	paragraph, err := b.Build(raw, insertedAtMs)
	if err != nil {
		slog.Error("Outcome builder error", "flow", ft, "error", err)
		return "", err
	}
	slog.Debug("Outcome Build succeeded", "flow", ft, "length", len(paragraph))
	return paragraph, nil
}

// formBuilder adapts a typed builder function for the registry by decoding the raw
// JSON form into its flow's form record first. A missing or empty payload decodes to
// the all-defaults form, matching the wizard's initialization behavior.
type formBuilder[T any] struct {
	build func(form T, insertedAtMs int64) string
}

func (fb formBuilder[T]) Build(raw json.RawMessage, insertedAtMs int64) (string, error) {
	var form T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &form); err != nil {
			return "", fmt.Errorf("failed to decode form state: %w", err)
		}
	}
	return fb.build(form, insertedAtMs), nil
}

// Register default builders
func init() {
	Register(models.FlowTypeSafety, formBuilder[models.SafetyForm]{BuildSafetyOutcome})
	Register(models.FlowTypeAgitation, formBuilder[models.AgitationForm]{BuildAgitationOutcome})
	Register(models.FlowTypeCapacity, formBuilder[models.CapacityForm]{BuildCapacityOutcome})
	Register(models.FlowTypeCatatonia, formBuilder[models.CatatoniaForm]{BuildCatatoniaOutcome})
	Register(models.FlowTypeLorazepam, formBuilder[models.LorazepamForm]{BuildLorazepamOutcome})
	Register(models.FlowTypeObservation, formBuilder[models.ObservationForm]{BuildObservationOutcome})
	Register(models.FlowTypeGeneric, formBuilder[models.GenericForm]{BuildGenericOutcome})
}
