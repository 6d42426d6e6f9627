// Package wire checks outgoing checklist payloads against the backend's
// OpenAPI contract, so a malformed draft is caught before it leaves the
// process instead of surfacing as an opaque server rejection.
package wire

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/cateringlab/checklist/pkg/checklist"
)

//go:embed contract.yaml
var contractYAML []byte

const checklistSchema = "Checklist"

// Contract wraps the loaded backend schema.
type Contract struct {
	schema *openapi3.Schema
}

// Load parses and validates the embedded contract document.
func Load() (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractYAML)
	if err != nil {
		return nil, fmt.Errorf("wire: load contract: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("wire: invalid contract document: %w", err)
	}

	ref, ok := doc.Components.Schemas[checklistSchema]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("wire: contract is missing the %s schema", checklistSchema)
	}
	return &Contract{schema: ref.Value}, nil
}

// ValidateDraft checks the draft's wire payload against the checklist
// schema. The payload is round-tripped through JSON first so Go numeric
// types normalise the same way the real request body would.
func (c *Contract) ValidateDraft(draft *checklist.Draft) error {
	payload := make(map[string]any, len(draft.Fields)+2)
	for k, v := range draft.Fields {
		payload[k] = v
	}
	payload["checklist_type"] = string(draft.Type)
	payload["status"] = string(draft.Status)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("wire: encode payload: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return fmt.Errorf("wire: normalise payload: %w", err)
	}

	if err := c.schema.VisitJSON(normalized); err != nil {
		return fmt.Errorf("wire: payload does not match contract: %w", err)
	}
	return nil
}
