package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/figspec/pkg/domain"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const stateSchemaURL = "https://figspec.dev/schemas/state.json"

// stateSchemaJSON describes version 1 of the state document.
const stateSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://figspec.dev/schemas/state.json",
  "type": "object",
  "required": ["version", "uiSystem", "rootId", "nodes", "bfs"],
  "properties": {
    "version": { "const": 1 },
    "uiSystem": { "type": "string", "enum": ["UIKit", "SwiftUI"] },
    "rootId": { "type": "string", "minLength": 1 },
    "nodes": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/node" }
    },
    "bfs": {
      "type": "array",
      "items": { "type": "string" }
    },
    "decisions": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/decision" }
    }
  },
  "$defs": {
    "node": {
      "type": "object",
      "required": ["id", "type", "childIds"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "name": { "type": "string" },
        "type": { "type": "string" },
        "parentId": { "type": ["string", "null"] },
        "depth": { "type": "integer", "minimum": 0 },
        "childIds": {
          "type": "array",
          "items": { "type": "string" }
        },
        "facts": { "type": "object" }
      }
    },
    "decision": {
      "type": "object",
      "properties": {
        "component": { "type": "object" }
      }
    }
  }
}`

var compiledState = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(stateSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal state schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(stateSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add state schema resource: %w", err)
	}
	return c.Compile(stateSchemaURL)
})

// DecodeState parses and validates a persisted state document.
func DecodeState(data []byte) (*domain.State, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is not an object", domain.ErrInvalidState)
	}
	if err := checkVersion(obj["version"]); err != nil {
		return nil, err
	}

	sch, err := compiledState()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidState, toAggregate(err))
	}

	// version may be written as 1.0; it was checked above.
	var state domain.State
	wrapped := struct {
		*domain.State
		Version json.Number `json:"version"`
	}{State: &state}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	state.Version = domain.StateVersion
	if _, err := state.Node(state.RootID); err != nil {
		return nil, fmt.Errorf("%w: root %s has no node record", domain.ErrInvalidState, state.RootID)
	}
	if state.Decisions == nil {
		state.Decisions = make(map[string]domain.Decision)
	}
	return &state, nil
}

// EncodeState serializes state, indented when pretty is set.
func EncodeState(state *domain.State, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(state, "", "  ")
	}
	return json.Marshal(state)
}

func checkVersion(v any) error {
	n, ok := v.(json.Number)
	if !ok {
		return fmt.Errorf("%w: missing or non-numeric version", domain.ErrUnsupportedVersion)
	}
	if version, err := n.Float64(); err != nil || version != domain.StateVersion {
		return fmt.Errorf("%w: got %s, want %d", domain.ErrUnsupportedVersion, n, domain.StateVersion)
	}
	return nil
}

// toAggregate flattens a jsonschema error tree into one entry per leaf violation.
func toAggregate(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	agg := &AggregateError{}
	collect(verr, agg)
	if len(agg.Errors) == 0 {
		agg.Errors = append(agg.Errors, &ValidationError{Path: "/", Reason: verr.Error()})
	}
	return agg
}

func collect(verr *jsonschema.ValidationError, agg *AggregateError) {
	if len(verr.Causes) == 0 {
		agg.Errors = append(agg.Errors, &ValidationError{
			Path:   "/" + strings.Join(verr.InstanceLocation, "/"),
			Reason: verr.Error(),
		})
		return
	}
	for _, cause := range verr.Causes {
		collect(cause, agg)
	}
}
