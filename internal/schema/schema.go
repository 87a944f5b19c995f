// Package schema validates the manifest, theme, and state-machine JSON
// documents against bundled JSON Schemas before the hand-written struct
// parsers in pkg/container, pkg/theme, and pkg/statemachine run, turning a
// missing/mistyped field into a precise ParsingError message rather than a
// silent zero value or a cryptic encoding/json error.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/LottieFiles/dotlottie-go/internal/corerr"
)

// Kind selects which bundled schema to validate a document against.
type Kind int

const (
	Manifest Kind = iota
	Theme
	StateMachine
)

func (k Kind) resourceName() string {
	switch k {
	case Manifest:
		return "manifest.schema.json"
	case Theme:
		return "theme.schema.json"
	case StateMachine:
		return "statemachine.schema.json"
	default:
		return "unknown.schema.json"
	}
}

func (k Kind) raw() string {
	switch k {
	case Manifest:
		return manifestSchema
	case Theme:
		return themeSchema
	case StateMachine:
		return stateMachineSchema
	default:
		return `{}`
	}
}

var (
	compileOnce sync.Once
	compiled    map[Kind]*jsonschema.Schema
	compileErr  error
)

func compileAll() {
	compiled = make(map[Kind]*jsonschema.Schema, 3)
	for _, k := range []Kind{Manifest, Theme, StateMachine} {
		c := jsonschema.NewCompiler()
		name := k.resourceName()
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(k.raw()))
		if err != nil {
			compileErr = fmt.Errorf("schema %s is not valid JSON: %w", name, err)
			return
		}
		if err := c.AddResource(name, doc); err != nil {
			compileErr = fmt.Errorf("schema %s rejected: %w", name, err)
			return
		}
		sch, err := c.Compile(name)
		if err != nil {
			compileErr = fmt.Errorf("schema %s failed to compile: %w", name, err)
			return
		}
		compiled[k] = sch
	}
}

// Validate checks text against the bundled schema for kind, returning a
// *corerr.ParsingError describing the first violation on failure.
func Validate(kind Kind, text string) error {
	compileOnce.Do(compileAll)
	if compileErr != nil {
		return &corerr.ParsingError{Reason: "schema compilation failed: " + compileErr.Error()}
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return &corerr.ParsingError{Reason: "document is not valid JSON: " + err.Error()}
	}

	sch := compiled[kind]
	if err := sch.Validate(v); err != nil {
		return &corerr.ParsingError{Reason: "schema validation failed: " + err.Error()}
	}
	return nil
}

const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["animations"],
  "properties": {
    "active_animation_id": {"type": "string"},
    "generator": {"type": "string"},
    "version": {"type": "string"},
    "animations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "initial_theme": {"type": "string"},
          "background": {"type": "string"},
          "themes": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "themes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"}
        }
      }
    },
    "state_machines": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"}
        }
      }
    }
  }
}`

const themeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["rules"],
  "properties": {
    "rules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "id"],
        "properties": {
            "type": {"type": "string"},
          "id": {"type": "string", "minLength": 1},
          "animations": {"type": "array", "items": {"type": "string"}},
          "expression": {"type": "string"},
          "value": {},
          "keyframes": {}
        }
      }
    }
  }
}`

const stateMachineSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["descriptor", "states"],
  "properties": {
    "descriptor": {
      "type": "object",
      "required": ["id", "initial"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "initial": {"type": "string", "minLength": 1},
        "maxCycleCount": {"type": "integer", "minimum": 1}
      }
    },
    "triggers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "name"],
        "properties": {
          "type": {"type": "string", "enum": ["Numeric", "String", "Boolean", "Event"]},
          "name": {"type": "string", "minLength": 1},
          "value": {}
        }
      }
    },
    "states": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "type"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "type": {"type": "string"},
          "animation": {"type": "string"},
          "loop": {"type": "boolean"},
          "loopCount": {"type": "integer", "minimum": 0},
          "final": {"type": "boolean"},
          "autoplay": {"type": "boolean"},
          "mode": {"type": "string"},
          "speed": {"type": "number"},
          "segment": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2},
          "backgroundColor": {"type": "integer"},
          "entryActions": {"type": "array"},
          "exitActions": {"type": "array"},
          "transitions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["targetState"],
              "properties": {
                "targetState": {"type": "string", "minLength": 1},
                "guards": {"type": "array"}
              }
            }
          }
        }
      }
    },
    "listeners": {"type": "array"}
  }
}`
