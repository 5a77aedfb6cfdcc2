// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// activitySchema is the shape every registry entry must satisfy. Categories
// mirror the worker package tree.
const activitySchema = `{
  "type": "object",
  "required": ["id", "displayName", "category", "taskType"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "displayName": {"type": "string", "minLength": 1},
    "category": {
      "type": "string",
      "enum": ["lane-intelligence", "rate-intelligence", "data-access", "communication"]
    },
    "taskType": {"type": "string", "minLength": 1},
    "implementationStatus": {
      "type": "string",
      "enum": ["planned", "in-progress", "completed", "verified"]
    },
    "errorCodes": {"type": "array", "items": {"type": "string"}},
    "retries": {"type": "integer", "minimum": 0}
  }
}`

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// ValidateActivity checks one entry against the registry entry schema.
func ValidateActivity(activity Activity) error {
	payload, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal activity %s: %w", activity.ID, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(activitySchema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("validate activity %s: %w", activity.ID, err)
	}
	if !result.Valid() {
		return fmt.Errorf("invalid activity %s: %v", activity.ID, result.Errors())
	}
	return nil
}

// Validate checks the whole registry: unique IDs and schema-valid entries.
func Validate(reg *ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	for _, activity := range reg.Activities {
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if err := ValidateActivity(activity); err != nil {
			return err
		}
	}
	return nil
}
