package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// profileSchema describes the stored shape only. Wizard rules such as
// minimum lengths are not repeated here: a saved draft may be incomplete.
const profileSchema = `{
  "type": "object",
  "required": ["productName", "productDescription", "targetAge", "targetGender",
               "targetInterests", "targetRegion", "brandTone", "campaignGoal",
               "platforms", "budgetLevel"],
  "properties": {
    "productName":        {"type": "string"},
    "productDescription": {"type": "string"},
    "targetAge":          {"type": "array", "items": {"type": "string"}},
    "targetGender":       {"type": "array", "items": {"type": "string"}},
    "targetInterests":    {"type": "string"},
    "targetRegion":       {"type": "string"},
    "brandTone":          {"type": "string"},
    "campaignGoal":       {"type": "string"},
    "platforms":          {"type": "array", "items": {"type": "string"}},
    "budgetLevel":        {"type": "string"}
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func checkShape(data []byte) error {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(profileSchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("loading profile schema: %w", schemaErr)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrCorrupt, strings.Join(msgs, "; "))
	}
	return nil
}
