// internal/registry/schema.go
package registry

// JSON schemas for the trained model artifacts. Artifacts are validated
// against these before parsing; a file that fails validation leaves the
// service in a model-unavailable state rather than serving garbage scores.

const latentFactorsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["factors", "user_ids", "item_ids", "user_factors", "item_factors", "score_min", "score_max"],
  "properties": {
    "factors": {"type": "integer", "minimum": 1},
    "user_ids": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "item_ids": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "user_factors": {
      "type": "array",
      "items": {"type": "array", "items": {"type": "number"}}
    },
    "item_factors": {
      "type": "array",
      "items": {"type": "array", "items": {"type": "number"}}
    },
    "score_min": {"type": "number"},
    "score_max": {"type": "number"}
  }
}`

const predictorModelSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["feature_names", "coefficients", "intercept"],
  "properties": {
    "feature_names": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "coefficients": {"type": "array", "items": {"type": "number"}, "minItems": 1},
    "intercept": {"type": "number"},
    "collaborative_default": {"type": "number", "minimum": 0, "maximum": 1},
    "success_prior": {"type": "number", "minimum": 0, "maximum": 1},
    "tier_factors": {
      "type": "object",
      "additionalProperties": {"type": "number"}
    }
  }
}`
