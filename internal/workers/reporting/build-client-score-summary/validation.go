package buildclientscoresummary

import (
	"strings"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/validation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"clientIds": {
				Type:     "array",
				MinItems: validation.Int(1),
				Items:    &validation.Property{Type: "string", MinLength: validation.Int(1)},
			},
			"detail": {Type: "boolean", Nullable: true},
		},
		Required:             []string{"clientIds"},
		AdditionalProperties: true,
	}
}

// outputSchema is the contract processes rely on when reading the summary.
const outputSchema = `{
  "type": "object",
  "required": ["clients", "scored", "failed"],
  "properties": {
    "scored": {"type": "integer", "minimum": 0},
    "failed": {"type": "integer", "minimum": 0},
    "clients": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["clientId"],
        "properties": {
          "clientId": {"type": "string", "minLength": 1},
          "loan": {
            "type": "object",
            "required": ["score", "percentage", "status", "tier"],
            "properties": {
              "score": {"type": "integer", "minimum": 0, "maximum": 100},
              "percentage": {"type": "integer", "minimum": 0, "maximum": 100},
              "status": {"enum": ["APPROVED", "CONDITIONAL", "REVIEW", "DENIED"]},
              "tier": {"enum": ["Excellent", "Good", "Fair", "Poor", "Very Poor"]}
            }
          },
          "deposit": {
            "type": "object",
            "required": ["score", "percentage", "tier", "interestRate"],
            "properties": {
              "score": {"type": "integer", "minimum": 0, "maximum": 100},
              "percentage": {"type": "integer", "minimum": 0, "maximum": 100},
              "tier": {"enum": ["Premium", "Gold", "Silver", "Bronze", "Restricted"]},
              "interestRate": {"type": "number", "minimum": 0}
            }
          },
          "error": {
            "type": "object",
            "required": ["code", "message"],
            "properties": {
              "code": {"type": "string"},
              "message": {"type": "string"}
            }
          }
        },
        "oneOf": [
          {"required": ["loan", "deposit"]},
          {"required": ["error"]}
        ]
      }
    }
  }
}`

func validateOutput(output *Output) error {
	result, err := validation.ValidateDocument(outputSchema, output)
	if err != nil {
		return errors.NewOutputSchemaViolationError(err.Error())
	}
	if !result.Valid {
		return errors.NewOutputSchemaViolationError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}
