package aggregatetransactionsignals

import "github.com/Nurbek-dev001/World-banking-system/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"clientId": {Type: "string", MinLength: validation.Int(1)},
			"lookbackMonths": {
				Type:     "integer",
				Nullable: true,
				Minimum:  validation.Float(1),
				Maximum:  validation.Float(120),
			},
		},
		Required:             []string{"clientId"},
		AdditionalProperties: true,
	}
}
