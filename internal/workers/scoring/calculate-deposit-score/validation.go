package calculatedepositscore

import "github.com/Nurbek-dev001/World-banking-system/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"clientId":           {Type: "string", MinLength: validation.Int(1)},
			"profile":            {Type: "object", Nullable: true},
			"transactionSignals": {Type: "object", Nullable: true},
			"monthlyIncome":      {Type: "number", Nullable: true, Minimum: validation.Float(0)},
		},
		Required:             []string{"clientId"},
		AdditionalProperties: true,
	}
}
