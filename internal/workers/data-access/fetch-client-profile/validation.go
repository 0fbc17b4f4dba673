package fetchclientprofile

import "github.com/Nurbek-dev001/World-banking-system/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"clientId": {Type: "string", MinLength: validation.Int(1)},
			"refresh":  {Type: "boolean", Nullable: true},
		},
		Required:             []string{"clientId"},
		AdditionalProperties: true,
	}
}
