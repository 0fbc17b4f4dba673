package evaluateloanapplication

import (
	"fmt"
	"strings"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/validation"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// GetInputSchema only enforces shapes; amount and tenure bounds are loan
// terms and are checked by validateTerms.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"clientId":           {Type: "string", MinLength: validation.Int(1)},
			"amount":             {Type: "number"},
			"tenureMonths":       {Type: "integer"},
			"purpose":            {Type: "string"},
			"profile":            {Type: "object", Nullable: true},
			"transactionSignals": {Type: "object", Nullable: true},
		},
		Required:             []string{"clientId", "amount", "tenureMonths", "purpose"},
		AdditionalProperties: true,
	}
}

func validateTerms(cfg *Config, input *Input) error {
	if err := validate.Struct(input); err != nil {
		return errors.NewInvalidLoanTermsError(describe(err))
	}

	if decimal.NewFromFloat(input.Amount).GreaterThan(cfg.MaxAmount) {
		return errors.NewInvalidLoanTermsError(
			fmt.Sprintf("amount %.2f exceeds the maximum of %s", input.Amount, cfg.MaxAmount.StringFixed(2)))
	}
	if input.TenureMonths < cfg.MinTenureMonths || input.TenureMonths > cfg.MaxTenureMonths {
		return errors.NewInvalidLoanTermsError(
			fmt.Sprintf("tenureMonths %d outside %d-%d", input.TenureMonths, cfg.MinTenureMonths, cfg.MaxTenureMonths))
	}
	return nil
}

func describe(err error) string {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.ActualTag()))
	}
	return strings.Join(msgs, "; ")
}
