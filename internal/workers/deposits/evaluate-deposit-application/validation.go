package evaluatedepositapplication

import (
	"fmt"
	"strings"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/validation"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"clientId":           {Type: "string", MinLength: validation.Int(1)},
			"amount":             {Type: "number"},
			"durationMonths":     {Type: "integer"},
			"depositType":        {Type: "string"},
			"monthlyIncome":      {Type: "number", Nullable: true},
			"profile":            {Type: "object", Nullable: true},
			"transactionSignals": {Type: "object", Nullable: true},
		},
		Required:             []string{"clientId", "amount", "durationMonths", "depositType"},
		AdditionalProperties: true,
	}
}

// validateTerms checks the request before scoring. The amount ceiling depends
// on the score and is checked afterwards by checkCeiling.
func validateTerms(cfg *Config, input *Input) error {
	if err := validate.Struct(input); err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.NewInvalidDepositTermsError(err.Error())
		}
		msgs := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.ActualTag()))
		}
		return errors.NewInvalidDepositTermsError(strings.Join(msgs, "; "))
	}

	if !cfg.Deposits.AllowsType(input.DepositType) {
		return errors.NewInvalidDepositTermsError(
			fmt.Sprintf("depositType %q is not one of %s", input.DepositType, strings.Join(cfg.Deposits.Types, ", ")))
	}
	if decimal.NewFromFloat(input.Amount).LessThan(cfg.MinAmount) {
		return errors.NewInvalidDepositTermsError(
			fmt.Sprintf("amount %.2f is below the minimum of %s", input.Amount, cfg.MinAmount.StringFixed(2)))
	}
	if input.DurationMonths < cfg.MinDurationMonths || input.DurationMonths > cfg.MaxDurationMonths {
		return errors.NewInvalidDepositTermsError(
			fmt.Sprintf("durationMonths %d outside %d-%d", input.DurationMonths, cfg.MinDurationMonths, cfg.MaxDurationMonths))
	}
	return nil
}

func checkCeiling(amount, maxDeposit decimal.Decimal) error {
	if amount.LessThanOrEqual(maxDeposit) {
		return nil
	}
	return errors.NewInvalidDepositTermsError(
		fmt.Sprintf("amount %s exceeds the maximum deposit of %s", amount.StringFixed(2), maxDeposit.StringFixed(2))).
		WithMetadata("maxDepositAmount", maxDeposit.StringFixed(2))
}
