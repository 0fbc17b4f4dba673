package scoring

import (
	"fmt"
	"math"
)

// InvalidInputError names the first field holding a non-finite value.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid scoring input: %s is not a finite number (%v)", e.Field, e.Value)
}

type namedValue struct {
	field string
	value float64
}

// ValidateLoanInput rejects NaN and infinite values. Scoring never requires
// it; callers that want to refuse such input run it first.
func ValidateLoanInput(in LoanInput) error {
	return firstNonFinite(
		namedValue{"monthlyIncome", in.MonthlyIncome},
		namedValue{"monthlyDebt", in.MonthlyDebt},
		namedValue{"averageMonthlyTransactions", in.AverageMonthlyTransactions},
		namedValue{"employmentYears", in.EmploymentYears},
	)
}

// ValidateDepositInput rejects NaN and infinite values.
func ValidateDepositInput(in DepositInput) error {
	return firstNonFinite(
		namedValue{"currentBalance", in.CurrentBalance},
		namedValue{"averageBalance", in.AverageBalance},
		namedValue{"maxBalance", in.MaxBalance},
		namedValue{"averageMonthlyTransactions", in.AverageMonthlyTransactions},
		namedValue{"monthlyVariance", in.MonthlyVariance},
		namedValue{"monthlyIncome", in.MonthlyIncome},
	)
}

func firstNonFinite(values ...namedValue) error {
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return &InvalidInputError{Field: v.field, Value: v.value}
		}
	}
	return nil
}
