package scoring

import (
	"math"

	"github.com/shopspring/decimal"
)

// Interpolation endpoints for the derived commercial terms.
var (
	loanMinIncomeMultiple    = decimal.NewFromInt(3)
	loanIncomeMultipleSpread = decimal.NewFromInt(7)
	loanCeilingRate          = decimal.NewFromInt(18)
	loanRateSpread           = decimal.NewFromInt(13)

	depositMinIncomeMultiple    = decimal.NewFromInt(2)
	depositIncomeMultipleSpread = decimal.NewFromInt(3)
	depositFloorRate            = decimal.NewFromInt(2)
	depositRateSpread           = decimal.NewFromInt(6)

	hundred = decimal.NewFromInt(MaxScore)
	twelve  = decimal.NewFromInt(12)
)

// EligibleLoanAmount scales monthly income from 3x at score 0 to 10x at
// score 100, rounded to a whole amount.
func EligibleLoanAmount(monthlyIncome float64, score int) decimal.Decimal {
	multiple := loanMinIncomeMultiple.Add(scaled(loanIncomeMultipleSpread, score))
	return finite(monthlyIncome).Mul(multiple).Round(0)
}

// MaxInterestRate falls linearly from 18% at score 0 to 5% at score 100.
func MaxInterestRate(score int) decimal.Decimal {
	return loanCeilingRate.Sub(scaled(loanRateSpread, score)).Round(2)
}

// MaxDepositAmount is the current balance plus 2x to 5x monthly income.
func MaxDepositAmount(currentBalance, monthlyIncome float64, score int) decimal.Decimal {
	multiple := depositMinIncomeMultiple.Add(scaled(depositIncomeMultipleSpread, score))
	return finite(currentBalance).Add(finite(monthlyIncome).Mul(multiple)).Round(0)
}

// RecommendedInterestRate rises linearly from 2% at score 0 to 8% at score 100.
func RecommendedInterestRate(score int) decimal.Decimal {
	return depositFloorRate.Add(scaled(depositRateSpread, score)).Round(2)
}

// SimpleInterest is amount * rate% * months/12, rounded to cents.
func SimpleInterest(amount, ratePercent decimal.Decimal, months int) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred).
		Mul(decimal.NewFromInt(int64(months))).Div(twelve).
		Round(2)
}

// Installment splits total evenly over months, rounded to cents.
// A non-positive term returns total unchanged.
func Installment(total decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return total
	}
	return total.Div(decimal.NewFromInt(int64(months))).Round(2)
}

// scaled returns spread * score/100 with score held inside [0, MaxScore].
func scaled(spread decimal.Decimal, score int) decimal.Decimal {
	s := decimal.NewFromInt(int64(clampPoints(score, MaxScore)))
	return spread.Mul(s).Div(hundred)
}

// finite converts v to a decimal; NaN and infinities become zero because
// decimal.NewFromFloat panics on them.
func finite(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
