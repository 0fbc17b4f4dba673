package scoring

// Factor caps for the loan engine; they sum to MaxScore.
const (
	LoanCreditScoreMax  = 20
	LoanIncomeMax       = 20
	LoanDebtRatioMax    = 15
	LoanAccountAgeMax   = 15
	LoanTransactionsMax = 15
	LoanEmploymentMax   = 15
)

var (
	loanCreditScoreTable = atLeast(0,
		step{750, 20},
		step{700, 18},
		step{650, 15},
		step{600, 10},
		step{550, 5},
	)

	loanIncomeTable = atLeast(2,
		step{5000, 20},
		step{4000, 18},
		step{3000, 16},
		step{2000, 13},
		step{1000, 8},
	)

	loanDebtRatioTable = atMost(0,
		step{0.2, 15},
		step{0.3, 12},
		step{0.4, 9},
		step{0.5, 5},
	)

	loanAccountAgeTable = atLeast(1,
		step{60, 15},
		step{36, 12},
		step{24, 10},
		step{12, 7},
		step{6, 4},
	)

	loanTotalTransactionsTable = atLeast(1,
		step{100, 8},
		step{50, 5},
		step{20, 3},
	)

	loanMonthlyTransactionsTable = atLeast(1,
		step{10, 7},
		step{5, 5},
		step{2, 3},
	)

	loanEmploymentYearsTable = atLeast(1,
		step{10, 7},
		step{5, 5},
		step{2, 3},
	)

	loanCurrentJobTable = atLeast(2,
		step{36, 8},
		step{12, 6},
		step{6, 4},
	)
)

var loanBands = []band{
	{85, Recommendation{StatusApproved, TierExcellent, "Excellent credit profile - Approved for maximum loan amount", ColorSuccess}},
	{70, Recommendation{StatusApproved, TierGood, "Good credit profile - Approved with standard terms", ColorSuccess}},
	{55, Recommendation{StatusConditional, TierFair, "Fair credit profile - Approved with stricter terms", ColorWarning}},
	{40, Recommendation{StatusReview, TierPoor, "Poor credit profile - Requires manual review", ColorWarning}},
}

var loanFallback = Recommendation{StatusDenied, TierVeryPoor, "Credit profile does not meet minimum requirements", ColorDanger}

// ScoreLoan computes the loan eligibility result for a resolved input.
func ScoreLoan(in LoanInput) LoanResult {
	breakdown := Breakdown{
		FactorCreditScore:  creditScorePoints(in.CreditScore),
		FactorIncome:       incomePoints(in.MonthlyIncome),
		FactorDebtRatio:    debtRatioPoints(in.MonthlyDebt, in.MonthlyIncome),
		FactorAccountAge:   loanAccountAgePoints(in.AccountAgeMonths),
		FactorTransactions: transactionHistoryPoints(in.TotalTransactions, in.AverageMonthlyTransactions),
		FactorEmployment:   employmentStabilityPoints(in.EmploymentYears, in.CurrentJobMonths),
	}

	total := clampPoints(breakdown.Total(), MaxScore)

	return LoanResult{
		TotalScore:         total,
		MaxScore:           MaxScore,
		Percentage:         total,
		Probability:        probability(total),
		Recommendation:     LoanRecommendation(total),
		Breakdown:          breakdown,
		EligibleLoanAmount: EligibleLoanAmount(in.MonthlyIncome, total),
		MaxInterestRate:    MaxInterestRate(total),
	}
}

// LoanRecommendation maps a total score to its loan band.
func LoanRecommendation(score int) Recommendation {
	return classify(loanBands, loanFallback, score)
}

func creditScorePoints(creditScore int) int {
	return clampPoints(loanCreditScoreTable.points(float64(creditScore)), LoanCreditScoreMax)
}

func incomePoints(monthlyIncome float64) int {
	return clampPoints(loanIncomeTable.points(monthlyIncome), LoanIncomeMax)
}

// debtRatioPoints scores monthly debt against income. Without positive
// income there is nothing to service debt with, so no points are awarded.
func debtRatioPoints(monthlyDebt, monthlyIncome float64) int {
	if !(monthlyIncome > 0) {
		return 0
	}
	return clampPoints(loanDebtRatioTable.points(monthlyDebt/monthlyIncome), LoanDebtRatioMax)
}

func loanAccountAgePoints(months int) int {
	return clampPoints(loanAccountAgeTable.points(float64(months)), LoanAccountAgeMax)
}

func transactionHistoryPoints(total int, averageMonthly float64) int {
	points := loanTotalTransactionsTable.points(float64(total)) +
		loanMonthlyTransactionsTable.points(averageMonthly)
	return clampPoints(points, LoanTransactionsMax)
}

func employmentStabilityPoints(years float64, currentJobMonths int) int {
	points := loanEmploymentYearsTable.points(years) +
		loanCurrentJobTable.points(float64(currentJobMonths))
	return clampPoints(points, LoanEmploymentMax)
}
