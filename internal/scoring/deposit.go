package scoring

// Factor caps for the deposit engine; they sum to MaxScore.
const (
	DepositBalanceHistoryMax = 25
	DepositAccountAgeMax     = 20
	DepositConsistencyMax    = 20
	DepositStabilityMax      = 20
	DepositExperienceMax     = 15
)

// Points deducted per suspicious event and per defaulted deposit.
const (
	suspiciousActivityPenalty = 2
	defaultedDepositPenalty   = 5
)

var (
	depositCurrentBalanceTable = atLeast(1,
		step{10000, 10},
		step{5000, 8},
		step{2000, 6},
		step{500, 4},
	)

	depositAverageBalanceTable = atLeast(1,
		step{5000, 10},
		step{2000, 8},
		step{1000, 6},
		step{500, 3},
	)

	depositMaxBalanceTable = atLeast(1,
		step{20000, 5},
		step{10000, 4},
		step{5000, 3},
	)

	depositAccountAgeTable = atLeast(1,
		step{60, 20},
		step{36, 17},
		step{24, 14},
		step{12, 10},
		step{6, 6},
		step{3, 3},
	)

	depositTotalTransactionsTable = atLeast(1,
		step{200, 10},
		step{100, 8},
		step{50, 5},
		step{20, 3},
	)

	depositVarianceTable = atMost(2,
		step{2, 10},
		step{4, 8},
		step{6, 5},
	)

	depositMonthsActiveTable = atLeast(2,
		step{48, 15},
		step{24, 12},
		step{12, 9},
		step{6, 5},
	)

	depositPreviousDepositsTable = atLeast(1,
		step{5, 12},
		step{3, 9},
		step{1, 5},
	)
)

var depositBands = []band{
	{85, Recommendation{StatusApproved, TierPremium, "Excellent account - Premium deposit rates available", ColorSuccess}},
	{70, Recommendation{StatusApproved, TierGold, "Good account - Standard high interest rate", ColorSuccess}},
	{55, Recommendation{StatusApproved, TierSilver, "Fair account - Standard interest rate", ColorInfo}},
	{40, Recommendation{StatusApproved, TierBronze, "Basic account - Lower interest rate", ColorWarning}},
}

// The lowest deposit band asks for manual review; deposits are never denied outright.
var depositFallback = Recommendation{StatusReview, TierRestricted, "Account requires manual review", ColorWarning}

// ScoreDeposit computes the deposit eligibility result for a resolved input.
func ScoreDeposit(in DepositInput) DepositResult {
	breakdown := Breakdown{
		FactorBalanceHistory:    balanceHistoryPoints(in.CurrentBalance, in.AverageBalance, in.MaxBalance),
		FactorAccountAge:        depositAccountAgePoints(in.AccountAgeMonths),
		FactorConsistency:       consistencyPoints(in.TotalTransactions, in.MonthlyVariance),
		FactorStability:         stabilityPoints(in.MonthsActive, in.SuspiciousActivityCount),
		FactorDepositExperience: depositExperiencePoints(in.PreviousDeposits, in.DefaultedDeposits),
	}

	total := clampPoints(breakdown.Total(), MaxScore)
	recommendation := DepositRecommendation(total)

	return DepositResult{
		TotalScore:              total,
		MaxScore:                MaxScore,
		Percentage:              total,
		Probability:             probability(total),
		Recommendation:          recommendation,
		Breakdown:               breakdown,
		MaxDepositAmount:        MaxDepositAmount(in.CurrentBalance, in.MonthlyIncome, total),
		RecommendedInterestRate: RecommendedInterestRate(total),
		DepositTier:             DepositTier(total),
	}
}

// DepositRecommendation maps a total score to its deposit band.
func DepositRecommendation(score int) Recommendation {
	return classify(depositBands, depositFallback, score)
}

// DepositTier re-derives the band name for a score.
func DepositTier(score int) Tier {
	return DepositRecommendation(score).Tier
}

func balanceHistoryPoints(current, average, peak float64) int {
	points := depositCurrentBalanceTable.points(current) +
		depositAverageBalanceTable.points(average) +
		depositMaxBalanceTable.points(peak)
	return clampPoints(points, DepositBalanceHistoryMax)
}

func depositAccountAgePoints(months int) int {
	return clampPoints(depositAccountAgeTable.points(float64(months)), DepositAccountAgeMax)
}

func consistencyPoints(totalTransactions int, variance float64) int {
	points := depositTotalTransactionsTable.points(float64(totalTransactions)) +
		depositVarianceTable.points(variance)
	return clampPoints(points, DepositConsistencyMax)
}

// stabilityPoints floors at zero before the cap, so heavy penalties never go negative.
func stabilityPoints(monthsActive, suspiciousActivityCount int) int {
	points := applyPenalty(depositMonthsActiveTable.points(float64(monthsActive)), suspiciousActivityCount, suspiciousActivityPenalty)
	return clampPoints(points, DepositStabilityMax)
}

func depositExperiencePoints(previous, defaulted int) int {
	points := applyPenalty(depositPreviousDepositsTable.points(float64(previous)), defaulted, defaultedDepositPenalty)
	return clampPoints(points, DepositExperienceMax)
}

// applyPenalty deducts count*perEvent from points, flooring at zero.
// Negative counts carry no penalty.
func applyPenalty(points, count, perEvent int) int {
	if count <= 0 {
		return points
	}
	if count > points {
		return 0
	}
	if deducted := points - count*perEvent; deducted > 0 {
		return deducted
	}
	return 0
}
