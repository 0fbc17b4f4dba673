// Package scoring implements the deterministic loan and deposit eligibility
// models. Every function in this package is pure: no I/O, no configuration and
// no shared mutable state, so results may be computed concurrently and
// recomputed later from the same inputs.
package scoring

import "github.com/shopspring/decimal"

// MaxScore is the upper bound of both engines.
const MaxScore = 100

// Status is the closed set of recommendation outcomes.
type Status string

const (
	StatusApproved    Status = "APPROVED"
	StatusConditional Status = "CONDITIONAL"
	StatusReview      Status = "REVIEW"
	StatusDenied      Status = "DENIED"
)

// IsHardStop reports whether no product may be issued for this status.
func (s Status) IsHardStop() bool {
	return s == StatusDenied
}

// Tier is the qualitative band attached to a score range.
type Tier string

const (
	TierExcellent Tier = "Excellent"
	TierGood      Tier = "Good"
	TierFair      Tier = "Fair"
	TierPoor      Tier = "Poor"
	TierVeryPoor  Tier = "Very Poor"

	TierPremium    Tier = "Premium"
	TierGold       Tier = "Gold"
	TierSilver     Tier = "Silver"
	TierBronze     Tier = "Bronze"
	TierRestricted Tier = "Restricted"
)

// Color hints consumed by the client-profile views.
const (
	ColorSuccess = "success"
	ColorInfo    = "info"
	ColorWarning = "warning"
	ColorDanger  = "danger"
)

type Recommendation struct {
	Status  Status `json:"status"`
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
	Color   string `json:"color"`
}

// Breakdown maps a factor name to the points it contributed.
type Breakdown map[string]int

// Total sums every factor.
func (b Breakdown) Total() int {
	total := 0
	for _, points := range b {
		total += points
	}
	return total
}

// Loan breakdown keys.
const (
	FactorCreditScore  = "creditScore"
	FactorIncome       = "income"
	FactorDebtRatio    = "debtRatio"
	FactorAccountAge   = "accountAge"
	FactorTransactions = "transactions"
	FactorEmployment   = "employment"
)

// Deposit breakdown keys. FactorAccountAge is shared with the loan engine.
const (
	FactorBalanceHistory    = "balanceHistory"
	FactorConsistency       = "consistency"
	FactorStability         = "stability"
	FactorDepositExperience = "depositExperience"
)

// LoanInput carries fully resolved signals; the engine applies no defaults.
type LoanInput struct {
	CreditScore                int     `json:"creditScore"`
	MonthlyIncome              float64 `json:"monthlyIncome"`
	MonthlyDebt                float64 `json:"monthlyDebt"`
	AccountAgeMonths           int     `json:"accountAgeMonths"`
	TotalTransactions          int     `json:"totalTransactions"`
	AverageMonthlyTransactions float64 `json:"averageMonthlyTransactions"`
	EmploymentYears            float64 `json:"employmentYears"`
	CurrentJobMonths           int     `json:"currentJobMonths"`
}

// DepositInput carries fully resolved signals. MonthlyIncome only sizes the
// deposit ceiling and may be left at zero.
type DepositInput struct {
	CurrentBalance             float64 `json:"currentBalance"`
	AverageBalance             float64 `json:"averageBalance"`
	MaxBalance                 float64 `json:"maxBalance"`
	AccountAgeMonths           int     `json:"accountAgeMonths"`
	TotalTransactions          int     `json:"totalTransactions"`
	AverageMonthlyTransactions float64 `json:"averageMonthlyTransactions"`
	MonthlyVariance            float64 `json:"monthlyVariance"`
	MonthsActive               int     `json:"monthsActive"`
	SuspiciousActivityCount    int     `json:"suspiciousActivityCount"`
	PreviousDeposits           int     `json:"previousDeposits"`
	DefaultedDeposits          int     `json:"defaultedDeposits"`
	MonthlyIncome              float64 `json:"monthlyIncome"`
}

type LoanResult struct {
	TotalScore         int             `json:"totalScore"`
	MaxScore           int             `json:"maxScore"`
	Percentage         int             `json:"percentage"`
	Probability        float64         `json:"probability"`
	Recommendation     Recommendation  `json:"recommendation"`
	Breakdown          Breakdown       `json:"breakdown"`
	EligibleLoanAmount decimal.Decimal `json:"eligibleLoanAmount"`
	MaxInterestRate    decimal.Decimal `json:"maxInterestRate"`
}

type DepositResult struct {
	TotalScore              int             `json:"totalScore"`
	MaxScore                int             `json:"maxScore"`
	Percentage              int             `json:"percentage"`
	Probability             float64         `json:"probability"`
	Recommendation          Recommendation  `json:"recommendation"`
	Breakdown               Breakdown       `json:"breakdown"`
	MaxDepositAmount        decimal.Decimal `json:"maxDepositAmount"`
	RecommendedInterestRate decimal.Decimal `json:"recommendedInterestRate"`
	DepositTier             Tier            `json:"depositTier"`
}
