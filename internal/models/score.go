package models

import "github.com/Nurbek-dev001/World-banking-system/internal/scoring"

// LoanScore is the job variable form of a loan scoring result. Money is
// rendered as JSON numbers.
type LoanScore struct {
	TotalScore         int                    `json:"totalScore"`
	MaxScore           int                    `json:"maxScore"`
	Percentage         int                    `json:"percentage"`
	Probability        float64                `json:"probability"`
	Recommendation     scoring.Recommendation `json:"recommendation"`
	Breakdown          scoring.Breakdown      `json:"breakdown"`
	EligibleLoanAmount float64                `json:"eligibleLoanAmount"`
	MaxInterestRate    float64                `json:"maxInterestRate"`
}

func NewLoanScore(r scoring.LoanResult) LoanScore {
	return LoanScore{
		TotalScore:         r.TotalScore,
		MaxScore:           r.MaxScore,
		Percentage:         r.Percentage,
		Probability:        r.Probability,
		Recommendation:     r.Recommendation,
		Breakdown:          r.Breakdown,
		EligibleLoanAmount: r.EligibleLoanAmount.InexactFloat64(),
		MaxInterestRate:    r.MaxInterestRate.InexactFloat64(),
	}
}

// DepositScore is the job variable form of a deposit scoring result.
type DepositScore struct {
	TotalScore              int                    `json:"totalScore"`
	MaxScore                int                    `json:"maxScore"`
	Percentage              int                    `json:"percentage"`
	Probability             float64                `json:"probability"`
	Recommendation          scoring.Recommendation `json:"recommendation"`
	Breakdown               scoring.Breakdown      `json:"breakdown"`
	MaxDepositAmount        float64                `json:"maxDepositAmount"`
	RecommendedInterestRate float64                `json:"recommendedInterestRate"`
	DepositTier             scoring.Tier           `json:"depositTier"`
}

func NewDepositScore(r scoring.DepositResult) DepositScore {
	return DepositScore{
		TotalScore:              r.TotalScore,
		MaxScore:                r.MaxScore,
		Percentage:              r.Percentage,
		Probability:             r.Probability,
		Recommendation:          r.Recommendation,
		Breakdown:               r.Breakdown,
		MaxDepositAmount:        r.MaxDepositAmount.InexactFloat64(),
		RecommendedInterestRate: r.RecommendedInterestRate.InexactFloat64(),
		DepositTier:             r.DepositTier,
	}
}
