package evaluatedepositapplication

import (
	"github.com/Nurbek-dev001/World-banking-system/internal/models"
	"github.com/Nurbek-dev001/World-banking-system/internal/scoring"
)

type Input struct {
	ClientID           string                         `json:"clientId" validate:"required"`
	Amount             float64                        `json:"amount" validate:"gt=0"`
	DurationMonths     int                            `json:"durationMonths" validate:"gt=0"`
	DepositType        string                         `json:"depositType" validate:"required"`
	MonthlyIncome      *float64                       `json:"monthlyIncome,omitempty" validate:"omitempty,gte=0"`
	Profile            *models.ClientFinancialProfile `json:"profile,omitempty"`
	TransactionSignals *models.TransactionSignals     `json:"transactionSignals,omitempty"`
}

const (
	ApplicationApproved = "approved"
	ApplicationReview   = "review"
)

// maturityDateLayout renders maturity as a calendar date.
const maturityDateLayout = "2006-01-02"

type Output struct {
	EvaluationID      string              `json:"evaluationId"`
	ApplicationStatus string              `json:"applicationStatus"`
	DepositScore      models.DepositScore `json:"depositScore"`
	DepositTier       scoring.Tier        `json:"depositTier"`
	InterestRate      float64             `json:"interestRate"`
	ExpectedInterest  float64             `json:"expectedInterest"`
	MaturityAmount    float64             `json:"maturityAmount"`
	MaturityDate      string              `json:"maturityDate"`
}
