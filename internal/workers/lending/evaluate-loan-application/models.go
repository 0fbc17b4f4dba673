package evaluateloanapplication

import "github.com/Nurbek-dev001/World-banking-system/internal/models"

type Input struct {
	ClientID           string                         `json:"clientId" validate:"required"`
	Amount             float64                        `json:"amount" validate:"gt=0"`
	TenureMonths       int                            `json:"tenureMonths" validate:"gt=0"`
	Purpose            string                         `json:"purpose" validate:"required,max=255"`
	Profile            *models.ClientFinancialProfile `json:"profile,omitempty"`
	TransactionSignals *models.TransactionSignals     `json:"transactionSignals,omitempty"`
}

const (
	ApplicationApproved    = "approved"
	ApplicationConditional = "conditional"
)

type Output struct {
	EvaluationID       string           `json:"evaluationId"`
	ApplicationStatus  string           `json:"applicationStatus"`
	LoanScore          models.LoanScore `json:"loanScore"`
	InterestRate       float64          `json:"interestRate"`
	TotalInterest      float64          `json:"totalInterest"`
	TotalPayable       float64          `json:"totalPayable"`
	MonthlyPayment     float64          `json:"monthlyPayment"`
	EligibleLoanAmount float64          `json:"eligibleLoanAmount"`
}
