package calculateloanscore

import "github.com/Nurbek-dev001/World-banking-system/internal/models"

type Input struct {
	ClientID           string                         `json:"clientId"`
	Profile            *models.ClientFinancialProfile `json:"profile,omitempty"`
	TransactionSignals *models.TransactionSignals     `json:"transactionSignals,omitempty"`
}

type Output struct {
	LoanScore models.LoanScore `json:"loanScore"`
}
