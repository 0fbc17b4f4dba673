package calculatedepositscore

import "github.com/Nurbek-dev001/World-banking-system/internal/models"

type Input struct {
	ClientID           string                         `json:"clientId"`
	Profile            *models.ClientFinancialProfile `json:"profile,omitempty"`
	TransactionSignals *models.TransactionSignals     `json:"transactionSignals,omitempty"`
	MonthlyIncome      *float64                       `json:"monthlyIncome,omitempty"`
}

type Output struct {
	DepositScore models.DepositScore `json:"depositScore"`
}
