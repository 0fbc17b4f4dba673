package aggregatetransactionsignals

import "github.com/Nurbek-dev001/World-banking-system/internal/models"

type Input struct {
	ClientID       string `json:"clientId"`
	LookbackMonths *int   `json:"lookbackMonths,omitempty"`
}

type Output struct {
	TransactionSignals models.TransactionSignals `json:"transactionSignals"`
}
