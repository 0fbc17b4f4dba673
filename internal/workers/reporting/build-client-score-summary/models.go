package buildclientscoresummary

import (
	"github.com/Nurbek-dev001/World-banking-system/internal/models"
	"github.com/Nurbek-dev001/World-banking-system/internal/scoring"
)

type Input struct {
	ClientIDs []string `json:"clientIds"`
	Detail    bool     `json:"detail"`
}

type Output struct {
	Clients []ClientSummary `json:"clients"`
	Scored  int             `json:"scored"`
	Failed  int             `json:"failed"`
}

// ClientSummary carries either both score summaries or an error.
// LoanScore and DepositScore are only set in detail mode.
type ClientSummary struct {
	ClientID     string               `json:"clientId"`
	Loan         *LoanSummary         `json:"loan,omitempty"`
	Deposit      *DepositSummary      `json:"deposit,omitempty"`
	LoanScore    *models.LoanScore    `json:"loanScore,omitempty"`
	DepositScore *models.DepositScore `json:"depositScore,omitempty"`
	Error        *EntryError          `json:"error,omitempty"`
}

type LoanSummary struct {
	Score      int            `json:"score"`
	Percentage int            `json:"percentage"`
	Status     scoring.Status `json:"status"`
	Tier       scoring.Tier   `json:"tier"`
}

type DepositSummary struct {
	Score        int          `json:"score"`
	Percentage   int          `json:"percentage"`
	Tier         scoring.Tier `json:"tier"`
	InterestRate float64      `json:"interestRate"`
}

type EntryError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
