package fetchclientprofile

import (
	"github.com/Nurbek-dev001/World-banking-system/internal/models"
	"github.com/Nurbek-dev001/World-banking-system/internal/scoring"
)

type Input struct {
	ClientID string `json:"clientId"`
	// Refresh drops the cached copy before reading.
	Refresh bool `json:"refresh,omitempty"`
}

// Output pairs the stored profile with the inputs the scoring tasks would
// derive from it, defaults included.
type Output struct {
	Profile          *models.ClientFinancialProfile `json:"profile"`
	AccountAgeMonths int                            `json:"accountAgeMonths"`
	LoanInput        scoring.LoanInput              `json:"loanInput"`
	DepositInput     scoring.DepositInput           `json:"depositInput"`
}
