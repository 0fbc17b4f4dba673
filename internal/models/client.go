package models

import "time"

// ClientFinancialProfile is one row of client_financial_profiles. Nullable
// columns are pointers so an unknown signal is distinguishable from zero.
type ClientFinancialProfile struct {
	ClientID  string    `json:"clientId"`
	CreatedAt time.Time `json:"createdAt"`

	CreditScore      *int     `json:"creditScore,omitempty"`
	MonthlyIncome    *float64 `json:"monthlyIncome,omitempty"`
	MonthlyDebt      *float64 `json:"monthlyDebt,omitempty"`
	EmploymentYears  *float64 `json:"employmentYears,omitempty"`
	CurrentJobMonths *int     `json:"currentJobMonths,omitempty"`

	CurrentBalance *float64 `json:"currentBalance,omitempty"`
	AverageBalance *float64 `json:"averageBalance,omitempty"`
	MaxBalance     *float64 `json:"maxBalance,omitempty"`

	TotalTransactions          *int     `json:"totalTransactions,omitempty"`
	AverageMonthlyTransactions *float64 `json:"averageMonthlyTransactions,omitempty"`
	MonthlyVariance            *float64 `json:"monthlyVariance,omitempty"`

	PreviousDeposits        *int `json:"previousDeposits,omitempty"`
	DefaultedDeposits       *int `json:"defaultedDeposits,omitempty"`
	SuspiciousActivityCount *int `json:"suspiciousActivityCount,omitempty"`
}

// TransactionSignals are activity figures aggregated from the transaction index.
type TransactionSignals struct {
	TotalTransactions          int     `json:"totalTransactions"`
	AverageMonthlyTransactions float64 `json:"averageMonthlyTransactions"`
	MonthlyVariance            float64 `json:"monthlyVariance"`
	MonthsObserved             int     `json:"monthsObserved"`
}
