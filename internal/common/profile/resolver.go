package profile

import (
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"
	"github.com/Nurbek-dev001/World-banking-system/internal/models"
	"github.com/Nurbek-dev001/World-banking-system/internal/scoring"
)

// Resolver fills the gaps of a stored profile so the scoring engines always
// receive complete inputs. It is the only place defaults are applied.
type Resolver struct {
	Defaults config.ScoringDefaults
	Now      func() time.Time
}

func NewResolver(defaults config.ScoringDefaults) *Resolver {
	return &Resolver{Defaults: defaults, Now: time.Now}
}

// AccountAgeMonths counts whole 30-day periods since the account was opened.
func (r *Resolver) AccountAgeMonths(createdAt time.Time) int {
	if createdAt.IsZero() {
		return 0
	}
	days := int(r.now().Sub(createdAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 30
}

// LoanInput resolves a loan scoring input. Signals, when given, replace the
// profile's transaction figures.
func (r *Resolver) LoanInput(p *models.ClientFinancialProfile, signals *models.TransactionSignals) scoring.LoanInput {
	if p == nil {
		p = &models.ClientFinancialProfile{}
	}

	in := scoring.LoanInput{
		CreditScore:                intOr(p.CreditScore, 0),
		MonthlyIncome:              floatOr(p.MonthlyIncome, 0),
		MonthlyDebt:                floatOr(p.MonthlyDebt, 0),
		AccountAgeMonths:           r.AccountAgeMonths(p.CreatedAt),
		TotalTransactions:          intOr(p.TotalTransactions, 0),
		AverageMonthlyTransactions: floatOr(p.AverageMonthlyTransactions, 0),
		EmploymentYears:            floatOr(p.EmploymentYears, 0),
		CurrentJobMonths:           intOr(p.CurrentJobMonths, 0),
	}

	// zero is treated as unknown for both
	if in.CreditScore == 0 {
		in.CreditScore = r.Defaults.CreditScore
	}
	if in.MonthlyIncome == 0 {
		in.MonthlyIncome = r.Defaults.MonthlyIncome
	}

	if signals != nil {
		in.TotalTransactions = signals.TotalTransactions
		in.AverageMonthlyTransactions = signals.AverageMonthlyTransactions
	}

	return in
}

// DepositInput resolves a deposit scoring input. monthlyIncome only sizes the
// deposit ceiling and is not defaulted.
func (r *Resolver) DepositInput(p *models.ClientFinancialProfile, signals *models.TransactionSignals, monthlyIncome *float64) scoring.DepositInput {
	if p == nil {
		p = &models.ClientFinancialProfile{}
	}

	current := floatOr(p.CurrentBalance, 0)
	age := r.AccountAgeMonths(p.CreatedAt)

	in := scoring.DepositInput{
		CurrentBalance:             current,
		AverageBalance:             floatOr(p.AverageBalance, current),
		MaxBalance:                 floatOr(p.MaxBalance, current),
		AccountAgeMonths:           age,
		TotalTransactions:          intOr(p.TotalTransactions, 0),
		AverageMonthlyTransactions: floatOr(p.AverageMonthlyTransactions, 0),
		MonthlyVariance:            floatOr(p.MonthlyVariance, r.Defaults.MonthlyVariance),
		MonthsActive:               age,
		SuspiciousActivityCount:    intOr(p.SuspiciousActivityCount, 0),
		PreviousDeposits:           intOr(p.PreviousDeposits, 0),
		DefaultedDeposits:          intOr(p.DefaultedDeposits, 0),
		MonthlyIncome:              floatOr(monthlyIncome, 0),
	}

	if signals != nil {
		in.TotalTransactions = signals.TotalTransactions
		in.AverageMonthlyTransactions = signals.AverageMonthlyTransactions
		in.MonthlyVariance = signals.MonthlyVariance
	}

	return in
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
