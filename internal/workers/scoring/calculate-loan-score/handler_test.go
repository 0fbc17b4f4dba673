package calculateloanscore

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/profile"
	"github.com/Nurbek-dev001/World-banking-system/internal/models"
	"github.com/Nurbek-dev001/World-banking-system/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Profile Source
// ==========================

type MockProfileSource struct {
	mock.Mock
}

func (m *MockProfileSource) Get(ctx context.Context, clientID string) (*models.ClientFinancialProfile, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientFinancialProfile), args.Error(1)
}

// ==========================
// Test Helpers
// ==========================

var fixedNow = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func createTestHandler(t *testing.T, source profile.Source) *Handler {
	resolver := profile.NewResolver(config.ScoringDefaults{CreditScore: 650, MonthlyIncome: 1000, MonthlyVariance: 2})
	resolver.Now = func() time.Time { return fixedNow }
	return NewHandler(&Config{Timeout: 5 * time.Second}, source, resolver, logger.NewTestLogger(t))
}

// strongApplicant opened the account 48 months before fixedNow.
func strongApplicant() *models.ClientFinancialProfile {
	return &models.ClientFinancialProfile{
		ClientID:                   "client-strong",
		CreatedAt:                  fixedNow.AddDate(0, 0, -48*30),
		CreditScore:                intPtr(750),
		MonthlyIncome:              floatPtr(5000),
		MonthlyDebt:                floatPtr(500),
		TotalTransactions:          intPtr(150),
		AverageMonthlyTransactions: floatPtr(12),
		EmploymentYears:            floatPtr(8),
		CurrentJobMonths:           intPtr(24),
	}
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_StoredProfile(t *testing.T) {
	source := new(MockProfileSource)
	source.On("Get", mock.Anything, "client-strong").Return(strongApplicant(), nil)

	output, err := createTestHandler(t, source).Execute(context.Background(), &Input{ClientID: "client-strong"})
	require.NoError(t, err)

	score := output.LoanScore
	assert.Equal(t, 93, score.TotalScore)
	assert.Equal(t, 100, score.MaxScore)
	assert.Equal(t, 93, score.Percentage)
	assert.InDelta(t, 0.93, score.Probability, 1e-9)
	assert.Equal(t, scoring.StatusApproved, score.Recommendation.Status)
	assert.Equal(t, scoring.TierExcellent, score.Recommendation.Tier)
	assert.Equal(t, scoring.ColorSuccess, score.Recommendation.Color)
	assert.Equal(t, 47550.0, score.EligibleLoanAmount)
	assert.Equal(t, 5.91, score.MaxInterestRate)
	assert.Equal(t, scoring.Breakdown{
		scoring.FactorCreditScore:  20,
		scoring.FactorIncome:       20,
		scoring.FactorDebtRatio:    15,
		scoring.FactorAccountAge:   12,
		scoring.FactorTransactions: 15,
		scoring.FactorEmployment:   11,
	}, score.Breakdown)

	source.AssertExpectations(t)
}

func TestHandler_Execute_InlineProfileSkipsStore(t *testing.T) {
	source := new(MockProfileSource)

	output, err := createTestHandler(t, source).Execute(context.Background(), &Input{
		ClientID: "client-strong",
		Profile:  strongApplicant(),
	})
	require.NoError(t, err)

	assert.Equal(t, 93, output.LoanScore.TotalScore)
	source.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestHandler_Execute_DefaultsAndSignals(t *testing.T) {
	tests := []struct {
		name      string
		signals   *models.TransactionSignals
		wantScore int
		wantTier  scoring.Tier
	}{
		{
			// 15 + 8 + 15 + 1 + 2 + 3
			name:      "defaults only",
			wantScore: 44,
			wantTier:  scoring.TierPoor,
		},
		{
			name:      "aggregated signals replace transaction figures",
			signals:   &models.TransactionSignals{TotalTransactions: 150, AverageMonthlyTransactions: 12, MonthsObserved: 12},
			wantScore: 57,
			wantTier:  scoring.TierFair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := createTestHandler(t, new(MockProfileSource)).Execute(context.Background(), &Input{
				ClientID:           "client-new",
				Profile:            &models.ClientFinancialProfile{CreatedAt: fixedNow},
				TransactionSignals: tt.signals,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, output.LoanScore.TotalScore)
			assert.Equal(t, tt.wantTier, output.LoanScore.Recommendation.Tier)
		})
	}
}

// ==========================
// Error Tests
// ==========================

func TestHandler_Execute_ProfileErrors(t *testing.T) {
	tests := []struct {
		name      string
		storeErr  error
		wantCode  errors.ErrorCode
		retryable bool
	}{
		{
			name:     "unknown client",
			storeErr: profile.ErrProfileNotFound,
			wantCode: errors.ErrCodeClientProfileNotFound,
		},
		{
			name:      "database unavailable",
			storeErr:  stderrors.New("dial tcp: connection refused"),
			wantCode:  errors.ErrCodeClientProfileLookupFailed,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockProfileSource)
			source.On("Get", mock.Anything, "client-x").Return(nil, tt.storeErr)

			output, err := createTestHandler(t, source).Execute(context.Background(), &Input{ClientID: "client-x"})
			require.Error(t, err)
			assert.Nil(t, output)

			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()
	assert.Equal(t, []string{"clientId"}, schema.Required)
	assert.True(t, schema.AdditionalProperties)
}
