package calculatedepositscore

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

var fixedNow = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func createTestHandler(t *testing.T, source profile.Source) *Handler {
	resolver := profile.NewResolver(config.ScoringDefaults{CreditScore: 650, MonthlyIncome: 1000, MonthlyVariance: 2})
	resolver.Now = func() time.Time { return fixedNow }
	return NewHandler(&Config{Timeout: 5 * time.Second}, source, resolver, logger.NewTestLogger(t))
}

func establishedSaver() *models.ClientFinancialProfile {
	return &models.ClientFinancialProfile{
		ClientID:          "client-saver",
		CreatedAt:         fixedNow.AddDate(0, 0, -60*30),
		CurrentBalance:    floatPtr(10000),
		AverageBalance:    floatPtr(5000),
		MaxBalance:        floatPtr(20000),
		TotalTransactions: intPtr(200),
		MonthlyVariance:   floatPtr(1),
		PreviousDeposits:  intPtr(5),
	}
}

func TestHandler_Execute_EstablishedSaver(t *testing.T) {
	tests := []struct {
		name          string
		monthlyIncome *float64
		wantMaxAmount float64
	}{
		{
			name:          "with income",
			monthlyIncome: floatPtr(3000),
			wantMaxAmount: 24280,
		},
		{
			name:          "without income the ceiling is the balance",
			wantMaxAmount: 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockProfileSource)
			source.On("Get", mock.Anything, "client-saver").Return(establishedSaver(), nil)

			output, err := createTestHandler(t, source).Execute(context.Background(), &Input{
				ClientID:      "client-saver",
				MonthlyIncome: tt.monthlyIncome,
			})
			require.NoError(t, err)

			score := output.DepositScore
			assert.Equal(t, 92, score.TotalScore)
			assert.Equal(t, scoring.StatusApproved, score.Recommendation.Status)
			assert.Equal(t, scoring.TierPremium, score.DepositTier)
			assert.Equal(t, score.Recommendation.Tier, score.DepositTier)
			assert.Equal(t, 7.52, score.RecommendedInterestRate)
			assert.Equal(t, tt.wantMaxAmount, score.MaxDepositAmount)
			assert.Equal(t, 12, score.Breakdown[scoring.FactorDepositExperience])
			source.AssertExpectations(t)
		})
	}
}

func TestHandler_Execute_NewAccountNeedsReview(t *testing.T) {
	output, err := createTestHandler(t, new(MockProfileSource)).Execute(context.Background(), &Input{
		ClientID: "client-new",
		Profile:  &models.ClientFinancialProfile{CreatedAt: fixedNow},
	})
	require.NoError(t, err)

	// 3 + 1 + 11 + 2 + 1, variance defaulted to 2
	assert.Equal(t, 18, output.DepositScore.TotalScore)
	assert.Equal(t, scoring.StatusReview, output.DepositScore.Recommendation.Status)
	assert.Equal(t, scoring.TierRestricted, output.DepositScore.DepositTier)
	assert.Equal(t, scoring.ColorWarning, output.DepositScore.Recommendation.Color)
}

func TestHandler_Execute_SignalsOverrideVariance(t *testing.T) {
	p := establishedSaver()
	p.MonthlyVariance = floatPtr(9)

	withoutSignals, err := createTestHandler(t, new(MockProfileSource)).Execute(context.Background(), &Input{
		ClientID: "client-saver",
		Profile:  p,
	})
	require.NoError(t, err)

	withSignals, err := createTestHandler(t, new(MockProfileSource)).Execute(context.Background(), &Input{
		ClientID:           "client-saver",
		Profile:            p,
		TransactionSignals: &models.TransactionSignals{TotalTransactions: 200, MonthlyVariance: 1.2, MonthsObserved: 12},
	})
	require.NoError(t, err)

	assert.Equal(t, 12, withoutSignals.DepositScore.Breakdown[scoring.FactorConsistency])
	assert.Equal(t, 20, withSignals.DepositScore.Breakdown[scoring.FactorConsistency])
}

func TestHandler_Execute_ProfileNotFound(t *testing.T) {
	source := new(MockProfileSource)
	source.On("Get", mock.Anything, "ghost").Return(nil, profile.ErrProfileNotFound)

	_, err := createTestHandler(t, source).Execute(context.Background(), &Input{ClientID: "ghost"})

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeClientProfileNotFound, stdErr.Code)
	assert.Equal(t, 0, errors.GetRetryCount(stdErr.Code))
}
