package fetchclientprofile

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

// MockProfileStore is a profile source with a cache to invalidate.
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Get(ctx context.Context, clientID string) (*models.ClientFinancialProfile, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientFinancialProfile), args.Error(1)
}

func (m *MockProfileStore) Invalidate(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}

var fixedNow = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func createTestHandler(t *testing.T, source profile.Source) *Handler {
	resolver := profile.NewResolver(config.ScoringDefaults{CreditScore: 650, MonthlyIncome: 1000, MonthlyVariance: 2})
	resolver.Now = func() time.Time { return fixedNow }
	return NewHandler(&Config{Timeout: 5 * time.Second}, source, resolver, logger.NewTestLogger(t))
}

func sparseProfile() *models.ClientFinancialProfile {
	return &models.ClientFinancialProfile{
		ClientID:       "client-1",
		CreatedAt:      fixedNow.AddDate(0, 0, -400),
		CreditScore:    intPtr(0),
		CurrentBalance: floatPtr(2500),
		MonthlyDebt:    floatPtr(300),
	}
}

func TestHandler_Execute_ResolvesDefaults(t *testing.T) {
	source := new(MockProfileStore)
	source.On("Get", mock.Anything, "client-1").Return(sparseProfile(), nil)

	output, err := createTestHandler(t, source).Execute(context.Background(), &Input{ClientID: "client-1"})
	require.NoError(t, err)

	assert.Equal(t, "client-1", output.Profile.ClientID)
	assert.Equal(t, 13, output.AccountAgeMonths)

	assert.Equal(t, scoring.LoanInput{
		CreditScore:      650,
		MonthlyIncome:    1000,
		MonthlyDebt:      300,
		AccountAgeMonths: 13,
	}, output.LoanInput)

	assert.Equal(t, scoring.DepositInput{
		CurrentBalance:   2500,
		AverageBalance:   2500,
		MaxBalance:       2500,
		AccountAgeMonths: 13,
		MonthlyVariance:  2,
		MonthsActive:     13,
	}, output.DepositInput)

	source.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestHandler_Execute_Refresh(t *testing.T) {
	tests := []struct {
		name          string
		invalidateErr error
	}{
		{name: "cache dropped"},
		{name: "invalidate failure is not fatal", invalidateErr: stderrors.New("redis: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockProfileStore)
			source.On("Invalidate", mock.Anything, "client-1").Return(tt.invalidateErr).Once()
			source.On("Get", mock.Anything, "client-1").Return(sparseProfile(), nil).Once()

			_, err := createTestHandler(t, source).Execute(context.Background(), &Input{ClientID: "client-1", Refresh: true})
			require.NoError(t, err)

			source.AssertExpectations(t)
		})
	}
}

func TestHandler_Execute_NotFound(t *testing.T) {
	source := new(MockProfileStore)
	source.On("Get", mock.Anything, "ghost").Return(nil, profile.ErrProfileNotFound)

	output, err := createTestHandler(t, source).Execute(context.Background(), &Input{ClientID: "ghost"})

	assert.Nil(t, output)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeClientProfileNotFound, stdErr.Code)

	bpmnErr := errors.ConvertToBPMNError(stdErr)
	assert.Equal(t, string(errors.ErrCodeClientProfileNotFound), bpmnErr.Code)
}
