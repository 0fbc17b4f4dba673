package buildclientscoresummary

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

// strongApplicant scores 93 for loans and 54 (Bronze) for deposits.
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

func TestHandler_Execute_Summary(t *testing.T) {
	source := new(MockProfileSource)
	source.On("Get", mock.Anything, "client-strong").Return(strongApplicant(), nil).Once()
	source.On("Get", mock.Anything, "ghost").Return(nil, profile.ErrProfileNotFound).Once()

	output, err := createTestHandler(t, source).Execute(context.Background(), &Input{
		ClientIDs: []string{"client-strong", "ghost", "client-strong"},
	})
	require.NoError(t, err)

	require.Len(t, output.Clients, 2)
	assert.Equal(t, 1, output.Scored)
	assert.Equal(t, 1, output.Failed)

	strong := output.Clients[0]
	assert.Equal(t, "client-strong", strong.ClientID)
	assert.Equal(t, &LoanSummary{Score: 93, Percentage: 93, Status: scoring.StatusApproved, Tier: scoring.TierExcellent}, strong.Loan)
	assert.Equal(t, &DepositSummary{Score: 54, Percentage: 54, Tier: scoring.TierBronze, InterestRate: 5.24}, strong.Deposit)
	assert.Nil(t, strong.LoanScore)
	assert.Nil(t, strong.DepositScore)
	assert.Nil(t, strong.Error)

	ghost := output.Clients[1]
	assert.Equal(t, "ghost", ghost.ClientID)
	assert.Nil(t, ghost.Loan)
	require.NotNil(t, ghost.Error)
	assert.Equal(t, string(errors.ErrCodeClientProfileNotFound), ghost.Error.Code)

	source.AssertExpectations(t)
}

func TestHandler_Execute_Detail(t *testing.T) {
	source := new(MockProfileSource)
	source.On("Get", mock.Anything, "client-strong").Return(strongApplicant(), nil)

	output, err := createTestHandler(t, source).Execute(context.Background(), &Input{
		ClientIDs: []string{"client-strong"},
		Detail:    true,
	})
	require.NoError(t, err)

	entry := output.Clients[0]
	require.NotNil(t, entry.LoanScore)
	require.NotNil(t, entry.DepositScore)
	assert.Equal(t, 47550.0, entry.LoanScore.EligibleLoanAmount)
	assert.Equal(t, 18100.0, entry.DepositScore.MaxDepositAmount)
	assert.Equal(t, entry.Loan.Score, entry.LoanScore.TotalScore)
}

func TestHandler_Execute_StoreOutageFailsJob(t *testing.T) {
	source := new(MockProfileSource)
	source.On("Get", mock.Anything, "client-a").Return(nil, stderrors.New("too many connections"))

	output, err := createTestHandler(t, source).Execute(context.Background(), &Input{
		ClientIDs: []string{"client-a", "client-b"},
	})

	require.Error(t, err)
	assert.Nil(t, output)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeClientProfileLookupFailed, stdErr.Code)
	source.AssertNotCalled(t, "Get", mock.Anything, "client-b")
}

func TestHandler_Execute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := createTestHandler(t, new(MockProfileSource)).Execute(ctx, &Input{ClientIDs: []string{"client-a"}})

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.True(t, stdErr.Retryable)
}

// ==========================
// Output Schema Tests
// ==========================

func TestValidateOutput(t *testing.T) {
	tests := []struct {
		name    string
		output  *Output
		wantErr bool
	}{
		{
			name:   "empty batch",
			output: &Output{Clients: []ClientSummary{}},
		},
		{
			name: "error entry",
			output: &Output{
				Clients: []ClientSummary{{ClientID: "x", Error: &EntryError{Code: "CLIENT_PROFILE_NOT_FOUND", Message: "missing"}}},
				Failed:  1,
			},
		},
		{
			name:    "entry without scores or error",
			output:  &Output{Clients: []ClientSummary{{ClientID: "x"}}},
			wantErr: true,
		},
		{
			name: "unknown tier",
			output: &Output{Clients: []ClientSummary{{
				ClientID: "x",
				Loan:     &LoanSummary{Score: 50, Percentage: 50, Status: scoring.StatusReview, Tier: "Platinum"},
				Deposit:  &DepositSummary{Score: 50, Percentage: 50, Tier: scoring.TierBronze, InterestRate: 5},
			}}},
			wantErr: true,
		},
		{
			name:    "nil clients",
			output:  &Output{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOutput(tt.output)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, errors.ErrCodeOutputSchemaViolation, stdErr.Code)
		})
	}
}
