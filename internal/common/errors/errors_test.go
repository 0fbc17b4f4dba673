package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable infrastructure error", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewSearchQueryFailedError("transaction_signals", stderrors.New("all shards failed")))

		assert.Equal(t, "SEARCH_QUERY_FAILED", bpmnErr.Code)
		assert.True(t, bpmnErr.Retryable)
		assert.Equal(t, 3, bpmnErr.Retries)
		assert.Equal(t, "SEARCH_QUERY_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
	})

	t.Run("business outcome carries metadata", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewLoanAmountExceedsEligibleError("50000.00", "47550.00"))

		assert.Equal(t, "LOAN_AMOUNT_EXCEEDS_ELIGIBLE", bpmnErr.Code)
		assert.False(t, bpmnErr.Retryable)
		assert.Equal(t, 0, bpmnErr.Retries)

		vars := bpmnErr.ToErrorVariables()
		assert.Equal(t, "47550.00", vars["eligibleLoanAmount"])
		assert.Equal(t, "LOAN_AMOUNT_EXCEEDS_ELIGIBLE", vars["errorCode"])
		assert.Equal(t, false, vars["retryable"])
	})

	t.Run("non-retryable instance of a retryable code", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(newError(ErrCodeSearchTimeout, "forced", "", false))
		assert.Equal(t, 0, bpmnErr.Retries)
	})

	t.Run("unmapped code passes through", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewAuthenticationError("bad token"))
		assert.Equal(t, "AUTHENTICATION_ERROR", bpmnErr.Code)
	})
}

func TestAsStandardError(t *testing.T) {
	original := NewIndexNotFoundError("transactions")
	assert.Same(t, original, AsStandardError(fmt.Errorf("wrapped: %w", original)))

	timeout := AsStandardError(fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrorCode("TIMEOUT_ERROR"), timeout.Code)
	assert.True(t, timeout.Retryable)

	internal := AsStandardError(stderrors.New("nil map"))
	assert.Equal(t, ErrCodeInternal, internal.Code)
	assert.False(t, internal.Retryable)
	assert.Equal(t, "nil map", internal.Details)
}

func TestRemainingRetries(t *testing.T) {
	tests := []struct {
		jobRetries int32
		budget     int
		want       int32
	}{
		{jobRetries: 3, budget: 3, want: 2},
		{jobRetries: 10, budget: 2, want: 2},
		{jobRetries: 1, budget: 3, want: 0},
		{jobRetries: 0, budget: 3, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, remainingRetries(tt.jobRetries, tt.budget), "retries %d budget %d", tt.jobRetries, tt.budget)
	}
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeClientProfileNotFound:     "PROFILE",
		ErrCodeClientProfileLookupFailed: "PROFILE",
		ErrCodeLoanDenied:                "BUSINESS",
		ErrCodeDepositDenied:             "BUSINESS",
		ErrCodeQueryTimeout:              "DATABASE",
		ErrCodeDatabaseConnectionFailed:  "DATABASE",
		ErrCodeSearchQueryFailed:         "SEARCH",
		ErrCodeIndexNotFound:             "SEARCH",
		ErrCodeInvalidLoanTerms:          "VALIDATION",
		ErrCodeOutputSchemaViolation:     "VALIDATION",
		ErrCodeInternal:                  "OTHER",
	}

	for code, want := range tests {
		assert.Equal(t, want, GetErrorCategory(code), string(code))
	}
}

func TestBPMNErrorMappingCoversRetryPolicy(t *testing.T) {
	for code := range BPMNErrorMapping {
		if IsRetryableErrorCode(code) {
			require.NotEqual(t, "BUSINESS", GetErrorCategory(code), string(code))
		}
	}
}
