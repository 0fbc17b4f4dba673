// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeClientProfileNotFound     ErrorCode = "CLIENT_PROFILE_NOT_FOUND"
	ErrCodeClientProfileLookupFailed ErrorCode = "CLIENT_PROFILE_LOOKUP_FAILED"

	ErrCodeInvalidScoringInput   ErrorCode = "INVALID_SCORING_INPUT"
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	ErrCodeLoanDenied                ErrorCode = "LOAN_DENIED"
	ErrCodeLoanAmountExceedsEligible ErrorCode = "LOAN_AMOUNT_EXCEEDS_ELIGIBLE"
	ErrCodeInvalidLoanTerms          ErrorCode = "INVALID_LOAN_TERMS"

	ErrCodeDepositDenied       ErrorCode = "DEPOSIT_DENIED"
	ErrCodeInvalidDepositTerms ErrorCode = "INVALID_DEPOSIT_TERMS"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeOutputSchemaViolation ErrorCode = "OUTPUT_SCHEMA_VIOLATION"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewClientProfileNotFoundError creates a non-retryable missing profile error.
func NewClientProfileNotFoundError(clientID string) *StandardError {
	return newError(ErrCodeClientProfileNotFound, "Client financial profile not found",
		fmt.Sprintf("clientId: %s", clientID), false)
}

// NewClientProfileLookupFailedError creates a retryable profile store error.
func NewClientProfileLookupFailedError(clientID string, err error) *StandardError {
	return newError(ErrCodeClientProfileLookupFailed, "Client financial profile lookup failed",
		fmt.Sprintf("clientId: %s, error: %s", clientID, err.Error()), true)
}

// NewInvalidScoringInputError creates a non-retryable error for non-finite signals.
func NewInvalidScoringInputError(err error) *StandardError {
	return newError(ErrCodeInvalidScoringInput, "Scoring input contains a non-finite value", err.Error(), false)
}

// NewInputValidationFailedError creates a non-retryable job variable validation error.
func NewInputValidationFailedError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Job input validation failed", details, false)
}

// NewLoanDeniedError is thrown when the loan recommendation is a hard stop.
func NewLoanDeniedError(clientID string, score int) *StandardError {
	return newError(ErrCodeLoanDenied, "Loan application denied",
		fmt.Sprintf("clientId: %s, totalScore: %d", clientID, score), false).
		WithMetadata("totalScore", score)
}

// NewLoanAmountExceedsEligibleError reports a requested amount above the eligible amount.
func NewLoanAmountExceedsEligibleError(requested, eligible string) *StandardError {
	return newError(ErrCodeLoanAmountExceedsEligible, "Requested loan amount exceeds eligible amount",
		fmt.Sprintf("requested: %s, eligible: %s", requested, eligible), false).
		WithMetadata("eligibleLoanAmount", eligible)
}

// NewInvalidLoanTermsError creates a non-retryable loan request error.
func NewInvalidLoanTermsError(details string) *StandardError {
	return newError(ErrCodeInvalidLoanTerms, "Invalid loan terms", details, false)
}

// NewDepositDeniedError is reserved for a deposit hard stop; the current
// deposit model has no deny band.
func NewDepositDeniedError(clientID string, score int) *StandardError {
	return newError(ErrCodeDepositDenied, "Deposit application denied",
		fmt.Sprintf("clientId: %s, totalScore: %d", clientID, score), false)
}

// NewInvalidDepositTermsError creates a non-retryable deposit request error.
func NewInvalidDepositTermsError(details string) *StandardError {
	return newError(ErrCodeInvalidDepositTerms, "Invalid deposit terms", details, false)
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout",
		fmt.Sprintf("queryType: %s", queryType), true)
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true)
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeSearchTimeout, "Elasticsearch query timeout",
		fmt.Sprintf("queryType: %s", queryType), true)
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Elasticsearch index not found",
		fmt.Sprintf("indexName: %s", indexName), false)
}

// NewOutputSchemaViolationError creates a non-retryable output contract error.
func NewOutputSchemaViolationError(details string) *StandardError {
	return newError(ErrCodeOutputSchemaViolation, "Job output does not match its schema", details, false)
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewBusinessRuleError(message, details string) *StandardError {
	return newError("BUSINESS_RULE_VIOLATION", message, details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError("AUTHENTICATION_ERROR", "Authentication failed", details, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the BPMN error codes modelled
// in the processes. They are currently identical.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeClientProfileNotFound:         "CLIENT_PROFILE_NOT_FOUND",
	ErrCodeClientProfileLookupFailed:     "CLIENT_PROFILE_LOOKUP_FAILED",
	ErrCodeInvalidScoringInput:           "INVALID_SCORING_INPUT",
	ErrCodeInputValidationFailed:         "INPUT_VALIDATION_FAILED",
	ErrCodeLoanDenied:                    "LOAN_DENIED",
	ErrCodeLoanAmountExceedsEligible:     "LOAN_AMOUNT_EXCEEDS_ELIGIBLE",
	ErrCodeInvalidLoanTerms:              "INVALID_LOAN_TERMS",
	ErrCodeDepositDenied:                 "DEPOSIT_DENIED",
	ErrCodeInvalidDepositTerms:           "INVALID_DEPOSIT_TERMS",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:          "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:                  "QUERY_TIMEOUT",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:                 "SEARCH_TIMEOUT",
	ErrCodeIndexNotFound:                 "INDEX_NOT_FOUND",
	ErrCodeOutputSchemaViolation:         "OUTPUT_SCHEMA_VIOLATION",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeClientProfileLookupFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		"EXTERNAL_SERVICE_ERROR":
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		"TIMEOUT_ERROR":
		return 2

	default:
		return 0 // business outcomes are thrown, not retried
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err into a StandardError. Context deadlines become
// timeouts so they are retried; anything else is an internal error.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("worker", err)
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CLIENT_PROFILE"):
		return "PROFILE"
	case strings.HasPrefix(codeStr, "LOAN") || strings.HasPrefix(codeStr, "DEPOSIT"):
		return "BUSINESS"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY_"):
		return "DATABASE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "SCHEMA"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
