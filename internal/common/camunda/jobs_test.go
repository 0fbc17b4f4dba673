package camunda

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMockJob(key int64, variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               "calculate-loan-score",
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "loan-origination",
		ElementId:          "Activity_ScoreLoan",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          variables,
	}}
}

func variablesOf(t *testing.T, v map[string]interface{}) string {
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

type decodeTarget struct {
	ClientID string   `json:"clientId"`
	Amount   *float64 `json:"amount"`
}

func decodeSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"clientId": {Type: "string", MinLength: validation.Int(1)},
			"amount":   {Type: "number", Nullable: true},
		},
		Required:             []string{"clientId"},
		AdditionalProperties: true,
	}
}

func TestDecodeVariables(t *testing.T) {
	job := createMockJob(1, variablesOf(t, map[string]interface{}{
		"clientId":      "client-1",
		"amount":        2500.5,
		"processMarker": "ignored",
	}))

	var out decodeTarget
	require.NoError(t, DecodeVariables(job, decodeSchema(), &out))

	assert.Equal(t, "client-1", out.ClientID)
	require.NotNil(t, out.Amount)
	assert.Equal(t, 2500.5, *out.Amount)
}

func TestDecodeVariables_NullOptional(t *testing.T) {
	job := createMockJob(2, `{"clientId":"client-1","amount":null}`)

	var out decodeTarget
	require.NoError(t, DecodeVariables(job, decodeSchema(), &out))
	assert.Nil(t, out.Amount)
}

func TestDecodeVariables_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		variables   string
		wantDetails string
	}{
		{
			name:        "missing required",
			variables:   `{"amount": 10}`,
			wantDetails: "clientId",
		},
		{
			name:        "wrong type",
			variables:   `{"clientId": "c", "amount": "ten"}`,
			wantDetails: "amount",
		},
		{
			name:        "empty id",
			variables:   `{"clientId": ""}`,
			wantDetails: "clientId",
		},
		{
			name:        "not json",
			variables:   `{clientId`,
			wantDetails: "parse job variables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out decodeTarget
			err := DecodeVariables(createMockJob(3, tt.variables), decodeSchema(), &out)

			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, errors.ErrCodeInputValidationFailed, stdErr.Code)
			assert.False(t, stdErr.Retryable)
			assert.Contains(t, stdErr.Details, tt.wantDetails)
		})
	}
}
