package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// DecodeVariables checks the job variables against schema and unmarshals
// them into out. Any failure is an INPUT_VALIDATION_FAILED error.
func DecodeVariables(job entities.Job, schema validation.JSONSchema, out interface{}) error {
	vars, err := job.GetVariablesAsMap()
	if err != nil {
		return errors.NewInputValidationFailedError(fmt.Sprintf("parse job variables: %v", err))
	}

	result := validation.ValidateInput(vars, schema)
	if !result.Valid {
		return errors.NewInputValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := json.Unmarshal([]byte(job.GetVariables()), out); err != nil {
		return errors.NewInputValidationFailedError(fmt.Sprintf("decode job variables: %v", err))
	}
	return nil
}

// CompleteJob completes the job with variables serialized from output.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}
