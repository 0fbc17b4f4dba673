package errors

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler fails or throws jobs according to the retry policy of their error code.
type ErrorHandler struct {
	logger Logger
}

// Logger is the subset of logger.Logger the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError reports err to the broker and returns its normalized form.
// Retryable errors fail the job with a decremented retry budget; business
// outcomes are thrown as BPMN errors so the process can branch on them.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) *StandardError {
	stdErr := AsStandardError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	h.logError(job, stdErr, bpmnErr)

	if bpmnErr.Retries > 0 && job.GetRetries() > 0 {
		h.failJob(ctx, client, job, bpmnErr, remainingRetries(job.GetRetries(), bpmnErr.Retries))
	} else {
		h.throwBPMNError(ctx, client, job, bpmnErr)
	}

	return stdErr
}

// remainingRetries consumes one attempt and never exceeds the code's budget.
func remainingRetries(jobRetries int32, budget int) int32 {
	remaining := jobRetries - 1
	if remaining > int32(budget) {
		remaining = int32(budget)
	}
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int32) {
	failCmd := client.NewFailJobCommand().
		JobKey(job.GetKey()).
		Retries(retries).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	varCmd, err := failCmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		h.logger.Error("failed to set error variables, sending without them", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		_, err = failCmd.Send(ctx)
	} else {
		_, err = varCmd.Send(ctx)
	}

	if err != nil {
		h.logger.Error("failed to fail job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
	}
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	throwCmd := client.NewThrowErrorCommand().
		JobKey(job.GetKey()).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	varCmd, err := throwCmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		h.logger.Error("failed to set error variables, sending without them", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		_, err = throwCmd.Send(ctx)
	} else {
		_, err = varCmd.Send(ctx)
	}

	if err != nil {
		h.logger.Error("failed to throw BPMN error", map[string]interface{}{
			"jobKey":    job.GetKey(),
			"errorCode": bpmnErr.Code,
			"error":     err.Error(),
		})
	}
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"jobType":            job.GetType(),
		"errorCode":          string(stdErr.Code),
		"bpmnErrorCode":      bpmnErr.Code,
		"message":            bpmnErr.Message,
		"details":            stdErr.Details,
		"retryable":          stdErr.Retryable,
		"retries":            bpmnErr.Retries,
		"errorCategory":      GetErrorCategory(stdErr.Code),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})
}
