package main

const configTemplate = `package {{ .PackageName }}

import (
	"time"

	"{{ .Module }}/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func NewConfig(app *config.Config) *Config {
	wc := config.GetWorkerConfig(app, TaskType)
	return &Config{
		Timeout: config.GetDuration(wc.Timeout),
	}
}
`

const modelsTemplate = `package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .GoName }} {{ .GoType }} ` + "`" + `json:"{{ .JSONName }}{{ if isPointer .GoType }},omitempty{{ end }}"` + "`" + `{{ if .Description }} // {{ .Description }}{{ end }}
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .GoName }} {{ .GoType }} ` + "`" + `json:"{{ .JSONName }}"` + "`" + `{{ if .Description }} // {{ .Description }}{{ end }}
{{- end }}
}
`

const validationTemplate = `package {{ .PackageName }}

import "{{ .Module }}/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
{{- range .SchemaProperties }}
			"{{ .Name }}": {Type: "{{ .Type }}"{{ if .Nullable }}, Nullable: true{{ end }}},
{{- end }}
		},
		Required:             []string{ {{- range $i, $r := .Required }}{{ if $i }}, {{ end }}"{{ $r }}"{{ end -}} },
		AdditionalProperties: true,
	}
}
`

const handlerTemplate = `package {{ .PackageName }}

import (
	"context"

	"{{ .Module }}/internal/common/camunda"
	"{{ .Module }}/internal/common/errors"
	"{{ .Module }}/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

{{ if .Description }}// Handler: {{ .Description }}
{{ end -}}
type Handler struct {
	config *Config
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		errors: errors.NewErrorHandler(scoped),
		logger: scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
		return h.errors.HandleJobError(ctx, client, job, err)
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		return h.errors.HandleJobError(ctx, client, job, err)
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	// TODO: implement {{ .TaskType }}
	return &Output{}, nil
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"
	"time"

	"{{ .Module }}/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(&Config{Timeout: 5 * time.Second}, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestGetInputSchema(t *testing.T) {
	assert.Equal(t, []string{ {{- range $i, $r := .Required }}{{ if $i }}, {{ end }}"{{ $r }}"{{ end -}} }, GetInputSchema().Required)
}
`
