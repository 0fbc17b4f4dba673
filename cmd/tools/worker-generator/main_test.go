package main

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/Nurbek-dev001/World-banking-system/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleActivity() *registry.Activity {
	return &registry.Activity{
		ID:          "estimate-overdraft-limit",
		Description: "estimates an overdraft limit",
		Category:    "lending",
		TaskType:    "estimate-overdraft-limit",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"clientId":       map[string]interface{}{"type": "string"},
				"lookbackMonths": map[string]interface{}{"type": []interface{}{"integer", "null"}},
			},
			"required": []interface{}{"clientId"},
		},
		OutputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit": map[string]interface{}{"type": "number", "description": "approved limit"},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()

	dir, err := generate(sampleActivity(), root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lending", "estimate-overdraft-limit"), dir)

	fset := token.NewFileSet()
	for _, s := range scaffold {
		src, err := os.ReadFile(filepath.Join(dir, s.file))
		require.NoError(t, err, s.file)

		f, err := parser.ParseFile(fset, s.file, src, 0)
		require.NoError(t, err, s.file)
		assert.Equal(t, "estimateoverdraftlimit", f.Name.Name)
	}

	models, err := os.ReadFile(filepath.Join(dir, "models.go"))
	require.NoError(t, err)
	assert.Regexp(t, `ClientID\s+string\s+`+"`"+`json:"clientId"`, string(models))
	assert.Regexp(t, `LookbackMonths\s+\*int\s+`+"`"+`json:"lookbackMonths,omitempty"`, string(models))
	assert.Contains(t, string(models), "// approved limit")

	schema, err := os.ReadFile(filepath.Join(dir, "validation.go"))
	require.NoError(t, err)
	assert.Contains(t, string(schema), `"lookbackMonths": {Type: "integer", Nullable: true}`)
	assert.Contains(t, string(schema), `Required:             []string{"clientId"}`)
}

func TestGenerate_RefusesToOverwrite(t *testing.T) {
	root := t.TempDir()

	_, err := generate(sampleActivity(), root)
	require.NoError(t, err)

	_, err = generate(sampleActivity(), root)
	assert.ErrorContains(t, err, "already exists")
}

func TestGoName(t *testing.T) {
	tests := map[string]string{
		"clientId":      "ClientID",
		"clientIds":     "ClientIDs",
		"monthlyIncome": "MonthlyIncome",
		"detail":        "Detail",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, goName(in), in)
	}
}

func TestJSONType(t *testing.T) {
	jt, nullable := jsonType([]interface{}{"number", "null"})
	assert.Equal(t, "number", jt)
	assert.True(t, nullable)
	assert.Equal(t, "*float64", goType(jt, nullable))

	jt, nullable = jsonType("object")
	assert.Equal(t, "object", jt)
	assert.False(t, nullable)
	assert.Equal(t, "map[string]interface{}", goType(jt, nullable))
}
