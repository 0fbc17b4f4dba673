package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Nurbek-dev001/World-banking-system/pkg/registry"
)

const modulePath = "github.com/Nurbek-dev001/World-banking-system"

// WorkerData feeds the scaffold templates.
type WorkerData struct {
	Module           string
	PackageName      string
	TaskType         string
	Description      string
	InputFields      []Field
	OutputFields     []Field
	SchemaProperties []SchemaProperty
	Required         []string
}

var scaffold = []struct {
	file string
	tmpl string
}{
	{"config.go", configTemplate},
	{"models.go", modelsTemplate},
	{"validation.go", validationTemplate},
	{"handler.go", handlerTemplate},
	{"handler_test.go", testTemplate},
}

var funcs = template.FuncMap{
	"isPointer": func(t string) bool { return strings.HasPrefix(t, "*") },
}

func newWorkerData(a *registry.Activity) WorkerData {
	return WorkerData{
		Module:           modulePath,
		PackageName:      strings.ReplaceAll(a.ID, "-", ""),
		TaskType:         a.TaskType,
		Description:      a.Description,
		InputFields:      fields(a.InputSchema),
		OutputFields:     fields(a.OutputSchema),
		SchemaProperties: schemaProperties(a.InputSchema),
		Required:         required(a.InputSchema),
	}
}

// generate writes the scaffold for a into outputDir/<category>/<id>. Existing
// files are never overwritten.
func generate(a *registry.Activity, outputDir string) (string, error) {
	dir := filepath.Join(outputDir, strings.ToLower(a.Category), a.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	data := newWorkerData(a)
	for _, s := range scaffold {
		path := filepath.Join(dir, s.file)
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		src, err := render(s.file, s.tmpl, data)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	return dir, nil
}

func render(name, text string, data WorkerData) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return src, nil
}

func main() {
	activity := flag.String("activity", "", "Activity ID from registry (e.g., calculate-loan-score)")
	outputDir := flag.String("output", "./internal/workers/", "Root directory for generated workers")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator -activity <id> [-output <dir>] [-registry <path>]")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := reg.FindByID(*activity)
	if a == nil {
		fmt.Fprintf(os.Stderr, "Error: activity %q not found in %s\n", *activity, *registryPath)
		os.Exit(1)
	}

	dir, err := generate(a, *outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s in %s\n", a.TaskType, dir)
	fmt.Println("Register the handler in cmd/worker-manager/workers.go and add a workers entry to the config.")
}
