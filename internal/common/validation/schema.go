package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema is the subset of JSON Schema used to declare job variable contracts.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string              `json:"type"`
	Nullable    bool                `json:"-"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	MinItems    *int                `json:"minItems,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Float and Int return pointers for the optional numeric constraints.
func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

// Document renders the schema as a JSON Schema document.
func (s JSONSchema) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"type":                 s.Type,
		"additionalProperties": s.AdditionalProperties,
	}
	if len(s.Properties) > 0 {
		doc["properties"] = propertiesDocument(s.Properties)
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}
	return doc
}

func propertiesDocument(props map[string]Property) map[string]interface{} {
	out := make(map[string]interface{}, len(props))
	for name, p := range props {
		out[name] = p.document()
	}
	return out
}

func (p Property) document() map[string]interface{} {
	doc := map[string]interface{}{}
	if p.Type != "" {
		if p.Nullable {
			doc["type"] = []string{p.Type, "null"}
		} else {
			doc["type"] = p.Type
		}
	}
	if p.Description != "" {
		doc["description"] = p.Description
	}
	if p.Minimum != nil {
		doc["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		doc["maximum"] = *p.Maximum
	}
	if len(p.Enum) > 0 {
		doc["enum"] = p.Enum
	}
	if p.Pattern != nil {
		doc["pattern"] = *p.Pattern
	}
	if p.MinLength != nil {
		doc["minLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		doc["maxLength"] = *p.MaxLength
	}
	if p.MinItems != nil {
		doc["minItems"] = *p.MinItems
	}
	if p.Items != nil {
		doc["items"] = p.Items.document()
	}
	if len(p.Properties) > 0 {
		doc["properties"] = propertiesDocument(p.Properties)
	}
	if len(p.Required) > 0 {
		doc["required"] = p.Required
	}
	return doc
}

// ValidateInput checks job variables against schema.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	result, err := ValidateDocument(schema.Document(), input)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(schema)",
			Message: err.Error(),
			Code:    "INVALID_SCHEMA",
		}}}
	}
	return result
}

// ValidateDocument checks any Go value against a JSON Schema document given
// as a Go value (map, struct) or a JSON string.
func ValidateDocument(schema interface{}, value interface{}) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(loaderFor(schema), gojsonschema.NewGoLoader(value))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}

	return &ValidationResult{Valid: result.Valid(), Errors: errs}, nil
}

// CompileSchema reports whether schema is a loadable JSON Schema document.
func CompileSchema(schema interface{}) error {
	if _, err := gojsonschema.NewSchema(loaderFor(schema)); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	return nil
}

func loaderFor(schema interface{}) gojsonschema.JSONLoader {
	if s, ok := schema.(string); ok {
		return gojsonschema.NewStringLoader(s)
	}
	return gojsonschema.NewGoLoader(schema)
}

// fieldOf names the offending field; required errors report the parent
// object, so the missing property is appended.
func fieldOf(desc gojsonschema.ResultError) string {
	field := desc.Field()
	prop, ok := desc.Details()["property"].(string)
	if !ok || desc.Type() != "required" {
		return field
	}
	switch {
	case field == prop || strings.HasSuffix(field, "."+prop):
		return field
	case field == "" || field == "(root)":
		return prop
	default:
		return field + "." + prop
	}
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}
