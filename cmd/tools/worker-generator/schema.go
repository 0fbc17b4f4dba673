package main

import (
	"sort"
	"strings"
)

// Field is one struct field derived from a JSON schema property.
type Field struct {
	GoName      string
	GoType      string
	JSONName    string
	Description string
}

// SchemaProperty is one entry of the generated GetInputSchema.
type SchemaProperty struct {
	Name     string
	Type     string
	Nullable bool
}

func properties(schema map[string]interface{}) map[string]map[string]interface{} {
	out := map[string]map[string]interface{}{}
	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		return out
	}
	for name, raw := range props {
		if details, ok := raw.(map[string]interface{}); ok {
			out[name] = details
		}
	}
	return out
}

func sortedNames(props map[string]map[string]interface{}) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// jsonType resolves "type" to a single JSON type; ["x", "null"] unions
// report nullable.
func jsonType(raw interface{}) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, false
	case []interface{}:
		var base string
		nullable := false
		for _, v := range t {
			s, _ := v.(string)
			if s == "null" {
				nullable = true
			} else if base == "" {
				base = s
			}
		}
		return base, nullable
	}
	return "", false
}

func goType(jt string, nullable bool) string {
	var t string
	switch jt {
	case "string":
		t = "string"
	case "integer":
		t = "int"
	case "number":
		t = "float64"
	case "boolean":
		t = "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
	if nullable {
		return "*" + t
	}
	return t
}

// goName turns a camelCase JSON name into an exported Go identifier,
// keeping the ID initialism.
func goName(jsonName string) string {
	if jsonName == "" {
		return jsonName
	}
	name := strings.ToUpper(jsonName[:1]) + jsonName[1:]
	switch {
	case strings.HasSuffix(name, "Ids"):
		name = strings.TrimSuffix(name, "Ids") + "IDs"
	case strings.HasSuffix(name, "Id"):
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}

func fields(schema map[string]interface{}) []Field {
	props := properties(schema)
	out := make([]Field, 0, len(props))
	for _, name := range sortedNames(props) {
		details := props[name]
		jt, nullable := jsonType(details["type"])
		desc, _ := details["description"].(string)
		out = append(out, Field{
			GoName:      goName(name),
			GoType:      goType(jt, nullable),
			JSONName:    name,
			Description: desc,
		})
	}
	return out
}

func schemaProperties(schema map[string]interface{}) []SchemaProperty {
	props := properties(schema)
	out := make([]SchemaProperty, 0, len(props))
	for _, name := range sortedNames(props) {
		jt, nullable := jsonType(props[name]["type"])
		if jt == "" {
			jt = "string"
		}
		out = append(out, SchemaProperty{Name: name, Type: jt, Nullable: nullable})
	}
	return out
}

func required(schema map[string]interface{}) []string {
	raw, _ := schema["required"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
