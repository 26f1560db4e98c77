// Package schema declares the output shapes the generation service must
// produce and validates model output against them.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Type is a JSON value type understood by the generation service
type Type string

const (
	Object  Type = "object"
	Array   Type = "array"
	String  Type = "string"
	Integer Type = "integer"
	Number  Type = "number"
	Boolean Type = "boolean"
)

// ErrMismatch is wrapped by every validation failure
var ErrMismatch = errors.New("output does not match schema")

// Schema is a declarative output-shape constraint
type Schema struct {
	Type        Type
	Description string
	Nullable    bool
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
}

// Obj declares an object with the given properties and required keys
func Obj(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: Object, Properties: props, Required: required}
}

// Arr declares an array of items
func Arr(items *Schema) *Schema {
	return &Schema{Type: Array, Items: items}
}

// Str declares a string
func Str() *Schema { return &Schema{Type: String} }

// Int declares an integer
func Int() *Schema { return &Schema{Type: Integer} }

// Describe sets the description and returns s
func (s *Schema) Describe(description string) *Schema {
	s.Description = description
	return s
}

// OrNull marks s as nullable and returns it
func (s *Schema) OrNull() *Schema {
	s.Nullable = true
	return s
}

// PropertyNames returns the declared property names in a stable order
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MismatchError describes where model output diverged from the schema
type MismatchError struct {
	Path    string
	Message string
}

func (e *MismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("schema mismatch: %s", e.Message)
	}
	return fmt.Sprintf("schema mismatch at %s: %s", e.Path, e.Message)
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }

// Validate parses data as a single JSON document and checks it against s
func (s *Schema) Validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return &MismatchError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &MismatchError{Message: "trailing data after JSON document"}
	}

	return s.check("", v)
}

func (s *Schema) check(path string, v interface{}) error {
	if v == nil {
		if s.Nullable {
			return nil
		}
		return &MismatchError{Path: display(path), Message: "null is not allowed"}
	}

	switch s.Type {
	case Object:
		obj, ok := v.(map[string]interface{})
		if !ok {
			return typeMismatch(path, s.Type, v)
		}
		for _, key := range s.Required {
			if _, ok := obj[key]; !ok {
				return &MismatchError{Path: display(join(path, key)), Message: "required field is missing"}
			}
		}
		for _, name := range s.PropertyNames() {
			value, ok := obj[name]
			if !ok {
				continue
			}
			if err := s.Properties[name].check(join(path, name), value); err != nil {
				return err
			}
		}
	case Array:
		arr, ok := v.([]interface{})
		if !ok {
			return typeMismatch(path, s.Type, v)
		}
		if s.Items == nil {
			return nil
		}
		for i, item := range arr {
			if err := s.Items.check(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case String:
		if _, ok := v.(string); !ok {
			return typeMismatch(path, s.Type, v)
		}
	case Integer:
		n, ok := v.(json.Number)
		if !ok {
			return typeMismatch(path, s.Type, v)
		}
		if _, err := n.Int64(); err != nil {
			return &MismatchError{Path: display(path), Message: fmt.Sprintf("%s is not an integer", n)}
		}
	case Number:
		if _, ok := v.(json.Number); !ok {
			return typeMismatch(path, s.Type, v)
		}
	case Boolean:
		if _, ok := v.(bool); !ok {
			return typeMismatch(path, s.Type, v)
		}
	default:
		return &MismatchError{Path: display(path), Message: fmt.Sprintf("unsupported schema type %q", s.Type)}
	}

	return nil
}

func typeMismatch(path string, want Type, v interface{}) error {
	return &MismatchError{Path: display(path), Message: fmt.Sprintf("expected %s, got %s", want, jsonKind(v))}
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func display(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

// JSONSchema renders s as a JSON Schema document (draft 2020-12 subset).
// Nullable types are expressed as a type union with "null".
func (s *Schema) JSONSchema() map[string]interface{} {
	out := map[string]interface{}{}
	if s.Nullable {
		out["type"] = []string{string(s.Type), "null"}
	} else {
		out["type"] = string(s.Type)
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.JSONSchema()
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = append([]string(nil), s.Required...)
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	return out
}

// MarshalJSON encodes s as a JSON Schema document
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.JSONSchema())
}
