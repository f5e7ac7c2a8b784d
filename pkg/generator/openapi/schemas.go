package openapi

import (
	"encoding/json"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/veeq-ai/docs-gen/pkg/ir"
)

// Component schema names
const (
	SchemaUser                  = "User"
	SchemaMusicGenerateRequest  = "MusicGenerateRequest"
	SchemaSpeechGenerateRequest = "SpeechGenerateRequest"
	SchemaAPIError              = "APIError"
)

// componentSchemas are maintained by hand; the catalog only names them
func componentSchemas() openapi3.Schemas {
	user := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("plan", openapi3.NewStringSchema().WithEnum("free", "pro", "business")).
		WithProperty("credits", openapi3.NewIntegerSchema().WithMin(0))
	user.Required = []string{"id", "email"}

	music := openapi3.NewObjectSchema().
		WithProperty("prompt", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(500)).
		WithProperty("duration", openapi3.NewFloat64Schema().WithMin(5).WithMax(300)).
		WithProperty("style", openapi3.NewStringSchema().WithEnum("pop", "rock", "electronic", "classical", "jazz", "ambient")).
		WithProperty("instrumental", openapi3.NewBoolSchema())
	music.Required = []string{"prompt"}

	speech := openapi3.NewObjectSchema().
		WithProperty("text", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(5000)).
		WithProperty("voiceId", openapi3.NewStringSchema()).
		WithProperty("speed", openapi3.NewFloat64Schema().WithMin(0.5).WithMax(2)).
		WithProperty("format", openapi3.NewStringSchema().WithEnum("mp3", "wav", "ogg"))
	speech.Required = []string{"text", "voiceId"}

	apiError := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("error", openapi3.NewStringSchema())
	apiError.Required = []string{"error"}

	return openapi3.Schemas{
		SchemaUser:                  openapi3.NewSchemaRef("", user),
		SchemaMusicGenerateRequest:  openapi3.NewSchemaRef("", music),
		SchemaSpeechGenerateRequest: openapi3.NewSchemaRef("", speech),
		SchemaAPIError:              openapi3.NewSchemaRef("", apiError),
	}
}

// componentRef points at a component and carries its resolved value
func componentRef(components openapi3.Schemas, name string) *openapi3.SchemaRef {
	ref := openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
	if c, ok := components[name]; ok && c != nil {
		ref.Value = c.Value
	}
	return ref
}

// paramSchema maps a catalog value type to a schema carrying enum and default
func paramSchema(p ir.IRParam) *openapi3.Schema {
	var s *openapi3.Schema
	switch p.Type {
	case "integer":
		s = openapi3.NewIntegerSchema()
	case "number":
		s = openapi3.NewFloat64Schema()
	case "boolean":
		s = openapi3.NewBoolSchema()
	case "object":
		s = openapi3.NewObjectSchema()
	case "array":
		s = openapi3.NewArraySchema().WithItems(openapi3.NewSchema())
	default:
		s = openapi3.NewStringSchema()
	}
	if p.Description != "" {
		s.Description = p.Description
	}
	for _, e := range p.Enum {
		s.Enum = append(s.Enum, typedValue(p.Type, e))
	}
	if p.Default != "" {
		s.Default = typedValue(p.Type, p.Default)
	}
	return s
}

// bodySchema builds an inline object schema from body fields
func bodySchema(params []ir.IRParam) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, p := range params {
		s.WithProperty(p.Name, paramSchema(p))
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}

// typedValue converts a display string to the JSON value its type names,
// keeping the string when it does not parse.
func typedValue(valueType, s string) any {
	switch valueType {
	case "integer":
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return float64(n)
		}
	case "number":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case "object", "array":
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return s
}
