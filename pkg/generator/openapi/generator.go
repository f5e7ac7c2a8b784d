// Package openapi renders the endpoint catalog as an OpenAPI 3.0.3 or 3.1.0
// document, in JSON or YAML.
package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/errors"
	"github.com/veeq-ai/docs-gen/pkg/ir"
)

// Supported versions and formats
const (
	Version303 = "3.0.3"
	Version310 = "3.1.0"

	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileBase is the output file name without extension
const FileBase = "veeq-ai-openapi"

// SecuritySchemeName names the bearer scheme in components
const SecuritySchemeName = "bearerAuth"

const editorURL = "https://editor.swagger.io/"

// Options control the rendered document
type Options struct {
	Version         string
	Format          string
	IncludeExamples bool
	IncludeSchemas  bool
}

// DefaultOptions renders a 3.0.3 JSON document with examples and schemas
func DefaultOptions() Options {
	return Options{Version: Version303, Format: FormatJSON, IncludeExamples: true, IncludeSchemas: true}
}

// normalize fills defaults and rejects unknown versions and formats
func (o Options) normalize() (Options, error) {
	if o.Version == "" {
		o.Version = Version303
	}
	if o.Format == "" {
		o.Format = FormatJSON
	}
	o.Format = strings.ToLower(o.Format)
	if o.Format == "yml" {
		o.Format = FormatYAML
	}
	if o.Version != Version303 && o.Version != Version310 {
		return o, errors.NewUnsupportedError("OpenAPI version", o.Version, Version303, Version310)
	}
	if o.Format != FormatJSON && o.Format != FormatYAML {
		return o, errors.NewUnsupportedError("format", o.Format, FormatJSON, FormatYAML)
	}
	return o, nil
}

// FileName returns the artifact name for a format
func FileName(format string) string {
	if format == FormatYAML {
		return FileBase + ".yaml"
	}
	return FileBase + ".json"
}

// Generator implements the OpenAPI target
type Generator struct{}

// NewGenerator creates a new OpenAPI generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GetType returns the generator type
func (g *Generator) GetType() string {
	return config.TypeOpenAPI
}

// Generate renders the document in the target's version and format
func (g *Generator) Generate(target config.Target, in ir.IR) ([]ir.Artifact, error) {
	opts := Options{
		Version:         target.OpenAPIVersion,
		Format:          target.Format,
		IncludeExamples: target.ExamplesEnabled(),
		IncludeSchemas:  target.SchemasEnabled(),
	}
	a, err := Render(in, opts)
	if err != nil {
		return nil, err
	}
	return []ir.Artifact{a}, nil
}

// Render builds, validates and serializes the document
func Render(in ir.IR, opts Options) (ir.Artifact, error) {
	opts, err := opts.normalize()
	if err != nil {
		return ir.Artifact{}, err
	}
	doc, err := Build(in, opts)
	if err != nil {
		return ir.Artifact{}, err
	}
	// Catalog examples are free text, so they are not held against the schemas here
	if err := doc.Validate(context.Background(), openapi3.DisableExamplesValidation()); err != nil {
		return ir.Artifact{}, fmt.Errorf("generated document is invalid: %w", err)
	}
	data, err := Marshal(doc, opts.Format)
	if err != nil {
		return ir.Artifact{}, err
	}
	contentType := "application/json"
	if opts.Format == FormatYAML {
		contentType = "application/yaml"
	}
	return ir.Artifact{Name: FileName(opts.Format), ContentType: contentType, Content: data}, nil
}

// Marshal serializes doc as indented JSON or as YAML
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal OpenAPI document: %w", err)
	}
	if format == FormatYAML {
		return jsonToYAML(buf.Bytes())
	}
	return buf.Bytes(), nil
}

// Build maps the IR onto an OpenAPI document
func Build(in ir.IR, opts Options) (*openapi3.T, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	base := in.BaseURL
	if base == "" {
		base = config.DefaultBaseURL
	}
	title := in.Info.Title
	if title == "" {
		title = "Veeq AI API"
	}
	version := in.Info.Version
	if version == "" {
		version = "1.0.0"
	}

	bearer := openapi3.NewJWTSecurityScheme()
	bearer.Description = "JWT access token returned by the login endpoint"

	doc := &openapi3.T{
		OpenAPI: opts.Version,
		Info: &openapi3.Info{
			Title:       title,
			Description: in.Info.Description,
			Version:     version,
		},
		Servers: openapi3.Servers{
			{URL: base, Description: "Production server"},
			{URL: config.DevBaseURL, Description: "Development server"},
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				SecuritySchemeName: &openapi3.SecuritySchemeRef{Value: bearer},
			},
		},
	}
	if c := in.Info.Contact; c.Name != "" || c.Email != "" || c.URL != "" {
		doc.Info.Contact = &openapi3.Contact{Name: c.Name, Email: c.Email, URL: c.URL}
	}

	components := componentSchemas()
	if opts.IncludeSchemas {
		doc.Components.Schemas = components
	}

	for _, service := range in.Services {
		tag := service.Title
		if tag == "" {
			tag = service.Tag
		}
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: tag, Description: tag + " endpoints"})

		for _, op := range service.Operations {
			operation, err := buildOperation(op, tag, opts, components)
			if err != nil {
				return nil, err
			}
			doc.AddOperation(catalog.BracePath(op.Path), strings.ToUpper(op.Method), operation)
		}
	}
	return doc, nil
}

func buildOperation(op ir.IROperation, tag string, opts Options, components openapi3.Schemas) (*openapi3.Operation, error) {
	operation := openapi3.NewOperation()
	operation.OperationID = op.OperationID
	operation.Summary = op.Summary
	operation.Description = op.Description
	operation.Tags = []string{tag}

	addParams := func(params []ir.IRParam, newParam func(string) *openapi3.Parameter, forceRequired bool) {
		for _, p := range params {
			param := newParam(p.Name).
				WithDescription(p.Description).
				WithRequired(p.Required || forceRequired).
				WithSchema(paramSchema(p))
			if opts.IncludeExamples && p.Example != "" {
				param.Example = typedValue(p.Type, p.Example)
			}
			operation.AddParameter(param)
		}
	}
	addParams(op.PathParams, openapi3.NewPathParameter, true)
	addParams(op.QueryParams, openapi3.NewQueryParameter, false)
	addParams(op.HeaderParams, openapi3.NewHeaderParameter, false)

	if op.HasBody() {
		rb, err := buildRequestBody(op, opts, components)
		if err != nil {
			return nil, err
		}
		operation.RequestBody = &openapi3.RequestBodyRef{Value: rb}
	}

	responses, err := buildResponses(op, opts, components)
	if err != nil {
		return nil, err
	}
	operation.Responses = responses

	if op.Auth {
		operation.Security = openapi3.NewSecurityRequirements().
			With(openapi3.NewSecurityRequirement().Authenticate(SecuritySchemeName))
	}

	ext := map[string]any{}
	if op.Credits != "" {
		ext["x-credits"] = op.Credits
	}
	if op.RateLimit != "" {
		ext["x-rate-limit"] = op.RateLimit
	}
	if len(ext) > 0 {
		operation.Extensions = ext
	}
	return operation, nil
}

// buildRequestBody references a component schema when the catalog names one
// that is emitted, and otherwise describes the body fields inline.
func buildRequestBody(op ir.IROperation, opts Options, components openapi3.Schemas) (*openapi3.RequestBody, error) {
	contentType := "application/json"
	required := len(op.BodyParams) > 0
	schemaName := ""
	example := ""
	if rb := op.RequestBody; rb != nil {
		contentType = rb.ContentType
		required = rb.Required
		schemaName = rb.SchemaName
		example = rb.Example
	}

	var schema *openapi3.SchemaRef
	if _, known := components[schemaName]; known && opts.IncludeSchemas {
		schema = componentRef(components, schemaName)
	} else {
		schema = openapi3.NewSchemaRef("", bodySchema(op.BodyParams))
	}

	media := openapi3.NewMediaType().WithSchemaRef(schema)
	if opts.IncludeExamples && strings.TrimSpace(example) != "" {
		v, err := parseExample(example, op.OperationID, "requestBody.example")
		if err != nil {
			return nil, err
		}
		media.Example = v
	}

	return openapi3.NewRequestBody().
		WithRequired(required).
		WithContent(openapi3.Content{contentType: media}), nil
}

func buildResponses(op ir.IROperation, opts Options, components openapi3.Schemas) (*openapi3.Responses, error) {
	var options []openapi3.NewResponsesOption
	for i, r := range op.Responses {
		desc := r.Description
		if desc == "" {
			desc = fmt.Sprintf("HTTP %d", r.Status)
		}
		resp := openapi3.NewResponse().WithDescription(desc)

		var schema *openapi3.SchemaRef
		if r.Status >= 400 && opts.IncludeSchemas {
			schema = componentRef(components, SchemaAPIError)
		} else {
			schema = openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
		}
		media := openapi3.NewMediaType().WithSchemaRef(schema)
		if opts.IncludeExamples && strings.TrimSpace(r.Example) != "" {
			v, err := parseExample(r.Example, op.OperationID, "responses["+strconv.Itoa(i)+"].example")
			if err != nil {
				return nil, err
			}
			media.Example = v
		}
		resp.Content = openapi3.Content{"application/json": media}

		options = append(options, openapi3.WithStatus(r.Status, &openapi3.ResponseRef{Value: resp}))
	}
	if len(options) == 0 {
		ok := openapi3.NewResponse().WithDescription("Successful response")
		options = append(options, openapi3.WithStatus(200, &openapi3.ResponseRef{Value: ok}))
	}
	return openapi3.NewResponses(options...), nil
}

// parseExample decodes catalog example text, reporting malformed JSON as a
// validation error instead of failing later.
func parseExample(text, operationID, field string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		verr := errors.NewValidationError(operationID+"."+field, text, "example is not valid JSON")
		verr.Err = err
		return nil, verr
	}
	return v, nil
}

// EditorURL links Swagger Editor to a data URI carrying the whole document
func EditorURL(data []byte, format string) string {
	mime := "application/json"
	if format == FormatYAML {
		mime = "application/yaml"
	}
	dataURI := "data:" + mime + ";charset=utf-8," + url.PathEscape(string(data))
	return editorURL + "?url=" + url.QueryEscape(dataURI)
}
