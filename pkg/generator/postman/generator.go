// Package postman renders the endpoint catalog as a Postman Collection v2.1
// document plus a matching environment.
package postman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/ir"
)

// Output file names
const (
	CollectionFile  = "veeq-ai-postman-collection.json"
	EnvironmentFile = "veeq-ai-environment.json"
)

// Variable names shared by the collection and the environment
const (
	BaseURLVar  = "base_url"
	JWTTokenVar = "jwt_token"
	UserIDVar   = "user_id"
)

// testScript runs after every request
var testScript = []string{
	"pm.test(\"Status code is successful\", function () {",
	"    pm.expect(pm.response.code).to.be.oneOf([200, 201, 202, 204]);",
	"});",
	"",
	"pm.test(\"Response time is less than 5000ms\", function () {",
	"    pm.expect(pm.response.responseTime).to.be.below(5000);",
	"});",
	"",
	"pm.test(\"Response is a JSON object\", function () {",
	"    const json = pm.response.json();",
	"    pm.expect(json).to.be.an(\"object\");",
	"});",
}

// Options control what the collection contains
type Options struct {
	// Categories selects folders; empty or "all" selects every category
	Categories      []string
	IncludeAuth     bool
	IncludeExamples bool
}

// DefaultOptions selects everything
func DefaultOptions() Options {
	return Options{IncludeAuth: true, IncludeExamples: true}
}

// Generator implements the Postman target
type Generator struct{}

// NewGenerator creates a new Postman generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GetType returns the generator type
func (g *Generator) GetType() string {
	return config.TypePostman
}

// Generate renders the collection and environment files
func (g *Generator) Generate(target config.Target, in ir.IR) ([]ir.Artifact, error) {
	opts := Options{
		Categories:      target.Categories,
		IncludeAuth:     target.AuthEnabled(),
		IncludeExamples: target.ExamplesEnabled(),
	}
	return Render(in, opts)
}

// Render builds both documents and serializes them
func Render(in ir.IR, opts Options) ([]ir.Artifact, error) {
	collection, err := marshal(Build(in, opts))
	if err != nil {
		return nil, fmt.Errorf("marshal collection: %w", err)
	}
	environment, err := marshal(BuildEnvironment(in))
	if err != nil {
		return nil, fmt.Errorf("marshal environment: %w", err)
	}
	return []ir.Artifact{
		{Name: CollectionFile, ContentType: "application/json", Content: collection},
		{Name: EnvironmentFile, ContentType: "application/json", Content: environment},
	}, nil
}

// Build creates the collection: one folder per selected category in catalog
// order, one request item per endpoint.
func Build(in ir.IR, opts Options) Collection {
	name := title(in)
	c := Collection{
		Info: Info{
			PostmanID:   stableID("collection", name, in.BaseURL, in.Info.Version),
			Name:        name,
			Description: in.Info.Description,
			Schema:      SchemaURL,
		},
		Item: []Folder{},
		Variable: []Variable{
			{Key: BaseURLVar, Value: baseURL(in), Type: "string"},
		},
	}

	selected := selection(opts.Categories)
	for _, service := range in.Services {
		if selected != nil && !selected[service.Tag] {
			continue
		}
		folder := Folder{
			Name:        service.Title,
			Description: fmt.Sprintf("%s endpoints", service.Title),
			Item:        make([]Item, 0, len(service.Operations)),
		}
		for _, op := range service.Operations {
			folder.Item = append(folder.Item, buildItem(op, opts))
		}
		if len(folder.Item) > 0 {
			c.Item = append(c.Item, folder)
		}
	}
	return c
}

// BuildEnvironment creates the companion environment
func BuildEnvironment(in ir.IR) Environment {
	name := title(in) + " Environment"
	return Environment{
		ID:   stableID("environment", name, in.BaseURL, in.Info.Version),
		Name: name,
		Values: []EnvironmentValue{
			{Key: BaseURLVar, Value: baseURL(in), Type: "default", Enabled: true},
			{Key: JWTTokenVar, Value: "", Type: "secret", Enabled: true},
			{Key: UserIDVar, Value: "", Type: "default", Enabled: true},
		},
		Scope:      "environment",
		ExportedBy: "Veeq AI docs-gen",
	}
}

func buildItem(op ir.IROperation, opts Options) Item {
	req := buildRequest(op, opts)
	item := Item{
		Name:     op.Summary,
		Request:  req,
		Response: []Response{},
		Event: []Event{
			{Listen: "test", Script: Script{Type: "text/javascript", Exec: testScript}},
		},
	}
	if opts.IncludeExamples {
		for _, r := range op.Responses {
			item.Response = append(item.Response, Response{
				Name:            responseName(r),
				OriginalRequest: req,
				Status:          http.StatusText(r.Status),
				Code:            r.Status,
				PreviewLanguage: "json",
				Header:          []Header{{Key: "Content-Type", Value: "application/json"}},
				Body:            prettyJSON(r.Example),
			})
		}
	}
	return item
}

func buildRequest(op ir.IROperation, opts Options) Request {
	method := strings.ToUpper(op.Method)
	req := Request{
		Method: method,
		Header: []Header{
			{Key: "Content-Type", Value: contentType(op), Type: "text"},
			{Key: "Accept", Value: "application/json", Type: "text"},
		},
		URL:         buildURL(op),
		Description: describe(op),
	}
	for _, p := range op.HeaderParams {
		req.Header = append(req.Header, Header{Key: p.Name, Value: firstNonEmpty(p.Example, p.Default), Type: "text", Description: p.Description})
	}

	if op.Auth && opts.IncludeAuth {
		req.Auth = &Auth{
			Type:   "bearer",
			Bearer: []Parameter{{Key: "token", Value: "{{" + JWTTokenVar + "}}", Type: "string"}},
		}
	}

	if method != http.MethodGet && op.RequestBody != nil {
		req.Body = &Body{
			Mode:    "raw",
			Raw:     prettyJSON(op.RequestBody.Example),
			Options: &BodyOptions{Raw: RawOptions{Language: "json"}},
		}
	}
	return req
}

var placeholder = regexp.MustCompile(`^\{([^}]+)\}$`)

// buildURL templates the URL on {{base_url}}; {name} placeholders become
// Postman path variables.
func buildURL(op ir.IROperation) URL {
	u := URL{Host: []string{"{{" + BaseURLVar + "}}"}, Path: []string{}}

	examples := map[string]ir.IRParam{}
	for _, p := range op.PathParams {
		examples[p.Name] = p
	}

	for _, seg := range strings.Split(strings.Trim(op.Path, "/"), "/") {
		if seg == "" {
			continue
		}
		name := ""
		if m := placeholder.FindStringSubmatch(seg); m != nil {
			name = m[1]
		} else if strings.HasPrefix(seg, ":") {
			name = seg[1:]
		}
		if name != "" {
			p := examples[name]
			u.Variable = append(u.Variable, Variable{Key: name, Value: p.Example, Description: p.Description})
			seg = ":" + name
		}
		u.Path = append(u.Path, seg)
	}

	var query []string
	for _, p := range op.QueryParams {
		value := firstNonEmpty(p.Example, p.Default)
		u.Query = append(u.Query, Query{Key: p.Name, Value: value, Description: p.Description})
		query = append(query, p.Name+"="+value)
	}

	u.Raw = u.Host[0] + "/" + strings.Join(u.Path, "/")
	if len(query) > 0 {
		u.Raw += "?" + strings.Join(query, "&")
	}
	return u
}

func describe(op ir.IROperation) string {
	var lines []string
	if op.Description != "" {
		lines = append(lines, op.Description)
	}
	if op.Credits != "" {
		lines = append(lines, "Credits: "+op.Credits)
	}
	if op.RateLimit != "" {
		lines = append(lines, "Rate limit: "+op.RateLimit)
	}
	return strings.Join(lines, "\n\n")
}

func responseName(r ir.IRResponse) string {
	if r.Description != "" {
		return r.Description
	}
	return fmt.Sprintf("%d %s", r.Status, http.StatusText(r.Status))
}

func contentType(op ir.IROperation) string {
	if op.RequestBody != nil && op.RequestBody.ContentType != "" {
		return op.RequestBody.ContentType
	}
	return "application/json"
}

// prettyJSON indents JSON example text; anything else is returned trimmed
func prettyJSON(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
		return text
	}
	return buf.String()
}

func selection(categories []string) map[string]bool {
	if len(categories) == 0 {
		return nil
	}
	set := map[string]bool{}
	for _, c := range categories {
		if c == catalog.All {
			return nil
		}
		set[c] = true
	}
	return set
}

// stableID derives a name-based UUID so regenerating yields identical files
func stableID(kind, name, base, version string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join([]string{kind, name, base, version}, "|"))).String()
}

func title(in ir.IR) string {
	if in.Info.Title != "" {
		return in.Info.Title
	}
	return "Veeq AI API"
}

func baseURL(in ir.IR) string {
	if in.BaseURL != "" {
		return in.BaseURL
	}
	return config.DefaultBaseURL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
