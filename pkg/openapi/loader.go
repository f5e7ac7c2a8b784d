// Package openapi loads and validates OpenAPI documents, both user-supplied
// files and the documents this module generates.
package openapi

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadDocument loads an OpenAPI document from a local file path or an HTTP(S) URL
func LoadDocument(ctx context.Context, input string) (*openapi3.T, error) {
	return LoadDocumentWithLoader(newLoader(ctx), input)
}

// LoadDocumentWithLoader loads an OpenAPI document using a custom loader
func LoadDocumentWithLoader(loader *openapi3.Loader, input string) (*openapi3.T, error) {
	// Try to parse as URL; if it looks like http(s), fetch via URL
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return loader.LoadFromURI(u)
	}
	// Fallback to reading from filesystem path
	return loader.LoadFromFile(input)
}

// LoadData loads an OpenAPI document from JSON or YAML bytes
func LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	return newLoader(ctx).LoadFromData(data)
}

// ValidateDocument loads and validates an OpenAPI document
func ValidateDocument(ctx context.Context, input string) error {
	loader := newLoader(ctx)
	doc, err := LoadDocumentWithLoader(loader, input)
	if err != nil {
		return err
	}
	return doc.Validate(loader.Context)
}

// Summary is a short description of a loaded document
type Summary struct {
	Title      string
	Version    string
	OpenAPI    string
	Paths      int
	Operations []string
}

// Summarize lists the operations of doc as "METHOD path" in path order
func Summarize(doc *openapi3.T) Summary {
	s := Summary{OpenAPI: doc.OpenAPI}
	if doc.Info != nil {
		s.Title = doc.Info.Title
		s.Version = doc.Info.Version
	}
	if doc.Paths == nil {
		return s
	}
	s.Paths = doc.Paths.Len()
	for _, path := range doc.Paths.InMatchingOrder() {
		for method := range doc.Paths.Value(path).Operations() {
			s.Operations = append(s.Operations, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(s.Operations)
	return s
}

func newLoader(ctx context.Context) *openapi3.Loader {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	if ctx != nil {
		loader.Context = ctx
	}
	return loader
}
