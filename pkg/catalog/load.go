package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/veeq-ai/docs-gen/pkg/errors"
)

// Format is the encoding of a catalog file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

const schemaURL = "https://api.veeq.ai/schemas/catalog.schema.json"

//go:embed data/catalog.schema.json
var schemaData []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

type document struct {
	Endpoints []Endpoint `yaml:"endpoints" json:"endpoints"`
}

// FormatFromPath infers the catalog format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Load reads, schema-validates and decodes a catalog file.
func Load(path string) ([]Endpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	eps, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return eps, nil
}

// Parse validates data against the catalog JSON Schema and decodes it.
func Parse(data []byte, format Format) ([]Endpoint, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	schema, err := catalogSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(v); err != nil {
		return nil, &errors.ValidationError{Message: "catalog does not match schema", Err: err}
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for i := range doc.Endpoints {
		doc.Endpoints[i].Method = strings.ToUpper(doc.Endpoints[i].Method)
	}
	if err := Validate(doc.Endpoints).Err(); err != nil {
		return nil, err
	}
	return doc.Endpoints, nil
}

// toJSON normalizes YAML input to JSON so a single schema validates both encodings.
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return json.Marshal(v)
	default:
		return nil, errors.NewUnsupportedError("catalog format", string(format), string(FormatYAML), string(FormatJSON))
	}
}

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaData)); err != nil {
			schemaErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
