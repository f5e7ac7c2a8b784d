package catalog

import (
	"regexp"
	"strings"

	"github.com/veeq-ai/docs-gen/pkg/utils"
)

// Location is where a parameter travels in the HTTP request.
type Location string

const (
	LocationPath   Location = "path"
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationBody   Location = "body"
)

// Methods lists the HTTP methods a catalog endpoint may use.
var Methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

// Endpoint describes one API operation for documentation and generation purposes.
type Endpoint struct {
	ID             string       `yaml:"id" json:"id"`
	Method         string       `yaml:"method" json:"method"`
	Path           string       `yaml:"path" json:"path"`
	Title          string       `yaml:"title" json:"title"`
	Description    string       `yaml:"description" json:"description"`
	Category       string       `yaml:"category" json:"category"`
	Tags           []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	SDKMethod      string       `yaml:"sdkMethod,omitempty" json:"sdkMethod,omitempty"`
	Parameters     []Parameter  `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody    *RequestBody `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses      []Response   `yaml:"responses,omitempty" json:"responses,omitempty"`
	Authentication bool         `yaml:"authentication" json:"authentication"`
	Credits        string       `yaml:"credits,omitempty" json:"credits,omitempty"`
	RateLimit      string       `yaml:"rateLimit,omitempty" json:"rateLimit,omitempty"`
}

// Parameter is a single named input of an endpoint.
// Example and Default are display strings; Example may hold JSON text.
type Parameter struct {
	Name        string   `yaml:"name" json:"name"`
	Type        string   `yaml:"type" json:"type"`
	In          Location `yaml:"in,omitempty" json:"in,omitempty"`
	Required    bool     `yaml:"required" json:"required"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Example     string   `yaml:"example,omitempty" json:"example,omitempty"`
	Enum        []string `yaml:"enum,omitempty" json:"enum,omitempty"`
	Default     string   `yaml:"default,omitempty" json:"default,omitempty"`
}

// RequestBody carries a pre-serialized JSON example; Schema is a display name only.
type RequestBody struct {
	Required    bool   `yaml:"required" json:"required"`
	ContentType string `yaml:"contentType" json:"contentType"`
	Schema      string `yaml:"schema,omitempty" json:"schema,omitempty"`
	Example     string `yaml:"example,omitempty" json:"example,omitempty"`
}

// Response is one documented outcome of an endpoint.
type Response struct {
	Status      int    `yaml:"status" json:"status"`
	Description string `yaml:"description" json:"description"`
	Example     string `yaml:"example,omitempty" json:"example,omitempty"`
}

var pathPlaceholder = regexp.MustCompile(`\{([^}]+)\}|:([A-Za-z_][A-Za-z0-9_]*)`)

// PathParamNames returns the placeholder names of the path template in order.
func (e Endpoint) PathParamNames() []string {
	var names []string
	for _, m := range pathPlaceholder.FindAllStringSubmatch(e.Path, -1) {
		if m[1] != "" {
			names = append(names, m[1])
		} else {
			names = append(names, m[2])
		}
	}
	return names
}

// BracePath rewrites :name placeholders as {name}.
func BracePath(path string) string {
	return pathPlaceholder.ReplaceAllStringFunc(path, func(m string) string {
		if strings.HasPrefix(m, ":") {
			return "{" + m[1:] + "}"
		}
		return m
	})
}

// HasBody reports whether requests to this endpoint carry a body.
func (e Endpoint) HasBody() bool {
	if e.RequestBody != nil {
		return true
	}
	switch strings.ToUpper(e.Method) {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// Location decides where p is sent. An explicit In wins, then a legacy
// location-as-type value, then a matching path placeholder. Remaining
// parameters are body fields for body-carrying methods and query otherwise.
func (e Endpoint) Location(p Parameter) Location {
	switch p.In {
	case LocationPath, LocationQuery, LocationHeader, LocationBody:
		return p.In
	}
	switch Location(strings.ToLower(p.Type)) {
	case LocationQuery:
		return LocationQuery
	case LocationHeader:
		return LocationHeader
	case LocationPath:
		return LocationPath
	}
	for _, name := range e.PathParamNames() {
		if name == p.Name {
			return LocationPath
		}
	}
	if e.HasBody() {
		return LocationBody
	}
	return LocationQuery
}

// ParamsIn returns the parameters located at loc, in declaration order.
func (e Endpoint) ParamsIn(loc Location) []Parameter {
	var out []Parameter
	for _, p := range e.Parameters {
		if e.Location(p) == loc {
			out = append(out, p)
		}
	}
	return out
}

// MethodName is the base SDK method name in lowerCamel case.
func (e Endpoint) MethodName() string {
	if e.SDKMethod != "" {
		return e.SDKMethod
	}
	return utils.ToCamelCaseAdvanced(e.ID)
}

// ValueType is the value type of p with legacy location-as-type values mapped to string.
func (p Parameter) ValueType() string {
	switch strings.ToLower(p.Type) {
	case "", "query", "header", "path":
		return "string"
	case "int", "integer":
		return "integer"
	case "float", "number":
		return "number"
	case "bool", "boolean":
		return "boolean"
	}
	return strings.ToLower(p.Type)
}
