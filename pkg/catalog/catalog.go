// Package catalog holds the endpoint catalog: the declarative list of API
// operations every generator and the explorer consume.
package catalog

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/veeq-ai/docs-gen/pkg/errors"
)

// All selects every category.
const All = "all"

//go:embed data/endpoints.yaml
var defaultData []byte

var (
	defaultOnce      sync.Once
	defaultEndpoints []Endpoint
)

// Default returns the built-in catalog. It panics if the embedded data is invalid,
// which the package tests guard against.
func Default() []Endpoint {
	defaultOnce.Do(func() {
		eps, err := Parse(defaultData, FormatYAML)
		if err != nil {
			panic("catalog: invalid embedded catalog: " + err.Error())
		}
		defaultEndpoints = eps
	})
	out := make([]Endpoint, len(defaultEndpoints))
	copy(out, defaultEndpoints)
	return out
}

// Find returns the endpoint with the given id.
func Find(endpoints []Endpoint, id string) (Endpoint, error) {
	for _, e := range endpoints {
		if e.ID == id {
			return e, nil
		}
	}
	return Endpoint{}, errors.NewNotFoundError("endpoint", id)
}

// Categories returns the distinct categories in catalog order.
func Categories(endpoints []Endpoint) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range endpoints {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}

// Filter applies the documentation center's category and search filters.
// An empty category or "all" matches every endpoint; query is matched
// case-insensitively against title, description and path.
func Filter(endpoints []Endpoint, category, query string) []Endpoint {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Endpoint, 0, len(endpoints))
	for _, e := range endpoints {
		if category != "" && category != All && e.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Title), query) &&
			!strings.Contains(strings.ToLower(e.Description), query) &&
			!strings.Contains(strings.ToLower(e.Path), query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterByCategories keeps endpoints whose category is selected. An empty
// selection, or one containing "all", keeps everything.
func FilterByCategories(endpoints []Endpoint, categories []string) []Endpoint {
	selected := map[string]bool{}
	for _, c := range categories {
		if c == All {
			return append([]Endpoint(nil), endpoints...)
		}
		selected[c] = true
	}
	if len(selected) == 0 {
		return append([]Endpoint(nil), endpoints...)
	}
	out := make([]Endpoint, 0, len(endpoints))
	for _, e := range endpoints {
		if selected[e.Category] {
			out = append(out, e)
		}
	}
	return out
}
